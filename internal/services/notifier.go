package services

import (
	"context"
	"fmt"
	"log"

	"hoho/pkg/utils"
)

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// NotifierInterface delivers one-time codes. Delivery always goes to the
// destination the caller supplies; configuration never overrides it.
// Failures are reported, never swallowed, so the initiating transition can
// abort instead of leaving an account flagged "code sent" with no code
// actually delivered.
type NotifierInterface interface {
	Dispatch(ctx context.Context, channel Channel, destination, code, purpose string) error
}

type notifier struct {
	mail IMailService
	sms  ISmsService
}

func NewNotifier(mail IMailService, sms ISmsService) NotifierInterface {
	return &notifier{
		mail: mail,
		sms:  sms,
	}
}

func (n *notifier) Dispatch(ctx context.Context, channel Channel, destination, code, purpose string) error {
	var err error
	switch channel {
	case ChannelEmail:
		err = n.mail.SendOtpMail(destination, purpose, code)
	case ChannelSMS:
		err = n.sms.SendOtpSms(ctx, destination, code)
	default:
		return fmt.Errorf("%w: unknown channel %q", utils.ErrDispatchFailed, channel)
	}

	if err != nil {
		log.Printf("notifier: %s dispatch failed: %v", channel, err)
		return fmt.Errorf("%w: %v", utils.ErrDispatchFailed, err)
	}
	return nil
}
