package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const smsDefaultTimeout = 15 * time.Second

type ISmsService interface {
	SendOtpSms(ctx context.Context, phone, code string) error
}

// SmsConfig configures the HTTP OTP-SMS gateway.
type SmsConfig struct {
	APIKey  string
	BaseURL string
	Sender  string
}

type httpSmsService struct {
	cfg    SmsConfig
	client *http.Client
}

func NewHTTPSmsService(cfg SmsConfig) ISmsService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.smslocal.com/dev/bulkV2"
	}
	return &httpSmsService{
		cfg:    cfg,
		client: &http.Client{Timeout: smsDefaultTimeout},
	}
}

// SendOtpSms posts the code to the gateway's OTP route. phone is E.164.
// The code itself is never logged.
func (s *httpSmsService) SendOtpSms(ctx context.Context, phone, code string) error {
	if s.cfg.APIKey == "" {
		return fmt.Errorf("sms: API key not configured")
	}

	body := map[string]interface{}{
		"route":     "otp",
		"numbers":   phone,
		"variables": code,
	}
	if s.cfg.Sender != "" {
		body["sender"] = s.cfg.Sender
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms: gateway returned %d: %s", resp.StatusCode, snippet)
	}
	return nil
}
