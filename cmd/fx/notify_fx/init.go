package notify_fx

import (
	"os"

	"go.uber.org/fx"

	"hoho/internal/services"
)

var Module = fx.Provide(
	provideSmsService, provideNotifier)

func provideSmsService() services.ISmsService {
	return services.NewHTTPSmsService(services.SmsConfig{
		APIKey:  os.Getenv("SMS_API_KEY"),
		BaseURL: os.Getenv("SMS_BASE_URL"),
		Sender:  os.Getenv("SMS_SENDER"),
	})
}

func provideNotifier(mail services.IMailService, sms services.ISmsService) services.NotifierInterface {
	return services.NewNotifier(mail, sms)
}
