package payment_fx

import (
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"hoho/internal/repositories"
	"hoho/internal/services"
)

var Module = fx.Provide(
	providePaymentRepo, providePaymentService)

func providePaymentRepo(db *gorm.DB) repositories.PaymentRepositoryInterface {
	return repositories.NewPaymentRepository(db)
}

func providePaymentService(
	paymentRepo repositories.PaymentRepositoryInterface,
	roomRepo repositories.RoomRepository,
) services.PaymentServiceInterface {
	cfg := services.PayOSConfig{
		ClientID:     os.Getenv("PAYOS_CLIENT_ID"),
		ApiKey:       os.Getenv("PAYOS_API_KEY"),
		ChecksumKey:  os.Getenv("PAYOS_CHECKSUM_KEY"),
		ReturnURL:    os.Getenv("PAYOS_RETURN_URL"),
		CancelURL:    os.Getenv("PAYOS_CANCEL_URL"),
		ProviderName: "payos",
	}
	return services.NewPaymentService(paymentRepo, roomRepo, cfg)
}
