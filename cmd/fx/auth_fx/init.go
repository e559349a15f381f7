package auth_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"hoho/internal/repositories"
	"hoho/internal/services"
	mem "hoho/pkg/memcache"
)

var Module = fx.Provide(
	provideUserRepo, provideHotelRepo, provideRegistrationService, provideAccountService)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideHotelRepo(db *gorm.DB) repositories.HotelRepository {
	return repositories.NewHotelRepository(db)
}

func provideRegistrationService(
	userRepo repositories.UserRepository,
	hotelRepo repositories.HotelRepository,
	notifier services.NotifierInterface,
	flows mem.FlowStateStore,
) services.RegistrationServiceInterface {
	return services.NewRegistrationService(userRepo, hotelRepo, notifier, flows)
}

func provideAccountService(
	userRepo repositories.UserRepository,
	hotelRepo repositories.HotelRepository,
) services.AccountServiceInterface {
	return services.NewAccountService(userRepo, hotelRepo)
}
