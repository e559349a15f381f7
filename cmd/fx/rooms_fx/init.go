package rooms_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"hoho/internal/repositories"
	"hoho/internal/services"
)

var Module = fx.Provide(
	provideRoomRepo, provideRoomService)

func provideRoomRepo(db *gorm.DB) repositories.RoomRepository {
	return repositories.NewRoomRepository(db)
}

func provideRoomService(
	roomRepo repositories.RoomRepository,
	hotelRepo repositories.HotelRepository,
	reviewRepo repositories.ReviewRepositoryInterface,
	paymentRepo repositories.PaymentRepositoryInterface,
	favRepo repositories.FavouriteRepositoryInterface,
) services.RoomServiceInterface {
	return services.NewRoomService(roomRepo, hotelRepo, reviewRepo, paymentRepo, favRepo)
}
