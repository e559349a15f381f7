package favourites_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"hoho/internal/repositories"
	"hoho/internal/services"
)

var Module = fx.Provide(
	provideFavouriteRepo, provideFavouriteService)

func provideFavouriteRepo(db *gorm.DB) repositories.FavouriteRepositoryInterface {
	return repositories.NewFavouriteRepository(db)
}

func provideFavouriteService(
	favRepo repositories.FavouriteRepositoryInterface,
	roomRepo repositories.RoomRepository,
	reviewRepo repositories.ReviewRepositoryInterface,
) services.FavouriteServiceInterface {
	return services.NewFavouriteService(favRepo, roomRepo, reviewRepo)
}
