package controllers_fx

import (
	"go.uber.org/fx"

	"hoho/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAuthController),
	fx.Provide(controllers.NewProfileController),
	fx.Provide(controllers.NewRoomsController),
	fx.Provide(controllers.NewReviewsController),
	fx.Provide(controllers.NewFavouritesController),
	fx.Provide(controllers.NewPaymentController))
