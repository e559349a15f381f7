package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"hoho/cmd/fx/auth_fx"
	"hoho/cmd/fx/controllers_fx"
	"hoho/cmd/fx/db_fx"
	"hoho/cmd/fx/favourites_fx"
	"hoho/cmd/fx/mail_fx"
	"hoho/cmd/fx/memcache_fx"
	"hoho/cmd/fx/notify_fx"
	"hoho/cmd/fx/payment_fx"
	"hoho/cmd/fx/profile_fx"
	"hoho/cmd/fx/reviews_fx"
	"hoho/cmd/fx/rooms_fx"
	"hoho/internal/api/controllers"
	"hoho/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	app := fx.New(
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		notify_fx.Module,
		auth_fx.Module,
		profile_fx.Module,
		rooms_fx.Module,
		reviews_fx.Module,
		favourites_fx.Module,
		payment_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
	roomsController *controllers.RoomsController,
	reviewsController *controllers.ReviewsController,
	favouritesController *controllers.FavouritesController,
	paymentController *controllers.PaymentController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.FlowSessionMiddleware())

	RegisterRoutes(r,
		authController,
		profileController,
		roomsController,
		reviewsController,
		favouritesController,
		paymentController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
	roomsController *controllers.RoomsController,
	reviewsController *controllers.ReviewsController,
	favouritesController *controllers.FavouritesController,
	paymentController *controllers.PaymentController) {

	auth := r.Group("/auth")
	auth.GET("/register", authController.StartRegistration)
	auth.POST("/register", authController.SubmitIdentity)
	auth.POST("/register/owner", authController.SubmitOwnerIdentity)
	auth.POST("/register/owner/hotel", authController.SubmitHotelDetails)
	auth.POST("/register/verify", authController.VerifyCodes)
	auth.POST("/login", authController.Login)

	profile := r.Group("/profile", middleware.JWTAuthMiddleware())
	profile.GET("", profileController.GetProfile)
	profile.PUT("", profileController.UpdateProfile)
	profile.POST("/confirm", profileController.ConfirmProfile)
	profile.POST("/password", profileController.InitiatePasswordChange)
	profile.POST("/password/confirm", profileController.ConfirmPasswordChange)
	profile.DELETE("", profileController.DeleteAccount)

	rooms := r.Group("/rooms")
	rooms.GET("/search", roomsController.SearchRooms)
	rooms.GET("/:id", middleware.OptionalJWTMiddleware(), roomsController.GetRoomDetail)
	rooms.GET("/:id/reviews", reviewsController.ListRoomReviews)
	rooms.POST("/:id/reviews", middleware.JWTAuthMiddleware(), reviewsController.CreateReview)

	owner := r.Group("/owner/rooms", middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("owner"))
	owner.GET("", roomsController.ListOwnRooms)
	owner.POST("", roomsController.CreateRoom)
	owner.PUT("/:id", roomsController.UpdateRoom)
	owner.DELETE("/:id", roomsController.DeleteRoom)

	favourites := r.Group("/favourites", middleware.JWTAuthMiddleware())
	favourites.POST("", favouritesController.Toggle)
	favourites.GET("", favouritesController.ListFavourites)

	payments := r.Group("/payments")
	payments.POST("/checkout", middleware.JWTAuthMiddleware(), paymentController.CreateCheckout)
	payments.GET("/orders", middleware.JWTAuthMiddleware(), paymentController.ListOrders)
	payments.POST("/webhook", paymentController.Webhook)
}
