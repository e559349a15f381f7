package reviews_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"hoho/internal/repositories"
	"hoho/internal/services"
	"hoho/pkg/utils"
)

var Module = fx.Provide(
	provideReviewRepo, provideModerationClient, provideReviewService)

func provideReviewRepo(db *gorm.DB) repositories.ReviewRepositoryInterface {
	return repositories.NewReviewRepository(db)
}

func provideModerationClient() utils.ModerationClientInterface {
	return utils.NewOpenAIModerationClient()
}

func provideReviewService(
	reviewRepo repositories.ReviewRepositoryInterface,
	roomRepo repositories.RoomRepository,
	paymentRepo repositories.PaymentRepositoryInterface,
	userRepo repositories.UserRepository,
	moderation utils.ModerationClientInterface,
) services.ReviewServiceInterface {
	return services.NewReviewService(reviewRepo, roomRepo, paymentRepo, userRepo, moderation)
}
