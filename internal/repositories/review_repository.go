package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hoho/internal/models/db_models"
	"hoho/pkg/utils"
)

type ReviewRepositoryInterface interface {
	Insert(ctx context.Context, review *db_models.Review) error
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]db_models.Review, error)
	HasReviewed(ctx context.Context, userID, roomID uuid.UUID) (bool, error)
	AggregateForRoom(ctx context.Context, roomID uuid.UUID) (avg float64, count int64, err error)
}

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Insert(ctx context.Context, review *db_models.Review) error {
	err := r.db.WithContext(ctx).Create(review).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrAlreadyExists
	}
	return err
}

func (r *ReviewRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]db_models.Review, error) {
	var reviews []db_models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) HasReviewed(ctx context.Context, userID, roomID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Review{}).
		Where("user_id = ? AND room_id = ?", userID, roomID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepository) AggregateForRoom(ctx context.Context, roomID uuid.UUID) (float64, int64, error) {
	var result struct {
		Avg   *float64
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&db_models.Review{}).
		Select("AVG(rating) AS avg, COUNT(*) AS count").
		Where("room_id = ?", roomID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	if result.Avg == nil {
		return 0, result.Count, nil
	}
	return *result.Avg, result.Count, nil
}
