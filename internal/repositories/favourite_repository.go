package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hoho/internal/models/db_models"
)

type FavouriteRepositoryInterface interface {
	Find(ctx context.Context, userID, roomID uuid.UUID) (*db_models.Favourite, error)
	Insert(ctx context.Context, fav *db_models.Favourite) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Favourite, error)
}

type FavouriteRepository struct {
	db *gorm.DB
}

func NewFavouriteRepository(db *gorm.DB) *FavouriteRepository {
	return &FavouriteRepository{db: db}
}

func (r *FavouriteRepository) Find(ctx context.Context, userID, roomID uuid.UUID) (*db_models.Favourite, error) {
	var fav db_models.Favourite
	err := r.db.WithContext(ctx).
		First(&fav, "user_id = ? AND room_id = ?", userID, roomID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &fav, nil
}

func (r *FavouriteRepository) Insert(ctx context.Context, fav *db_models.Favourite) error {
	return r.db.WithContext(ctx).Create(fav).Error
}

func (r *FavouriteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&db_models.Favourite{}, "id = ?", id).Error
}

func (r *FavouriteRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Favourite, error) {
	var favs []db_models.Favourite
	err := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Room.Hotel").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&favs).Error
	return favs, err
}
