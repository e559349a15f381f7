package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hoho/internal/models/db_models"
	"hoho/pkg/utils"
)

type HotelRepository interface {
	Insert(ctx context.Context, hotel *db_models.Hotel) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Hotel, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*db_models.Hotel, error)
}

type hotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) HotelRepository {
	return &hotelRepository{
		db: db,
	}
}

func (r *hotelRepository) Insert(ctx context.Context, hotel *db_models.Hotel) error {
	err := r.db.WithContext(ctx).Create(hotel).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrAlreadyExists
	}
	return err
}

func (r *hotelRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Hotel, error) {
	var hotel db_models.Hotel
	err := r.db.WithContext(ctx).First(&hotel, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &hotel, nil
}

func (r *hotelRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*db_models.Hotel, error) {
	var hotel db_models.Hotel
	err := r.db.WithContext(ctx).First(&hotel, "owner_id = ?", ownerID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &hotel, nil
}
