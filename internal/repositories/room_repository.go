package repositories

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hoho/internal/models/db_models"
	"hoho/pkg/utils"
)

type RoomRepository interface {
	Insert(ctx context.Context, room *db_models.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Room, error)
	ListByHotel(ctx context.Context, hotelID uuid.UUID) ([]db_models.Room, error)
	Save(ctx context.Context, room *db_models.Room) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Search matches a single free-text query against hotel name, place and
	// room type (substring, case-insensitive) and room number (exact,
	// case-insensitive). A numeric query additionally matches rooms priced
	// at or below that many rupees. Only available rooms are returned,
	// cheapest first.
	Search(ctx context.Context, query string, page, pageSize int) ([]db_models.Room, error)
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{
		db: db,
	}
}

func (r *roomRepository) Insert(ctx context.Context, room *db_models.Room) error {
	err := r.db.WithContext(ctx).Create(room).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrAlreadyExists
	}
	return err
}

func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Room, error) {
	var room db_models.Room
	err := r.db.WithContext(ctx).Preload("Hotel").First(&room, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &room, nil
}

func (r *roomRepository) ListByHotel(ctx context.Context, hotelID uuid.UUID) ([]db_models.Room, error) {
	var rooms []db_models.Room
	err := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Order("room_number ASC").
		Find(&rooms).Error
	return rooms, err
}

func (r *roomRepository) Save(ctx context.Context, room *db_models.Room) error {
	err := r.db.WithContext(ctx).Save(room).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrAlreadyExists
	}
	return err
}

func (r *roomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.Room{}, "id = ?", id).Error
}

func (r *roomRepository) Search(ctx context.Context, query string, page, pageSize int) ([]db_models.Room, error) {
	pattern := "%" + strings.TrimSpace(query) + "%"

	q := r.db.WithContext(ctx).
		Joins("JOIN hotels ON hotels.id = rooms.hotel_id").
		Preload("Hotel").
		Where("rooms.is_available = TRUE")

	match := r.db.
		Where("hotels.name ILIKE ?", pattern).
		Or("hotels.place ILIKE ?", pattern).
		Or("rooms.room_type ILIKE ?", pattern).
		Or("LOWER(rooms.room_number) = LOWER(?)", strings.TrimSpace(query))

	if rupees, err := strconv.ParseInt(strings.TrimSpace(query), 10, 64); err == nil && rupees > 0 {
		match = match.Or("rooms.price_minor <= ?", rupees*100)
	}

	var rooms []db_models.Room
	err := q.Where(match).
		Order("rooms.price_minor ASC, rooms.room_number ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&rooms).Error
	return rooms, err
}
