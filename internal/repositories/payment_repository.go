package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hoho/internal/models/db_models"
)

type PaymentRepositoryInterface interface {
	Insert(ctx context.Context, payment *db_models.Payment) error
	FindByOrderCode(ctx context.Context, orderCode int64) (*db_models.Payment, error)
	Save(ctx context.Context, payment *db_models.Payment) error
	ListPaidByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Payment, error)
	HasPaidBooking(ctx context.Context, userID, roomID uuid.UUID) (bool, error)
}

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Insert(ctx context.Context, payment *db_models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *PaymentRepository) FindByOrderCode(ctx context.Context, orderCode int64) (*db_models.Payment, error) {
	var payment db_models.Payment
	err := r.db.WithContext(ctx).
		Preload("Room").
		First(&payment, "provider_order_code = ?", orderCode).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &payment, nil
}

func (r *PaymentRepository) Save(ctx context.Context, payment *db_models.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

func (r *PaymentRepository) ListPaidByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Payment, error) {
	var payments []db_models.Payment
	err := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Room.Hotel").
		Where("user_id = ? AND status = ?", userID, db_models.PaymentStatusPaid).
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&payments).Error
	return payments, err
}

func (r *PaymentRepository) HasPaidBooking(ctx context.Context, userID, roomID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Payment{}).
		Where("user_id = ? AND room_id = ? AND status = ?", userID, roomID, db_models.PaymentStatusPaid).
		Count(&count).Error
	return count > 0, err
}
