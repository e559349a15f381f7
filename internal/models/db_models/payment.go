package db_models

import "github.com/google/uuid"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type Payment struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	RoomID uuid.UUID `gorm:"type:uuid;not null;index"`
	Room   *Room     `gorm:"foreignKey:RoomID"`

	AmountMinor int64         `gorm:"not null"`
	Currency    string        `gorm:"not null;default:'INR'"`
	Status      PaymentStatus `gorm:"not null;default:'pending'"`

	Provider          string `gorm:"not null"`
	ProviderOrderCode int64  `gorm:"uniqueIndex"`
	ProviderTxnID     string

	PaidAt *int64
}
