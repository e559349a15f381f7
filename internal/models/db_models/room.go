package db_models

import "github.com/google/uuid"

type Room struct {
	BaseModel
	HotelID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_hotel_room_number"`
	Hotel   *Hotel    `gorm:"foreignKey:HotelID"`

	RoomNumber string `gorm:"not null;uniqueIndex:idx_hotel_room_number"`
	RoomType   string `gorm:"not null"`

	// Price in minor units (paise)
	PriceMinor   int64 `gorm:"not null"`
	MaxOccupancy int   `gorm:"not null;default:2"`
	Description  string
	IsAvailable  bool `gorm:"not null;default:true"`
	PhotoURL     string

	Reviews []Review
}
