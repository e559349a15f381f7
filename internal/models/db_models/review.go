package db_models

import "github.com/google/uuid"

// Review holds a 1..5 rating. One review per user per room; HotelID is
// denormalized for per-hotel listings.
type Review struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_room_review"`
	RoomID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_room_review"`
	HotelID uuid.UUID `gorm:"type:uuid;not null;index"`

	User *User `gorm:"foreignKey:UserID"`

	Rating  int `gorm:"not null"`
	Comment string
}
