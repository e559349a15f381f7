package db_models

import "github.com/google/uuid"

type Favourite struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_room_fav"`
	RoomID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_room_fav"`
	Room   *Room     `gorm:"foreignKey:RoomID"`
}
