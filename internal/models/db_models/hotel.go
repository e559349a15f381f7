package db_models

import "github.com/google/uuid"

// Hotel is the business entity owned one-to-one by an owner account. It is
// created together with its inactive owner in step 2 of the owner flow and
// cascade-deleted whenever that inactive owner is discarded.
type Hotel struct {
	BaseModel
	OwnerID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Owner   *User     `gorm:"foreignKey:OwnerID"`

	Name          string `gorm:"uniqueIndex;not null"`
	Place         string `gorm:"not null"`
	Address       string `gorm:"not null"`
	LicenseNumber string `gorm:"uniqueIndex;not null"`

	OwnershipProofURL string
	OwnerIDProofURL   string

	Rooms []Room
}
