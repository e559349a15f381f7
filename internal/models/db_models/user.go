package db_models

// User is an identity record. Email is stored lower-cased so the unique
// index doubles as a case-insensitive uniqueness check.
//
// The New*/Otp* fields are scratch space for one in-flight verified change:
// a code field stays non-nil only while its staged value is non-nil or an
// onboarding flow is still incomplete, and primary email/phone are never
// overwritten before the matching code confirms. Every resolved transition,
// success or final failure, nils them out again.
type User struct {
	BaseModel
	Username  string  `gorm:"uniqueIndex;not null"`
	Email     string  `gorm:"uniqueIndex;not null"`
	Phone     *string `gorm:"uniqueIndex"`
	FirstName string
	LastName  string
	Age       *int

	PasswordHash string `gorm:"not null"`

	IsActive        bool `gorm:"not null;default:false"`
	IsHotelOwner    bool `gorm:"not null;default:false"`
	IsEmailVerified bool `gorm:"not null;default:false"`
	IsPhoneVerified bool `gorm:"not null;default:false"`

	NewEmail *string
	NewPhone *string

	EmailOTP         *string
	EmailOTPIssuedAt *int64
	EmailOTPAttempts int `gorm:"not null;default:0"`

	PhoneOTP         *string
	PhoneOTPIssuedAt *int64
	PhoneOTPAttempts int `gorm:"not null;default:0"`

	Favourites []Favourite
	Reviews    []Review
	Payments   []Payment
}

func (User) TableName() string { return "users" }

// Role returns the authorization role encoded by the owner flag.
func (u *User) Role() string {
	if u.IsHotelOwner {
		return "owner"
	}
	return "user"
}
