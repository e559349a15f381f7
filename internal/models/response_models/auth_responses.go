package response_models

// FlowStepResponse tells the presentation layer which step to render next.
type FlowStepResponse struct {
	Flow          string `json:"flow"`
	Step          int    `json:"step"`
	PhoneRequired bool   `json:"phone_required,omitempty"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type ProfileResponse struct {
	ID              string  `json:"id"`
	Username        string  `json:"username"`
	Email           string  `json:"email"`
	Phone           *string `json:"phone,omitempty"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Age             *int    `json:"age,omitempty"`
	IsHotelOwner    bool    `json:"is_hotel_owner"`
	IsEmailVerified bool    `json:"is_email_verified"`
	IsPhoneVerified bool    `json:"is_phone_verified"`

	Hotel *HotelResponse `json:"hotel,omitempty"`
}

type HotelResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Place         string `json:"place"`
	Address       string `json:"address"`
	LicenseNumber string `json:"license_number"`
}
