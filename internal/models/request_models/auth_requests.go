package request_models

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// RegisterRequest is step 1 of the two-step user registration.
// Phone and age are optional; a phone, when supplied, must be E.164.
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"max=50"`
	LastName  string `json:"last_name" binding:"max=50"`
	Phone     string `json:"phone" binding:"omitempty,max=15"`
	Age       *int   `json:"age" binding:"omitempty,min=1,max=120"`
}

// VerifyCodesRequest is the final OTP step of both registration flows.
// The phone code is required only when a phone code was issued.
type VerifyCodesRequest struct {
	EmailCode string `json:"email_code" binding:"required,len=6,numeric"`
	PhoneCode string `json:"phone_code" binding:"omitempty,len=6,numeric"`
}

// OwnerRegisterRequest is step 1 of the three-step owner flow. Owners must
// supply a contact phone.
type OwnerRegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"max=50"`
	LastName  string `json:"last_name" binding:"max=50"`
	Phone     string `json:"phone" binding:"required,max=15"`
}

// HotelDetailsRequest is step 2 of the owner flow.
type HotelDetailsRequest struct {
	Name              string `json:"name" binding:"required,max=255"`
	Place             string `json:"place" binding:"required,max=100"`
	Address           string `json:"address" binding:"required"`
	LicenseNumber     string `json:"license_number" binding:"required,max=50"`
	OwnershipProofURL string `json:"ownership_proof_url" binding:"omitempty,url"`
	OwnerIDProofURL   string `json:"owner_id_proof_url" binding:"omitempty,url"`
}
