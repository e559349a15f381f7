package request_models

// UpdateProfileRequest starts a profile change. Name and age commit
// immediately; email/phone changes are staged until their codes confirm.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"max=50"`
	LastName  string `json:"last_name" binding:"max=50"`
	Age       *int   `json:"age" binding:"omitempty,min=1,max=120"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone" binding:"omitempty,max=15"`
}

// ConfirmProfileRequest carries the codes for whichever fields are pending.
type ConfirmProfileRequest struct {
	EmailCode string `json:"email_code" binding:"omitempty,len=6,numeric"`
	PhoneCode string `json:"phone_code" binding:"omitempty,len=6,numeric"`
}

type ConfirmPasswordChangeRequest struct {
	EmailCode   string `json:"email_code" binding:"required,len=6,numeric"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}
