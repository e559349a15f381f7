package request_models

type CreateRoomRequest struct {
	RoomNumber   string `json:"room_number" binding:"required,max=10"`
	RoomType     string `json:"room_type" binding:"required,max=50"`
	PriceMinor   int64  `json:"price_minor" binding:"required,min=1"`
	MaxOccupancy int    `json:"max_occupancy" binding:"omitempty,min=1,max=20"`
	Description  string `json:"description"`
	PhotoURL     string `json:"photo_url" binding:"omitempty,url"`
}

type UpdateRoomRequest struct {
	RoomType     string `json:"room_type" binding:"omitempty,max=50"`
	PriceMinor   *int64 `json:"price_minor" binding:"omitempty,min=1"`
	MaxOccupancy *int   `json:"max_occupancy" binding:"omitempty,min=1,max=20"`
	Description  *string `json:"description"`
	IsAvailable  *bool  `json:"is_available"`
	PhotoURL     *string `json:"photo_url"`
}

type ToggleFavouriteRequest struct {
	RoomID string `json:"room_id" binding:"required,uuid"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

type CreateBookingPaymentRequest struct {
	RoomID string `json:"room_id" binding:"required,uuid"`
}
