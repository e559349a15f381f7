package response_models

type RoomResponse struct {
	ID           string  `json:"id"`
	HotelID      string  `json:"hotel_id"`
	HotelName    string  `json:"hotel_name,omitempty"`
	Place        string  `json:"place,omitempty"`
	RoomNumber   string  `json:"room_number"`
	RoomType     string  `json:"room_type"`
	PriceMinor   int64   `json:"price_minor"`
	MaxOccupancy int     `json:"max_occupancy"`
	Description  string  `json:"description,omitempty"`
	IsAvailable  bool    `json:"is_available"`
	PhotoURL     string  `json:"photo_url,omitempty"`
	AvgRating    float64 `json:"avg_rating"`
	ReviewCount  int64   `json:"review_count"`
	IsFavourite  bool    `json:"is_favourite,omitempty"`
}

type ReviewResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

type RoomDetailResponse struct {
	Room        RoomResponse     `json:"room"`
	Reviews     []ReviewResponse `json:"reviews"`
	CanReview   bool             `json:"can_review"`
	HasReviewed bool             `json:"has_reviewed"`
}

type CreateCheckoutResponse struct {
	OrderCode    int64  `json:"order_code"`
	Amount       int64  `json:"amount"`
	PaymentURL   string `json:"payment_url"`
	ProviderName string `json:"provider_name"`
}

type OrderResponse struct {
	ID          string `json:"id"`
	RoomID      string `json:"room_id"`
	RoomNumber  string `json:"room_number"`
	HotelName   string `json:"hotel_name"`
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
	PaidAt      *int64 `json:"paid_at,omitempty"`
}
