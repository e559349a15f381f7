package services

import (
	"context"

	"github.com/google/uuid"

	"hoho/internal/models/db_models"
	"hoho/internal/models/request_models"
	"hoho/internal/models/response_models"
	"hoho/internal/repositories"
	"hoho/pkg/utils"
)

type RoomServiceInterface interface {
	CreateRoom(ctx context.Context, ownerID uuid.UUID, req request_models.CreateRoomRequest) (*response_models.RoomResponse, error)
	UpdateRoom(ctx context.Context, ownerID, roomID uuid.UUID, req request_models.UpdateRoomRequest) (*response_models.RoomResponse, error)
	DeleteRoom(ctx context.Context, ownerID, roomID uuid.UUID) error
	ListOwnRooms(ctx context.Context, ownerID uuid.UUID) ([]response_models.RoomResponse, error)

	SearchRooms(ctx context.Context, query string, page, pageSize int) ([]response_models.RoomResponse, error)
	GetRoomDetail(ctx context.Context, roomID uuid.UUID, viewerID *uuid.UUID) (*response_models.RoomDetailResponse, error)
}

type RoomService struct {
	roomRepo    repositories.RoomRepository
	hotelRepo   repositories.HotelRepository
	reviewRepo  repositories.ReviewRepositoryInterface
	paymentRepo repositories.PaymentRepositoryInterface
	favRepo     repositories.FavouriteRepositoryInterface
}

func NewRoomService(
	roomRepo repositories.RoomRepository,
	hotelRepo repositories.HotelRepository,
	reviewRepo repositories.ReviewRepositoryInterface,
	paymentRepo repositories.PaymentRepositoryInterface,
	favRepo repositories.FavouriteRepositoryInterface,
) RoomServiceInterface {
	return &RoomService{
		roomRepo:    roomRepo,
		hotelRepo:   hotelRepo,
		reviewRepo:  reviewRepo,
		paymentRepo: paymentRepo,
		favRepo:     favRepo,
	}
}

func (s *RoomService) CreateRoom(ctx context.Context, ownerID uuid.UUID, req request_models.CreateRoomRequest) (*response_models.RoomResponse, error) {
	hotel, err := s.ownHotel(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	room := &db_models.Room{
		HotelID:      hotel.ID,
		RoomNumber:   req.RoomNumber,
		RoomType:     req.RoomType,
		PriceMinor:   req.PriceMinor,
		MaxOccupancy: req.MaxOccupancy,
		Description:  req.Description,
		IsAvailable:  true,
		PhotoURL:     req.PhotoURL,
	}
	if room.MaxOccupancy == 0 {
		room.MaxOccupancy = 2
	}

	if err := s.roomRepo.Insert(ctx, room); err != nil {
		return nil, err
	}

	room.Hotel = hotel
	resp := toRoomResponse(room, 0, 0)
	return &resp, nil
}

func (s *RoomService) UpdateRoom(ctx context.Context, ownerID, roomID uuid.UUID, req request_models.UpdateRoomRequest) (*response_models.RoomResponse, error) {
	room, err := s.ownRoom(ctx, ownerID, roomID)
	if err != nil {
		return nil, err
	}

	if req.RoomType != "" {
		room.RoomType = req.RoomType
	}
	if req.PriceMinor != nil {
		room.PriceMinor = *req.PriceMinor
	}
	if req.MaxOccupancy != nil {
		room.MaxOccupancy = *req.MaxOccupancy
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}
	if req.PhotoURL != nil {
		room.PhotoURL = *req.PhotoURL
	}

	if err := s.roomRepo.Save(ctx, room); err != nil {
		return nil, err
	}

	avg, count, err := s.reviewRepo.AggregateForRoom(ctx, room.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	resp := toRoomResponse(room, avg, count)
	return &resp, nil
}

func (s *RoomService) DeleteRoom(ctx context.Context, ownerID, roomID uuid.UUID) error {
	if _, err := s.ownRoom(ctx, ownerID, roomID); err != nil {
		return err
	}
	if err := s.roomRepo.Delete(ctx, roomID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *RoomService) ListOwnRooms(ctx context.Context, ownerID uuid.UUID) ([]response_models.RoomResponse, error) {
	hotel, err := s.ownHotel(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	rooms, err := s.roomRepo.ListByHotel(ctx, hotel.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.RoomResponse, 0, len(rooms))
	for i := range rooms {
		rooms[i].Hotel = hotel
		avg, count, err := s.reviewRepo.AggregateForRoom(ctx, rooms[i].ID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		responses = append(responses, toRoomResponse(&rooms[i], avg, count))
	}
	return responses, nil
}

func (s *RoomService) SearchRooms(ctx context.Context, query string, page, pageSize int) ([]response_models.RoomResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	rooms, err := s.roomRepo.Search(ctx, query, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.RoomResponse, 0, len(rooms))
	for i := range rooms {
		avg, count, err := s.reviewRepo.AggregateForRoom(ctx, rooms[i].ID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		responses = append(responses, toRoomResponse(&rooms[i], avg, count))
	}
	return responses, nil
}

func (s *RoomService) GetRoomDetail(ctx context.Context, roomID uuid.UUID, viewerID *uuid.UUID) (*response_models.RoomDetailResponse, error) {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if room == nil {
		return nil, utils.ErrNotFound
	}

	avg, count, err := s.reviewRepo.AggregateForRoom(ctx, roomID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	reviews, err := s.reviewRepo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	detail := &response_models.RoomDetailResponse{
		Room:    toRoomResponse(room, avg, count),
		Reviews: make([]response_models.ReviewResponse, 0, len(reviews)),
	}
	for i := range reviews {
		detail.Reviews = append(detail.Reviews, toReviewResponse(&reviews[i]))
	}

	if viewerID != nil {
		paid, err := s.paymentRepo.HasPaidBooking(ctx, *viewerID, roomID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		reviewed, err := s.reviewRepo.HasReviewed(ctx, *viewerID, roomID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		detail.CanReview = paid && !reviewed
		detail.HasReviewed = reviewed

		if fav, err := s.favRepo.Find(ctx, *viewerID, roomID); err == nil && fav != nil {
			detail.Room.IsFavourite = true
		}
	}

	return detail, nil
}

func (s *RoomService) ownHotel(ctx context.Context, ownerID uuid.UUID) (*db_models.Hotel, error) {
	hotel, err := s.hotelRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if hotel == nil {
		return nil, utils.ErrForbidden
	}
	return hotel, nil
}

func (s *RoomService) ownRoom(ctx context.Context, ownerID, roomID uuid.UUID) (*db_models.Room, error) {
	hotel, err := s.ownHotel(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if room == nil {
		return nil, utils.ErrNotFound
	}
	if room.HotelID != hotel.ID {
		return nil, utils.ErrForbidden
	}
	return room, nil
}

func toRoomResponse(room *db_models.Room, avg float64, count int64) response_models.RoomResponse {
	resp := response_models.RoomResponse{
		ID:           room.ID.String(),
		HotelID:      room.HotelID.String(),
		RoomNumber:   room.RoomNumber,
		RoomType:     room.RoomType,
		PriceMinor:   room.PriceMinor,
		MaxOccupancy: room.MaxOccupancy,
		Description:  room.Description,
		IsAvailable:  room.IsAvailable,
		PhotoURL:     room.PhotoURL,
		AvgRating:    avg,
		ReviewCount:  count,
	}
	if room.Hotel != nil {
		resp.HotelName = room.Hotel.Name
		resp.Place = room.Hotel.Place
	}
	return resp
}

func toReviewResponse(review *db_models.Review) response_models.ReviewResponse {
	resp := response_models.ReviewResponse{
		ID:        review.ID.String(),
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
	if review.User != nil {
		resp.Username = review.User.Username
	}
	return resp
}
