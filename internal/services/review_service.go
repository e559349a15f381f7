package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"hoho/internal/models/db_models"
	"hoho/internal/models/request_models"
	"hoho/internal/models/response_models"
	"hoho/internal/repositories"
	"hoho/pkg/utils"
)

type ReviewServiceInterface interface {
	// CreateReview posts a review for a room. Only guests with a paid
	// booking for the room may review, once per room; comments go through
	// the moderation client first.
	CreateReview(ctx context.Context, userID, roomID uuid.UUID, req request_models.CreateReviewRequest) (*response_models.ReviewResponse, error)
	ListRoomReviews(ctx context.Context, roomID uuid.UUID) ([]response_models.ReviewResponse, float64, error)
}

type ReviewService struct {
	reviewRepo  repositories.ReviewRepositoryInterface
	roomRepo    repositories.RoomRepository
	paymentRepo repositories.PaymentRepositoryInterface
	userRepo    repositories.UserRepository
	moderation  utils.ModerationClientInterface
}

func NewReviewService(
	reviewRepo repositories.ReviewRepositoryInterface,
	roomRepo repositories.RoomRepository,
	paymentRepo repositories.PaymentRepositoryInterface,
	userRepo repositories.UserRepository,
	moderation utils.ModerationClientInterface,
) ReviewServiceInterface {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		roomRepo:    roomRepo,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		moderation:  moderation,
	}
}

func (s *ReviewService) CreateReview(ctx context.Context, userID, roomID uuid.UUID, req request_models.CreateReviewRequest) (*response_models.ReviewResponse, error) {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if room == nil {
		return nil, utils.ErrNotFound
	}

	paid, err := s.paymentRepo.HasPaidBooking(ctx, userID, roomID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if !paid {
		return nil, fmt.Errorf("%w: reviews are limited to guests who completed a booking", utils.ErrForbidden)
	}

	reviewed, err := s.reviewRepo.HasReviewed(ctx, userID, roomID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if reviewed {
		return nil, fmt.Errorf("%w: you already reviewed this room", utils.ErrAlreadyExists)
	}

	if comment := strings.TrimSpace(req.Comment); comment != "" && s.moderation != nil {
		flagged, err := s.moderation.IsFlagged(ctx, comment)
		if err != nil {
			// Moderation outage should not block legitimate reviews.
			log.Printf("review moderation unavailable: %v", err)
		} else if flagged {
			return nil, fmt.Errorf("%w: comment rejected by moderation", utils.ErrValidation)
		}
	}

	review := &db_models.Review{
		UserID:  userID,
		RoomID:  roomID,
		HotelID: room.HotelID,
		Rating:  req.Rating,
		Comment: strings.TrimSpace(req.Comment),
	}
	if err := s.reviewRepo.Insert(ctx, review); err != nil {
		return nil, err
	}

	if user, err := s.userRepo.FindByID(ctx, userID); err == nil && user != nil {
		review.User = user
	}
	resp := toReviewResponse(review)
	return &resp, nil
}

func (s *ReviewService) ListRoomReviews(ctx context.Context, roomID uuid.UUID) ([]response_models.ReviewResponse, float64, error) {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		return nil, 0, utils.ErrDatabaseError
	}
	if room == nil {
		return nil, 0, utils.ErrNotFound
	}

	reviews, err := s.reviewRepo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, 0, utils.ErrDatabaseError
	}
	avg, _, err := s.reviewRepo.AggregateForRoom(ctx, roomID)
	if err != nil {
		return nil, 0, utils.ErrDatabaseError
	}

	responses := make([]response_models.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, toReviewResponse(&reviews[i]))
	}
	return responses, avg, nil
}
