package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"hoho/internal/models/db_models"
	"hoho/internal/models/request_models"
	"hoho/pkg/utils"
)

type reviewFixture struct {
	users    *fakeUserRepo
	rooms    *fakeRoomRepo
	reviews  *fakeReviewRepo
	payments *fakePaymentRepo
	mod      *fakeModeration
	svc      ReviewServiceInterface
	userID   uuid.UUID
	roomID   uuid.UUID
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	ctx := context.Background()

	users := newFakeUserRepo()
	rooms := newFakeRoomRepo()
	reviews := &fakeReviewRepo{}
	payments := &fakePaymentRepo{}
	mod := &fakeModeration{}

	user := seedActiveUser(t, users, "guest@x.com", "password1")
	room := &db_models.Room{
		HotelID:     uuid.New(),
		RoomNumber:  "101",
		RoomType:    "Deluxe",
		PriceMinor:  250000,
		IsAvailable: true,
	}
	if err := rooms.Insert(ctx, room); err != nil {
		t.Fatalf("seed room: %v", err)
	}

	return &reviewFixture{
		users:    users,
		rooms:    rooms,
		reviews:  reviews,
		payments: payments,
		mod:      mod,
		svc:      NewReviewService(reviews, rooms, payments, users, mod),
		userID:   user.ID,
		roomID:   room.ID,
	}
}

func (fx *reviewFixture) markPaid(t *testing.T) {
	t.Helper()
	err := fx.payments.Insert(context.Background(), &db_models.Payment{
		UserID: fx.userID,
		RoomID: fx.roomID,
		Status: db_models.PaymentStatusPaid,
	})
	if err != nil {
		t.Fatalf("seed payment: %v", err)
	}
}

func TestReviewRequiresPaidBooking(t *testing.T) {
	fx := newReviewFixture(t)

	_, err := fx.svc.CreateReview(context.Background(), fx.userID, fx.roomID, request_models.CreateReviewRequest{
		Rating: 5,
	})
	if !errors.Is(err, utils.ErrForbidden) {
		t.Fatalf("want ErrForbidden without paid booking, got %v", err)
	}
}

func TestReviewAfterPaidBooking(t *testing.T) {
	fx := newReviewFixture(t)
	fx.markPaid(t)

	review, err := fx.svc.CreateReview(context.Background(), fx.userID, fx.roomID, request_models.CreateReviewRequest{
		Rating:  4,
		Comment: "Clean and quiet.",
	})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if review.Rating != 4 {
		t.Fatalf("rating = %d, want 4", review.Rating)
	}

	avg, count, err := fx.reviews.AggregateForRoom(context.Background(), fx.roomID)
	if err != nil || count != 1 || avg != 4 {
		t.Fatalf("aggregate = %v/%d (%v), want 4/1", avg, count, err)
	}
}

func TestSecondReviewRejected(t *testing.T) {
	fx := newReviewFixture(t)
	fx.markPaid(t)
	ctx := context.Background()

	if _, err := fx.svc.CreateReview(ctx, fx.userID, fx.roomID, request_models.CreateReviewRequest{Rating: 4}); err != nil {
		t.Fatalf("first review: %v", err)
	}
	_, err := fx.svc.CreateReview(ctx, fx.userID, fx.roomID, request_models.CreateReviewRequest{Rating: 5})
	if !errors.Is(err, utils.ErrAlreadyExists) {
		t.Fatalf("want ErrAlreadyExists for second review, got %v", err)
	}
}

func TestFlaggedCommentRejected(t *testing.T) {
	fx := newReviewFixture(t)
	fx.markPaid(t)
	fx.mod.flagged = true

	_, err := fx.svc.CreateReview(context.Background(), fx.userID, fx.roomID, request_models.CreateReviewRequest{
		Rating:  1,
		Comment: "something vile",
	})
	if !errors.Is(err, utils.ErrValidation) {
		t.Fatalf("want ErrValidation for flagged comment, got %v", err)
	}
}

func TestModerationOutageDoesNotBlockReview(t *testing.T) {
	fx := newReviewFixture(t)
	fx.markPaid(t)
	fx.mod.err = errors.New("api down")

	if _, err := fx.svc.CreateReview(context.Background(), fx.userID, fx.roomID, request_models.CreateReviewRequest{
		Rating:  5,
		Comment: "Lovely stay.",
	}); err != nil {
		t.Fatalf("CreateReview during moderation outage: %v", err)
	}
}
