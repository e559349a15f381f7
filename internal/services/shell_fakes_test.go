package services

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"hoho/internal/models/db_models"
)

type fakeRoomRepo struct {
	mu    sync.Mutex
	rooms map[uuid.UUID]*db_models.Room
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[uuid.UUID]*db_models.Room)}
}

func (f *fakeRoomRepo) Insert(ctx context.Context, room *db_models.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}
	cp := *room
	f.rooms[room.ID] = &cp
	return nil
}

func (f *fakeRoomRepo) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rooms[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRoomRepo) ListByHotel(ctx context.Context, hotelID uuid.UUID) ([]db_models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db_models.Room
	for _, r := range f.rooms {
		if r.HotelID == hotelID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRoomRepo) Save(ctx context.Context, room *db_models.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *room
	f.rooms[room.ID] = &cp
	return nil
}

func (f *fakeRoomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rooms, id)
	return nil
}

// Search mirrors the SQL matching rules of the real repository: substring
// match on hotel name/place/room type, exact room number (both
// case-insensitive), numeric queries doubling as a rupee price ceiling,
// available rooms only, cheapest first then room number.
func (f *fakeRoomRepo) Search(ctx context.Context, query string, page, pageSize int) ([]db_models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	q := strings.TrimSpace(query)
	lower := strings.ToLower(q)
	priceCap := int64(-1)
	if rupees, err := strconv.ParseInt(q, 10, 64); err == nil && rupees > 0 {
		priceCap = rupees * 100
	}

	var out []db_models.Room
	for _, r := range f.rooms {
		if !r.IsAvailable {
			continue
		}
		match := lower == "" || strings.EqualFold(r.RoomNumber, q) ||
			strings.Contains(strings.ToLower(r.RoomType), lower)
		if r.Hotel != nil {
			match = match ||
				strings.Contains(strings.ToLower(r.Hotel.Name), lower) ||
				strings.Contains(strings.ToLower(r.Hotel.Place), lower)
		}
		if priceCap >= 0 && r.PriceMinor <= priceCap {
			match = true
		}
		if match {
			out = append(out, *r)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].PriceMinor != out[j].PriceMinor {
			return out[i].PriceMinor < out[j].PriceMinor
		}
		return out[i].RoomNumber < out[j].RoomNumber
	})

	start := (page - 1) * pageSize
	if start >= len(out) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews []db_models.Review
}

func (f *fakeReviewRepo) Insert(ctx context.Context, review *db_models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	f.reviews = append(f.reviews, *review)
	return nil
}

func (f *fakeReviewRepo) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]db_models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db_models.Review
	for _, r := range f.reviews {
		if r.RoomID == roomID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) HasReviewed(ctx context.Context, userID, roomID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reviews {
		if r.UserID == userID && r.RoomID == roomID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviewRepo) AggregateForRoom(ctx context.Context, roomID uuid.UUID) (float64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum, n int64
	for _, r := range f.reviews {
		if r.RoomID == roomID {
			sum += int64(r.Rating)
			n++
		}
	}
	if n == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(n), n, nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments []db_models.Payment
}

func (f *fakePaymentRepo) Insert(ctx context.Context, payment *db_models.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	f.payments = append(f.payments, *payment)
	return nil
}

func (f *fakePaymentRepo) FindByOrderCode(ctx context.Context, orderCode int64) (*db_models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.payments {
		if f.payments[i].ProviderOrderCode == orderCode {
			cp := f.payments[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) Save(ctx context.Context, payment *db_models.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.payments {
		if f.payments[i].ID == payment.ID {
			f.payments[i] = *payment
			return nil
		}
	}
	f.payments = append(f.payments, *payment)
	return nil
}

func (f *fakePaymentRepo) ListPaidByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db_models.Payment
	for _, p := range f.payments {
		if p.UserID == userID && p.Status == db_models.PaymentStatusPaid {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) HasPaidBooking(ctx context.Context, userID, roomID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.payments {
		if p.UserID == userID && p.RoomID == roomID && p.Status == db_models.PaymentStatusPaid {
			return true, nil
		}
	}
	return false, nil
}

type fakeFavouriteRepo struct {
	mu   sync.Mutex
	favs map[uuid.UUID]*db_models.Favourite
}

func newFakeFavouriteRepo() *fakeFavouriteRepo {
	return &fakeFavouriteRepo{favs: make(map[uuid.UUID]*db_models.Favourite)}
}

func (f *fakeFavouriteRepo) Find(ctx context.Context, userID, roomID uuid.UUID) (*db_models.Favourite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fav := range f.favs {
		if fav.UserID == userID && fav.RoomID == roomID {
			cp := *fav
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeFavouriteRepo) Insert(ctx context.Context, fav *db_models.Favourite) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if fav.ID == uuid.Nil {
		fav.ID = uuid.New()
	}
	cp := *fav
	f.favs[fav.ID] = &cp
	return nil
}

func (f *fakeFavouriteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.favs, id)
	return nil
}

func (f *fakeFavouriteRepo) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Favourite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db_models.Favourite
	for _, fav := range f.favs {
		if fav.UserID == userID {
			out = append(out, *fav)
		}
	}
	return out, nil
}

type fakeModeration struct {
	flagged bool
	err     error
}

func (f *fakeModeration) IsFlagged(ctx context.Context, text string) (bool, error) {
	return f.flagged, f.err
}
