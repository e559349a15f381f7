package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"hoho/internal/models/db_models"
	"hoho/internal/repositories"
	"hoho/pkg/utils"
)

// fakeUserRepo is an in-memory UserRepository. Transact runs the callback
// against the same store; good enough for single-goroutine tests.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*db_models.User

	// when set, HardDelete cascades hotels the way the real repository does
	hotels *fakeHotelRepo

	insertErr error
	saveErr   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*db_models.User)}
}

func (f *fakeUserRepo) Insert(ctx context.Context, user *db_models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	user.Email = strings.ToLower(user.Email)
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return utils.ErrAlreadyExists
		}
		if u.Phone != nil && user.Phone != nil && *u.Phone == *user.Phone {
			return utils.ErrAlreadyExists
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*db_models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByPhone(ctx context.Context, phone string) (*db_models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Phone != nil && *u.Phone == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Save(ctx context.Context, user *db_models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	user.Email = strings.ToLower(user.Email)
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	delete(f.users, id)
	f.mu.Unlock()
	if f.hotels != nil {
		f.hotels.deleteByOwner(id)
	}
	return nil
}

func (f *fakeUserRepo) Transact(ctx context.Context, fn func(repo repositories.UserRepository) error) error {
	return fn(f)
}

type fakeHotelRepo struct {
	mu     sync.Mutex
	hotels map[uuid.UUID]*db_models.Hotel

	insertErr error
}

func newFakeHotelRepo() *fakeHotelRepo {
	return &fakeHotelRepo{hotels: make(map[uuid.UUID]*db_models.Hotel)}
}

func (f *fakeHotelRepo) Insert(ctx context.Context, hotel *db_models.Hotel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	if hotel.ID == uuid.Nil {
		hotel.ID = uuid.New()
	}
	cp := *hotel
	f.hotels[hotel.ID] = &cp
	return nil
}

func (f *fakeHotelRepo) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.hotels[id]
	if !ok {
		return nil, nil
	}
	cp := *h
	return &cp, nil
}

func (f *fakeHotelRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*db_models.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, h := range f.hotels {
		if h.OwnerID == ownerID {
			cp := *h
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeHotelRepo) deleteByOwner(ownerID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, h := range f.hotels {
		if h.OwnerID == ownerID {
			delete(f.hotels, id)
		}
	}
}

type sentMessage struct {
	channel     Channel
	destination string
	code        string
	purpose     string
}

// fakeNotifier records every dispatch and can be told to fail a channel.
type fakeNotifier struct {
	mu       sync.Mutex
	sent     []sentMessage
	failMail bool
	failSMS  bool
}

func (f *fakeNotifier) Dispatch(ctx context.Context, channel Channel, destination, code, purpose string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if channel == ChannelEmail && f.failMail {
		return fmt.Errorf("%w: smtp unreachable", utils.ErrDispatchFailed)
	}
	if channel == ChannelSMS && f.failSMS {
		return fmt.Errorf("%w: sms gateway unreachable", utils.ErrDispatchFailed)
	}
	f.sent = append(f.sent, sentMessage{channel, destination, code, purpose})
	return nil
}

func (f *fakeNotifier) lastCode(channel Channel) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.sent) - 1; i >= 0; i-- {
		if f.sent[i].channel == channel {
			return f.sent[i].code
		}
	}
	return ""
}

func (f *fakeNotifier) count(channel Channel) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, m := range f.sent {
		if m.channel == channel {
			n++
		}
	}
	return n
}
