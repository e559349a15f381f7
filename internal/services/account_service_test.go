package services

import (
	"context"
	"errors"
	"testing"

	"hoho/internal/models/db_models"
	"hoho/internal/models/request_models"
	"hoho/pkg/utils"
)

func seedActiveUser(t *testing.T, users *fakeUserRepo, email, password string) *db_models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	user := &db_models.User{
		Username:     email,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := users.Insert(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestLoginSuccess(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	users := newFakeUserRepo()
	hotels := newFakeHotelRepo()
	seedActiveUser(t, users, "a@x.com", "password1")
	svc := NewAccountService(users, hotels)

	resp, err := svc.Login(context.Background(), request_models.LoginRequest{
		Email:    "a@x.com",
		Password: "password1",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" || resp.Role != "user" {
		t.Fatalf("unexpected login response: %+v", resp)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	users := newFakeUserRepo()
	seedActiveUser(t, users, "a@x.com", "password1")
	svc := NewAccountService(users, newFakeHotelRepo())

	_, err := svc.Login(context.Background(), request_models.LoginRequest{
		Email:    "a@x.com",
		Password: "wrong",
	})
	if !errors.Is(err, utils.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginInactiveAccountRejected(t *testing.T) {
	users := newFakeUserRepo()
	user := seedActiveUser(t, users, "a@x.com", "password1")
	user.IsActive = false
	if err := users.Save(context.Background(), user); err != nil {
		t.Fatalf("Save: %v", err)
	}
	svc := NewAccountService(users, newFakeHotelRepo())

	_, err := svc.Login(context.Background(), request_models.LoginRequest{
		Email:    "a@x.com",
		Password: "password1",
	})
	if !errors.Is(err, utils.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials for inactive account, got %v", err)
	}
}

func TestGetProfileIncludesHotelForOwner(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	hotels := newFakeHotelRepo()
	user := seedActiveUser(t, users, "bob@x.com", "password1")
	user.IsHotelOwner = true
	if err := users.Save(ctx, user); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := hotels.Insert(ctx, &db_models.Hotel{
		OwnerID: user.ID,
		Name:    "Sea View",
		Place:   "Goa",
	}); err != nil {
		t.Fatalf("seed hotel: %v", err)
	}
	svc := NewAccountService(users, hotels)

	profile, err := svc.GetProfile(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile.Hotel == nil || profile.Hotel.Name != "Sea View" {
		t.Fatalf("hotel missing from owner profile: %+v", profile.Hotel)
	}
}

func TestDeleteAccountCascadesHotel(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	hotels := newFakeHotelRepo()
	users.hotels = hotels
	user := seedActiveUser(t, users, "bob@x.com", "password1")
	if err := hotels.Insert(ctx, &db_models.Hotel{OwnerID: user.ID, Name: "Sea View"}); err != nil {
		t.Fatalf("seed hotel: %v", err)
	}
	svc := NewAccountService(users, hotels)

	if err := svc.DeleteAccount(ctx, user.ID); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if u, _ := users.FindByID(ctx, user.ID); u != nil {
		t.Fatal("user row survived deletion")
	}
	if h, _ := hotels.FindByOwner(ctx, user.ID); h != nil {
		t.Fatal("hotel survived owner deletion")
	}
}
