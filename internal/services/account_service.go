package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"hoho/internal/models/db_models"
	"hoho/internal/models/request_models"
	"hoho/internal/models/response_models"
	"hoho/internal/repositories"
	"hoho/pkg/utils"
)

type AccountServiceInterface interface {
	Login(ctx context.Context, req request_models.LoginRequest) (*response_models.LoginResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.ProfileResponse, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type AccountService struct {
	userRepo  repositories.UserRepository
	hotelRepo repositories.HotelRepository
}

func NewAccountService(userRepo repositories.UserRepository, hotelRepo repositories.HotelRepository) AccountServiceInterface {
	return &AccountService{
		userRepo:  userRepo,
		hotelRepo: hotelRepo,
	}
}

func (s *AccountService) Login(ctx context.Context, req request_models.LoginRequest) (*response_models.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	// Inactive accounts are half-finished registrations; they cannot log
	// in and their existence is not disclosed.
	if user == nil || !user.IsActive {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(user.PasswordHash, req.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(user.ID, user.Role())
	if err != nil {
		log.Printf("login: token mint failed for %s: %v", user.ID, err)
		return nil, utils.ErrDatabaseError
	}

	return &response_models.LoginResponse{Token: token, Role: user.Role()}, nil
}

func (s *AccountService) GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil || !user.IsActive {
		return nil, utils.ErrAccountNotFound
	}

	resp := toProfileResponse(user)

	if user.IsHotelOwner {
		hotel, err := s.hotelRepo.FindByOwner(ctx, user.ID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if hotel != nil {
			resp.Hotel = &response_models.HotelResponse{
				ID:            hotel.ID.String(),
				Name:          hotel.Name,
				Place:         hotel.Place,
				Address:       hotel.Address,
				LicenseNumber: hotel.LicenseNumber,
			}
		}
	}

	return resp, nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrAccountNotFound
	}
	if err := s.userRepo.HardDelete(ctx, userID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func toProfileResponse(user *db_models.User) *response_models.ProfileResponse {
	return &response_models.ProfileResponse{
		ID:              user.ID.String(),
		Username:        user.Username,
		Email:           user.Email,
		Phone:           user.Phone,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Age:             user.Age,
		IsHotelOwner:    user.IsHotelOwner,
		IsEmailVerified: user.IsEmailVerified,
		IsPhoneVerified: user.IsPhoneVerified,
	}
}
