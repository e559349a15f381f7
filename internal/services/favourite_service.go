package services

import (
	"context"

	"github.com/google/uuid"

	"hoho/internal/models/db_models"
	"hoho/internal/models/response_models"
	"hoho/internal/repositories"
	"hoho/pkg/utils"
)

type FavouriteServiceInterface interface {
	// Toggle adds the room to the user's favourites, or removes it if it
	// is already there. Returns true when the room ends up favourited.
	Toggle(ctx context.Context, userID, roomID uuid.UUID) (bool, error)
	ListFavourites(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]response_models.RoomResponse, error)
}

type FavouriteService struct {
	favRepo    repositories.FavouriteRepositoryInterface
	roomRepo   repositories.RoomRepository
	reviewRepo repositories.ReviewRepositoryInterface
}

func NewFavouriteService(
	favRepo repositories.FavouriteRepositoryInterface,
	roomRepo repositories.RoomRepository,
	reviewRepo repositories.ReviewRepositoryInterface,
) FavouriteServiceInterface {
	return &FavouriteService{
		favRepo:    favRepo,
		roomRepo:   roomRepo,
		reviewRepo: reviewRepo,
	}
}

func (s *FavouriteService) Toggle(ctx context.Context, userID, roomID uuid.UUID) (bool, error) {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		return false, utils.ErrDatabaseError
	}
	if room == nil {
		return false, utils.ErrNotFound
	}

	existing, err := s.favRepo.Find(ctx, userID, roomID)
	if err != nil {
		return false, utils.ErrDatabaseError
	}

	if existing != nil {
		if err := s.favRepo.Delete(ctx, existing.ID); err != nil {
			return false, utils.ErrDatabaseError
		}
		return false, nil
	}

	fav := &db_models.Favourite{UserID: userID, RoomID: roomID}
	if err := s.favRepo.Insert(ctx, fav); err != nil {
		return false, utils.ErrDatabaseError
	}
	return true, nil
}

func (s *FavouriteService) ListFavourites(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]response_models.RoomResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	favs, err := s.favRepo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.RoomResponse, 0, len(favs))
	for i := range favs {
		if favs[i].Room == nil {
			continue
		}
		avg, count, err := s.reviewRepo.AggregateForRoom(ctx, favs[i].RoomID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		resp := toRoomResponse(favs[i].Room, avg, count)
		resp.IsFavourite = true
		responses = append(responses, resp)
	}
	return responses, nil
}
