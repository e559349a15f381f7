package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hoho/internal/models/request_models"
	"hoho/internal/services"
	"hoho/pkg/utils"
)

type FavouritesController struct {
	favouriteService services.FavouriteServiceInterface
}

func NewFavouritesController(favouriteService services.FavouriteServiceInterface) *FavouritesController {
	return &FavouritesController{
		favouriteService: favouriteService,
	}
}

func (f *FavouritesController) Toggle(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.ToggleFavouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid room id")
		return
	}

	favourited, err := f.favouriteService.Toggle(c.Request.Context(), userID, roomID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	msg := "Removed from favourites"
	if favourited {
		msg = "Added to favourites"
	}
	utils.RespondSuccess(c, gin.H{"favourited": favourited}, msg)
}

func (f *FavouritesController) ListFavourites(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	rooms, err := f.favouriteService.ListFavourites(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, rooms, "Fetched favourites successfully")
}
