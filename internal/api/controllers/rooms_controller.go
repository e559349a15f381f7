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

type RoomsController struct {
	roomService services.RoomServiceInterface
}

func NewRoomsController(roomService services.RoomServiceInterface) *RoomsController {
	return &RoomsController{
		roomService: roomService,
	}
}

func (r *RoomsController) CreateRoom(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	room, err := r.roomService.CreateRoom(c.Request.Context(), ownerID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, room, "Room created successfully")
}

func (r *RoomsController) UpdateRoom(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid room id")
		return
	}

	var req request_models.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	room, err := r.roomService.UpdateRoom(c.Request.Context(), ownerID, roomID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, room, "Room updated successfully")
}

func (r *RoomsController) DeleteRoom(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid room id")
		return
	}

	if err := r.roomService.DeleteRoom(c.Request.Context(), ownerID, roomID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Room deleted")
}

func (r *RoomsController) ListOwnRooms(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	rooms, err := r.roomService.ListOwnRooms(c.Request.Context(), ownerID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, rooms, "Fetched rooms successfully")
}

// SearchRooms godoc
// @Summary Search available rooms
// @Description Matches hotel name, place, room type, room number and price
// @Tags Rooms
// @Produce json
// @Param q query string false "Search query"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} utils.APIResponse
// @Router /rooms/search [get]
func (r *RoomsController) SearchRooms(c *gin.Context) {
	// 1. Parse query parameters
	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "20")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	// 2. Call service layer
	rooms, err := r.roomService.SearchRooms(c.Request.Context(), c.Query("q"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	// 3. Respond with success
	utils.RespondSuccess(c, rooms, "Fetched rooms successfully")
}

func (r *RoomsController) GetRoomDetail(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid room id")
		return
	}

	// Viewer identity is optional here; it only enriches the detail with
	// favourite and review eligibility.
	var viewerID *uuid.UUID
	if id, err := uuid.Parse(c.GetString("user_id")); err == nil {
		viewerID = &id
	}

	detail, err := r.roomService.GetRoomDetail(c.Request.Context(), roomID, viewerID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, detail, "Fetched room successfully")
}
