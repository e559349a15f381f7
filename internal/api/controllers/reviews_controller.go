package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hoho/internal/models/request_models"
	"hoho/internal/services"
	"hoho/pkg/utils"
)

type ReviewsController struct {
	reviewService services.ReviewServiceInterface
}

func NewReviewsController(reviewService services.ReviewServiceInterface) *ReviewsController {
	return &ReviewsController{
		reviewService: reviewService,
	}
}

func (r *ReviewsController) CreateReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid room id")
		return
	}

	var req request_models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	review, err := r.reviewService.CreateReview(c.Request.Context(), userID, roomID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, review, "Review posted successfully")
}

func (r *ReviewsController) ListRoomReviews(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid room id")
		return
	}

	reviews, avg, err := r.reviewService.ListRoomReviews(c.Request.Context(), roomID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"reviews": reviews, "avg_rating": avg}, "Fetched reviews successfully")
}
