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

type PaymentController struct {
	paymentService services.PaymentServiceInterface
}

func NewPaymentController(paymentService services.PaymentServiceInterface) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

// CreateCheckout godoc
// @Summary Create a booking checkout
// @Description Records a pending payment and returns the provider payment link
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CreateBookingPaymentRequest true "Booking payload"
// @Success 200 {object} utils.APIResponse
// @Router /payments/checkout [post]
func (p *PaymentController) CreateCheckout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.CreateBookingPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid room id")
		return
	}

	checkout, err := p.paymentService.CreateCheckoutForRoom(c.Request.Context(), userID, roomID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, checkout, "Checkout created successfully")
}

func (p *PaymentController) ListOrders(c *gin.Context) {
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

	orders, err := p.paymentService.ListOwnOrders(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, orders, "Fetched orders successfully")
}

// Webhook is called by the payment provider; it carries its own signature
// verification and must stay outside the JWT middleware.
func (p *PaymentController) Webhook(c *gin.Context) {
	p.paymentService.HandleWebhook(c)
}
