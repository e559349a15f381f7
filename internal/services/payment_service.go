package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/payOSHQ/payos-lib-golang"

	"hoho/internal/models/db_models"
	"hoho/internal/models/response_models"
	"hoho/internal/repositories"
	"hoho/pkg/utils"
)

type PayOSConfig struct {
	ClientID     string
	ApiKey       string
	ChecksumKey  string
	ReturnURL    string
	CancelURL    string
	ProviderName string // stored on Payment.Provider
}

type PaymentServiceInterface interface {
	// CreateCheckoutForRoom records a pending payment and returns the
	// provider checkout link for a one-night booking of the room.
	CreateCheckoutForRoom(ctx context.Context, userID, roomID uuid.UUID) (*response_models.CreateCheckoutResponse, error)
	ListOwnOrders(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]response_models.OrderResponse, error)
	HandleWebhook(c *gin.Context)
}

type paymentService struct {
	paymentRepo repositories.PaymentRepositoryInterface
	roomRepo    repositories.RoomRepository
	cfg         PayOSConfig
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepositoryInterface,
	roomRepo repositories.RoomRepository,
	cfg PayOSConfig,
) PaymentServiceInterface {
	if cfg.ProviderName == "" {
		cfg.ProviderName = "payos"
	}
	return &paymentService{
		paymentRepo: paymentRepo,
		roomRepo:    roomRepo,
		cfg:         cfg,
	}
}

func (p *paymentService) CreateCheckoutForRoom(ctx context.Context, userID, roomID uuid.UUID) (*response_models.CreateCheckoutResponse, error) {
	room, err := p.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if room == nil {
		return nil, utils.ErrNotFound
	}
	if !room.IsAvailable {
		return nil, fmt.Errorf("%w: room is no longer available", utils.ErrValidation)
	}

	amount := room.PriceMinor
	if amount <= 0 {
		return nil, fmt.Errorf("%w: room is not bookable", utils.ErrValidation)
	}

	// payOS expects an int64 order code; unix seconds plus a short random
	// suffix keeps it unique enough within 13 digits.
	orderCode := time.Now().Unix()%1_000_000_000 + int64(rand.Intn(9000)+1000)

	payment := &db_models.Payment{
		UserID:            userID,
		RoomID:            roomID,
		AmountMinor:       amount,
		Currency:          "INR",
		Status:            db_models.PaymentStatusPending,
		Provider:          p.cfg.ProviderName,
		ProviderOrderCode: orderCode,
		ProviderTxnID:     fmt.Sprintf("payos:%d", orderCode),
	}
	if err := p.paymentRepo.Insert(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	hotelName := ""
	if room.Hotel != nil {
		hotelName = room.Hotel.Name
	}
	item := payos.Item{
		Name:     fmt.Sprintf("Room %s, %s", room.RoomNumber, hotelName),
		Price:    int(amount),
		Quantity: 1,
	}

	body := payos.CheckoutRequestType{
		OrderCode:   orderCode,
		Amount:      int(amount),
		Items:       []payos.Item{item},
		Description: fmt.Sprintf("Booking room %s", room.RoomNumber),
		CancelUrl:   p.cfg.CancelURL,
		ReturnUrl:   p.cfg.ReturnURL,
	}

	if err := payos.Key(p.cfg.ClientID, p.cfg.ApiKey, p.cfg.ChecksumKey); err != nil {
		return nil, fmt.Errorf("payos client init: %w", err)
	}

	resp, err := payos.CreatePaymentLink(body)
	if err != nil {
		payment.Status = db_models.PaymentStatusFailed
		if saveErr := p.paymentRepo.Save(ctx, payment); saveErr != nil {
			log.Printf("payment: failed to mark order %d failed: %v", orderCode, saveErr)
		}
		return nil, fmt.Errorf("payos create link: %w", err)
	}

	return &response_models.CreateCheckoutResponse{
		OrderCode:    orderCode,
		Amount:       amount,
		PaymentURL:   resp.CheckoutUrl,
		ProviderName: p.cfg.ProviderName,
	}, nil
}

func (p *paymentService) ListOwnOrders(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]response_models.OrderResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	payments, err := p.paymentRepo.ListPaidByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.OrderResponse, 0, len(payments))
	for i := range payments {
		pay := &payments[i]
		resp := response_models.OrderResponse{
			ID:          pay.ID.String(),
			RoomID:      pay.RoomID.String(),
			AmountMinor: pay.AmountMinor,
			Currency:    pay.Currency,
			Status:      string(pay.Status),
			PaidAt:      pay.PaidAt,
		}
		if pay.Room != nil {
			resp.RoomNumber = pay.Room.RoomNumber
			if pay.Room.Hotel != nil {
				resp.HotelName = pay.Room.Hotel.Name
			}
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func (p *paymentService) HandleWebhook(c *gin.Context) {
	if err := payos.Key(p.cfg.ClientID, p.cfg.ApiKey, p.cfg.ChecksumKey); err != nil {
		log.Printf("webhook: payos client init failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Provider configuration error"})
		return
	}

	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("webhook: error reading request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	var body payos.WebhookType
	if err := json.Unmarshal(rawBody, &body); err != nil {
		log.Printf("webhook: error parsing payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload"})
		return
	}

	data, payosErr := payos.VerifyPaymentWebhookData(body)
	if payosErr != nil {
		log.Printf("webhook: error verifying data: %v", payosErr)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Failed to verify webhook data"})
		return
	}

	// payOS sends order code 123 as its confirmation probe.
	if data.OrderCode == 123 {
		c.JSON(http.StatusOK, gin.H{"message": "Confirm webhook complete"})
		return
	}

	ctx := c.Request.Context()
	payment, err := p.paymentRepo.FindByOrderCode(ctx, data.OrderCode)
	if err != nil {
		log.Printf("webhook: lookup failed for order %d: %v", data.OrderCode, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process transaction"})
		return
	}
	if payment == nil {
		// Ack unknown orders with 200 to avoid a retry storm; log for
		// investigation.
		log.Printf("webhook: payment not found for order %d", data.OrderCode)
		c.JSON(http.StatusOK, gin.H{"message": "Ignored"})
		return
	}

	// Idempotent: repeated deliveries after the first paid one are acked
	// without a second state change.
	if payment.Status != db_models.PaymentStatusPaid {
		now := time.Now().Unix()
		payment.Status = db_models.PaymentStatusPaid
		payment.PaidAt = &now
		if err := p.paymentRepo.Save(ctx, payment); err != nil {
			log.Printf("webhook: failed to mark order %d paid: %v", data.OrderCode, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process transaction"})
			return
		}

		if room, err := p.roomRepo.FindByID(ctx, payment.RoomID); err == nil && room != nil && room.IsAvailable {
			room.IsAvailable = false
			if err := p.roomRepo.Save(ctx, room); err != nil {
				log.Printf("webhook: failed to mark room %s unavailable: %v", room.ID, err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK"})
}
