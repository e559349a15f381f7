package utils

import (
	"errors"
	"github.com/gin-gonic/gin"
	"log"
	"net/http"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	id, _ := c.Get("trace_id")
	if s, ok := id.(string); ok {
		return s
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError translates service sentinel errors into HTTP responses.
// Validation errors keep their wrapped per-field message so the form can be
// redisplayed with the reason; everything unexpected collapses to a 500.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrAlreadyExists):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrDispatchFailed):
		RespondError(c, http.StatusServiceUnavailable, "Could not deliver the verification code. Please try again.")
	case errors.Is(err, ErrCodeMismatch):
		RespondError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrCodeExpired):
		RespondError(c, http.StatusUnprocessableEntity, "The verification code has expired. Please restart the flow.")
	case errors.Is(err, ErrTooManyAttempts):
		RespondError(c, http.StatusUnprocessableEntity, "Too many incorrect attempts. Please restart the flow.")
	case errors.Is(err, ErrFlowExpired):
		RespondError(c, http.StatusGone, "Your session expired. Please restart from the first step.")
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, ErrForbidden):
		RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, "Page size must be between 1 and 100")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
