package utils

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrAlreadyExists      = errors.New("record already exists")
	ErrDispatchFailed     = errors.New("verification code could not be delivered")
	ErrCodeMismatch       = errors.New("verification code does not match")
	ErrCodeExpired        = errors.New("verification code has expired")
	ErrTooManyAttempts    = errors.New("too many verification attempts")
	ErrFlowExpired        = errors.New("flow expired or invalid")
	ErrAccountNotFound    = errors.New("account not found")
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidPage        = errors.New("invalid page parameter")
	ErrInvalidPageSize    = errors.New("invalid page size parameter")
	ErrDatabaseError      = errors.New("database error")
)
