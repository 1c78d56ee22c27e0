// Package errors provides custom error types for the Instruments-Graph API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Asset errors.
var (
	ErrAssetNotFound  = &AppError{Code: "ASSET_NOT_FOUND", Message: "Asset not found", StatusCode: http.StatusNotFound}
	ErrDuplicateAsset = &AppError{Code: "DUPLICATE_ASSET", Message: "An asset with this ID already exists", StatusCode: http.StatusConflict}
	ErrAssetNoTicker  = &AppError{Code: "ASSET_NO_TICKER", Message: "Asset has no ticker and cannot be priced", StatusCode: http.StatusBadRequest}
)

// Portfolio errors.
var (
	ErrHoldingNotFound = &AppError{Code: "HOLDING_NOT_FOUND", Message: "Portfolio holding not found", StatusCode: http.StatusNotFound}
	ErrNegativeAmount  = &AppError{Code: "NEGATIVE_AMOUNT", Message: "Holding amount must not be negative", StatusCode: http.StatusBadRequest}
)

// Analytics and market-data errors.
var (
	ErrFeedUnavailable  = &AppError{Code: "FEED_UNAVAILABLE", Message: "Market data feed is unavailable", StatusCode: http.StatusBadGateway}
	ErrInsufficientData = &AppError{Code: "INSUFFICIENT_DATA", Message: "Not enough priced assets to run analytics", StatusCode: http.StatusBadRequest}
	ErrNoMarketData     = &AppError{Code: "NO_MARKET_DATA", Message: "The feed returned no market data", StatusCode: http.StatusNotFound}
)
