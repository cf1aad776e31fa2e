package dto

import (
	"net/http"
	"strings"
)

// Error codes raised by the HTTP layer itself
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes absent from the table fall back by shape in GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	// auth -> 401
	ErrCodeUnauthorized:     http.StatusUnauthorized,
	"INVALID_CREDENTIALS":   http.StatusUnauthorized,
	"INVALID_REFRESH_TOKEN": http.StatusUnauthorized,
	"TOKEN_EXPIRED":         http.StatusUnauthorized,
	"INVALID_TOKEN":         http.StatusUnauthorized,

	// access -> 403
	ErrCodeForbidden: http.StatusForbidden,
	"ACCOUNT_LOCKED": http.StatusForbidden,

	// missing resources -> 404
	ErrCodeNotFound:    http.StatusNotFound,
	"UPLOAD_NOT_FOUND": http.StatusNotFound,

	// duplicates -> 409
	"ALREADY_EXISTS": http.StatusConflict,
	"EMAIL_EXISTS":   http.StatusConflict,
	"REVIEW_EXISTS":  http.StatusConflict,
	"ALREADY_LOCKED": http.StatusConflict,
	"NOT_LOCKED":     http.StatusConflict,

	// business rules -> 422
	"PRODUCT_UNAVAILABLE":      http.StatusUnprocessableEntity,
	"PURCHASE_REQUIRED":        http.StatusUnprocessableEntity,
	"INVALID_STATE":            http.StatusUnprocessableEntity,
	"INVALID_STATE_TRANSITION": http.StatusUnprocessableEntity,

	// bad input -> 400
	ErrCodeBadRequest:    http.StatusBadRequest,
	"INSUFFICIENT_STOCK": http.StatusBadRequest,
	"EMPTY_CART":         http.StatusBadRequest,
	"EMPTY_ORDER":        http.StatusBadRequest,
	"QUANTITY_LIMIT":     http.StatusBadRequest,
	"OTP_MISMATCH":       http.StatusBadRequest,
	"OTP_EXPIRED":        http.StatusBadRequest,
	"OTP_USED":           http.StatusBadRequest,
	"OTP_LOCKED":         http.StatusTooManyRequests,

	// internal failures -> 500
	ErrCodeInternal:          http.StatusInternalServerError,
	"CODE_GENERATION_FAILED": http.StatusInternalServerError,
	"PASSWORD_HASH_ERROR":    http.StatusInternalServerError,
	"OTP_GENERATION_ERROR":   http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for a domain error code.
// Unlisted INVALID_* codes are treated as validation failures.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
