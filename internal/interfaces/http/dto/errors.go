package dto

import (
	"net/http"
	"strings"
)

// Common error codes surfaced by the API. Domain and service layers
// produce more specific INVALID_* codes; those all map to 400.
const (
	ErrCodeBadRequest  = "BAD_REQUEST"
	ErrCodeInvalidJSON = "INVALID_JSON"
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeInternal    = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps exact error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,
	"VALIDATION_ERROR": http.StatusBadRequest,

	ErrCodeNotFound: http.StatusNotFound,

	"ALREADY_EXISTS": http.StatusConflict,

	"INTEGRITY_VIOLATION": http.StatusUnprocessableEntity,
	"SCENARIO_ARCHIVED":   http.StatusUnprocessableEntity,
	"ALREADY_ARCHIVED":    http.StatusUnprocessableEntity,

	ErrCodeInternal: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code. INVALID_*
// codes are validation failures and map to 400; anything unrecognized
// (including the generated *_FAILED codes) maps to 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
