package shared

import (
	"errors"
	"fmt"
	"strings"

	domain "github.com/bauxite/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Result is the envelope every service operation returns. Handlers map
// it onto HTTP responses; it never carries transport concerns itself.
type Result struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message,omitempty"`
	Data      any            `json:"data,omitempty"`
	Errors    []string       `json:"errors,omitempty"`
	ErrorCode string         `json:"error_code,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// OK builds a successful result
func OK(message string, data any) Result {
	return Result{Success: true, Message: message, Data: data}
}

// OKWithMeta builds a successful result carrying metadata
func OKWithMeta(message string, data any, metadata map[string]any) Result {
	return Result{Success: true, Message: message, Data: data, Metadata: metadata}
}

// Fail builds a failed result with a stable error code
func Fail(message, code string, errs ...string) Result {
	return Result{Success: false, Message: message, ErrorCode: code, Errors: errs}
}

// Invalid builds a validation failure carrying every collected error
func Invalid(errs []string) Result {
	return Result{
		Success:   false,
		Message:   "Validation failed",
		ErrorCode: "VALIDATION_ERROR",
		Errors:    errs,
	}
}

// NotFound builds a NOT_FOUND failure for a resource
func NotFound(resource, id string) Result {
	return Fail(fmt.Sprintf("%s %s does not exist", resource, id), "NOT_FOUND")
}

// SafeOperation runs fn and converts any error or panic into a failed
// Result. Typed domain errors keep their code; anything else gets a
// code derived from the operation name, so callers always see a stable
// envelope.
func SafeOperation(logger *zap.Logger, op string, fn func() (Result, error)) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic in service operation",
				zap.String("operation", op),
				zap.Any("panic", r))
			result = Fail("Internal error", failureCode(op))
		}
	}()

	result, err := fn()
	if err == nil {
		return result
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		logger.Warn("Service operation failed",
			zap.String("operation", op),
			zap.String("code", domainErr.Code),
			zap.String("reason", domainErr.Message))
		return Fail(domainErr.Message, domainErr.Code)
	}

	logger.Error("Unexpected error in service operation",
		zap.String("operation", op),
		zap.Error(err))
	return Fail("Operation failed", failureCode(op))
}

func failureCode(op string) string {
	code := strings.ToUpper(strings.ReplaceAll(op, " ", "_"))
	return code + "_FAILED"
}
