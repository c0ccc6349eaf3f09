package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrIntegrity     = NewDomainError("INTEGRITY_VIOLATION", "Operation blocked by dependent records")
)

// NewNotFoundError creates a NOT_FOUND error naming the missing resource
func NewNotFoundError(resource, id string) *DomainError {
	return NewDomainError("NOT_FOUND", fmt.Sprintf("%s %s does not exist", resource, id))
}

// NewDuplicateError creates an ALREADY_EXISTS error naming the conflicting natural key
func NewDuplicateError(resource, field, value string) *DomainError {
	return NewDomainError("ALREADY_EXISTS", fmt.Sprintf("%s with %s %q already exists", resource, field, value))
}

// NewIntegrityError creates an INTEGRITY_VIOLATION error describing the blocking dependents
func NewIntegrityError(resource, reason string) *DomainError {
	return NewDomainError("INTEGRITY_VIOLATION", fmt.Sprintf("Cannot delete %s: %s", resource, reason))
}
