// Error types and handling
package llm

import "fmt"

// Error is the standardized error returned by endpoint clients. Transport
// and availability failures from a remote endpoint are surfaced through
// it verbatim; nothing in this package retries on the caller's behalf.
type Error struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Type       string `json:"type"`
	StatusCode int    `json:"status_code,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Common error types used across providers
const (
	ErrTypeAuthentication = "authentication_error"
	ErrTypeValidation     = "validation_error"
	ErrTypeRateLimit      = "rate_limit_error"
	ErrTypeAPI            = "api_error"
)

// NewValidationError creates a validation error with a formatted message
func NewValidationError(code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Type:    ErrTypeValidation,
	}
}
