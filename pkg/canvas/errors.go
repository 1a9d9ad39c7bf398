package canvas

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies a failed API call.
type ErrorType string

// Error classifications, mapped from HTTP status codes by ClassifyResponse.
const (
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeRateLimited  ErrorType = "rate_limited"
	ErrorTypeServer       ErrorType = "server"
	ErrorTypeDecode       ErrorType = "decode"
	ErrorTypeUnexpected   ErrorType = "unexpected"
)

// APIError represents a classified error from the Canvas API.
type APIError struct {
	Type       ErrorType     `json:"type"`
	StatusCode int           `json:"status_code"`
	Message    string        `json:"message"`
	Errors     []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail is one entry of the server's structured error payload.
type ErrorDetail struct {
	Message   string `json:"message"`
	ErrorCode string `json:"error_code,omitempty"`
	Attribute string `json:"attribute,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("canvas: %s (status %d): %s", e.Type, e.StatusCode, e.Message)
	}

	return fmt.Sprintf("canvas: %s (status %d)", e.Type, e.StatusCode)
}

// errorBody matches the error payloads Canvas produces. Some endpoints
// return {"errors": [...]}, others {"errors": {"attr": [...]}} or a bare
// {"message": "..."}; only the shapes we rely on are decoded.
type errorBody struct {
	Errors  []ErrorDetail `json:"errors"`
	Message string        `json:"message"`
}

// ClassifyResponse maps an HTTP status and raw body to a typed *APIError.
// Statuses below 400 yield nil.
func ClassifyResponse(statusCode int, body []byte) *APIError {
	if statusCode < 400 {
		return nil
	}

	apiErr := &APIError{
		Type:       classify(statusCode),
		StatusCode: statusCode,
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		apiErr.Errors = parsed.Errors
		apiErr.Message = parsed.Message

		if apiErr.Message == "" && len(parsed.Errors) > 0 {
			apiErr.Message = parsed.Errors[0].Message
		}
	}

	return apiErr
}

func classify(statusCode int) ErrorType {
	switch {
	case statusCode == http.StatusUnauthorized:
		return ErrorTypeUnauthorized
	case statusCode == http.StatusForbidden:
		return ErrorTypeForbidden
	case statusCode == http.StatusNotFound:
		return ErrorTypeNotFound
	case statusCode == http.StatusConflict:
		return ErrorTypeConflict
	case statusCode == http.StatusUnprocessableEntity:
		return ErrorTypeValidation
	case statusCode == http.StatusTooManyRequests:
		return ErrorTypeRateLimited
	case statusCode >= 500 && statusCode <= 599:
		return ErrorTypeServer
	default:
		return ErrorTypeUnexpected
	}
}

// NewDecodeError wraps a schema/deserialization failure as an *APIError.
// Decode failures are programming errors and are never retried.
func NewDecodeError(err error) *APIError {
	return &APIError{
		Type:    ErrorTypeDecode,
		Message: err.Error(),
	}
}

// ConfigError reports invalid client configuration at construction time.
type ConfigError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("canvas: invalid config: %s: %s", e.Field, e.Reason)
}

// Transport failure sentinels. The HTTP layer wraps the underlying cause
// with one of these so callers can branch with errors.Is.
var (
	// ErrTimeout indicates the per-request timeout elapsed.
	ErrTimeout = errors.New("request timed out")

	// ErrNetwork indicates a DNS, connection, or TLS failure.
	ErrNetwork = errors.New("network failure")
)

// isType reports whether err is an *APIError of the given classification.
func isType(err error, t ErrorType) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Type == t
	}

	return false
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsUnauthorized checks if the error is an authentication error.
func IsUnauthorized(err error) bool {
	return isType(err, ErrorTypeUnauthorized)
}

// IsForbidden checks if the error is an authorization error.
func IsForbidden(err error) bool {
	return isType(err, ErrorTypeForbidden)
}

// IsRateLimited checks if the error means the retry budget for throttling
// responses was exhausted.
func IsRateLimited(err error) bool {
	return isType(err, ErrorTypeRateLimited)
}

// IsValidation checks if the error carries a server-side validation failure.
func IsValidation(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsDecode checks if the error is a response decoding failure.
func IsDecode(err error) bool {
	return isType(err, ErrorTypeDecode)
}

// IsServerError checks if the error is a 5xx that survived retries.
func IsServerError(err error) bool {
	return isType(err, ErrorTypeServer)
}
