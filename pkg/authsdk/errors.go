package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/identity/pkg/httpx"
)

// Error codes carried in ErrorResponse.Error.
const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeConflict       = "conflict"
	ErrorCodeNotFound       = "not_found"
	ErrorCodeInvalidToken   = "invalid_token"
	ErrorCodeUnauthorized   = "unauthorized"
	ErrorCodeAccessDenied   = "access_denied"
	ErrorCodeNotVerified    = "not_verified"
	ErrorCodeUnavailable    = "temporarily_unavailable"
	ErrorCodeNotImplemented = "not_implemented"
	ErrorCodeServerError    = "server_error"
)

// APIError is a typed error response. It is used both by the server (to
// write HTTP responses) and by the SDK client (to represent errors).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	Code        string `json:"error"`
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
	})
}

// NewAPIError creates an APIError with the given status code, code and description.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

var (
	ErrInvalidJSON = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "request body must be valid JSON",
	}

	// ErrInvalidToken is returned when the session token is missing, invalid
	// or expired, or its account no longer exists.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the session token is missing, invalid or expired",
	}

	ErrAccessDenied = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeAccessDenied,
		Description: "access denied",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// IsCode reports whether err is an APIError with the given code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// parseErrorResponse turns a non-2xx response into an *APIError.
// Returns nil if the response indicates success (2xx status code).
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	// Fallback: create generic error from status code
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
