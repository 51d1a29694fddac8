package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/identity/internal/identity/service"
	"github.com/aussiebroadwan/identity/pkg/authsdk"
	"github.com/aussiebroadwan/identity/pkg/httpx"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

// writeServiceError maps a service error kind to a status code. The
// description is the error text minus its kind prefix, which never carries
// secrets.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	var code int
	var kind string
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		code, kind = http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest
	case errors.Is(err, service.ErrValidationConflict):
		code, kind = http.StatusConflict, authsdk.ErrorCodeConflict
	case errors.Is(err, service.ErrNotFound):
		code, kind = http.StatusNotFound, authsdk.ErrorCodeNotFound
	case errors.Is(err, service.ErrUnauthenticated):
		code, kind = http.StatusUnauthorized, authsdk.ErrorCodeUnauthorized
		if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrAccountVanished) {
			kind = authsdk.ErrorCodeInvalidToken
			httpx.SetBearerChallenge(w, kind, "session token rejected")
		}
	case errors.Is(err, service.ErrForbidden):
		code, kind = http.StatusForbidden, authsdk.ErrorCodeAccessDenied
	case errors.Is(err, service.ErrNotVerified):
		code, kind = http.StatusForbidden, authsdk.ErrorCodeNotVerified
	case errors.Is(err, service.ErrStoreUnavailable):
		log.Error("store unavailable", slog.Any("error", err))
		w.Header().Set("Retry-After", "1")
		httpx.WriteJSON(w, http.StatusServiceUnavailable, authsdk.ErrorResponse{
			Error:            authsdk.ErrorCodeUnavailable,
			ErrorDescription: "Storage is temporarily unavailable",
		})
		return
	case errors.Is(err, service.ErrPhotosDisabled):
		code, kind = http.StatusNotImplemented, authsdk.ErrorCodeNotImplemented
	default:
		log.Error("unhandled service error", slog.Any("error", err))
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, code, authsdk.ErrorResponse{
		Error:            kind,
		ErrorDescription: describe(err),
	})
}

// describe drops the leading "<kind>: " from a wrapped error message.
func describe(err error) string {
	msg := err.Error()
	if _, rest, ok := strings.Cut(msg, ": "); ok {
		return rest
	}
	return msg
}
