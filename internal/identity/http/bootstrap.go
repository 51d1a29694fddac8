package http

import (
	"net/http"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/service"
	"github.com/aussiebroadwan/identity/pkg/authsdk"
	"github.com/aussiebroadwan/identity/pkg/httpx"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP handles the bootstrap endpoint for initial system setup.
//
//	@Summary		Bootstrap the first administrator
//	@Description	Creates an enabled ADMIN account without email verification. Only available when a bootstrap token is configured and no administrator exists.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string						true	"Bootstrap token"
//	@Param			request				body		authsdk.BootstrapRequest	true	"Administrator account"
//	@Success		201					{object}	authsdk.AccountResponse
//	@Failure		400					{object}	authsdk.ErrorResponse	"Invalid request body or validation failed"
//	@Failure		401					{object}	authsdk.ErrorResponse	"Missing bootstrap token"
//	@Failure		403					{object}	authsdk.ErrorResponse	"Wrong bootstrap token"
//	@Failure		404					{object}	authsdk.ErrorResponse	"Bootstrap not enabled"
//	@Failure		409					{object}	authsdk.ErrorResponse	"An administrator already exists"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())

	// 1. Check if enabled
	if h.BootstrapService.Token == "" {
		httpx.WriteJSON(w, http.StatusNotFound, authsdk.ErrorResponse{
			Error:            authsdk.ErrorCodeNotFound,
			ErrorDescription: "Bootstrap endpoint is not enabled",
		})
		return
	}

	// 2. Require bootstrap token header
	token := r.Header.Get("X-Bootstrap-Token")
	if token == "" {
		httpx.WriteJSON(w, http.StatusUnauthorized, authsdk.ErrorResponse{
			Error:            authsdk.ErrorCodeUnauthorized,
			ErrorDescription: "Bootstrap token is required in X-Bootstrap-Token header",
		})
		return
	}

	// 3. Parse request body
	var req authsdk.BootstrapRequest
	if err := decodeBody(w, r, &req); err != nil {
		authsdk.ErrInvalidJSON.WriteError(w)
		return
	}

	// 4. Perform bootstrap
	a, err := h.BootstrapService.Bootstrap(r.Context(), token, domain.SignupData{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	l.Info("bootstrap complete")
	httpx.WriteJSON(w, http.StatusCreated, toAccountResponse(a))
}
