package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/service"
	"github.com/aussiebroadwan/identity/pkg/authsdk"
	"github.com/aussiebroadwan/identity/pkg/httpx"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

// AdminHandler serves ADMIN-only account management.
type AdminHandler struct {
	AccountService *service.AccountService
}

// HandleGet looks an account up by username.
//
//	@Summary		Search account
//	@Tags			Admin
//	@Produce		json
//	@Param			username	path		string	true	"Exact username"
//	@Success		200			{object}	authsdk.AccountResponse
//	@Failure		404			{object}	authsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/accounts/{username} [get].
func (h *AdminHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	a, err := h.AccountService.Search(r.Context(), r.PathValue("username"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(a))
}

// HandleUpdate changes another account's names.
//
//	@Summary		Update account profile
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			username	path		string							true	"Exact username"
//	@Param			request		body		authsdk.ProfileUpdateRequest	true	"New names"
//	@Success		200			{object}	authsdk.AccountResponse
//	@Failure		404			{object}	authsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/accounts/{username} [put].
func (h *AdminHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ProfileUpdateRequest
	if err := decodeBody(w, r, &req); err != nil {
		authsdk.ErrInvalidJSON.WriteError(w)
		return
	}

	a, err := h.AccountService.AdminUpdateProfile(r.Context(), r.PathValue("username"), req.FirstName, req.LastName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(a))
}

// HandleDelete removes an account.
//
//	@Summary		Delete account
//	@Tags			Admin
//	@Param			username	path	string	true	"Exact username"
//	@Success		204
//	@Failure		404	{object}	authsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/accounts/{username} [delete].
func (h *AdminHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.AccountService.Delete(r.Context(), r.PathValue("username")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleExport streams every account as CSV.
//
//	@Summary		Export accounts
//	@Tags			Admin
//	@Produce		text/csv
//	@Success		200	{string}	string	"CSV with a header row"
//	@Security		BearerAuth
//	@Router			/v1/accounts/export [get].
func (h *AdminHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="accounts-`+time.Now().UTC().Format("20060102")+`.csv"`)

	// Headers are committed with the first row, so a late failure can only
	// be logged.
	if err := h.AccountService.Export(r.Context(), w); err != nil {
		slogx.FromContext(r.Context()).Error("account export aborted", "error", err)
	}
}

// HandleStats returns account counts.
//
//	@Summary		Account statistics
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{object}	authsdk.StatsResponse
//	@Security		BearerAuth
//	@Router			/v1/accounts/stats [get].
func (h *AdminHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.AccountService.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.StatsResponse{
		Accounts: st.Accounts,
		Verified: st.Verified,
	})
}
