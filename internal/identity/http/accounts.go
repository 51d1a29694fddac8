package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/identity/internal/identity/service"
	"github.com/aussiebroadwan/identity/pkg/authsdk"
	"github.com/aussiebroadwan/identity/pkg/httpx"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

// AccountsHandler serves the public account lifecycle and the caller's own
// account.
type AccountsHandler struct {
	AccountService *service.AccountService
}

// HandleSignup registers a new account.
//
//	@Summary		Sign up
//	@Description	Registers a disabled account and emails a verification link. Roles defaults to CLIENT; ADMIN cannot be requested.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.SignupRequest	true	"Signup request"
//	@Success		201		{object}	authsdk.AccountResponse
//	@Failure		400		{object}	authsdk.ErrorResponse	"Validation failed"
//	@Failure		403		{object}	authsdk.ErrorResponse	"ADMIN requested"
//	@Failure		409		{object}	authsdk.ErrorResponse	"Username or email taken"
//	@Failure		503		{object}	authsdk.ErrorResponse	"Storage unavailable"
//	@Router			/v1/accounts/signup [post].
func (h *AccountsHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req authsdk.SignupRequest
	if err := decodeBody(w, r, &req); err != nil {
		authsdk.ErrInvalidJSON.WriteError(w)
		return
	}

	data, err := toSignupData(req)
	if err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
			Error:            authsdk.ErrorCodeInvalidRequest,
			ErrorDescription: err.Error(),
		})
		return
	}

	a, err := h.AccountService.Signup(r.Context(), data)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAccountResponse(a))
}

// HandleVerify consumes a verification code.
//
//	@Summary		Verify account
//	@Description	Enables the account holding the code. Following the same link twice succeeds.
//	@Tags			Accounts
//	@Produce		json
//	@Param			code	query		string	true	"Verification code"
//	@Success		200		{object}	authsdk.AccountResponse
//	@Failure		404		{object}	authsdk.ErrorResponse	"Unknown code"
//	@Router			/v1/accounts/verify [get].
func (h *AccountsHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	a, err := h.AccountService.Verify(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(a))
}

// HandleConfirmEmail promotes a pending email.
//
//	@Summary		Confirm email change
//	@Description	Makes the pending email of the account holding the code its primary email.
//	@Tags			Accounts
//	@Produce		json
//	@Param			code	query		string	true	"Verification code from the confirmation link"
//	@Success		200		{object}	authsdk.AccountResponse
//	@Failure		404		{object}	authsdk.ErrorResponse	"Unknown code or no change pending"
//	@Failure		409		{object}	authsdk.ErrorResponse	"Email taken in the meantime"
//	@Router			/v1/accounts/email/confirm [get].
func (h *AccountsHandler) HandleConfirmEmail(w http.ResponseWriter, r *http.Request) {
	a, err := h.AccountService.ConfirmEmailChange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(a))
}

// HandleSignin exchanges credentials for a session token.
//
//	@Summary		Sign in
//	@Description	Login may be an email address or a username. Unverified accounts are refused.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.SigninRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.SessionResponse
//	@Failure		401		{object}	authsdk.ErrorResponse	"Bad credentials"
//	@Failure		403		{object}	authsdk.ErrorResponse	"Account not verified"
//	@Router			/v1/accounts/signin [post].
func (h *AccountsHandler) HandleSignin(w http.ResponseWriter, r *http.Request) {
	var req authsdk.SigninRequest
	if err := decodeBody(w, r, &req); err != nil {
		authsdk.ErrInvalidJSON.WriteError(w)
		return
	}

	sess, err := h.AccountService.Signin(r.Context(), req.Login, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSessionResponse(sess))
}

// HandleMe returns the caller's account.
//
//	@Summary		Who am I
//	@Tags			Accounts
//	@Produce		json
//	@Success		200	{object}	authsdk.AccountResponse
//	@Failure		401	{object}	authsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/accounts/me [get].
func (h *AccountsHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	a, ok := accountFrom(r.Context())
	if !ok {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(a))
}

// HandleUpdateMe changes the caller's names.
//
//	@Summary		Update profile
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ProfileUpdateRequest	true	"New names"
//	@Success		200		{object}	authsdk.AccountResponse
//	@Failure		400		{object}	authsdk.ErrorResponse
//	@Failure		401		{object}	authsdk.ErrorResponse
//	@Failure		403		{object}	authsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/accounts/me [put].
func (h *AccountsHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	caller, ok := accountFrom(r.Context())
	if !ok {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req authsdk.ProfileUpdateRequest
	if err := decodeBody(w, r, &req); err != nil {
		authsdk.ErrInvalidJSON.WriteError(w)
		return
	}

	a, err := h.AccountService.UpdateProfile(r.Context(), caller, req.FirstName, req.LastName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(a))
}

// HandleRequestEmailChange parks a new email awaiting confirmation.
//
//	@Summary		Request email change
//	@Description	Mails a confirmation link to the new address. The current email stays in effect until the link is followed.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.EmailChangeRequest	true	"New email"
//	@Success		202		{object}	authsdk.AccountResponse
//	@Failure		400		{object}	authsdk.ErrorResponse
//	@Failure		409		{object}	authsdk.ErrorResponse	"Email taken"
//	@Security		BearerAuth
//	@Router			/v1/accounts/me/email [post].
func (h *AccountsHandler) HandleRequestEmailChange(w http.ResponseWriter, r *http.Request) {
	caller, ok := accountFrom(r.Context())
	if !ok {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req authsdk.EmailChangeRequest
	if err := decodeBody(w, r, &req); err != nil {
		authsdk.ErrInvalidJSON.WriteError(w)
		return
	}

	a, err := h.AccountService.RequestEmailChange(r.Context(), caller, req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusAccepted, toAccountResponse(a))
}

// HandleStartPhotoUpload hands out a presigned upload URL.
//
//	@Summary		Start profile photo upload
//	@Description	Returns a presigned URL the client PUTs the image to, with the same Content-Type.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.PhotoUploadRequest	true	"Image type"
//	@Success		200		{object}	authsdk.PhotoUploadResponse
//	@Failure		400		{object}	authsdk.ErrorResponse	"Unsupported content type"
//	@Failure		501		{object}	authsdk.ErrorResponse	"Photo storage not configured"
//	@Security		BearerAuth
//	@Router			/v1/accounts/me/photo [post].
func (h *AccountsHandler) HandleStartPhotoUpload(w http.ResponseWriter, r *http.Request) {
	caller, ok := accountFrom(r.Context())
	if !ok {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req authsdk.PhotoUploadRequest
	if err := decodeBody(w, r, &req); err != nil {
		authsdk.ErrInvalidJSON.WriteError(w)
		return
	}

	up, err := h.AccountService.StartPhotoUpload(r.Context(), caller, req.ContentType)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.PhotoUploadResponse{
		URL:       up.URL,
		Key:       up.Key,
		ExpiresAt: up.ExpiresAt.Unix(),
	})
}

// HandlePhoto redirects to a presigned download URL.
//
//	@Summary		Get profile photo
//	@Tags			Accounts
//	@Success		307
//	@Failure		404	{object}	authsdk.ErrorResponse	"No photo uploaded"
//	@Failure		501	{object}	authsdk.ErrorResponse	"Photo storage not configured"
//	@Security		BearerAuth
//	@Router			/v1/accounts/me/photo [get].
func (h *AccountsHandler) HandlePhoto(w http.ResponseWriter, r *http.Request) {
	caller, ok := accountFrom(r.Context())
	if !ok {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	url, err := h.AccountService.PhotoURL(r.Context(), caller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// HandleRefresh issues a new token with the caller's current roles.
//
//	@Summary		Refresh session
//	@Tags			Accounts
//	@Produce		json
//	@Success		200	{object}	authsdk.SessionResponse
//	@Failure		401	{object}	authsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/accounts/refresh [post].
func (h *AccountsHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	caller, ok := accountFrom(r.Context())
	if !ok {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	sess, err := h.AccountService.Refresh(r.Context(), caller)
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to refresh session", slog.Any("error", err))
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSessionResponse(sess))
}
