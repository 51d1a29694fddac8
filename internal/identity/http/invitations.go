package http

import (
	"net/http"

	"github.com/aussiebroadwan/identity/internal/identity/service"
	"github.com/aussiebroadwan/identity/pkg/authsdk"
	"github.com/aussiebroadwan/identity/pkg/httpx"
)

type InvitationsHandler struct {
	InvitationService *service.InvitationService
}

// HandleInvite sends an invitation.
//
//	@Summary		Invite
//	@Description	Records an invitation for an address that has neither an account nor an open invitation, and emails it.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.InviteRequest	true	"Invitee"
//	@Success		201		{object}	authsdk.InvitationResponse
//	@Failure		400		{object}	authsdk.ErrorResponse
//	@Failure		409		{object}	authsdk.ErrorResponse	"Already a member or already invited"
//	@Security		BearerAuth
//	@Router			/v1/invitations [post].
func (h *InvitationsHandler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	caller, ok := accountFrom(r.Context())
	if !ok {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req authsdk.InviteRequest
	if err := decodeBody(w, r, &req); err != nil {
		authsdk.ErrInvalidJSON.WriteError(w)
		return
	}

	inv, err := h.InvitationService.Invite(r.Context(), caller, req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toInvitationResponse(inv))
}

// HandleList lists the caller's invitations.
//
//	@Summary		List invitations
//	@Description	Invitations sent by the caller, newest first.
//	@Tags			Invitations
//	@Produce		json
//	@Success		200	{object}	authsdk.ListInvitationsResponse
//	@Security		BearerAuth
//	@Router			/v1/invitations [get].
func (h *InvitationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	caller, ok := accountFrom(r.Context())
	if !ok {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	invs, err := h.InvitationService.List(r.Context(), caller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := authsdk.ListInvitationsResponse{Invitations: make([]authsdk.InvitationResponse, len(invs))}
	for i, inv := range invs {
		resp.Invitations[i] = toInvitationResponse(inv)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
