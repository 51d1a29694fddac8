package authsdk

import (
	"context"
	"net/http"
)

// Invite sends an invitation to email.
func (s *Session) Invite(ctx context.Context, email string) (*InvitationResponse, error) {
	body, headers, err := jsonBody(InviteRequest{Email: email})
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/invitations", body, headers)
	if err != nil {
		return nil, err
	}

	var inv InvitationResponse
	if err := decodeJSON(resp, &inv, http.StatusCreated); err != nil {
		return nil, err
	}

	return &inv, nil
}

// ListInvitations returns the invitations the session's account has sent.
func (s *Session) ListInvitations(ctx context.Context) ([]InvitationResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/invitations", nil, nil)
	if err != nil {
		return nil, err
	}

	var list ListInvitationsResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}

	return list.Invitations, nil
}
