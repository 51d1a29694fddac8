package authsdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Admin operations. The server requires the ADMIN role for all of these.

// GetAccount looks an account up by username.
func (s *Session) GetAccount(ctx context.Context, username string) (*AccountResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/accounts/"+url.PathEscape(username), nil, nil)
	if err != nil {
		return nil, err
	}

	var account AccountResponse
	if err := decodeJSON(resp, &account, http.StatusOK); err != nil {
		return nil, err
	}

	return &account, nil
}

// AdminUpdateProfile replaces another account's first and last name.
func (s *Session) AdminUpdateProfile(ctx context.Context, username string, req ProfileUpdateRequest) (*AccountResponse, error) {
	return s.sendAccount(ctx, http.MethodPut, "/v1/accounts/"+url.PathEscape(username), req, http.StatusOK)
}

// DeleteAccount removes an account.
func (s *Session) DeleteAccount(ctx context.Context, username string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/accounts/"+url.PathEscape(username), nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// ExportAccounts streams every account as CSV into w.
func (s *Session) ExportAccounts(ctx context.Context, w io.Writer) error {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/accounts/export", nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp, body)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("failed to read export: %w", err)
	}
	return nil
}

// Stats returns account counts.
func (s *Session) Stats(ctx context.Context) (*StatsResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/accounts/stats", nil, nil)
	if err != nil {
		return nil, err
	}

	var stats StatsResponse
	if err := decodeJSON(resp, &stats, http.StatusOK); err != nil {
		return nil, err
	}

	return &stats, nil
}
