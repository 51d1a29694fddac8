package authsdk

import (
	"context"
	"io"
	"net/http"
)

// Self-service operations on the session's own account.

// Me returns the session's account as the server currently sees it.
func (s *Session) Me(ctx context.Context) (*AccountResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/accounts/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var account AccountResponse
	if err := decodeJSON(resp, &account, http.StatusOK); err != nil {
		return nil, err
	}

	return &account, nil
}

// UpdateProfile replaces the session account's first and last name.
func (s *Session) UpdateProfile(ctx context.Context, req ProfileUpdateRequest) (*AccountResponse, error) {
	return s.sendAccount(ctx, http.MethodPut, "/v1/accounts/me", req, http.StatusOK)
}

// RequestEmailChange mails a confirmation link to the new address. The
// change takes effect once ConfirmEmailChange is called with that link's code.
func (s *Session) RequestEmailChange(ctx context.Context, email string) (*AccountResponse, error) {
	return s.sendAccount(ctx, http.MethodPost, "/v1/accounts/me/email", EmailChangeRequest{Email: email}, http.StatusAccepted)
}

// StartPhotoUpload returns a presigned URL to PUT a profile photo to.
func (s *Session) StartPhotoUpload(ctx context.Context, contentType string) (*PhotoUploadResponse, error) {
	body, headers, err := jsonBody(PhotoUploadRequest{ContentType: contentType})
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/accounts/me/photo", body, headers)
	if err != nil {
		return nil, err
	}

	var upload PhotoUploadResponse
	if err := decodeJSON(resp, &upload, http.StatusOK); err != nil {
		return nil, err
	}

	return &upload, nil
}

// PhotoURL returns the presigned download URL the server redirects to.
func (s *Session) PhotoURL(ctx context.Context) (string, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/accounts/me/photo", nil, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusTemporaryRedirect {
		body, _ := io.ReadAll(resp.Body)
		return "", parseErrorResponse(resp, body)
	}
	return resp.Header.Get("Location"), nil
}

func (s *Session) sendAccount(ctx context.Context, method, path string, v any, expected int) (*AccountResponse, error) {
	body, headers, err := jsonBody(v)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, method, path, body, headers)
	if err != nil {
		return nil, err
	}

	var account AccountResponse
	if err := decodeJSON(resp, &account, expected); err != nil {
		return nil, err
	}

	return &account, nil
}
