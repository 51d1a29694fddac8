package authsdk

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Session is an authenticated session holding one bearer token. Tokens are
// not refreshed automatically; call Refresh before ExpiresAt.
type Session struct {
	client *SDKClient

	mu        sync.RWMutex
	token     string
	expiresAt time.Time
	username  string
	roles     []string
}

func newSession(client *SDKClient, resp *SessionResponse) *Session {
	s := &Session{client: client}
	s.update(resp)
	return s
}

func (s *Session) update(resp *SessionResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = resp.Token
	s.expiresAt = time.Unix(resp.ExpiresAt, 0)
	s.username = resp.Username
	s.roles = append([]string(nil), resp.Roles...)
}

// Token returns the current bearer token.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// ExpiresAt is zero for sessions built with NewSessionFromToken.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// Roles returns the roles embedded in the token at issuance.
func (s *Session) Roles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.roles...)
}

// Refresh exchanges the current token for a new one carrying the account's
// current roles.
func (s *Session) Refresh(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/accounts/refresh", nil, nil)
	if err != nil {
		return err
	}

	var sess SessionResponse
	if err := decodeJSON(resp, &sess, http.StatusOK); err != nil {
		return err
	}

	s.update(&sess)
	return nil
}

// httpClient is the SDK's client with redirects disabled, so presigned
// photo redirects can be inspected rather than followed.
func (s *Session) httpClient() *http.Client {
	c := *s.client.HTTPClient
	c.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &c
}
