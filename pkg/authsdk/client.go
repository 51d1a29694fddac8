package authsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the identity service.
// It provides access to public operations and can create authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new identity service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Authenticate signs in and wraps the issued token in a Session.
func (c *SDKClient) Authenticate(ctx context.Context, login, password string) (*Session, error) {
	resp, err := c.Signin(ctx, login, password)
	if err != nil {
		return nil, err
	}
	return newSession(c, resp), nil
}

// NewSessionFromToken creates a Session from a token obtained elsewhere.
func (c *SDKClient) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}
