package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Signup registers a new account. The account stays disabled until the
// emailed verification link is followed.
func (c *SDKClient) Signup(ctx context.Context, req SignupRequest) (*AccountResponse, error) {
	body, headers, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/accounts/signup", body, headers)
	if err != nil {
		return nil, err
	}

	var account AccountResponse
	if err := decodeJSON(resp, &account, http.StatusCreated); err != nil {
		return nil, err
	}

	return &account, nil
}

// Verify consumes a verification code, enabling its account.
func (c *SDKClient) Verify(ctx context.Context, code string) (*AccountResponse, error) {
	return c.getWithCode(ctx, "/v1/accounts/verify", code)
}

// ConfirmEmailChange promotes the pending email of the account holding code.
func (c *SDKClient) ConfirmEmailChange(ctx context.Context, code string) (*AccountResponse, error) {
	return c.getWithCode(ctx, "/v1/accounts/email/confirm", code)
}

func (c *SDKClient) getWithCode(ctx context.Context, path, code string) (*AccountResponse, error) {
	q := url.Values{"code": {code}}
	resp, err := c.doRequest(ctx, http.MethodGet, path+"?"+q.Encode(), nil, nil)
	if err != nil {
		return nil, err
	}

	var account AccountResponse
	if err := decodeJSON(resp, &account, http.StatusOK); err != nil {
		return nil, err
	}

	return &account, nil
}

// Signin exchanges credentials for a session token. Prefer Authenticate,
// which wraps the result in a Session.
func (c *SDKClient) Signin(ctx context.Context, login, password string) (*SessionResponse, error) {
	body, headers, err := jsonBody(SigninRequest{Login: login, Password: password})
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/accounts/signin", body, headers)
	if err != nil {
		return nil, err
	}

	var sess SessionResponse
	if err := decodeJSON(resp, &sess, http.StatusOK); err != nil {
		return nil, err
	}

	return &sess, nil
}

// Bootstrap creates the first administrator. token must match the
// server's configured bootstrap token.
func (c *SDKClient) Bootstrap(ctx context.Context, token string, req BootstrapRequest) (*AccountResponse, error) {
	body, headers, err := jsonBody(req)
	if err != nil {
		return nil, err
	}
	headers["X-Bootstrap-Token"] = token

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/bootstrap", body, headers)
	if err != nil {
		return nil, err
	}

	var account AccountResponse
	if err := decodeJSON(resp, &account, http.StatusCreated); err != nil {
		return nil, err
	}

	return &account, nil
}
