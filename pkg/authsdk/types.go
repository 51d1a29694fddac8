package authsdk

import (
	"github.com/aussiebroadwan/identity/pkg/jwtx"
)

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
// Client code should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is a stable machine readable code (e.g., "conflict", "not_found")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Account Types
// ============================================================================

// SignupRequest registers a new account. Birthday is a calendar day in
// YYYY-MM-DD form. Roles defaults to ["CLIENT"].
type SignupRequest struct {
	Username  string   `json:"username"`
	Password  string   `json:"password"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty"`
	Birthday  string   `json:"birthday,omitempty"`
	Roles     []string `json:"roles,omitempty"`
}

// AccountResponse is the public view of an account. Secrets such as the
// password hash and verification code are never serialised.
type AccountResponse struct {
	ID               string   `json:"id"`
	Username         string   `json:"username"`
	Email            string   `json:"email"`
	PendingEmail     string   `json:"pending_email,omitempty"`
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	Birthday         string   `json:"birthday,omitempty"`
	RegistrationDate string   `json:"registration_date"`
	HasPhoto         bool     `json:"has_photo"`
	Roles            []string `json:"roles"`
	Enabled          bool     `json:"enabled"`
}

// SigninRequest exchanges credentials for a session token. Login is either
// an email address or a username.
type SigninRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// SessionResponse carries a freshly issued session token.
type SessionResponse struct {
	// Token is the signed JWT to send as "Authorization: Bearer <token>"
	Token string `json:"token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresAt is the token expiry in epoch seconds
	ExpiresAt int64 `json:"expires_at"`

	// ExpiresIn is the lifetime in seconds of the token
	ExpiresIn int `json:"expires_in"`

	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// ProfileUpdateRequest replaces the first and last name.
type ProfileUpdateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// EmailChangeRequest asks for Email to become the account's address once
// confirmed.
type EmailChangeRequest struct {
	Email string `json:"email"`
}

// PhotoUploadRequest names the image type about to be uploaded.
type PhotoUploadRequest struct {
	ContentType string `json:"content_type"`
}

// PhotoUploadResponse tells the client where to PUT the image.
type PhotoUploadResponse struct {
	URL       string `json:"url"`
	Key       string `json:"key"`
	ExpiresAt int64  `json:"expires_at"` // epoch seconds
}

// StatsResponse summarises the account population.
type StatsResponse struct {
	Accounts int64 `json:"accounts"`
	Verified int64 `json:"verified"`
}

// ============================================================================
// Invitation Types
// ============================================================================

// InviteRequest proposes that Email join.
type InviteRequest struct {
	Email string `json:"email"`
}

// InvitationResponse is one invitation. Statuses is the full history, most
// recent last.
type InvitationResponse struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	DateSent string   `json:"date_sent"`
	Status   string   `json:"status"`
	Statuses []string `json:"statuses"`
}

// ListInvitationsResponse lists the caller's invitations, newest first.
type ListInvitationsResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
}

// ============================================================================
// Bootstrap Types
// ============================================================================

// BootstrapRequest creates the first administrator.
type BootstrapRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
	Cache    string `json:"cache"`
}

// ============================================================================
// JWKS Types
// ============================================================================

// JWKSResponse contains the JSON Web Key Set.
// This is returned from the GET /.well-known/jwks.json endpoint and contains
// public keys used to verify session tokens.
type JWKSResponse jwtx.JWKS
