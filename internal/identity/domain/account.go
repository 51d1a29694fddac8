package domain

import (
	"strings"
	"time"
)

// Account is a registered identity.
//
// Enabled starts false and is flipped exactly once, when the verification
// code is consumed. PendingEmail, when set, is an address awaiting
// confirmation and always differs from Email.
type Account struct {
	ID               string     `json:"id"`
	Username         string     `json:"username"`
	PasswordHash     string     `json:"password_hash"`
	Email            string     `json:"email"`
	PendingEmail     string     `json:"pending_email,omitempty"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Birthday         *time.Time `json:"birthday,omitempty"`
	RegistrationDate time.Time  `json:"registration_date"`
	PhotoReference   string     `json:"photo_reference,omitempty"`
	Roles            Roles      `json:"roles"`
	VerificationCode string     `json:"verification_code"`
	Enabled          bool       `json:"enabled"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// HasPendingEmail reports whether an email change awaits confirmation.
func (a Account) HasPendingEmail() bool { return a.PendingEmail != "" }

// EmailMatches compares against Email case-insensitively.
func (a Account) EmailMatches(email string) bool {
	return strings.EqualFold(a.Email, strings.TrimSpace(email))
}

// Day truncates t to midnight UTC. Registration and invitation dates are
// calendar days.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
