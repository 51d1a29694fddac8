package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/service"
	"github.com/aussiebroadwan/identity/pkg/authsdk"
)

const (
	dayLayout    = "2006-01-02"
	maxBodyBytes = 64 << 10
)

// decodeBody reads a bounded JSON body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func toAccountResponse(a domain.Account) authsdk.AccountResponse {
	resp := authsdk.AccountResponse{
		ID:               a.ID,
		Username:         a.Username,
		Email:            a.Email,
		PendingEmail:     a.PendingEmail,
		FirstName:        a.FirstName,
		LastName:         a.LastName,
		RegistrationDate: a.RegistrationDate.Format(dayLayout),
		HasPhoto:         a.PhotoReference != "",
		Roles:            a.Roles.Strings(),
		Enabled:          a.Enabled,
	}
	if a.Birthday != nil {
		resp.Birthday = a.Birthday.Format(dayLayout)
	}
	return resp
}

func toSessionResponse(s service.Session) authsdk.SessionResponse {
	return authsdk.SessionResponse{
		Token:     s.Token,
		TokenType: "Bearer",
		ExpiresAt: s.ExpiresAt.Unix(),
		ExpiresIn: int(time.Until(s.ExpiresAt).Seconds()),
		Username:  s.Username,
		Roles:     s.Roles.Strings(),
	}
}

func toInvitationResponse(inv domain.Invitation) authsdk.InvitationResponse {
	statuses := make([]string, len(inv.Statuses))
	for i, st := range inv.Statuses {
		statuses[i] = string(st)
	}
	return authsdk.InvitationResponse{
		ID:       inv.ID,
		Email:    inv.Email,
		DateSent: inv.DateSent.Format(dayLayout),
		Status:   string(inv.Status()),
		Statuses: statuses,
	}
}

// toSignupData parses the wire form. Role names and the birthday are
// checked here; everything else is left to the domain validation.
func toSignupData(req authsdk.SignupRequest) (domain.SignupData, error) {
	data := domain.SignupData{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	if req.Birthday != "" {
		b, err := time.Parse(dayLayout, req.Birthday)
		if err != nil {
			return domain.SignupData{}, errors.New("birthday must be YYYY-MM-DD")
		}
		data.Birthday = &b
	}

	roles, err := domain.ParseRoles(req.Roles)
	if err != nil {
		return domain.SignupData{}, err
	}
	data.Roles = roles
	return data, nil
}
