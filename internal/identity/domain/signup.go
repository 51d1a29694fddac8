package domain

import (
	"errors"
	"strings"
	"time"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// SignupData is the caller-supplied part of a new Account.
type SignupData struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
	Birthday  *time.Time
	Roles     Roles
}

// Normalize trims whitespace and applies the default role.
func (d *SignupData) Normalize() {
	d.Username = strings.TrimSpace(d.Username)
	d.Email = strings.TrimSpace(d.Email)
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	if len(d.Roles) == 0 {
		d.Roles = Roles{RoleClient}
	}
}

// Validate checks field shape. It does not consult the store.
func (d SignupData) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Username, validation.Required, validation.RuneLength(4, 255), validation.By(noWhitespace)),
		validation.Field(&d.Password, validation.Required, validation.By(StrongPassword)),
		validation.Field(&d.Email, validation.Required, validation.Length(3, 255), is.Email),
		validation.Field(&d.FirstName, validation.RuneLength(0, 255)),
		validation.Field(&d.LastName, validation.RuneLength(0, 255)),
		validation.Field(&d.Birthday, validation.By(notInFuture)),
		validation.Field(&d.Roles, validation.Required, validation.By(knownRoles)),
	)
}

// ValidateEmail checks a standalone address, e.g. for an invitation.
func ValidateEmail(email string) error {
	return validation.Validate(email, validation.Required, validation.Length(3, 255), is.Email)
}

// ValidateName checks a first or last name.
func ValidateName(name string) error {
	return validation.Validate(name, validation.RuneLength(0, 255))
}

// StrongPassword requires 8..128 characters with upper and lower case
// letters, a digit and a symbol.
func StrongPassword(value any) error {
	s, _ := value.(string)
	if n := len([]rune(s)); n < 8 || n > 128 {
		return errors.New("must be between 8 and 128 characters")
	}

	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	if !upper || !lower || !digit || !symbol {
		return errors.New("must contain upper and lower case letters, a digit and a symbol")
	}
	return nil
}

func noWhitespace(value any) error {
	s, _ := value.(string)
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return errors.New("must not contain whitespace")
	}
	return nil
}

func knownRoles(value any) error {
	rs, _ := value.(Roles)
	for _, r := range rs {
		if err := validation.Validate(r, validation.In(RoleAdmin, RoleClient)); err != nil {
			return err
		}
	}
	return nil
}

func notInFuture(value any) error {
	t, _ := value.(*time.Time)
	if t != nil && t.After(time.Now()) {
		return errors.New("must not be in the future")
	}
	return nil
}
