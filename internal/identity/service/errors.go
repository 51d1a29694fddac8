package service

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/identity/internal/identity/store"
)

// Error kinds. Every error returned by this package matches exactly one of
// these with errors.Is, which is what the transport layer switches on.
var (
	ErrValidationConflict = errors.New("validation conflict")
	ErrNotFound           = errors.New("not found")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrNotVerified        = errors.New("account not verified")
	ErrInvalidInput       = errors.New("invalid input")

	// ErrStoreUnavailable is store.ErrUnavailable; store faults pass through
	// untouched and are retryable by the caller.
	ErrStoreUnavailable = store.ErrUnavailable
)

var (
	ErrUsernameTaken     = fmt.Errorf("%w: username already taken", ErrValidationConflict)
	ErrEmailTaken        = fmt.Errorf("%w: email already taken", ErrValidationConflict)
	ErrAlreadyInvited    = fmt.Errorf("%w: email already has an open invitation", ErrValidationConflict)
	ErrBootstrapComplete = fmt.Errorf("%w: an administrator already exists", ErrValidationConflict)

	ErrNoSuchCode     = fmt.Errorf("%w: no account holds this code", ErrNotFound)
	ErrNoSuchUser     = fmt.Errorf("%w: no such user", ErrNotFound)
	ErrNoPendingEmail = fmt.Errorf("%w: no email change pending", ErrNotFound)
	ErrNoPhoto        = fmt.Errorf("%w: no photo uploaded", ErrNotFound)

	ErrInvalidToken    = fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	ErrAccountVanished = fmt.Errorf("%w: account no longer exists", ErrUnauthenticated)
	ErrBadCredentials  = fmt.Errorf("%w: bad credentials", ErrUnauthenticated)

	ErrBootstrapUnauthorized = fmt.Errorf("%w: bootstrap not permitted", ErrForbidden)

	ErrPhotosDisabled = errors.New("photo storage is not configured")
)

func invalidInput(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

// conflictFromStore turns a uniqueness violation caught at write time into
// the same error the existence pre-checks produce.
func conflictFromStore(err error) error {
	switch {
	case errors.Is(err, store.ErrDuplicateUsername):
		return ErrUsernameTaken
	case errors.Is(err, store.ErrDuplicateEmail):
		return ErrEmailTaken
	case errors.Is(err, store.ErrDuplicateInvitation):
		return ErrAlreadyInvited
	default:
		return err
	}
}
