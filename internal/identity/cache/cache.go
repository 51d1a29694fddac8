// Package cache holds the Lookup Cache: a username keyed read-through cache
// of accounts and the Repository that keeps it consistent with the store.
package cache

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
)

var ErrUnavailable = errors.New("cache: unavailable")

// Cache stores accounts by username. Entries never expire; they leave only
// through Delete.
type Cache interface {
	// Get reports ok=false on a miss.
	Get(ctx context.Context, username string) (a domain.Account, ok bool, err error)
	Set(ctx context.Context, username string, a domain.Account) error
	Delete(ctx context.Context, username string) error
	Ping(ctx context.Context) error
}
