package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrUnavailable wraps every driver fault that is not one of the above.
	// Callers may retry.
	ErrUnavailable = errors.New("store: unavailable")
)

// Refinements of ErrAlreadyExists naming the violated uniqueness rule.
var (
	ErrDuplicateUsername   = fmt.Errorf("%w: username", ErrAlreadyExists)
	ErrDuplicateEmail      = fmt.Errorf("%w: email", ErrAlreadyExists)
	ErrDuplicateInvitation = fmt.Errorf("%w: open invitation", ErrAlreadyExists)
)

// Store is the root data access interface and the only writer of durable
// state. Sub-repositories are exposed as methods so the same code runs against
// the root store or inside a transaction.
type Store interface {
	Accounts() Accounts
	Invitations() Invitations

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transaction scoped Store. Nested transactions are not supported.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// FindByUsername is an exact match.
	FindByUsername(ctx context.Context, username string) (domain.Account, error)

	// FindByEmail matches case-insensitively.
	FindByEmail(ctx context.Context, email string) (domain.Account, error)

	// ExistsByUsername matches case-insensitively.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail matches case-insensitively.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	FindByVerificationCode(ctx context.Context, code string) (domain.Account, error)
	ExistsByVerificationCode(ctx context.Context, code string) (bool, error)

	// Save inserts the account, or replaces every mutable column when an
	// account with the same id exists. Uniqueness violations are reported as
	// ErrDuplicateUsername or ErrDuplicateEmail.
	Save(ctx context.Context, a domain.Account) error

	// DeleteByID returns ErrNotFound when nothing was deleted.
	DeleteByID(ctx context.Context, id string) error

	Count(ctx context.Context) (int64, error)
	CountEnabled(ctx context.Context) (int64, error)

	// Page lists accounts ordered by username.
	Page(ctx context.Context, req PageRequest) (Page[domain.Account], error)

	// AnyWithRole reports whether at least one account holds r.
	AnyWithRole(ctx context.Context, r domain.Role) (bool, error)
}

type Invitations interface {
	// FindOpenByEmail returns the PENDING invitation for email (ci).
	FindOpenByEmail(ctx context.Context, email string) (domain.Invitation, error)

	// ExistsOpenByEmail matches case-insensitively.
	ExistsOpenByEmail(ctx context.Context, email string) (bool, error)

	// Save inserts or updates by id. A second open invitation for the same
	// email is reported as ErrDuplicateInvitation.
	Save(ctx context.Context, inv domain.Invitation) error

	// PageByInviter lists an inviter's invitations ordered by date sent
	// descending, then current status descending, then id descending.
	PageByInviter(ctx context.Context, inviterID string, req PageRequest) (Page[domain.Invitation], error)
}
