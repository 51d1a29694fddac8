package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/store"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db *sql.DB
	q  *queries
}

// NewStore opens dsn with the modernc driver. In-memory databases are pinned
// to a single connection so every query sees the same schema.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return NewStoreFromDB(db), nil
}

// NewStoreFromDB wraps an already opened handle.
func NewStoreFromDB(db *sql.DB) *Store {
	return &Store{db: db, q: newQueries(db)}
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return mapErr(s.db.PingContext(ctx))
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, mapErr(err)
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return mapErr(tx.Commit())
}

func (s *Store) Accounts() store.Accounts       { return &accountsRepo{q: s.q} }
func (s *Store) Invitations() store.Invitations { return &invitationsRepo{q: s.q} }

// mapErr translates driver errors into the store sentinels. Anything that is
// neither a missing row nor a uniqueness violation is reported as
// ErrUnavailable with the cause still attached.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}

	var serr *sqlite.Error
	if errors.As(err, &serr) && isUniqueViolation(serr) {
		msg := serr.Error()
		switch {
		case strings.Contains(msg, "accounts_username_ci_uq"), strings.Contains(msg, "accounts.username"):
			return store.ErrDuplicateUsername
		case strings.Contains(msg, "accounts_email_ci_uq"), strings.Contains(msg, "accounts.email"):
			return store.ErrDuplicateEmail
		case strings.Contains(msg, "invitations_open_email_uq"), strings.Contains(msg, "invitations.email_key"):
			return store.ErrDuplicateInvitation
		default:
			return fmt.Errorf("%w: %s", store.ErrAlreadyExists, msg)
		}
	}

	return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
}

func isUniqueViolation(err *sqlite.Error) bool {
	code := err.Code()
	if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	// Without extended result codes only the primary code is set.
	return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(err.Error(), "UNIQUE")
}

// Timestamps are stored as RFC 3339 text in UTC so that lexical and
// chronological order agree.
const (
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
	dayLayout  = "2006-01-02"
)

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

func formatDay(t time.Time) string { return t.UTC().Format(dayLayout) }

func parseDay(s string) (time.Time, error) {
	return time.ParseInLocation(dayLayout, s, time.UTC)
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// joinWords and splitWords store small string sets space delimited.
func joinWords[T ~string](vs []T) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, " ")
}

func splitWords[T ~string](s string) []T {
	fields := strings.Fields(s)
	out := make([]T, len(fields))
	for i, f := range fields {
		out[i] = T(f)
	}
	return out
}
