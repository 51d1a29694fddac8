package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/identity/internal/identity/store"
)

type txStore struct {
	tx *sql.Tx
	q  *queries
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx, q: newQueries(tx)}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the outer DB stays open.
func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(ctx context.Context) error { return nil }

// Nested transactions are not supported.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) { return nil, sql.ErrTxDone }

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Accounts() store.Accounts       { return &accountsRepo{q: t.q} }
func (t *txStore) Invitations() store.Invitations { return &invitationsRepo{q: t.q} }

// ApplyMigrations is a no-op; migrations run before any transaction starts.
func (t *txStore) ApplyMigrations() error { return nil }
