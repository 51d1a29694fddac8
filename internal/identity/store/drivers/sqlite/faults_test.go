package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/store"
	"github.com/aussiebroadwan/identity/internal/identity/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*sqlite.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return sqlite.NewStoreFromDB(db), mock
}

func TestDriverFaultsReportUnavailable(t *testing.T) {
	ctx := context.Background()
	lost := errors.New("disk I/O error")

	t.Run("query", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery("FROM accounts WHERE username").WillReturnError(lost)

		_, err := s.Accounts().FindByUsername(ctx, "alice")
		require.ErrorIs(t, err, store.ErrUnavailable)
		require.ErrorIs(t, err, lost)
		require.NotErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("exists", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery("SELECT EXISTS").WillReturnError(lost)

		_, err := s.Accounts().ExistsByEmail(ctx, "alice@x.io")
		require.ErrorIs(t, err, store.ErrUnavailable)
	})

	t.Run("save", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec("INSERT INTO accounts").WillReturnError(lost)

		err := s.Accounts().Save(ctx, domain.Account{ID: "a", Username: "alice"})
		require.ErrorIs(t, err, store.ErrUnavailable)
	})

	t.Run("begin", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectBegin().WillReturnError(lost)

		err := s.WithTx(ctx, func(store.Tx) error { return nil })
		require.ErrorIs(t, err, store.ErrUnavailable)
	})

	t.Run("page", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery("FROM invitations").WillReturnError(lost)

		_, err := s.Invitations().PageByInviter(ctx, "a", store.PageRequest{Size: 10})
		require.ErrorIs(t, err, store.ErrUnavailable)
	})
}

func TestMissingRowIsNotFound(t *testing.T) {
	ctx := context.Background()
	s, mock := newMockStore(t)

	mock.ExpectQuery("FROM accounts WHERE verification_code").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.Accounts().FindByVerificationCode(ctx, "nope")
	require.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
