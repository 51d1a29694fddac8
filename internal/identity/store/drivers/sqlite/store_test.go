package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/store"
	"github.com/aussiebroadwan/identity/internal/identity/store/drivers/sqlite"
	"github.com/aussiebroadwan/identity/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func testAccount(username, email string) domain.Account {
	birthday := time.Date(1990, time.March, 4, 0, 0, 0, 0, time.UTC)
	return domain.Account{
		ID:               idx.New().String(),
		Username:         username,
		PasswordHash:     "$argon2id$v=19$m=64,t=1,p=1$c2FsdA$aGFzaA",
		Email:            email,
		FirstName:        "Alice",
		LastName:         "Liddell",
		Birthday:         &birthday,
		RegistrationDate: domain.Day(time.Now()),
		Roles:            domain.Roles{domain.RoleClient},
		VerificationCode: idx.New().String(),
	}
}

func TestAccountsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a := testAccount("alice", "alice@x.io")
	a.PendingEmail = "alice@y.io"
	a.PhotoReference = "photos/alice.png"
	require.NoError(t, s.Accounts().Save(ctx, a))

	got, err := s.Accounts().FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)
	require.Equal(t, "alice@x.io", got.Email)
	require.Equal(t, "alice@y.io", got.PendingEmail)
	require.Equal(t, "photos/alice.png", got.PhotoReference)
	require.Equal(t, domain.Roles{domain.RoleClient}, got.Roles)
	require.False(t, got.Enabled)
	require.NotNil(t, got.Birthday)
	require.True(t, a.Birthday.Equal(*got.Birthday))
	require.True(t, a.RegistrationDate.Equal(got.RegistrationDate))
	require.False(t, got.CreatedAt.IsZero())

	byCode, err := s.Accounts().FindByVerificationCode(ctx, a.VerificationCode)
	require.NoError(t, err)
	require.Equal(t, a.ID, byCode.ID)

	byEmail, err := s.Accounts().FindByEmail(ctx, "ALICE@X.IO")
	require.NoError(t, err)
	require.Equal(t, a.ID, byEmail.ID)
}

func TestAccountsFindByUsernameIsExact(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Accounts().Save(ctx, testAccount("alice", "alice@x.io")))

	_, err := s.Accounts().FindByUsername(ctx, "ALICE")
	require.ErrorIs(t, err, store.ErrNotFound)

	ok, err := s.Accounts().ExistsByUsername(ctx, "ALICE")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAccountsUniqueness(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Accounts().Save(ctx, testAccount("alice", "alice@x.io")))

	t.Run("username differs only in case", func(t *testing.T) {
		err := s.Accounts().Save(ctx, testAccount("Alice", "other@x.io"))
		require.ErrorIs(t, err, store.ErrDuplicateUsername)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("email differs only in case", func(t *testing.T) {
		err := s.Accounts().Save(ctx, testAccount("bob", "ALICE@x.io"))
		require.ErrorIs(t, err, store.ErrDuplicateEmail)
	})

	n, err := s.Accounts().Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestUniquenessFoldsUnicodeCase(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Accounts().Save(ctx, testAccount("Émilie", "Ünal@x.com")))

	t.Run("username", func(t *testing.T) {
		err := s.Accounts().Save(ctx, testAccount("émilie", "other@x.com"))
		require.ErrorIs(t, err, store.ErrDuplicateUsername)

		ok, err := s.Accounts().ExistsByUsername(ctx, "ÉMILIE")
		require.NoError(t, err)
		require.True(t, ok)

		// Lookups by username stay exact
		_, err = s.Accounts().FindByUsername(ctx, "émilie")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("email", func(t *testing.T) {
		err := s.Accounts().Save(ctx, testAccount("someone", "ünal@x.com"))
		require.ErrorIs(t, err, store.ErrDuplicateEmail)

		got, err := s.Accounts().FindByEmail(ctx, "ÜNAL@X.COM")
		require.NoError(t, err)
		require.Equal(t, "Émilie", got.Username)
		require.Equal(t, "Ünal@x.com", got.Email)
	})

	t.Run("open invitation email", func(t *testing.T) {
		inv := domain.Invitation{
			ID:        idx.New().String(),
			Email:     "Ösel@x.io",
			InviterID: idx.New().String(),
			DateSent:  domain.Day(time.Now()),
		}
		require.NoError(t, s.Invitations().Save(ctx, inv))

		ok, err := s.Invitations().ExistsOpenByEmail(ctx, "ösel@x.io")
		require.NoError(t, err)
		require.True(t, ok)

		dup := inv
		dup.ID = idx.New().String()
		dup.Email = "ösel@x.io"
		require.ErrorIs(t, s.Invitations().Save(ctx, dup), store.ErrDuplicateInvitation)
	})

	n, err := s.Accounts().Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestAccountsSaveUpdatesInPlace(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a := testAccount("alice", "alice@x.io")
	require.NoError(t, s.Accounts().Save(ctx, a))

	a.Enabled = true
	a.FirstName = "Al"
	a.Birthday = nil
	a.Roles = domain.Roles{domain.RoleClient, domain.RoleAdmin}
	a.UpdatedAt = time.Now().Add(time.Minute)
	require.NoError(t, s.Accounts().Save(ctx, a))

	got, err := s.Accounts().FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.True(t, got.Enabled)
	require.Equal(t, "Al", got.FirstName)
	require.Nil(t, got.Birthday)
	require.Equal(t, domain.Roles{domain.RoleClient, domain.RoleAdmin}, got.Roles)

	enabled, err := s.Accounts().CountEnabled(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, enabled)

	admin, err := s.Accounts().AnyWithRole(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	require.True(t, admin)
}

func TestAccountsDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a := testAccount("alice", "alice@x.io")
	require.NoError(t, s.Accounts().Save(ctx, a))

	require.NoError(t, s.Accounts().DeleteByID(ctx, a.ID))
	require.ErrorIs(t, s.Accounts().DeleteByID(ctx, a.ID), store.ErrNotFound)

	ok, err := s.Accounts().ExistsByEmail(ctx, "alice@x.io")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAccountsPageIsOrderedAndLazy(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for i := range 7 {
		name := fmt.Sprintf("user%02d", 6-i)
		require.NoError(t, s.Accounts().Save(ctx, testAccount(name, name+"@x.io")))
	}

	page, err := s.Accounts().Page(ctx, store.PageRequest{Number: 0, Size: 3})
	require.NoError(t, err)
	require.False(t, page.Last)
	require.Len(t, page.Items, 3)
	require.Equal(t, "user00", page.Items[0].Username)

	page, err = s.Accounts().Page(ctx, store.PageRequest{Number: 2, Size: 3})
	require.NoError(t, err)
	require.True(t, page.Last)
	require.Len(t, page.Items, 1)
	require.Equal(t, "user06", page.Items[0].Username)

	all, err := store.Collect(store.All(ctx, 3, s.Accounts().Page))
	require.NoError(t, err)
	require.Len(t, all, 7)
}

func TestInvitationsLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	inviter := testAccount("alice", "alice@x.io")
	require.NoError(t, s.Accounts().Save(ctx, inviter))

	inv := domain.Invitation{
		ID:        idx.New().String(),
		Email:     "bob@x.io",
		InviterID: inviter.ID,
		DateSent:  domain.Day(time.Now()),
		Statuses:  []domain.InvitationStatus{domain.InvitationPending},
	}
	require.NoError(t, s.Invitations().Save(ctx, inv))

	ok, err := s.Invitations().ExistsOpenByEmail(ctx, "BOB@x.io")
	require.NoError(t, err)
	require.True(t, ok)

	t.Run("second open invitation rejected", func(t *testing.T) {
		dup := inv
		dup.ID = idx.New().String()
		require.ErrorIs(t, s.Invitations().Save(ctx, dup), store.ErrDuplicateInvitation)
	})

	open, err := s.Invitations().FindOpenByEmail(ctx, "bob@x.io")
	require.NoError(t, err)
	open.Close()
	require.NoError(t, s.Invitations().Save(ctx, open))

	_, err = s.Invitations().FindOpenByEmail(ctx, "bob@x.io")
	require.ErrorIs(t, err, store.ErrNotFound)

	t.Run("re-invite allowed once closed", func(t *testing.T) {
		again := inv
		again.ID = idx.New().String()
		require.NoError(t, s.Invitations().Save(ctx, again))
	})

	page, err := s.Invitations().PageByInviter(ctx, inviter.ID, store.PageRequest{Size: 10})
	require.NoError(t, err)
	require.True(t, page.Last)
	require.Len(t, page.Items, 2)
	// Same day: PENDING sorts before CLOSED.
	require.Equal(t, domain.InvitationPending, page.Items[0].Status())
	require.Equal(t, []domain.InvitationStatus{domain.InvitationPending, domain.InvitationClosed}, page.Items[1].Statuses)
}

func TestInvitationsSurviveInviterDeletion(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	inviter := testAccount("alice", "alice@x.io")
	require.NoError(t, s.Accounts().Save(ctx, inviter))
	require.NoError(t, s.Invitations().Save(ctx, domain.Invitation{
		ID:        idx.New().String(),
		Email:     "bob@x.io",
		InviterID: inviter.ID,
		DateSent:  domain.Day(time.Now()),
	}))

	require.NoError(t, s.Accounts().DeleteByID(ctx, inviter.ID))

	ok, err := s.Invitations().ExistsOpenByEmail(ctx, "bob@x.io")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Accounts().Save(ctx, testAccount("alice", "alice@x.io")))
		return boom
	})
	require.ErrorIs(t, err, boom)

	n, err := s.Accounts().Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Tx(ctx)
		require.Error(t, err, "nested transactions are not supported")
		return tx.Accounts().Save(ctx, testAccount("alice", "alice@x.io"))
	})
	require.NoError(t, err)

	n, err = s.Accounts().Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}
