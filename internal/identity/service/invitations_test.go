package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/stretchr/testify/require"
)

func TestInvitationClosedBySignup(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	alice := h.signupVerified(t, "alice", "a@x.com")

	inv, err := h.invitations.Invite(ctx, alice, "x@y.com")
	require.NoError(t, err)
	require.Equal(t, []domain.InvitationStatus{domain.InvitationPending}, inv.Statuses)
	require.Equal(t, alice.ID, inv.InviterID)

	msg := h.notifier.last(t)
	require.Equal(t, "x@y.com", msg.To)
	require.Contains(t, msg.Body, "alice")

	_, err = h.accounts.Signup(ctx, signupData("xavier", "X@y.com"))
	require.NoError(t, err)

	list, err := h.invitations.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, domain.InvitationClosed, list[0].Status())
	require.Equal(t, []domain.InvitationStatus{domain.InvitationPending, domain.InvitationClosed}, list[0].Statuses)
}

func TestInviteRejections(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	alice := h.signupVerified(t, "alice", "a@x.com")
	bobby := h.signupVerified(t, "bobby", "b@x.com")

	_, err := h.invitations.Invite(ctx, alice, "B@x.com")
	require.ErrorIs(t, err, ErrEmailTaken)

	_, err = h.invitations.Invite(ctx, alice, "garbage")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = h.invitations.Invite(ctx, alice, "new@x.com")
	require.NoError(t, err)

	t.Run("open invitation blocks a second one from anyone", func(t *testing.T) {
		_, err := h.invitations.Invite(ctx, bobby, "NEW@x.com")
		require.ErrorIs(t, err, ErrAlreadyInvited)
		require.ErrorIs(t, err, ErrValidationConflict)
	})

	t.Run("unverified accounts also own their email", func(t *testing.T) {
		_, err := h.accounts.Signup(ctx, signupData("carol", "c@x.com"))
		require.NoError(t, err)
		_, err = h.invitations.Invite(ctx, alice, "c@x.com")
		require.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestListInvitationsDrainsEveryPage(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	alice := h.signupVerified(t, "alice", "a@x.com")
	bobby := h.signupVerified(t, "bobby", "b@x.com")

	const sent = 5
	for i := range sent {
		_, err := h.invitations.Invite(ctx, alice, fmt.Sprintf("friend%d@x.com", i))
		require.NoError(t, err)
	}
	_, err := h.invitations.Invite(ctx, bobby, "other@x.com")
	require.NoError(t, err)

	// Close one so the status tie-break is exercised.
	_, err = h.accounts.Signup(ctx, signupData("friend2", "friend2@x.com"))
	require.NoError(t, err)

	list, err := h.invitations.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, sent, "page size is 2; every page must be drained")

	for _, inv := range list {
		require.Equal(t, alice.ID, inv.InviterID)
	}
	require.Equal(t, domain.InvitationClosed, list[len(list)-1].Status())

	empty, err := h.invitations.List(ctx, domain.Account{ID: "nobody"})
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)
}
