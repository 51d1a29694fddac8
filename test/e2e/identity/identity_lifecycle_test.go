//go:build e2e

package identity_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/identity/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestAccountLifecycle walks an account from signup to deletion.
func TestAccountLifecycle(t *testing.T) {
	s := setupIdentityContainer(t, nil)
	client := authsdk.NewSDKClient(s.baseURL)
	ctx := t.Context()

	admin := bootstrapAdmin(t, client)

	// Unverified accounts cannot sign in
	_, err := client.Signup(ctx, authsdk.SignupRequest{
		Username:  "alice",
		Password:  memberPassword,
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Liddell",
		Birthday:  "1992-05-04",
	})
	require.NoError(t, err)

	_, err = client.Signin(ctx, "alice", memberPassword)
	requireAPIError(t, err, http.StatusForbidden, authsdk.ErrorCodeNotVerified)

	// Verify through the mailed link, then sign in by email
	_, err = client.Verify(ctx, s.mailCode(t, "alice@example.com"))
	require.NoError(t, err)

	alice, err := client.Authenticate(ctx, "ALICE@example.com", memberPassword)
	require.NoError(t, err)
	require.Equal(t, "alice", alice.Username())
	require.Equal(t, []string{"CLIENT"}, alice.Roles())

	me, err := alice.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "1992-05-04", me.Birthday)

	// Members are kept out of admin routes
	_, err = alice.Stats(ctx)
	requireAPIError(t, err, http.StatusForbidden, authsdk.ErrorCodeAccessDenied)

	// Profile changes are visible to the admin straight away
	_, err = alice.UpdateProfile(ctx, authsdk.ProfileUpdateRequest{FirstName: "Alicia", LastName: "Liddell"})
	require.NoError(t, err)

	got, err := admin.GetAccount(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "Alicia", got.FirstName)

	stats, err := admin.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.Accounts)
	require.Equal(t, int64(2), stats.Verified)

	// Deletion revokes outstanding sessions
	require.NoError(t, admin.DeleteAccount(ctx, "alice"))

	_, err = alice.Me(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidToken)
}

// TestEmailChange confirms a new address through the mailed link.
func TestEmailChange(t *testing.T) {
	s := setupIdentityContainer(t, nil)
	client := authsdk.NewSDKClient(s.baseURL)
	ctx := t.Context()

	bob := registerMember(t, s, client, "bobby", "bob@example.com")

	pending, err := bob.RequestEmailChange(ctx, "robert@example.com")
	require.NoError(t, err)
	require.Equal(t, "bob@example.com", pending.Email)
	require.Equal(t, "robert@example.com", pending.PendingEmail)

	confirmed, err := client.ConfirmEmailChange(ctx, s.mailCode(t, "robert@example.com"))
	require.NoError(t, err)
	require.Equal(t, "robert@example.com", confirmed.Email)
	require.Empty(t, confirmed.PendingEmail)

	_, err = client.Authenticate(ctx, "robert@example.com", memberPassword)
	require.NoError(t, err)
}

// TestSessionRefresh exchanges a live token for a new one.
func TestSessionRefresh(t *testing.T) {
	s := setupIdentityContainer(t, nil)
	client := authsdk.NewSDKClient(s.baseURL)
	ctx := t.Context()

	carol := registerMember(t, s, client, "carol", "carol@example.com")
	before := carol.Token()

	require.NoError(t, carol.Refresh(ctx))
	require.NotEqual(t, before, carol.Token())

	_, err := carol.Me(ctx)
	require.NoError(t, err)
}
