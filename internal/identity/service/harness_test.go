package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/cache"
	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/store/drivers/sqlite"
	"github.com/aussiebroadwan/identity/pkg/cryptox"
	"github.com/aussiebroadwan/identity/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "identity-test"

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []Message
}

func (n *recordingNotifier) Send(_ context.Context, msg Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

func (n *recordingNotifier) last(t *testing.T) Message {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	require.NotEmpty(t, n.msgs)
	return n.msgs[len(n.msgs)-1]
}

type fakePhotos struct{}

func (fakePhotos) PresignUpload(_ context.Context, key, _ string) (string, time.Time, error) {
	return "https://photos.test/put/" + key, time.Now().Add(time.Minute), nil
}

func (fakePhotos) PresignDownload(_ context.Context, key string) (string, time.Time, error) {
	return "https://photos.test/get/" + key, time.Now().Add(time.Minute), nil
}

type harness struct {
	store       *sqlite.Store
	cache       *cache.MemoryCache
	notifier    *recordingNotifier
	tokens      *TokenService
	gate        *Gate
	accounts    *AccountService
	invitations *InvitationService
	bootstrap   *BootstrapService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: testIssuer})
	require.NoError(t, err)

	c := cache.NewMemoryCache()
	repo := cache.NewRepository(s, c, nil)
	n := &recordingNotifier{}
	tokens := &TokenService{KeyManager: km, Issuer: testIssuer, TTL: time.Minute}

	accounts := &AccountService{
		Store:    s,
		Accounts: repo,
		Tokens:   tokens,
		Hasher: &cryptox.PasswordHasher{
			Pepper: "pepper",
			Params: cryptox.Argon2Params{Memory: 64, Iterations: 1, Parallelism: 1, KeyLength: 32, SaltLength: 16},
		},
		Notifier:       n,
		Photos:         fakePhotos{},
		BaseURL:        "http://identity.test",
		ExportPageSize: 2,
	}

	return &harness{
		store:       s,
		cache:       c,
		notifier:    n,
		tokens:      tokens,
		gate:        &Gate{Tokens: tokens, Accounts: repo},
		accounts:    accounts,
		invitations: &InvitationService{Store: s, Notifier: n, BaseURL: "http://identity.test", PageSize: 2},
		bootstrap:   &BootstrapService{Accounts: accounts, Token: "let-me-in"},
	}
}

func signupData(username, email string) domain.SignupData {
	return domain.SignupData{
		Username:  username,
		Password:  "Secret123!",
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
	}
}

// signupVerified registers and verifies an account.
func (h *harness) signupVerified(t *testing.T, username, email string) domain.Account {
	t.Helper()
	ctx := context.Background()

	a, err := h.accounts.Signup(ctx, signupData(username, email))
	require.NoError(t, err)
	a, err = h.accounts.Verify(ctx, a.VerificationCode)
	require.NoError(t, err)
	return a
}

// promote grants ADMIN directly in the store, then drops the cached copy.
func (h *harness) promote(t *testing.T, username string) domain.Account {
	t.Helper()
	ctx := context.Background()

	a, err := h.store.Accounts().FindByUsername(ctx, username)
	require.NoError(t, err)
	a.Roles = domain.Roles{domain.RoleAdmin, domain.RoleClient}
	require.NoError(t, h.store.Accounts().Save(ctx, a))
	require.NoError(t, h.gate.Accounts.Evict(ctx, username))
	return a
}
