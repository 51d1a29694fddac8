package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/cache"
	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := cache.NewMemoryCache()

	_, ok, err := c.Get(ctx, "alice")
	require.NoError(t, err)
	require.False(t, ok)

	birthday := time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC)
	a := domain.Account{ID: "1", Username: "alice", Roles: domain.Roles{domain.RoleClient}, Birthday: &birthday}
	require.NoError(t, c.Set(ctx, "alice", a))

	got, ok, err := c.Get(ctx, "alice")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, a, got)

	t.Run("entries are copies", func(t *testing.T) {
		got.Roles[0] = domain.RoleAdmin
		*got.Birthday = time.Time{}

		again, _, _ := c.Get(ctx, "alice")
		require.Equal(t, domain.RoleClient, again.Roles[0])
		require.Equal(t, birthday, *again.Birthday)
	})

	require.NoError(t, c.Delete(ctx, "alice"))
	_, ok, _ = c.Get(ctx, "alice")
	require.False(t, ok)
	require.Zero(t, c.Len())
}
