package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces account entries in a shared redis.
const DefaultKeyPrefix = "identity:account:"

// RedisCache stores accounts as JSON without expiry, so several instances can
// share one invalidate-on-write cache.
type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, prefix: DefaultKeyPrefix}
}

func (c *RedisCache) key(username string) string { return c.prefix + username }

func (c *RedisCache) Get(ctx context.Context, username string) (domain.Account, bool, error) {
	data, err := c.client.Get(ctx, c.key(username)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Account{}, false, nil
	}
	if err != nil {
		return domain.Account{}, false, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	var a domain.Account
	if err := json.Unmarshal(data, &a); err != nil {
		// A corrupt entry is treated as a miss; the next fill overwrites it.
		return domain.Account{}, false, nil
	}
	return a, true, nil
}

func (c *RedisCache) Set(ctx context.Context, username string, a domain.Account) error {
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key(username), data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, username string) error {
	if err := c.client.Del(ctx, c.key(username)).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}
