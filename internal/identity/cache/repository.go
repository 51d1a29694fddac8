package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/store"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

// ErrUntrackedDelete is returned when a transaction deletes an account it
// has not loaded, since its cache key would be unknown.
var ErrUntrackedDelete = errors.New("cache: delete of an account not loaded in this transaction")

// ErrEvictFailed is returned by Write when the transaction committed but at
// least one touched username could not be evicted.
var ErrEvictFailed = errors.New("cache: eviction after commit failed")

// Repository is the single path for username lookups and for every account
// mutation. Reads go through the cache; writes run in a store transaction
// and evict every username the transaction touched before Write returns.
type Repository struct {
	store   store.Store
	cache   Cache
	metrics *Metrics

	// generation is bumped under mu on every eviction. A read-through fill
	// only lands if no eviction happened while it was loading.
	mu         sync.Mutex
	generation uint64
}

func NewRepository(s store.Store, c Cache, m *Metrics) *Repository {
	if m == nil {
		m = NewMetrics(nil)
	}
	return &Repository{store: s, cache: c, metrics: m}
}

// Get returns the account for username, loading it from the store on a miss.
// Cache failures fall back to the store.
func (r *Repository) Get(ctx context.Context, username string) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	// 1. Try the cache
	a, ok, err := r.cache.Get(ctx, username)
	switch {
	case err != nil:
		r.metrics.Errors.Inc()
		log.Warn("account cache read failed", slog.String("username", username), slog.Any("error", err))
	case ok:
		r.metrics.Hits.Inc()
		return a, nil
	}
	r.metrics.Misses.Inc()

	// 2. Load from the store, remembering the generation we started at
	r.mu.Lock()
	gen := r.generation
	r.mu.Unlock()

	a, err = r.store.Accounts().FindByUsername(ctx, username)
	if err != nil {
		return domain.Account{}, err
	}

	// 3. Populate unless an eviction raced with the load
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generation != gen {
		return a, nil
	}
	if err := r.cache.Set(ctx, username, a); err != nil {
		r.metrics.Errors.Inc()
		log.Warn("account cache fill failed", slog.String("username", username), slog.Any("error", err))
	}
	return a, nil
}

// Write runs fn in a transaction. Every account saved, deleted, or loaded
// through tx.Accounts() is evicted once fn returns nil, whether or not the
// commit succeeds. When the commit succeeded but eviction did not, the error
// wraps ErrEvictFailed: the mutation is durable and callers decide how loud
// to be about it.
func (r *Repository) Write(ctx context.Context, fn func(tx store.Tx) error) error {
	t := &tracker{ids: make(map[string]string), touched: make(map[string]struct{})}

	err := r.store.WithTx(ctx, func(tx store.Tx) error {
		if err := fn(trackingTx{baseTx: tx, t: t}); err != nil {
			t.failed = true
			return err
		}
		return nil
	})
	if t.failed {
		return err
	}

	evictErr := r.Evict(ctx, t.usernames()...)
	if err != nil {
		return err
	}
	if evictErr != nil {
		return fmt.Errorf("%w: %w", ErrEvictFailed, evictErr)
	}
	return nil
}

// Evict removes usernames from the cache. Callers outside Write should not
// need it.
func (r *Repository) Evict(ctx context.Context, usernames ...string) error {
	if len(usernames) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++

	var errs []error
	for _, u := range usernames {
		if err := r.cache.Delete(ctx, u); err != nil {
			r.metrics.Errors.Inc()
			errs = append(errs, err)
			continue
		}
		r.metrics.Evictions.Inc()
	}
	return errors.Join(errs...)
}

// Ping checks the cache backend.
func (r *Repository) Ping(ctx context.Context) error { return r.cache.Ping(ctx) }

type tracker struct {
	ids     map[string]string // account id -> username
	touched map[string]struct{}
	failed  bool
}

func (t *tracker) seen(a domain.Account) { t.ids[a.ID] = a.Username }

func (t *tracker) touch(username string) { t.touched[username] = struct{}{} }

func (t *tracker) usernames() []string {
	out := make([]string, 0, len(t.touched))
	for u := range t.touched {
		out = append(out, u)
	}
	return out
}

// baseTx names the embedded transaction so its Tx method stays promoted.
type baseTx = store.Tx

type trackingTx struct {
	baseTx
	t *tracker
}

var _ store.Tx = trackingTx{}

func (tx trackingTx) Accounts() store.Accounts {
	return trackingAccounts{Accounts: tx.baseTx.Accounts(), t: tx.t}
}

// trackingAccounts records which usernames a transaction loads or writes.
// Loaded accounts are evicted too: a load inside Write is a read-modify-write.
type trackingAccounts struct {
	store.Accounts
	t *tracker
}

func (a trackingAccounts) track(acc domain.Account, err error) (domain.Account, error) {
	if err == nil {
		a.t.seen(acc)
		a.t.touch(acc.Username)
	}
	return acc, err
}

func (a trackingAccounts) FindByUsername(ctx context.Context, username string) (domain.Account, error) {
	return a.track(a.Accounts.FindByUsername(ctx, username))
}

func (a trackingAccounts) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	return a.track(a.Accounts.FindByEmail(ctx, email))
}

func (a trackingAccounts) FindByVerificationCode(ctx context.Context, code string) (domain.Account, error) {
	return a.track(a.Accounts.FindByVerificationCode(ctx, code))
}

func (a trackingAccounts) Save(ctx context.Context, acc domain.Account) error {
	if old, ok := a.t.ids[acc.ID]; ok && old != acc.Username {
		a.t.touch(old)
	}
	a.t.seen(acc)
	a.t.touch(acc.Username)
	return a.Accounts.Save(ctx, acc)
}

func (a trackingAccounts) DeleteByID(ctx context.Context, id string) error {
	username, ok := a.t.ids[id]
	if !ok {
		return ErrUntrackedDelete
	}
	a.t.touch(username)
	return a.Accounts.DeleteByID(ctx, id)
}
