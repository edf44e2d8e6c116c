package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// InFlightGuard rejects a second submission for a tenant while one is running.
type InFlightGuard interface {
	Acquire(ctx context.Context, tenantID string) (release func(), err error)
}

func errInFlight() error {
	return pkgerrors.New(pkgerrors.CodeConflict, "an order for this store is already being placed")
}

// LocalGuard serialises submissions within one process.
type LocalGuard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewLocalGuard() *LocalGuard {
	return &LocalGuard{inFlight: make(map[string]struct{})}
}

func (g *LocalGuard) Acquire(_ context.Context, tenantID string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inFlight[tenantID]; busy {
		return nil, errInFlight()
	}
	g.inFlight[tenantID] = struct{}{}
	return func() {
		g.mu.Lock()
		delete(g.inFlight, tenantID)
		g.mu.Unlock()
	}, nil
}

// Scoped keys the guard by (scope, tenant) so separate cart sessions do not
// block each other.
func (g *LocalGuard) Scoped(scope string) InFlightGuard {
	return scopedGuard{guard: g, scope: scope}
}

type scopedGuard struct {
	guard *LocalGuard
	scope string
}

func (s scopedGuard) Acquire(ctx context.Context, tenantID string) (func(), error) {
	if s.scope == "" {
		return s.guard.Acquire(ctx, tenantID)
	}
	return s.guard.Acquire(ctx, s.scope+":"+tenantID)
}

type lockStore interface {
	AcquireLock(ctx context.Context, name string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, name string) error
}

// RedisGuard holds a short-lived Redis lock per (scope, tenant), so the
// guard also covers API replicas sharing a cart session.
type RedisGuard struct {
	store lockStore
	scope string
	ttl   time.Duration
}

// NewRedisGuard scopes locks to one cart session; the TTL bounds a crashed holder.
func NewRedisGuard(store lockStore, scope string, ttl time.Duration) (*RedisGuard, error) {
	if store == nil {
		return nil, errors.New("lock store required")
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisGuard{store: store, scope: scope, ttl: ttl}, nil
}

func (g *RedisGuard) Acquire(ctx context.Context, tenantID string) (func(), error) {
	name := g.lockName(tenantID)
	ok, err := g.store.AcquireLock(ctx, name, g.ttl)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire checkout lock")
	}
	if !ok {
		return nil, errInFlight()
	}
	return func() {
		// Released even when the request context is already cancelled.
		_ = g.store.ReleaseLock(context.WithoutCancel(ctx), name)
	}, nil
}

func (g *RedisGuard) lockName(tenantID string) string {
	if g.scope == "" {
		return "checkout:" + tenantID
	}
	return "checkout:" + g.scope + ":" + tenantID
}
