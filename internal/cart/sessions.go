package cart

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// Sessions opens carts keyed by client session over a shared KV. Stores opened
// for the same session serialise their mutations.
type Sessions struct {
	kv         KV
	storageKey string
	locks      *keyedLocks
	shared     *sharedLock
	logg       *logger.Logger
}

// SessionOption configures Sessions.
type SessionOption func(*Sessions)

// WithSessionLocks also takes a Redis lock per session so API replicas take
// turns on one cart. ttl bounds a crashed holder; wait bounds queueing.
func WithSessionLocks(store lockStore, ttl, wait time.Duration) SessionOption {
	return func(s *Sessions) {
		if store == nil {
			return
		}
		if ttl <= 0 {
			ttl = 5 * time.Second
		}
		if wait <= 0 {
			wait = 2 * time.Second
		}
		s.shared = &sharedLock{store: store, ttl: ttl, wait: wait, retry: 20 * time.Millisecond}
	}
}

func NewSessions(kv KV, storageKey string, logg *logger.Logger, opts ...SessionOption) (*Sessions, error) {
	if kv == nil {
		return nil, errors.New("cart kv required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	s := &Sessions{kv: kv, storageKey: storageKey, locks: newKeyedLocks(), logg: logg}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Open loads the cart for the session. A blank session uses the bare storage key.
func (s *Sessions) Open(ctx context.Context, sessionID string) (*Store, error) {
	key := SessionKey(s.storageKey, strings.TrimSpace(sessionID))
	persister, err := NewKVPersister(s.kv, key)
	if err != nil {
		return nil, err
	}
	locker := sessionLocker{key: key, local: s.locks, shared: s.shared}
	return Open(ctx, persister, s.logg, WithLocker(locker))
}
