package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// keyedLocks hands out one in-process mutex per storage key. Entries are
// dropped once nobody holds or waits on them.
type keyedLocks struct {
	mu   sync.Mutex
	held map[string]*keyedEntry
}

type keyedEntry struct {
	sem  chan struct{}
	refs int
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{held: make(map[string]*keyedEntry)}
}

func (k *keyedLocks) lock(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	entry, ok := k.held[key]
	if !ok {
		entry = &keyedEntry{sem: make(chan struct{}, 1)}
		k.held[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	select {
	case entry.sem <- struct{}{}:
	case <-ctx.Done():
		k.forget(key, entry)
		return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, ctx.Err(), "cart is busy, retry")
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.sem
			k.forget(key, entry)
		})
	}, nil
}

func (k *keyedLocks) forget(key string, entry *keyedEntry) {
	k.mu.Lock()
	defer k.mu.Unlock()
	entry.refs--
	if entry.refs == 0 && k.held[key] == entry {
		delete(k.held, key)
	}
}

type lockStore interface {
	AcquireLock(ctx context.Context, name string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, name string) error
}

// sharedLock spins on a short Redis lock so replicas sharing a cart session
// take turns. wait bounds how long a caller queues before giving up.
type sharedLock struct {
	store lockStore
	ttl   time.Duration
	wait  time.Duration
	retry time.Duration
}

func (l *sharedLock) lock(ctx context.Context, key string) (func(), error) {
	name := "cart:" + key
	deadline := time.Now().Add(l.wait)
	for {
		ok, err := l.store.AcquireLock(ctx, name, l.ttl)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire cart lock")
		}
		if ok {
			return func() {
				_ = l.store.ReleaseLock(context.WithoutCancel(ctx), name)
			}, nil
		}
		if !time.Now().Before(deadline) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "cart is busy, retry")
		}
		timer := time.NewTimer(l.retry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, ctx.Err(), "cart is busy, retry")
		case <-timer.C:
		}
	}
}

// sessionLocker takes the process-local lock first, then the shared one.
type sessionLocker struct {
	key    string
	local  *keyedLocks
	shared *sharedLock
}

func (l sessionLocker) Lock(ctx context.Context) (func(), error) {
	if l.local == nil {
		return nil, errors.New("cart locks not initialised")
	}
	unlockLocal, err := l.local.lock(ctx, l.key)
	if err != nil {
		return nil, err
	}
	if l.shared == nil {
		return unlockLocal, nil
	}
	unlockShared, err := l.shared.lock(ctx, l.key)
	if err != nil {
		unlockLocal()
		return nil, err
	}
	return func() {
		unlockShared()
		unlockLocal()
	}, nil
}
