package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

type fakeLockStore struct {
	mu       sync.Mutex
	held     map[string]bool
	attempts int
	err      error
}

func newFakeLockStore() *fakeLockStore {
	return &fakeLockStore{held: map[string]bool{}}
}

func (f *fakeLockStore) AcquireLock(_ context.Context, name string, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts++
	if f.err != nil {
		return false, f.err
	}
	if f.held[name] {
		return false, nil
	}
	f.held[name] = true
	return true, nil
}

func (f *fakeLockStore) ReleaseLock(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.held, name)
	return nil
}

func (f *fakeLockStore) isHeld(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.held[name]
}

func TestSharedLockWaitsForHolder(t *testing.T) {
	t.Parallel()
	store := newFakeLockStore()
	lock := &sharedLock{store: store, ttl: time.Second, wait: time.Second, retry: time.Millisecond}
	ctx := context.Background()

	unlock, err := lock.lock(ctx, "s-1")
	if err != nil {
		t.Fatalf("first lock: %v", err)
	}
	go func() {
		time.Sleep(10 * time.Millisecond)
		unlock()
	}()

	unlockSecond, err := lock.lock(ctx, "s-1")
	if err != nil {
		t.Fatalf("second lock should succeed once released: %v", err)
	}
	unlockSecond()
	if store.isHeld("cart:s-1") {
		t.Fatalf("expected lock released")
	}
}

func TestSharedLockGivesUpAfterWait(t *testing.T) {
	t.Parallel()
	store := newFakeLockStore()
	store.held["cart:s-1"] = true
	lock := &sharedLock{store: store, ttl: time.Second, wait: 5 * time.Millisecond, retry: time.Millisecond}

	_, err := lock.lock(context.Background(), "s-1")
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if store.attempts < 2 {
		t.Fatalf("expected retries before giving up, got %d attempts", store.attempts)
	}
}

func TestSharedLockSurfacesStoreErrors(t *testing.T) {
	t.Parallel()
	store := newFakeLockStore()
	store.err = errors.New("redis down")
	lock := &sharedLock{store: store, ttl: time.Second, wait: time.Second, retry: time.Millisecond}

	_, err := lock.lock(context.Background(), "s-1")
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestKeyedLocksHonourContext(t *testing.T) {
	t.Parallel()
	locks := newKeyedLocks()
	unlock, err := locks.lock(context.Background(), "k")
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	if _, err := locks.lock(ctx, "k"); !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict once the context expires, got %v", err)
	}
	if _, err := locks.lock(context.Background(), "other"); err != nil {
		t.Fatalf("other keys must not block: %v", err)
	}
}

func TestSessionsTakeSharedLockAroundMutations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	locks := newFakeLockStore()
	sessions, err := NewSessions(NewMemoryKV(), "", nil, WithSessionLocks(locks, time.Second, 5*time.Millisecond))
	if err != nil {
		t.Fatalf("new sessions: %v", err)
	}
	store, err := sessions.Open(ctx, "s-1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	name := "cart:" + SessionKey(DefaultStorageKey, "s-1")
	locks.held[name] = true
	if err := store.AddItem(ctx, item("p1", "A", 100, 1)); !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected busy cart while another replica holds the lock, got %v", err)
	}
	delete(locks.held, name)

	if err := store.AddItem(ctx, item("p1", "A", 100, 1)); err != nil {
		t.Fatalf("add once free: %v", err)
	}
	if locks.isHeld(name) {
		t.Fatalf("expected lock released after the mutation")
	}
}
