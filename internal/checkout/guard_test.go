package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

func TestLocalGuardPerTenant(t *testing.T) {
	guard := NewLocalGuard()
	ctx := context.Background()

	releaseA, err := guard.Acquire(ctx, "A")
	require.NoError(t, err)

	_, err = guard.Acquire(ctx, "A")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	releaseB, err := guard.Acquire(ctx, "B")
	require.NoError(t, err)
	releaseB()

	releaseA()
	again, err := guard.Acquire(ctx, "A")
	require.NoError(t, err)
	again()
}

func TestLocalGuardScopedBySession(t *testing.T) {
	guard := NewLocalGuard()
	ctx := context.Background()

	release, err := guard.Scoped("s-1").Acquire(ctx, "A")
	require.NoError(t, err)

	_, err = guard.Scoped("s-1").Acquire(ctx, "A")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	other, err := guard.Scoped("s-2").Acquire(ctx, "A")
	require.NoError(t, err, "another session must not be blocked")
	other()
	release()
}

type fakeLocks struct {
	mu       sync.Mutex
	held     map[string]time.Duration
	released []string
	err      error
}

func (f *fakeLocks) AcquireLock(_ context.Context, name string, ttl time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.held[name]; ok {
		return false, nil
	}
	f.held[name] = ttl
	return true, nil
}

func (f *fakeLocks) ReleaseLock(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.held, name)
	f.released = append(f.released, name)
	return nil
}

func TestRedisGuardLifecycle(t *testing.T) {
	locks := &fakeLocks{held: map[string]time.Duration{}}
	guard, err := NewRedisGuard(locks, "session-1", 0)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	release, err := guard.Acquire(ctx, "T")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, locks.held["checkout:session-1:T"])

	_, err = guard.Acquire(ctx, "T")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	cancel()
	release()
	assert.Equal(t, []string{"checkout:session-1:T"}, locks.released)
	assert.Empty(t, locks.held)
}

func TestRedisGuardStoreError(t *testing.T) {
	guard, err := NewRedisGuard(&fakeLocks{err: errors.New("redis down")}, "", time.Second)
	require.NoError(t, err)
	_, err = guard.Acquire(context.Background(), "T")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
	assert.Equal(t, "checkout:T", guard.lockName("T"))

	_, err = NewRedisGuard(nil, "", time.Second)
	require.Error(t, err)
}
