package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/angelmondragon/storefront-backend/pkg/config"
)

type fakeCmdable struct {
	values  map[string]string
	ttls    map[string]time.Duration
	counts  map[string]int64
	expires int
}

func newFakeCmdable() *fakeCmdable {
	return &fakeCmdable{
		values: map[string]string{},
		ttls:   map[string]time.Duration{},
		counts: map[string]int64{},
	}
}

func (f *fakeCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeCmdable) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	f.values[key] = fmt.Sprint(value)
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeCmdable) Get(_ context.Context, key string) *redis.StringCmd {
	if v, ok := f.values[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeCmdable) SetNX(ctx context.Context, key string, value any, ttl time.Duration) *redis.BoolCmd {
	if _, ok := f.values[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.Set(ctx, key, value, ttl)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeCmdable) Incr(_ context.Context, key string) *redis.IntCmd {
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeCmdable) Expire(_ context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	f.expires++
	f.ttls[key] = ttl
	return redis.NewBoolResult(true, nil)
}

func (f *fakeCmdable) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(f.values, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestIncrWithTTLExpiresOnFirstHitOnly(t *testing.T) {
	fake := newFakeCmdable()
	client := &Client{store: fake}
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := client.IncrWithTTL(ctx, "rl:ip:orders:1.2.3.4", time.Minute)
		if err != nil {
			t.Fatalf("incr: %v", err)
		}
		if got != want {
			t.Fatalf("expected %d got %d", want, got)
		}
	}
	if fake.expires != 1 {
		t.Fatalf("expected a single EXPIRE, got %d", fake.expires)
	}
	if fake.ttls["rl:ip:orders:1.2.3.4"] != time.Minute {
		t.Fatalf("unexpected ttl %v", fake.ttls["rl:ip:orders:1.2.3.4"])
	}
}

func TestLookupMapsMissingKey(t *testing.T) {
	client := &Client{store: newFakeCmdable()}
	ctx := context.Background()

	if _, found, err := client.Lookup(ctx, client.CartKey("absent")); err != nil || found {
		t.Fatalf("expected clean miss, found=%v err=%v", found, err)
	}
	if err := client.Set(ctx, client.CartKey("ecom-cart-storage:sess-1"), `{"items":[]}`, time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, found, err := client.Lookup(ctx, "sf:cart:ecom-cart-storage:sess-1")
	if err != nil || !found || value != `{"items":[]}` {
		t.Fatalf("unexpected lookup value=%q found=%v err=%v", value, found, err)
	}
}

func TestCheckoutLockIsExclusiveUntilReleased(t *testing.T) {
	fake := newFakeCmdable()
	client := &Client{store: fake}
	ctx := context.Background()

	steps := []struct {
		name    string
		release bool
		want    bool
	}{
		{name: "first acquire", want: true},
		{name: "held", want: false},
		{name: "after release", release: true, want: true},
	}
	for _, step := range steps {
		if step.release {
			if err := client.ReleaseLock(ctx, "checkout:tenant-a"); err != nil {
				t.Fatalf("%s: release: %v", step.name, err)
			}
		}
		ok, err := client.AcquireLock(ctx, "checkout:tenant-a", time.Minute)
		if err != nil || ok != step.want {
			t.Fatalf("%s: expected %v got %v (err=%v)", step.name, step.want, ok, err)
		}
	}
	if _, ok := fake.values["sf:lock:checkout:tenant-a"]; !ok {
		t.Fatalf("expected namespaced lock key")
	}
}

func TestZeroClientReturnsErrNotInitialized(t *testing.T) {
	var client Client
	ctx := context.Background()
	if err := client.Ping(ctx); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("ping: %v", err)
	}
	if _, err := client.Incr(ctx, "k"); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("incr: %v", err)
	}
	if _, _, err := client.Lookup(ctx, "k"); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("lookup: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close on zero client: %v", err)
	}
}

func TestKeyspace(t *testing.T) {
	var keys Keyspace
	tests := map[string]string{
		keys.IdempotencyKey("u|t|s|POST|/api/orders", "abc"): "sf:idempotency:u|t|s|POST|/api/orders:abc",
		keys.OrderNumberKey("tenant-1"):                     "sf:counter:order_number:tenant-1",
		keys.CartKey(""):                                    "sf:cart",
		keys.CartKey(" ecom-cart-storage "):                 "sf:cart:ecom-cart-storage",
		keys.LockKey("maintenance"):                         "sf:lock:maintenance",
	}
	for got, want := range tests {
		if got != want {
			t.Fatalf("expected %q got %q", want, got)
		}
	}
}

func TestClientOptions(t *testing.T) {
	base := config.RedisConfig{PoolSize: 10, MinIdleConns: 2, DialTimeout: 5 * time.Second}

	fromURL := base
	fromURL.URL = "redis://:secret@cache:6380/3"
	opts, err := clientOptions(fromURL)
	if err != nil {
		t.Fatalf("url options: %v", err)
	}
	if opts.Addr != "cache:6380" || opts.DB != 3 || opts.Password != "secret" || opts.PoolSize != 10 {
		t.Fatalf("unexpected url options %+v", opts)
	}

	fromAddr := base
	fromAddr.Address = "localhost:6379"
	fromAddr.DB = 1
	opts, err = clientOptions(fromAddr)
	if err != nil {
		t.Fatalf("addr options: %v", err)
	}
	if opts.Addr != "localhost:6379" || opts.DB != 1 || opts.DialTimeout != 5*time.Second {
		t.Fatalf("unexpected addr options %+v", opts)
	}

	if _, err := clientOptions(base); err == nil {
		t.Fatalf("expected error without url or address")
	}
}
