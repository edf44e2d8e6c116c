package cart

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	states := []State{
		{},
		{Items: []LineItem{item("p1", "A", 4550, 2), item("p2", "B", 12000, 1)}},
		{
			Items:        []LineItem{item("p1", "A", 1, 1)},
			SavedProfile: &CheckoutProfile{Name: "Asha", ContactNumber: "+91 98765 43210", Address: "12 MG Road", Notes: "gate 2"},
		},
		{SavedProfile: &CheckoutProfile{Name: "Ravi", ContactNumber: "222", Address: "B street"}},
	}

	for i, state := range states {
		raw, err := EncodeState(state)
		if err != nil {
			t.Fatalf("case %d encode: %v", i, err)
		}
		decoded, err := DecodeState(raw)
		if err != nil {
			t.Fatalf("case %d decode: %v", i, err)
		}
		if len(decoded.Items) != len(state.Items) {
			t.Fatalf("case %d items length %d != %d", i, len(decoded.Items), len(state.Items))
		}
		for j := range state.Items {
			if decoded.Items[j] != state.Items[j] {
				t.Fatalf("case %d item %d: expected %+v got %+v", i, j, state.Items[j], decoded.Items[j])
			}
		}
		if (state.SavedProfile == nil) != (decoded.SavedProfile == nil) {
			t.Fatalf("case %d profile presence mismatch", i)
		}
		if state.SavedProfile != nil && *state.SavedProfile != *decoded.SavedProfile {
			t.Fatalf("case %d profile: expected %+v got %+v", i, *state.SavedProfile, *decoded.SavedProfile)
		}
	}
}

func TestEncodeStateWireShape(t *testing.T) {
	raw, err := EncodeState(State{Items: []LineItem{item("p1", "A", 4550, 2)}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `{"items":[{"productId":"p1","name":"Product p1","price":45.5,"unit":"kg","image":"/img/p1.jpg","quantity":2,"tenantId":"A"}],"savedDetails":null}`
	if string(raw) != want {
		t.Fatalf("unexpected blob\n got: %s\nwant: %s", raw, want)
	}
}

func TestDecodeStateAcceptsVersionedEnvelope(t *testing.T) {
	raw := `{"state":{"items":[{"productId":"p1","name":"Mango","price":350,"unit":"dozen","image":"","quantity":1,"tenantId":"A"}],"savedDetails":{"name":"Asha","whatsappNumber":"111","address":"A street"}},"version":0}`
	state, err := DecodeState([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(state.Items) != 1 || state.Items[0].UnitPriceCents != 35000 {
		t.Fatalf("unexpected items %+v", state.Items)
	}
	if state.SavedProfile == nil || state.SavedProfile.ContactNumber != "111" {
		t.Fatalf("unexpected profile %+v", state.SavedProfile)
	}
}

func TestDecodeStateRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "   ", "{", "[1,2]", `{"items":"nope"}`, `{"items":[{"price":true}]}`} {
		if _, err := DecodeState([]byte(raw)); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestKVPersisterLoadErrors(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	persister, err := NewKVPersister(kv, "ecom-cart-storage:sess-1")
	if err != nil {
		t.Fatalf("new persister: %v", err)
	}

	if _, err := persister.Load(ctx); !errors.Is(err, ErrPersistenceRead) {
		t.Fatalf("expected read error for missing key, got %v", err)
	}

	if err := kv.Set(ctx, persister.Key(), "not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := persister.Load(ctx); !errors.Is(err, ErrPersistenceRead) {
		t.Fatalf("expected read error for malformed blob, got %v", err)
	}

	store, err := Open(ctx, persister, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if store.ItemCount() != 0 {
		t.Fatalf("expected empty state from malformed blob")
	}
	if err := store.AddItem(ctx, item("p1", "A", 100, 1)); err != nil {
		t.Fatalf("add after fallback: %v", err)
	}
	raw, _, _ := kv.Get(ctx, persister.Key())
	if !strings.Contains(raw, `"productId":"p1"`) {
		t.Fatalf("expected blob to be rewritten, got %s", raw)
	}
}

func TestSessionKey(t *testing.T) {
	if got := SessionKey("", ""); got != DefaultStorageKey {
		t.Fatalf("unexpected default key %q", got)
	}
	if got := SessionKey("ecom-cart-storage", " sess-1 "); got != "ecom-cart-storage:sess-1" {
		t.Fatalf("unexpected session key %q", got)
	}
}

type fakeRedisStore struct {
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func (f *fakeRedisStore) Lookup(_ context.Context, key string) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeRedisStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.data[key] = value.(string)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeRedisStore) CartKey(name string) string {
	return "sf:cart:" + name
}

func TestRedisKVNamespacesAndRefreshesTTL(t *testing.T) {
	ctx := context.Background()
	fake := &fakeRedisStore{data: map[string]string{}, ttls: map[string]time.Duration{}}
	kv, err := NewRedisKV(fake, time.Hour)
	if err != nil {
		t.Fatalf("new redis kv: %v", err)
	}
	persister, err := NewKVPersister(kv, SessionKey(DefaultStorageKey, "sess-9"))
	if err != nil {
		t.Fatalf("new persister: %v", err)
	}
	store, err := Open(ctx, persister, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.AddItem(ctx, item("p1", "A", 100, 1)); err != nil {
		t.Fatalf("add: %v", err)
	}

	key := "sf:cart:ecom-cart-storage:sess-9"
	if _, ok := fake.data[key]; !ok {
		t.Fatalf("expected blob under %s, got keys %v", key, fake.data)
	}
	if fake.ttls[key] != time.Hour {
		t.Fatalf("expected ttl refresh, got %v", fake.ttls[key])
	}

	fake.err = errors.New("redis down")
	if err := store.AddItem(ctx, item("p1", "A", 100, 1)); err == nil {
		t.Fatalf("expected save failure to surface")
	}
	if _, err := NewRedisKV(nil, time.Hour); err == nil {
		t.Fatalf("expected error for nil store")
	}
}
