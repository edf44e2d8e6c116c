package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/storefront-backend/pkg/money"
)

// DefaultStorageKey is the key the cart blob lives under.
const DefaultStorageKey = "ecom-cart-storage"

// ErrPersistenceRead marks a missing or unreadable cart blob.
var ErrPersistenceRead = errors.New("cart persistence read")

// Persister loads and saves the whole cart state.
type Persister interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, state State) error
}

// KV is the durable key-value capability the cart blob is stored in.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// KVPersister stores the cart as one JSON blob under a fixed key.
type KVPersister struct {
	kv  KV
	key string
}

// NewKVPersister returns a persister writing under key (DefaultStorageKey when empty).
func NewKVPersister(kv KV, key string) (*KVPersister, error) {
	if kv == nil {
		return nil, errors.New("cart kv required")
	}
	if strings.TrimSpace(key) == "" {
		key = DefaultStorageKey
	}
	return &KVPersister{kv: kv, key: key}, nil
}

// SessionKey namespaces the storage key for one client session.
func SessionKey(storageKey, sessionID string) string {
	if strings.TrimSpace(storageKey) == "" {
		storageKey = DefaultStorageKey
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return storageKey
	}
	return storageKey + ":" + sessionID
}

// Key returns the storage key in use.
func (p *KVPersister) Key() string {
	return p.key
}

func (p *KVPersister) Load(ctx context.Context) (State, error) {
	raw, found, err := p.kv.Get(ctx, p.key)
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrPersistenceRead, err)
	}
	if !found {
		return State{}, fmt.Errorf("%w: key %q not found", ErrPersistenceRead, p.key)
	}
	state, err := DecodeState([]byte(raw))
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrPersistenceRead, err)
	}
	return state, nil
}

func (p *KVPersister) Save(ctx context.Context, state State) error {
	raw, err := EncodeState(state)
	if err != nil {
		return err
	}
	if err := p.kv.Set(ctx, p.key, string(raw)); err != nil {
		return fmt.Errorf("save cart %q: %w", p.key, err)
	}
	return nil
}

type blob struct {
	Items        []blobItem   `json:"items"`
	SavedDetails *blobProfile `json:"savedDetails"`
}

// persistEnvelope is the versioned wrapper written by browser-side cart stores.
type persistEnvelope struct {
	State   *blob `json:"state"`
	Version int   `json:"version"`
}

type blobItem struct {
	ProductID string       `json:"productId"`
	Name      string       `json:"name"`
	Price     money.Amount `json:"price"`
	Unit      string       `json:"unit"`
	Image     string       `json:"image"`
	Quantity  int          `json:"quantity"`
	TenantID  string       `json:"tenantId"`
}

type blobProfile struct {
	Name           string `json:"name"`
	WhatsAppNumber string `json:"whatsappNumber"`
	Address        string `json:"address"`
	Notes          string `json:"notes,omitempty"`
}

// EncodeState serialises state as {"items": [...], "savedDetails": {...}|null}.
func EncodeState(state State) ([]byte, error) {
	out := blob{Items: make([]blobItem, 0, len(state.Items))}
	for _, it := range state.Items {
		out.Items = append(out.Items, blobItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     money.Amount(it.UnitPriceCents),
			Unit:      it.Unit,
			Image:     it.ImageRef,
			Quantity:  it.Quantity,
			TenantID:  it.TenantID,
		})
	}
	if p := state.SavedProfile; p != nil {
		out.SavedDetails = &blobProfile{
			Name:           p.Name,
			WhatsAppNumber: p.ContactNumber,
			Address:        p.Address,
			Notes:          p.Notes,
		}
	}
	return json.Marshal(out)
}

// DecodeState parses a cart blob. The {"state": ..., "version": n} envelope is accepted too.
func DecodeState(raw []byte) (State, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return State{}, errors.New("empty cart blob")
	}

	var env persistEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return State{}, fmt.Errorf("decode cart blob: %w", err)
	}
	var in blob
	if env.State != nil {
		in = *env.State
	} else if err := json.Unmarshal(raw, &in); err != nil {
		return State{}, fmt.Errorf("decode cart blob: %w", err)
	}

	state := State{}
	for _, it := range in.Items {
		state.Items = append(state.Items, LineItem{
			ProductID:      it.ProductID,
			TenantID:       it.TenantID,
			Name:           it.Name,
			UnitPriceCents: it.Price.Cents(),
			Unit:           it.Unit,
			ImageRef:       it.Image,
			Quantity:       it.Quantity,
		})
	}
	if p := in.SavedDetails; p != nil {
		state.SavedProfile = &CheckoutProfile{
			Name:          p.Name,
			ContactNumber: p.WhatsAppNumber,
			Address:       p.Address,
			Notes:         p.Notes,
		}
	}
	return state, nil
}
