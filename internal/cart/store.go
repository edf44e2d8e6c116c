package cart

import (
	"context"
	"errors"
	"strings"
	"sync"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// Store owns one client session's cart. Every mutation re-reads the persisted
// state, applies the change and saves the result before returning; a failed
// save leaves the in-memory state unchanged.
type Store struct {
	mu        sync.Mutex
	state     State
	persister Persister
	locker    Locker
	logg      *logger.Logger
}

// Locker serialises read-modify-write cycles on one cart across Stores.
type Locker interface {
	Lock(ctx context.Context) (unlock func(), err error)
}

// Option configures a Store.
type Option func(*Store)

// WithLocker holds l around every mutation.
func WithLocker(l Locker) Option {
	return func(s *Store) {
		s.locker = l
	}
}

// Open loads the persisted state. Missing or corrupt storage starts an empty cart.
func Open(ctx context.Context, persister Persister, logg *logger.Logger, opts ...Option) (*Store, error) {
	if persister == nil {
		return nil, errors.New("cart persister required")
	}
	if logg == nil {
		logg = logger.Nop()
	}

	state, err := persister.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrPersistenceRead) {
			logg.Warn(logg.WithField(ctx, "error", err.Error()), "cart.load.fallback_empty")
		} else {
			logg.Error(ctx, "cart.load.failed", err)
		}
		state = State{}
	}

	store := &Store{
		state:     sanitize(state),
		persister: persister,
		logg:      logg,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// AddItem merges by (ProductID, TenantID). On merge only the quantity changes;
// the existing name, price, unit and image are kept.
func (s *Store) AddItem(ctx context.Context, item LineItem) error {
	if err := validateItem(item); err != nil {
		return err
	}
	return s.mutate(ctx, func(st *State) {
		for i := range st.Items {
			if st.Items[i].key() == item.key() {
				st.Items[i].Quantity += item.Quantity
				return
			}
		}
		st.Items = append(st.Items, item)
	})
}

// RemoveItem drops the matching line item; absent items are a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID, tenantID string) error {
	key := itemKey{productID: productID, tenantID: tenantID}
	return s.mutate(ctx, func(st *State) {
		st.Items = filterItems(st.Items, func(it LineItem) bool { return it.key() != key })
	})
}

// UpdateQuantity sets the quantity; quantity <= 0 removes the item.
func (s *Store) UpdateQuantity(ctx context.Context, productID, tenantID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, productID, tenantID)
	}
	key := itemKey{productID: productID, tenantID: tenantID}
	return s.mutate(ctx, func(st *State) {
		for i := range st.Items {
			if st.Items[i].key() == key {
				st.Items[i].Quantity = quantity
				return
			}
		}
	})
}

// ClearForTenant removes only the tenant's items.
func (s *Store) ClearForTenant(ctx context.Context, tenantID string) error {
	return s.mutate(ctx, func(st *State) {
		st.Items = filterItems(st.Items, func(it LineItem) bool { return it.TenantID != tenantID })
	})
}

// ClearAll empties the cart across every tenant. The saved profile is kept.
func (s *Store) ClearAll(ctx context.Context) error {
	return s.mutate(ctx, func(st *State) {
		st.Items = nil
	})
}

// SaveCheckoutProfile replaces the saved profile wholesale.
func (s *Store) SaveCheckoutProfile(ctx context.Context, profile CheckoutProfile) error {
	return s.mutate(ctx, func(st *State) {
		p := profile
		st.SavedProfile = &p
	})
}

func (s *Store) ClearSavedProfile(ctx context.Context) error {
	return s.mutate(ctx, func(st *State) {
		st.SavedProfile = nil
	})
}

// Settle reconciles the live cart after a successful checkout of snap:
// each submitted quantity is subtracted from the live line item, so anything
// added after the snapshot was taken survives.
func (s *Store) Settle(ctx context.Context, snap Snapshot) error {
	if snap.IsEmpty() {
		return nil
	}
	submitted := make(map[itemKey]int, len(snap.Items))
	for _, it := range snap.Items {
		submitted[it.key()] += it.Quantity
	}
	return s.mutate(ctx, func(st *State) {
		kept := st.Items[:0]
		for _, it := range st.Items {
			if qty, ok := submitted[it.key()]; ok {
				it.Quantity -= qty
				if it.Quantity <= 0 {
					continue
				}
			}
			kept = append(kept, it)
		}
		st.Items = kept
	})
}

// ItemCount sums quantities across all tenants.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return countItems(s.state.Items)
}

// TenantItemCount sums quantities for one tenant.
func (s *Store) TenantItemCount(tenantID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return countItems(itemsFor(s.state.Items, tenantID))
}

// Total sums unit price times quantity across all tenants, in cents.
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalOf(s.state.Items)
}

// TenantTotal sums unit price times quantity for one tenant, in cents.
func (s *Store) TenantTotal(tenantID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalOf(itemsFor(s.state.Items, tenantID))
}

// ItemsForTenant returns the tenant's items in insertion order.
func (s *Store) ItemsForTenant(tenantID string) []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return itemsFor(s.state.Items, tenantID)
}

// Items returns every line item in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone().Items
}

// SavedProfile returns a copy of the saved profile, if any.
func (s *Store) SavedProfile() (CheckoutProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.SavedProfile == nil {
		return CheckoutProfile{}, false
	}
	return *s.state.SavedProfile, true
}

// State returns a deep copy of the whole cart.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// SnapshotTenant freezes the tenant's items and total.
func (s *Store) SnapshotTenant(tenantID string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := itemsFor(s.state.Items, tenantID)
	return Snapshot{
		TenantID:   tenantID,
		Items:      items,
		TotalCents: totalOf(items),
	}
}

func (s *Store) mutate(ctx context.Context, apply func(*State)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx)
		if err != nil {
			return err
		}
		defer unlock()
	}

	next, err := s.reload(ctx)
	if err != nil {
		return err
	}
	apply(&next)
	if err := s.persister.Save(ctx, next); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	s.state = next
	return nil
}

// reload returns a private copy of the latest persisted state so changes made
// through other Stores on the same cart are not overwritten. An unreadable
// blob keeps the state this Store last saw.
func (s *Store) reload(ctx context.Context) (State, error) {
	state, err := s.persister.Load(ctx)
	switch {
	case err == nil:
		return sanitize(state.Clone()), nil
	case errors.Is(err, ErrPersistenceRead):
		return s.state.Clone(), nil
	default:
		return State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
}

func validateItem(item LineItem) error {
	details := map[string]string{}
	if strings.TrimSpace(item.ProductID) == "" {
		details["productId"] = "required"
	}
	if strings.TrimSpace(item.TenantID) == "" {
		details["tenantId"] = "required"
	}
	if item.Quantity < 1 {
		details["quantity"] = "must be at least 1"
	}
	if item.UnitPriceCents < 0 {
		details["price"] = "must not be negative"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid line item").WithDetails(details)
	}
	return nil
}

// sanitize enforces the line item invariants on state read from storage:
// non-positive quantities are dropped and duplicate keys are merged.
func sanitize(state State) State {
	out := State{SavedProfile: state.SavedProfile}
	index := make(map[itemKey]int, len(state.Items))
	for _, it := range state.Items {
		if it.Quantity < 1 || it.ProductID == "" || it.TenantID == "" {
			continue
		}
		if pos, ok := index[it.key()]; ok {
			out.Items[pos].Quantity += it.Quantity
			continue
		}
		index[it.key()] = len(out.Items)
		out.Items = append(out.Items, it)
	}
	return out
}

func itemsFor(items []LineItem, tenantID string) []LineItem {
	var out []LineItem
	for _, it := range items {
		if it.TenantID == tenantID {
			out = append(out, it)
		}
	}
	return out
}

func filterItems(items []LineItem, keep func(LineItem) bool) []LineItem {
	out := items[:0]
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func countItems(items []LineItem) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}

func totalOf(items []LineItem) int64 {
	var total int64
	for _, it := range items {
		total += it.SubtotalCents()
	}
	return total
}
