package cart

import "strings"

// LineItem is one product quantity within one tenant's cart.
// At most one LineItem exists per (ProductID, TenantID).
type LineItem struct {
	ProductID      string
	TenantID       string
	Name           string
	UnitPriceCents int64
	Unit           string
	ImageRef       string
	Quantity       int
}

// SubtotalCents returns unit price times quantity.
func (i LineItem) SubtotalCents() int64 {
	return i.UnitPriceCents * int64(i.Quantity)
}

func (i LineItem) key() itemKey {
	return itemKey{productID: i.ProductID, tenantID: i.TenantID}
}

type itemKey struct {
	productID string
	tenantID  string
}

// CheckoutProfile holds the last-used delivery details.
type CheckoutProfile struct {
	Name          string
	ContactNumber string
	Address       string
	Notes         string
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (p CheckoutProfile) Trimmed() CheckoutProfile {
	return CheckoutProfile{
		Name:          strings.TrimSpace(p.Name),
		ContactNumber: strings.TrimSpace(p.ContactNumber),
		Address:       strings.TrimSpace(p.Address),
		Notes:         strings.TrimSpace(p.Notes),
	}
}

// State is the full persisted cart.
type State struct {
	Items        []LineItem
	SavedProfile *CheckoutProfile
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := State{}
	if len(s.Items) > 0 {
		out.Items = make([]LineItem, len(s.Items))
		copy(out.Items, s.Items)
	}
	if s.SavedProfile != nil {
		profile := *s.SavedProfile
		out.SavedProfile = &profile
	}
	return out
}

// Snapshot freezes one tenant's items and total at a point in time.
type Snapshot struct {
	TenantID   string
	Items      []LineItem
	TotalCents int64
}

// IsEmpty reports whether the snapshot has no items.
func (s Snapshot) IsEmpty() bool {
	return len(s.Items) == 0
}
