package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-backend/internal/cart"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/money"
)

const genericSubmissionMessage = "failed to place order, please try again"

// Cart is the slice of the cart store used by checkout.
type Cart interface {
	SnapshotTenant(tenantID string) cart.Snapshot
	Settle(ctx context.Context, snap cart.Snapshot) error
	SaveCheckoutProfile(ctx context.Context, profile cart.CheckoutProfile) error
}

// SubmitOptions tunes one submission.
type SubmitOptions struct {
	// Remember saves the profile on success for pre-filling later checkouts.
	Remember bool
}

// Confirmation is handed back after the backend accepted the order.
type Confirmation struct {
	OrderID     string
	OrderNumber string
	TotalCents  int64
	Items       []cart.LineItem
}

// FlowParams groups the dependencies of the checkout flow.
type FlowParams struct {
	Cart    Cart
	Creator OrderCreator
	// Guard is optional; when set concurrent submissions for a tenant are rejected.
	Guard   InFlightGuard
	Logger  *logger.Logger
	Metrics *metrics.StorefrontMetrics
}

// Flow turns one tenant's cart into an order.
type Flow struct {
	cart    Cart
	creator OrderCreator
	guard   InFlightGuard
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
	now     func() time.Time
}

func NewFlow(params FlowParams) (*Flow, error) {
	if params.Cart == nil {
		return nil, errors.New("cart required")
	}
	if params.Creator == nil {
		return nil, errors.New("order creator required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Flow{
		cart:    params.Cart,
		creator: params.Creator,
		guard:   params.Guard,
		logg:    logg,
		metrics: params.Metrics,
		now:     time.Now,
	}, nil
}

// Submit snapshots the tenant's items at call time, submits them once and,
// on success, settles exactly the submitted quantities. On any failure the
// cart and saved profile are left as they were.
func (f *Flow) Submit(ctx context.Context, tenantID string, profile cart.CheckoutProfile, opts SubmitOptions) (*Confirmation, error) {
	start := f.now()
	ctx = f.logg.WithTenantID(ctx, tenantID)

	conf, outcome, err := f.submit(ctx, tenantID, profile, opts)
	f.metrics.ObserveCheckout(outcome, f.now().Sub(start))
	return conf, err
}

func (f *Flow) submit(ctx context.Context, tenantID string, profile cart.CheckoutProfile, opts SubmitOptions) (*Confirmation, string, error) {
	trimmed := profile.Trimmed()
	if err := validateProfile(trimmed); err != nil {
		return nil, metrics.OutcomeValidation, err
	}

	snap := f.cart.SnapshotTenant(tenantID)
	if snap.IsEmpty() {
		return nil, metrics.OutcomeValidation, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	if f.guard != nil {
		release, err := f.guard.Acquire(ctx, tenantID)
		if err != nil {
			return nil, metrics.OutcomeConflict, err
		}
		defer release()
	}

	result, err := f.creator.CreateOrder(ctx, buildRequest(tenantID, snap, trimmed))
	if err != nil {
		f.logg.Warn(f.logg.WithField(ctx, "error", err.Error()), "checkout.submit.failed")
		return nil, metrics.OutcomeFailed, submissionError(err)
	}

	// The order exists from here on; local persistence failures are logged
	// and never turned into a submission failure.
	if opts.Remember {
		if err := f.cart.SaveCheckoutProfile(ctx, trimmed); err != nil {
			f.logg.Error(ctx, "checkout.save_profile.failed", err)
		}
	}
	if err := f.cart.Settle(ctx, snap); err != nil {
		f.logg.Error(ctx, "checkout.settle_cart.failed", err)
	}

	f.logg.Info(f.logg.WithFields(ctx, map[string]any{
		"order_id":     result.OrderID,
		"order_number": result.OrderNumber,
		"total_cents":  snap.TotalCents,
	}), "checkout.submit.succeeded")

	return &Confirmation{
		OrderID:     result.OrderID,
		OrderNumber: result.OrderNumber,
		TotalCents:  snap.TotalCents,
		Items:       snap.Items,
	}, metrics.OutcomeSuccess, nil
}

func validateProfile(p cart.CheckoutProfile) error {
	details := map[string]string{}
	if p.Name == "" {
		details["name"] = "required"
	}
	if p.ContactNumber == "" {
		details["whatsappNumber"] = "required"
	}
	if p.Address == "" {
		details["address"] = "required"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "name, whatsapp number and address are required").WithDetails(details)
	}
	return nil
}

func buildRequest(tenantID string, snap cart.Snapshot, p cart.CheckoutProfile) OrderRequest {
	items := make([]OrderItem, 0, len(snap.Items))
	for _, it := range snap.Items {
		items = append(items, OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     money.Amount(it.UnitPriceCents),
			Quantity:  it.Quantity,
			Unit:      it.Unit,
		})
	}
	return OrderRequest{
		TenantID: tenantID,
		Items:    items,
		CustomerDetails: CustomerDetails{
			Name:           p.Name,
			WhatsAppNumber: p.ContactNumber,
			Address:        p.Address,
			Notes:          p.Notes,
		},
	}
}

// submissionError keeps the backend's message when it has one.
func submissionError(err error) error {
	msg := genericSubmissionMessage
	var backendErr *BackendError
	if errors.As(err, &backendErr) && strings.TrimSpace(backendErr.Message) != "" {
		msg = backendErr.Message
	} else if typed := pkgerrors.As(err); typed != nil && strings.TrimSpace(typed.Message()) != "" {
		msg = typed.Message()
	}
	wrapped := pkgerrors.Wrap(pkgerrors.CodeSubmission, err, msg)
	if backendErr != nil && backendErr.Status > 0 {
		wrapped = wrapped.WithDetails(map[string]any{"status": backendErr.Status})
	}
	return wrapped
}
