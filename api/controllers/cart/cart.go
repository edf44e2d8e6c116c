package cart

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	cartsvc "github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/checkout"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/money"
)

// Opener loads the cart bound to one client session.
type Opener interface {
	Open(ctx context.Context, sessionID string) (*cartsvc.Store, error)
}

type lockStore interface {
	AcquireLock(ctx context.Context, name string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, name string) error
}

// CheckoutDeps wires the checkout flow built for every submission. Without
// Locks concurrent submissions are guarded within this process only.
type CheckoutDeps struct {
	Creator checkout.OrderCreator
	Locks   lockStore
	LockTTL time.Duration
	Metrics *metrics.StorefrontMetrics
}

type lineItemResponse struct {
	ProductID     string       `json:"productId"`
	TenantID      string       `json:"tenantId"`
	Name          string       `json:"name"`
	Price         money.Amount `json:"price"`
	Unit          string       `json:"unit"`
	Image         string       `json:"image,omitempty"`
	Quantity      int          `json:"quantity"`
	SubtotalCents int64        `json:"subtotalCents"`
}

type profilePayload struct {
	Name           string `json:"name" validate:"required"`
	WhatsAppNumber string `json:"whatsappNumber" validate:"required"`
	Address        string `json:"address" validate:"required"`
	Notes          string `json:"notes,omitempty"`
}

type cartResponse struct {
	Items        []lineItemResponse `json:"items"`
	ItemCount    int                `json:"itemCount"`
	Total        money.Amount       `json:"total"`
	TotalCents   int64              `json:"totalCents"`
	SavedDetails *profilePayload    `json:"savedDetails"`
}

func newCartResponse(store *cartsvc.Store, tenantID string) cartResponse {
	var (
		items []cartsvc.LineItem
		count int
		total int64
	)
	if tenantID != "" {
		items = store.ItemsForTenant(tenantID)
		count = store.TenantItemCount(tenantID)
		total = store.TenantTotal(tenantID)
	} else {
		items = store.Items()
		count = store.ItemCount()
		total = store.Total()
	}

	out := cartResponse{
		Items:      make([]lineItemResponse, 0, len(items)),
		ItemCount:  count,
		Total:      money.Amount(total),
		TotalCents: total,
	}
	for _, item := range items {
		out.Items = append(out.Items, lineItemResponse{
			ProductID:     item.ProductID,
			TenantID:      item.TenantID,
			Name:          item.Name,
			Price:         money.Amount(item.UnitPriceCents),
			Unit:          item.Unit,
			Image:         item.ImageRef,
			Quantity:      item.Quantity,
			SubtotalCents: item.SubtotalCents(),
		})
	}
	if saved, ok := store.SavedProfile(); ok {
		out.SavedDetails = &profilePayload{
			Name:           saved.Name,
			WhatsAppNumber: saved.ContactNumber,
			Address:        saved.Address,
			Notes:          saved.Notes,
		}
	}
	return out
}

func openCart(r *http.Request, carts Opener) (*cartsvc.Store, error) {
	if carts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart sessions unavailable")
	}
	session := middleware.CartSessionFromContext(r.Context())
	if session == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart session missing")
	}
	store, err := carts.Open(r.Context(), session)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open cart")
	}
	return store, nil
}

func tenantQuery(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("tenant"))
}

// Get returns the session cart, optionally narrowed to ?tenant=.
func Get(carts Opener, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := openCart(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(store, tenantQuery(r)))
	}
}

type addItemRequest struct {
	ProductID string       `json:"productId" validate:"required"`
	TenantID  string       `json:"tenantId" validate:"required"`
	Name      string       `json:"name" validate:"required"`
	Price     money.Amount `json:"price" validate:"gte=0"`
	Unit      string       `json:"unit"`
	Image     string       `json:"image,omitempty"`
	Quantity  int          `json:"quantity" validate:"omitempty,min=1"`
}

// AddItem merges the product into the cart; quantity defaults to one.
func AddItem(carts Opener, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store, err := openCart(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quantity := payload.Quantity
		if quantity == 0 {
			quantity = 1
		}
		item := cartsvc.LineItem{
			ProductID:      strings.TrimSpace(payload.ProductID),
			TenantID:       strings.TrimSpace(payload.TenantID),
			Name:           payload.Name,
			UnitPriceCents: payload.Price.Cents(),
			Unit:           payload.Unit,
			ImageRef:       payload.Image,
			Quantity:       quantity,
		}
		if err := store.AddItem(r.Context(), item); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newCartResponse(store, ""))
	}
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// UpdateQuantity sets an item's quantity; zero or less removes it.
func UpdateQuantity(carts Opener, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store, err := openCart(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tenantID := chi.URLParam(r, "tenantId")
		if err := store.UpdateQuantity(r.Context(), chi.URLParam(r, "productId"), tenantID, *payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(store, ""))
	}
}

// RemoveItem drops one item; absent items are ignored.
func RemoveItem(carts Opener, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := openCart(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := store.RemoveItem(r.Context(), chi.URLParam(r, "productId"), chi.URLParam(r, "tenantId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(store, ""))
	}
}

// Clear empties one tenant's items when ?tenant= is set, otherwise every item.
func Clear(carts Opener, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := openCart(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if tenantID := tenantQuery(r); tenantID != "" {
			err = store.ClearForTenant(r.Context(), tenantID)
		} else {
			err = store.ClearAll(r.Context())
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(store, ""))
	}
}

// SaveProfile stores the delivery details used to pre-fill checkout.
func SaveProfile(carts Opener, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload profilePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store, err := openCart(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := store.SaveCheckoutProfile(r.Context(), payload.toProfile().Trimmed()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(store, ""))
	}
}

// ClearProfile forgets the saved delivery details.
func ClearProfile(carts Opener, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := openCart(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := store.ClearSavedProfile(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(store, ""))
	}
}

func (p profilePayload) toProfile() cartsvc.CheckoutProfile {
	return cartsvc.CheckoutProfile{
		Name:          p.Name,
		ContactNumber: p.WhatsAppNumber,
		Address:       p.Address,
		Notes:         p.Notes,
	}
}

// Blank fields are left to the flow so they come back as field details.
type checkoutRequest struct {
	TenantID        string `json:"tenantId" validate:"required"`
	CustomerDetails struct {
		Name           string `json:"name"`
		WhatsAppNumber string `json:"whatsappNumber"`
		Address        string `json:"address"`
		Notes          string `json:"notes,omitempty"`
	} `json:"customerDetails"`
	RememberDetails bool `json:"rememberDetails"`
}

type checkoutResponse struct {
	OrderID     string             `json:"orderId"`
	OrderNumber string             `json:"orderNumber"`
	Total       money.Amount       `json:"total"`
	TotalCents  int64              `json:"totalCents"`
	Items       []lineItemResponse `json:"items"`
	Cart        cartResponse       `json:"cart"`
}

// Checkout submits one tenant's items as an order and settles the cart.
func Checkout(carts Opener, deps CheckoutDeps, logg *logger.Logger) http.HandlerFunc {
	local := checkout.NewLocalGuard()
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Creator == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order backend unavailable"))
			return
		}
		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store, err := openCart(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := checkout.FlowParams{
			Cart:    store,
			Creator: deps.Creator,
			Logger:  logg,
			Metrics: deps.Metrics,
		}
		session := middleware.CartSessionFromContext(r.Context())
		if deps.Locks != nil {
			guard, err := checkout.NewRedisGuard(deps.Locks, session, deps.LockTTL)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build checkout guard"))
				return
			}
			params.Guard = guard
		} else {
			params.Guard = local.Scoped(session)
		}
		flow, err := checkout.NewFlow(params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build checkout flow"))
			return
		}

		details := payload.CustomerDetails
		profile := cartsvc.CheckoutProfile{
			Name:          details.Name,
			ContactNumber: details.WhatsAppNumber,
			Address:       details.Address,
			Notes:         details.Notes,
		}
		tenantID := strings.TrimSpace(payload.TenantID)
		conf, err := flow.Submit(r.Context(), tenantID, profile, checkout.SubmitOptions{Remember: payload.RememberDetails})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		submitted := make([]lineItemResponse, 0, len(conf.Items))
		for _, item := range conf.Items {
			submitted = append(submitted, lineItemResponse{
				ProductID:     item.ProductID,
				TenantID:      item.TenantID,
				Name:          item.Name,
				Price:         money.Amount(item.UnitPriceCents),
				Unit:          item.Unit,
				Image:         item.ImageRef,
				Quantity:      item.Quantity,
				SubtotalCents: item.SubtotalCents(),
			})
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, checkoutResponse{
			OrderID:     conf.OrderID,
			OrderNumber: conf.OrderNumber,
			Total:       money.Amount(conf.TotalCents),
			TotalCents:  conf.TotalCents,
			Items:       submitted,
			Cart:        newCartResponse(store, ""),
		})
	}
}
