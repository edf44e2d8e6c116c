package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/internal/tenants"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/money"
)

type storefrontService interface {
	GetBySlug(ctx context.Context, slug string) (*tenants.Storefront, error)
}

type orderLookup interface {
	GetByNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*orders.OrderDetail, error)
}

// Storefront renders the public store page payload for /store/{slug}.
func Storefront(svc storefrontService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenant service unavailable"))
			return
		}
		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "Store not found"))
			return
		}
		store, err := svc.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store)
	}
}

type confirmationItem struct {
	Name     string       `json:"name"`
	Price    money.Amount `json:"price"`
	Unit     string       `json:"unit"`
	Quantity int          `json:"quantity"`
}

// Order confirmations are public, so delivery contact details stay out.
type confirmationResponse struct {
	OrderNumber string             `json:"orderNumber"`
	Status      enums.OrderStatus  `json:"status"`
	StoreName   string             `json:"storeName"`
	StoreSlug   string             `json:"storeSlug"`
	StoreWA     *string            `json:"storeWhatsapp,omitempty"`
	Total       money.Amount       `json:"total"`
	Items       []confirmationItem `json:"items"`
	PlacedAt    time.Time          `json:"placedAt"`
}

// OrderConfirmation returns the public thank-you view of a placed order.
func OrderConfirmation(stores storefrontService, lookup orderLookup, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if stores == nil || lookup == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order lookup unavailable"))
			return
		}
		store, err := stores.GetBySlug(r.Context(), strings.TrimSpace(chi.URLParam(r, "slug")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := lookup.GetByNumber(r.Context(), store.Tenant.ID, strings.TrimSpace(chi.URLParam(r, "orderNumber")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]confirmationItem, 0, len(order.Items))
		for _, item := range order.Items {
			items = append(items, confirmationItem{
				Name:     item.ProductName,
				Price:    money.Amount(item.ProductPriceCents),
				Unit:     item.ProductUnit,
				Quantity: item.Quantity,
			})
		}
		responses.WriteSuccess(w, confirmationResponse{
			OrderNumber: order.OrderNumber,
			Status:      order.Status,
			StoreName:   store.Tenant.StoreName,
			StoreSlug:   store.Tenant.Slug,
			StoreWA:     store.Tenant.WhatsAppNumber,
			Total:       money.Amount(order.TotalCents),
			Items:       items,
			PlacedAt:    order.CreatedAt,
		})
	}
}
