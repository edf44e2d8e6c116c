package admin

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/money"
)

type productCounter interface {
	CountProducts(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

type orderStats interface {
	Stats(ctx context.Context, tenantID uuid.UUID) (*orders.Stats, error)
}

type dashboardResponse struct {
	TotalProducts     int64                 `json:"total_products"`
	TotalOrders       int64                 `json:"total_orders"`
	PendingOrders     int64                 `json:"pending_orders"`
	TotalRevenue      money.Amount          `json:"total_revenue"`
	TotalRevenueCents int64                 `json:"total_revenue_cents"`
	RecentOrders      []orders.OrderSummary `json:"recent_orders"`
}

// Dashboard returns the store's headline counters and its newest orders.
func Dashboard(products productCounter, stats orderStats, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if products == nil || stats == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard services unavailable"))
			return
		}
		tenant, err := tenantID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		count, err := products.CountProducts(r.Context(), tenant)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		summary, err := stats.Stats(r.Context(), tenant)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		recent := summary.Recent
		if recent == nil {
			recent = []orders.OrderSummary{}
		}
		responses.WriteSuccess(w, dashboardResponse{
			TotalProducts:     count,
			TotalOrders:       summary.TotalOrders,
			PendingOrders:     summary.PendingOrders,
			TotalRevenue:      money.Amount(summary.RevenueCents),
			TotalRevenueCents: summary.RevenueCents,
			RecentOrders:      recent,
		})
	}
}
