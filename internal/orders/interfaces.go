package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

// Repository defines persistence operations for orders and their items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindTenant(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error)
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	FindOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*models.Order, error)
	FindOrderByNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*models.Order, error)
	ListOrders(ctx context.Context, tenantID uuid.UUID, params pagination.Params, filters ListFilters) (*OrderList, error)
	UpdateOrderStatus(ctx context.Context, tenantID, orderID uuid.UUID, status enums.OrderStatus) error
	OrderStats(ctx context.Context, tenantID uuid.UUID) (*Stats, error)
}

// NumberAllocator hands out human-facing order numbers per tenant.
type NumberAllocator interface {
	Next(ctx context.Context, tenantID uuid.UUID) (string, error)
}
