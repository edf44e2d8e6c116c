package orders

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindTenant(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.WithContext(ctx).Where("id = ?", tenantID).First(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Omit("Items").Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) FindOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		Where("tenant_id = ? AND id = ?", tenantID, orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindOrderByNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		Where("tenant_id = ? AND order_number = ?", tenantID, orderNumber).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

type orderSummaryRecord struct {
	ID               uuid.UUID
	OrderNumber      string
	CustomerName     string
	CustomerWhatsApp string `gorm:"column:customer_whatsapp"`
	Status           enums.OrderStatus
	TotalCents       int64
	TotalItems       int
	CreatedAt        time.Time
}

func (r *repository) ListOrders(ctx context.Context, tenantID uuid.UUID, params pagination.Params, filters ListFilters) (*OrderList, error) {
	decodedCursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Table("orders o").
		Select(`o.id, o.order_number, o.customer_name, o.customer_whatsapp, o.status, o.total_cents, o.created_at,
  COALESCE((SELECT SUM(oi.quantity) FROM order_items oi WHERE oi.order_id = o.id), 0) AS total_items`).
		Where("o.tenant_id = ?", tenantID)

	if filters.Status != nil {
		query = query.Where("o.status = ?", *filters.Status)
	}
	if q := strings.ToLower(strings.TrimSpace(filters.Query)); q != "" {
		like := "%" + q + "%"
		query = query.Where("(LOWER(o.customer_name) LIKE ? OR LOWER(o.order_number) LIKE ? OR o.customer_whatsapp LIKE ?)", like, like, like)
	}
	if decodedCursor != nil {
		query = query.Where("(o.created_at < ?) OR (o.created_at = ? AND o.id < ?)", decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	var records []orderSummaryRecord
	if err := query.Order("o.created_at DESC").Order("o.id DESC").Limit(pagination.LimitWithBuffer(params.Limit)).Scan(&records).Error; err != nil {
		return nil, err
	}

	resultRows, nextCursor := pagination.Trim(records, params.Limit, func(rec orderSummaryRecord) pagination.Cursor {
		return pagination.Cursor{CreatedAt: rec.CreatedAt, ID: rec.ID}
	})

	list := &OrderList{
		Orders:     make([]OrderSummary, 0, len(resultRows)),
		NextCursor: nextCursor,
	}
	for _, rec := range resultRows {
		list.Orders = append(list.Orders, OrderSummary{
			ID:               rec.ID,
			OrderNumber:      rec.OrderNumber,
			CustomerName:     rec.CustomerName,
			CustomerWhatsApp: rec.CustomerWhatsApp,
			Status:           rec.Status,
			TotalCents:       rec.TotalCents,
			TotalItems:       rec.TotalItems,
			CreatedAt:        rec.CreatedAt,
		})
	}
	return list, nil
}

type statsRecord struct {
	TotalOrders   int64
	PendingOrders int64
	RevenueCents  int64
}

// OrderStats counts the tenant's orders and sums their totals in one pass.
func (r *repository) OrderStats(ctx context.Context, tenantID uuid.UUID) (*Stats, error) {
	var rec statsRecord
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select(`COUNT(*) AS total_orders,
  COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending_orders,
  COALESCE(SUM(total_cents), 0) AS revenue_cents`, enums.OrderStatusPending).
		Where("tenant_id = ?", tenantID).
		Scan(&rec).Error
	if err != nil {
		return nil, err
	}
	return &Stats{
		TotalOrders:   rec.TotalOrders,
		PendingOrders: rec.PendingOrders,
		RevenueCents:  rec.RevenueCents,
	}, nil
}

func (r *repository) UpdateOrderStatus(ctx context.Context, tenantID, orderID uuid.UUID, status enums.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("tenant_id = ? AND id = ?", tenantID, orderID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
