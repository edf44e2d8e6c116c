package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/notifications"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/money"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

const (
	orderNumberConstraint = "orders_tenant_number_key"
	maxNumberAttempts     = 3
	// RecentOrdersLimit caps the dashboard's recent order list.
	RecentOrdersLimit = 5
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Notifier is told about every committed order.
type Notifier interface {
	OrderPlaced(ctx context.Context, order notifications.OrderPlaced) error
}

// Service defines order placement and the admin order operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*Created, error)
	List(ctx context.Context, tenantID uuid.UUID, params pagination.Params, filters ListFilters) (*OrderList, error)
	Get(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderDetail, error)
	GetByNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*OrderDetail, error)
	UpdateStatus(ctx context.Context, tenantID, orderID uuid.UUID, status enums.OrderStatus) (*OrderDetail, error)
	Stats(ctx context.Context, tenantID uuid.UUID) (*Stats, error)
}

// ServiceParams carries the order service dependencies. Notifier and Metrics are optional.
type ServiceParams struct {
	Repo     Repository
	Tx       txRunner
	Numbers  NumberAllocator
	Notifier Notifier
	Metrics  *metrics.StorefrontMetrics
	Logger   *logger.Logger
}

type service struct {
	repo     Repository
	tx       txRunner
	numbers  NumberAllocator
	notifier Notifier
	metrics  *metrics.StorefrontMetrics
	logg     *logger.Logger
}

// NewService builds the orders service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Numbers == nil {
		return nil, fmt.Errorf("order number allocator required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		repo:     params.Repo,
		tx:       params.Tx,
		numbers:  params.Numbers,
		notifier: params.Notifier,
		metrics:  params.Metrics,
		logg:     logg,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Created, error) {
	tenantID, customer, err := validateCreate(input)
	if err != nil {
		return nil, err
	}
	ctx = s.logg.WithTenantID(ctx, tenantID.String())

	tenant, err := s.repo.FindTenant(ctx, tenantID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to create order")
	}

	var total int64
	items := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		subtotal := money.Multiply(item.PriceCents, item.Quantity)
		total += subtotal
		items = append(items, models.OrderItem{
			ProductID:         parseProductID(item.ProductID),
			ProductName:       item.Name,
			ProductPriceCents: item.PriceCents,
			ProductUnit:       item.Unit,
			Quantity:          item.Quantity,
			SubtotalCents:     subtotal,
		})
	}

	order, err := s.insert(ctx, tenantID, customer, items, total)
	if err != nil {
		s.logg.Error(ctx, "orders.create.failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to create order")
	}

	ctx = s.logg.WithField(ctx, "order_number", order.OrderNumber)
	s.logg.Info(ctx, "orders.create.committed")
	s.metrics.IncOrderCreated(order.TotalCents)
	s.notify(ctx, tenant, order, input.Items)

	return &Created{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		TotalCents:  order.TotalCents,
	}, nil
}

// insert writes the order and its items in one transaction. A collision on the
// per-tenant number (counter reset) allocates a fresh number and retries.
func (s *service) insert(ctx context.Context, tenantID uuid.UUID, customer Customer, items []models.OrderItem, total int64) (*models.Order, error) {
	var lastErr error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number, err := s.numbers.Next(ctx, tenantID)
		if err != nil {
			return nil, err
		}

		order := &models.Order{
			ID:               uuid.New(),
			TenantID:         tenantID,
			OrderNumber:      number,
			CustomerName:     customer.Name,
			CustomerWhatsApp: customer.WhatsAppNumber,
			DeliveryAddress:  customer.Address,
			Notes:            optionalString(customer.Notes),
			Status:           enums.OrderStatusPending,
			TotalCents:       total,
		}
		rows := make([]models.OrderItem, len(items))
		copy(rows, items)
		for i := range rows {
			rows[i].ID = uuid.New()
			rows[i].OrderID = order.ID
		}

		err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.repo.WithTx(tx)
			if _, err := repo.CreateOrder(ctx, order); err != nil {
				return err
			}
			return repo.CreateOrderItems(ctx, rows)
		})
		if err == nil {
			order.Items = rows
			return order, nil
		}
		if !db.IsUniqueViolation(err, orderNumberConstraint) && !isNumberCollision(err) {
			return nil, err
		}
		s.logg.Warn(s.logg.WithField(ctx, "order_number", number), "orders.create.number_collision")
		lastErr = err
	}
	return nil, lastErr
}

// sqlite reports the violated columns instead of the constraint name.
func isNumberCollision(err error) bool {
	return strings.Contains(err.Error(), "orders.tenant_id, orders.order_number")
}

func (s *service) notify(ctx context.Context, tenant *models.Tenant, order *models.Order, submitted []CreateItem) {
	if s.notifier == nil {
		return
	}
	lines := make([]notifications.OrderLine, 0, len(submitted))
	for _, item := range submitted {
		lines = append(lines, notifications.OrderLine{
			Name:       item.Name,
			Quantity:   item.Quantity,
			Unit:       item.Unit,
			PriceCents: item.PriceCents,
		})
	}
	vendor := ""
	if tenant.WhatsAppNumber != nil {
		vendor = *tenant.WhatsAppNumber
	}
	err := s.notifier.OrderPlaced(ctx, notifications.OrderPlaced{
		OrderNumber:      order.OrderNumber,
		StoreName:        tenant.StoreName,
		VendorWhatsApp:   vendor,
		CustomerName:     order.CustomerName,
		CustomerWhatsApp: order.CustomerWhatsApp,
		Address:          order.DeliveryAddress,
		Items:            lines,
		TotalCents:       order.TotalCents,
	})
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "orders.notify.failed")
	}
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID, params pagination.Params, filters ListFilters) (*OrderList, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	if params.Cursor != "" {
		if _, err := pagination.ParseCursor(params.Cursor); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
	}
	list, err := s.repo.ListOrders(ctx, tenantID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return list, nil
}

func (s *service) Get(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderDetail, error) {
	order, err := s.repo.FindOrder(ctx, tenantID, orderID)
	if err != nil {
		return nil, mapLookupError(err)
	}
	return detailFromModel(order), nil
}

func (s *service) GetByNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*OrderDetail, error) {
	trimmed := strings.TrimSpace(orderNumber)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number required")
	}
	order, err := s.repo.FindOrderByNumber(ctx, tenantID, trimmed)
	if err != nil {
		return nil, mapLookupError(err)
	}
	return detailFromModel(order), nil
}

func (s *service) UpdateStatus(ctx context.Context, tenantID, orderID uuid.UUID, status enums.OrderStatus) (*OrderDetail, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]any{"status": string(status)})
	}
	if err := s.repo.UpdateOrderStatus(ctx, tenantID, orderID, status); err != nil {
		return nil, mapLookupError(err)
	}
	ctx = s.logg.WithFields(ctx, map[string]any{"order_id": orderID.String(), "status": string(status)})
	s.logg.Info(ctx, "orders.status.updated")
	return s.Get(ctx, tenantID, orderID)
}

// Stats returns the dashboard counters plus the newest orders.
func (s *service) Stats(ctx context.Context, tenantID uuid.UUID) (*Stats, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	stats, err := s.repo.OrderStats(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "order stats")
	}
	recent, err := s.repo.ListOrders(ctx, tenantID, pagination.Params{Limit: RecentOrdersLimit}, ListFilters{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "recent orders")
	}
	stats.Recent = recent.Orders
	return stats, nil
}

func mapLookupError(err error) error {
	if db.IsNotFound(err) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
}

func validateCreate(input CreateInput) (uuid.UUID, Customer, error) {
	if strings.TrimSpace(input.TenantID) == "" || len(input.Items) == 0 || input.Customer == nil {
		return uuid.Nil, Customer{}, pkgerrors.New(pkgerrors.CodeValidation, "Missing required fields")
	}
	customer := Customer{
		Name:           strings.TrimSpace(input.Customer.Name),
		WhatsAppNumber: strings.TrimSpace(input.Customer.WhatsAppNumber),
		Address:        strings.TrimSpace(input.Customer.Address),
		Notes:          strings.TrimSpace(input.Customer.Notes),
	}
	if customer.Name == "" || customer.WhatsAppNumber == "" || customer.Address == "" {
		return uuid.Nil, Customer{}, pkgerrors.New(pkgerrors.CodeValidation, "Name, WhatsApp number, and address are required")
	}
	tenantID, err := uuid.Parse(strings.TrimSpace(input.TenantID))
	if err != nil {
		return uuid.Nil, Customer{}, pkgerrors.New(pkgerrors.CodeNotFound, "Store not found")
	}
	for i, item := range input.Items {
		if item.Quantity < 1 || item.PriceCents < 0 || strings.TrimSpace(item.Name) == "" {
			return uuid.Nil, Customer{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid order item").
				WithDetails(map[string]any{"index": i})
		}
	}
	return tenantID, customer, nil
}

// parseProductID keeps references to catalog products; unknown ids are stored as null.
func parseProductID(raw string) *uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &id
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
