package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// CreateItem is one submitted order line.
type CreateItem struct {
	ProductID  string
	Name       string
	PriceCents int64
	Quantity   int
	Unit       string
}

// Customer holds the delivery contact for an order.
type Customer struct {
	Name           string
	WhatsAppNumber string
	Address        string
	Notes          string
}

// CreateInput is the server side of the order submission contract.
type CreateInput struct {
	TenantID string
	Items    []CreateItem
	Customer *Customer
}

// Created is returned after a successful create.
type Created struct {
	OrderID     uuid.UUID
	OrderNumber string
	TotalCents  int64
}

// ListFilters narrow the admin order list.
type ListFilters struct {
	Status *enums.OrderStatus
	Query  string
}

// OrderSummary is one row of the admin order list.
type OrderSummary struct {
	ID               uuid.UUID         `json:"id"`
	OrderNumber      string            `json:"order_number"`
	CustomerName     string            `json:"customer_name"`
	CustomerWhatsApp string            `json:"customer_whatsapp"`
	Status           enums.OrderStatus `json:"status"`
	TotalCents       int64             `json:"total_cents"`
	TotalItems       int               `json:"total_items"`
	CreatedAt        time.Time         `json:"created_at"`
}

// OrderList wraps paginated orders plus the next page cursor.
type OrderList struct {
	Orders     []OrderSummary `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// Stats summarises a store's orders for the admin dashboard. Revenue sums
// every order regardless of status.
type Stats struct {
	TotalOrders   int64          `json:"total_orders"`
	PendingOrders int64          `json:"pending_orders"`
	RevenueCents  int64          `json:"revenue_cents"`
	Recent        []OrderSummary `json:"recent_orders"`
}

// OrderItemDTO is an order line as returned by the API.
type OrderItemDTO struct {
	ID                uuid.UUID  `json:"id"`
	ProductID         *uuid.UUID `json:"product_id,omitempty"`
	ProductName       string     `json:"product_name"`
	ProductPriceCents int64      `json:"product_price_cents"`
	ProductUnit       string     `json:"product_unit"`
	Quantity          int        `json:"quantity"`
	SubtotalCents     int64      `json:"subtotal_cents"`
}

// OrderDetail is a full order with its items.
type OrderDetail struct {
	ID               uuid.UUID         `json:"id"`
	TenantID         uuid.UUID         `json:"tenant_id"`
	OrderNumber      string            `json:"order_number"`
	CustomerName     string            `json:"customer_name"`
	CustomerWhatsApp string            `json:"customer_whatsapp"`
	DeliveryAddress  string            `json:"delivery_address"`
	Notes            *string           `json:"notes,omitempty"`
	Status           enums.OrderStatus `json:"status"`
	TotalCents       int64             `json:"total_cents"`
	Items            []OrderItemDTO    `json:"items"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func detailFromModel(order *models.Order) *OrderDetail {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemDTO{
			ID:                item.ID,
			ProductID:         item.ProductID,
			ProductName:       item.ProductName,
			ProductPriceCents: item.ProductPriceCents,
			ProductUnit:       item.ProductUnit,
			Quantity:          item.Quantity,
			SubtotalCents:     item.SubtotalCents,
		})
	}
	return &OrderDetail{
		ID:               order.ID,
		TenantID:         order.TenantID,
		OrderNumber:      order.OrderNumber,
		CustomerName:     order.CustomerName,
		CustomerWhatsApp: order.CustomerWhatsApp,
		DeliveryAddress:  order.DeliveryAddress,
		Notes:            order.Notes,
		Status:           order.Status,
		TotalCents:       order.TotalCents,
		Items:            items,
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
}
