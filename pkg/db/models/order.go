package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// Order is a cash-on-delivery order placed against one tenant.
type Order struct {
	ID               uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	TenantID         uuid.UUID         `gorm:"column:tenant_id;type:uuid;not null"`
	OrderNumber      string            `gorm:"column:order_number;not null"`
	CustomerName     string            `gorm:"column:customer_name;not null"`
	CustomerWhatsApp string            `gorm:"column:customer_whatsapp;not null"`
	DeliveryAddress  string            `gorm:"column:delivery_address;not null"`
	Notes            *string           `gorm:"column:notes"`
	Status           enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	TotalCents       int64             `gorm:"column:total_cents;not null"`
	Items            []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (Order) TableName() string { return "orders" }

// OrderItem snapshots the product fields at the time of ordering.
type OrderItem struct {
	ID                uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	OrderID           uuid.UUID  `gorm:"column:order_id;type:uuid;not null"`
	ProductID         *uuid.UUID `gorm:"column:product_id;type:uuid"`
	ProductName       string     `gorm:"column:product_name;not null"`
	ProductPriceCents int64      `gorm:"column:product_price_cents;not null"`
	ProductUnit       string     `gorm:"column:product_unit;not null"`
	Quantity          int        `gorm:"column:quantity;not null"`
	SubtotalCents     int64      `gorm:"column:subtotal_cents;not null"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (OrderItem) TableName() string { return "order_items" }
