package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product is a catalog listing. Stock is informational and never decremented.
type Product struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	TenantID      uuid.UUID      `gorm:"column:tenant_id;type:uuid;not null"`
	CategoryID    *uuid.UUID     `gorm:"column:category_id;type:uuid"`
	Name          string         `gorm:"column:name;not null"`
	Description   *string        `gorm:"column:description"`
	PriceCents    int64          `gorm:"column:price_cents;not null"`
	Unit          string         `gorm:"column:unit;not null"`
	Images        pq.StringArray `gorm:"column:images;type:text[]"`
	StockQuantity int            `gorm:"column:stock_quantity;not null;default:0"`
	IsAvailable   bool           `gorm:"column:is_available;not null"`
	IsDemo        bool           `gorm:"column:is_demo;not null;default:false"`
	DemoExpiresAt *time.Time     `gorm:"column:demo_expires_at"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string { return "products" }
