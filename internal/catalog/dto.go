package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/money"
)

// CategoryDTO is a category as returned by the API.
type CategoryDTO struct {
	ID           uuid.UUID `json:"id"`
	TenantID     uuid.UUID `json:"tenant_id"`
	Name         string    `json:"name"`
	ImageURL     *string   `json:"image_url,omitempty"`
	IconName     *string   `json:"icon_name,omitempty"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProductDTO is a product as returned by the API. Price is in major units.
type ProductDTO struct {
	ID            uuid.UUID    `json:"id"`
	TenantID      uuid.UUID    `json:"tenant_id"`
	CategoryID    *uuid.UUID   `json:"category_id,omitempty"`
	Name          string       `json:"name"`
	Description   *string      `json:"description,omitempty"`
	Price         money.Amount `json:"price"`
	PriceCents    int64        `json:"price_cents"`
	Unit          string       `json:"unit"`
	Images        []string     `json:"images"`
	StockQuantity int          `json:"stock_quantity"`
	IsAvailable   bool         `json:"is_available"`
	IsDemo        bool         `json:"is_demo"`
	DemoExpiresAt *time.Time   `json:"demo_expires_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// SeedResult reports how many demo rows were inserted.
type SeedResult struct {
	Categories int `json:"categories"`
	Products   int `json:"products"`
}

func categoryFromModel(c models.Category) CategoryDTO {
	return CategoryDTO{
		ID:           c.ID,
		TenantID:     c.TenantID,
		Name:         c.Name,
		ImageURL:     c.ImageURL,
		IconName:     c.IconName,
		DisplayOrder: c.DisplayOrder,
		CreatedAt:    c.CreatedAt,
	}
}

func productFromModel(p models.Product) ProductDTO {
	images := []string(p.Images)
	if images == nil {
		images = []string{}
	}
	return ProductDTO{
		ID:            p.ID,
		TenantID:      p.TenantID,
		CategoryID:    p.CategoryID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         money.Amount(p.PriceCents),
		PriceCents:    p.PriceCents,
		Unit:          p.Unit,
		Images:        images,
		StockQuantity: p.StockQuantity,
		IsAvailable:   p.IsAvailable,
		IsDemo:        p.IsDemo,
		DemoExpiresAt: p.DemoExpiresAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
