package tenants

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// TenantDTO is a storefront as returned by the API.
type TenantDTO struct {
	ID             uuid.UUID          `json:"id"`
	Slug           string             `json:"slug"`
	StoreName      string             `json:"store_name"`
	Description    *string            `json:"description,omitempty"`
	BusinessType   enums.BusinessType `json:"business_type"`
	ThemeConfig    types.ThemeConfig  `json:"theme_config"`
	WhatsAppNumber *string            `json:"whatsapp_number,omitempty"`
	Address        *string            `json:"address,omitempty"`
	LogoURL        *string            `json:"logo_url,omitempty"`
	HeroImageURL   *string            `json:"hero_image_url,omitempty"`
	OwnerUserID    *uuid.UUID         `json:"owner_user_id,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// Storefront is the public payload rendered for /store/{slug}.
type Storefront struct {
	Tenant     TenantDTO             `json:"tenant"`
	Categories []catalog.CategoryDTO `json:"categories"`
	Products   []catalog.ProductDTO  `json:"products"`
}

// Onboarded is the result of creating a store.
type Onboarded struct {
	Tenant TenantDTO          `json:"tenant"`
	Seeded catalog.SeedResult `json:"seeded"`
}

// TenantList is a page of tenants.
type TenantList struct {
	Tenants    []TenantDTO `json:"tenants"`
	NextCursor string      `json:"next_cursor,omitempty"`
}

// OnboardInput holds the onboarding form.
type OnboardInput struct {
	StoreName      string
	Description    string
	BusinessType   enums.BusinessType
	WhatsAppNumber string
	Address        string
}

// SettingsInput holds optional store settings mutations. Empty strings clear
// optional fields.
type SettingsInput struct {
	StoreName      *string
	Description    *string
	WhatsAppNumber *string
	Address        *string
	LogoURL        *string
	HeroImageURL   *string
	Theme          *types.ThemeConfig
}

func FromModel(t *models.Tenant) TenantDTO {
	return TenantDTO{
		ID:             t.ID,
		Slug:           t.Slug,
		StoreName:      t.StoreName,
		Description:    t.Description,
		BusinessType:   t.BusinessType,
		ThemeConfig:    t.ThemeConfig,
		WhatsAppNumber: t.WhatsAppNumber,
		Address:        t.Address,
		LogoURL:        t.LogoURL,
		HeroImageURL:   t.HeroImageURL,
		OwnerUserID:    t.OwnerUserID,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
