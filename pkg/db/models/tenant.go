package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// Tenant is one vendor's storefront.
type Tenant struct {
	ID             uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	Slug           string             `gorm:"column:slug;not null;uniqueIndex"`
	StoreName      string             `gorm:"column:store_name;not null"`
	Description    *string            `gorm:"column:description"`
	BusinessType   enums.BusinessType `gorm:"column:business_type;not null"`
	ThemeConfig    types.ThemeConfig  `gorm:"column:theme_config;type:jsonb"`
	WhatsAppNumber *string            `gorm:"column:whatsapp_number"`
	Address        *string            `gorm:"column:address"`
	LogoURL        *string            `gorm:"column:logo_url"`
	HeroImageURL   *string            `gorm:"column:hero_image_url"`
	OwnerUserID    *uuid.UUID         `gorm:"column:owner_user_id;type:uuid"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (Tenant) TableName() string { return "tenants" }
