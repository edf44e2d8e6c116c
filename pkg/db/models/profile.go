package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// Profile mirrors an auth provider user with its storefront role.
type Profile struct {
	UserID         uuid.UUID      `gorm:"column:user_id;type:uuid;primaryKey"`
	FullName       *string        `gorm:"column:full_name"`
	WhatsAppNumber *string        `gorm:"column:whatsapp_number"`
	Role           enums.UserRole `gorm:"column:role;not null;default:'customer'"`
	TenantID       *uuid.UUID     `gorm:"column:tenant_id;type:uuid"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Profile) TableName() string { return "profiles" }
