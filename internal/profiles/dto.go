package profiles

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// ProfileDTO is the transport shape of a profile.
type ProfileDTO struct {
	UserID         uuid.UUID      `json:"user_id"`
	FullName       *string        `json:"full_name,omitempty"`
	WhatsAppNumber *string        `json:"whatsapp_number,omitempty"`
	Role           enums.UserRole `json:"role"`
	TenantID       *uuid.UUID     `json:"tenant_id,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// UpdateInput holds the self-service profile fields.
type UpdateInput struct {
	FullName       *string
	WhatsAppNumber *string
}

func FromModel(p *models.Profile) *ProfileDTO {
	if p == nil {
		return nil
	}
	return &ProfileDTO{
		UserID:         p.UserID,
		FullName:       p.FullName,
		WhatsAppNumber: p.WhatsAppNumber,
		Role:           p.Role,
		TenantID:       p.TenantID,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
