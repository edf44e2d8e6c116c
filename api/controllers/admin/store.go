package admin

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/tenants"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

type storeSettingsService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*tenants.TenantDTO, error)
	UpdateSettings(ctx context.Context, id uuid.UUID, input tenants.SettingsInput) (*tenants.TenantDTO, error)
}

// StoreSettings returns the admin's own store.
func StoreSettings(svc storeSettingsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenant service unavailable"))
			return
		}
		id, err := tenantID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store)
	}
}

type storeSettingsRequest struct {
	StoreName      *string            `json:"store_name,omitempty" validate:"omitempty,max=120"`
	Description    *string            `json:"description,omitempty"`
	WhatsAppNumber *string            `json:"whatsapp_number,omitempty" validate:"omitempty,max=32"`
	Address        *string            `json:"address,omitempty"`
	LogoURL        *string            `json:"logo_url,omitempty"`
	HeroImageURL   *string            `json:"hero_image_url,omitempty"`
	ThemeConfig    *types.ThemeConfig `json:"theme_config,omitempty"`
}

func (r storeSettingsRequest) toInput() tenants.SettingsInput {
	return tenants.SettingsInput{
		StoreName:      validators.SanitizeOptional(r.StoreName),
		Description:    validators.SanitizeOptional(r.Description),
		WhatsAppNumber: validators.SanitizeOptional(r.WhatsAppNumber),
		Address:        validators.SanitizeOptional(r.Address),
		LogoURL:        validators.SanitizeOptional(r.LogoURL),
		HeroImageURL:   validators.SanitizeOptional(r.HeroImageURL),
		Theme:          r.ThemeConfig,
	}
}

// UpdateStoreSettings applies partial settings to the admin's store.
func UpdateStoreSettings(svc storeSettingsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenant service unavailable"))
			return
		}
		id, err := tenantID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload storeSettingsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store, err := svc.UpdateSettings(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store)
	}
}
