package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/tenants"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

const maxStoreNameLen = 120

type onboarder interface {
	Onboard(ctx context.Context, ownerUserID uuid.UUID, input tenants.OnboardInput) (*tenants.Onboarded, error)
}

// OnboardRequest is the create-your-store form.
type OnboardRequest struct {
	StoreName      string `json:"store_name" validate:"required"`
	Description    string `json:"description,omitempty"`
	BusinessType   string `json:"business_type" validate:"required"`
	WhatsAppNumber string `json:"whatsapp_number" validate:"required"`
	Address        string `json:"address,omitempty"`
}

// ToInput trims the form into the tenant service input.
func (r OnboardRequest) ToInput() tenants.OnboardInput {
	return tenants.OnboardInput{
		StoreName:      validators.SanitizeString(r.StoreName, maxStoreNameLen),
		Description:    validators.SanitizeString(r.Description, 0),
		BusinessType:   enums.BusinessType(validators.SanitizeString(r.BusinessType, 0)),
		WhatsAppNumber: validators.SanitizeString(r.WhatsAppNumber, 0),
		Address:        validators.SanitizeString(r.Address, 0),
	}
}

// Onboard creates the caller's store, makes them its admin and seeds the demo catalog.
func Onboard(svc onboarder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenant service unavailable"))
			return
		}
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload OnboardRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.Onboard(r.Context(), userID, payload.ToInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
