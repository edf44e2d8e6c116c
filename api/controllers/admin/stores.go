package admin

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/tenants"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

// StoresService is the super admin store management surface.
type StoresService interface {
	CreateStore(ctx context.Context, creatorID uuid.UUID, input tenants.OnboardInput) (*tenants.Onboarded, error)
	GetByID(ctx context.Context, id uuid.UUID) (*tenants.TenantDTO, error)
	List(ctx context.Context, params pagination.Params) (*tenants.TenantList, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AssignVendor(ctx context.Context, tenantID, userID uuid.UUID) error
}

type demoSeeder interface {
	SeedDemo(ctx context.Context, tenantID uuid.UUID, businessType enums.BusinessType) (*catalog.SeedResult, error)
}

func storesUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "tenant service unavailable")
}

func ListStores(svc StoresService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, storesUnavailable())
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.List(r.Context(), pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// CreateStore provisions a store on behalf of a vendor; the caller's own
// profile is left as it is.
func CreateStore(svc StoresService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, storesUnavailable())
			return
		}
		creator, err := userID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload controllers.OnboardRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.CreateStore(r.Context(), creator, payload.ToInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func DeleteStore(svc StoresService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, storesUnavailable())
			return
		}
		id, err := validators.ParseURLUUID(r, "tenantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

type assignVendorRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

// AssignVendor makes the user the admin of the store.
func AssignVendor(svc StoresService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, storesUnavailable())
			return
		}
		id, err := validators.ParseURLUUID(r, "tenantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload assignVendorRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.AssignVendor(r.Context(), id, payload.UserID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"tenant_id": id.String(), "user_id": payload.UserID.String()})
	}
}

type seedRequest struct {
	BusinessType string `json:"business_type,omitempty"`
}

// SeedStore adds the preset demo catalog to a store. The business type
// defaults to the store's own.
func SeedStore(svc StoresService, seeder demoSeeder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || seeder == nil {
			responses.WriteError(r.Context(), logg, w, storesUnavailable())
			return
		}
		id, err := validators.ParseURLUUID(r, "tenantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload seedRequest
		if r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		store, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		businessType := store.BusinessType
		if raw := strings.TrimSpace(payload.BusinessType); raw != "" {
			businessType = enums.BusinessType(raw)
		}

		seeded, err := seeder.SeedDemo(r.Context(), id, businessType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, seeded)
	}
}
