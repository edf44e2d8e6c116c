package admin

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/money"
)

// CatalogService is the category and product surface used by store admins.
type CatalogService interface {
	ListCategories(ctx context.Context, tenantID uuid.UUID) ([]catalog.CategoryDTO, error)
	CreateCategory(ctx context.Context, tenantID uuid.UUID, input catalog.CategoryInput) (*catalog.CategoryDTO, error)
	UpdateCategory(ctx context.Context, tenantID, categoryID uuid.UUID, input catalog.CategoryUpdate) (*catalog.CategoryDTO, error)
	DeleteCategory(ctx context.Context, tenantID, categoryID uuid.UUID) error
	ListProducts(ctx context.Context, tenantID uuid.UUID, filter catalog.ProductFilter) ([]catalog.ProductDTO, error)
	GetProduct(ctx context.Context, tenantID, productID uuid.UUID) (*catalog.ProductDTO, error)
	CreateProduct(ctx context.Context, tenantID uuid.UUID, input catalog.ProductInput) (*catalog.ProductDTO, error)
	UpdateProduct(ctx context.Context, tenantID, productID uuid.UUID, input catalog.ProductUpdate) (*catalog.ProductDTO, error)
	DeleteProduct(ctx context.Context, tenantID, productID uuid.UUID) error
}

func catalogUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable")
}

func ListCategories(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, catalogUnavailable())
			return
		}
		tenant, err := tenantID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.ListCategories(r.Context(), tenant)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

type categoryRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,max=80"`
	ImageURL     *string `json:"image_url,omitempty"`
	IconName     *string `json:"icon_name,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty" validate:"omitempty,min=0"`
}

func CreateCategory(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, catalogUnavailable())
			return
		}
		tenant, err := tenantID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload categoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input := catalog.CategoryInput{
			ImageURL:     payload.ImageURL,
			IconName:     payload.IconName,
			DisplayOrder: payload.DisplayOrder,
		}
		if payload.Name != nil {
			input.Name = *payload.Name
		}
		created, err := svc.CreateCategory(r.Context(), tenant, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func UpdateCategory(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, catalogUnavailable())
			return
		}
		tenant, err := tenantID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categoryID, err := validators.ParseURLUUID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload categoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.UpdateCategory(r.Context(), tenant, categoryID, catalog.CategoryUpdate{
			Name:         payload.Name,
			ImageURL:     payload.ImageURL,
			IconName:     payload.IconName,
			DisplayOrder: payload.DisplayOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func DeleteCategory(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, catalogUnavailable())
			return
		}
		tenant, err := tenantID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categoryID, err := validators.ParseURLUUID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteCategory(r.Context(), tenant, categoryID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

// ListProducts returns every product of the store, including hidden ones.
func ListProducts(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, catalogUnavailable())
			return
		}
		tenant, err := tenantID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categoryID, err := validators.ParseQueryUUID(r, "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.ListProducts(r.Context(), tenant, catalog.ProductFilter{
			CategoryID: categoryID,
			Search:     strings.TrimSpace(r.URL.Query().Get("q")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func GetProduct(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, catalogUnavailable())
			return
		}
		tenant, err := tenantID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParseURLUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.GetProduct(r.Context(), tenant, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// productRequest carries prices as numbers in major units, e.g. 45.5.
type productRequest struct {
	CategoryID    *uuid.UUID    `json:"category_id,omitempty"`
	ClearCategory bool          `json:"clear_category,omitempty"`
	Name          *string       `json:"name,omitempty" validate:"omitempty,max=160"`
	Description   *string       `json:"description,omitempty"`
	Price         *money.Amount `json:"price,omitempty"`
	Unit          *string       `json:"unit,omitempty" validate:"omitempty,max=32"`
	Images        *[]string     `json:"images,omitempty" validate:"omitempty,max=10"`
	StockQuantity *int          `json:"stock_quantity,omitempty"`
	IsAvailable   *bool         `json:"is_available,omitempty"`
}

func (p productRequest) toInput() catalog.ProductInput {
	input := catalog.ProductInput{
		CategoryID:  p.CategoryID,
		Description: validators.SanitizeOptional(p.Description),
		IsAvailable: p.IsAvailable,
	}
	if p.Name != nil {
		input.Name = *p.Name
	}
	if p.Price != nil {
		input.PriceCents = p.Price.Cents()
	}
	if p.Unit != nil {
		input.Unit = *p.Unit
	}
	if p.Images != nil {
		input.Images = *p.Images
	}
	if p.StockQuantity != nil {
		input.StockQuantity = *p.StockQuantity
	}
	return input
}

func (p productRequest) toUpdate() catalog.ProductUpdate {
	update := catalog.ProductUpdate{
		CategoryID:    p.CategoryID,
		ClearCategory: p.ClearCategory,
		Name:          p.Name,
		Description:   validators.SanitizeOptional(p.Description),
		Unit:          p.Unit,
		Images:        p.Images,
		StockQuantity: p.StockQuantity,
		IsAvailable:   p.IsAvailable,
	}
	if p.Price != nil {
		cents := p.Price.Cents()
		update.PriceCents = &cents
	}
	return update
}

func CreateProduct(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, catalogUnavailable())
			return
		}
		tenant, err := tenantID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.CreateProduct(r.Context(), tenant, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func UpdateProduct(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, catalogUnavailable())
			return
		}
		tenant, err := tenantID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParseURLUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.UpdateProduct(r.Context(), tenant, productID, payload.toUpdate())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func DeleteProduct(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, catalogUnavailable())
			return
		}
		tenant, err := tenantID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParseURLUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteProduct(r.Context(), tenant, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
