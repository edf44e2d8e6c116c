package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/presets"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes category and product management plus demo seeding.
type Service interface {
	ListCategories(ctx context.Context, tenantID uuid.UUID) ([]CategoryDTO, error)
	CreateCategory(ctx context.Context, tenantID uuid.UUID, input CategoryInput) (*CategoryDTO, error)
	UpdateCategory(ctx context.Context, tenantID, categoryID uuid.UUID, input CategoryUpdate) (*CategoryDTO, error)
	DeleteCategory(ctx context.Context, tenantID, categoryID uuid.UUID) error

	ListProducts(ctx context.Context, tenantID uuid.UUID, filter ProductFilter) ([]ProductDTO, error)
	GetProduct(ctx context.Context, tenantID, productID uuid.UUID) (*ProductDTO, error)
	CreateProduct(ctx context.Context, tenantID uuid.UUID, input ProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, tenantID, productID uuid.UUID, input ProductUpdate) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, tenantID, productID uuid.UUID) error
	CountProducts(ctx context.Context, tenantID uuid.UUID) (int64, error)

	SeedDemo(ctx context.Context, tenantID uuid.UUID, businessType enums.BusinessType) (*SeedResult, error)
	SeedDemoWithTx(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, businessType enums.BusinessType) (*SeedResult, error)
}

// CategoryInput holds the payload to create a category. A nil DisplayOrder appends.
type CategoryInput struct {
	Name         string
	ImageURL     *string
	IconName     *string
	DisplayOrder *int
}

// CategoryUpdate holds optional category mutations.
type CategoryUpdate struct {
	Name         *string
	ImageURL     *string
	IconName     *string
	DisplayOrder *int
}

// ProductFilter narrows a product listing.
type ProductFilter struct {
	CategoryID *uuid.UUID
	Search     string
	// Storefront hides unavailable products and lapsed demo products.
	Storefront bool
}

// ProductInput holds the payload to create a product.
type ProductInput struct {
	CategoryID    *uuid.UUID
	Name          string
	Description   *string
	PriceCents    int64
	Unit          string
	Images        []string
	StockQuantity int
	IsAvailable   *bool
}

// ProductUpdate holds optional product mutations. ClearCategory detaches the product.
type ProductUpdate struct {
	CategoryID    *uuid.UUID
	ClearCategory bool
	Name          *string
	Description   *string
	PriceCents    *int64
	Unit          *string
	Images        *[]string
	StockQuantity *int
	IsAvailable   *bool
}

type service struct {
	repo         *Repository
	tx           txRunner
	now          func() time.Time
	demoLifetime time.Duration
}

// Option tunes the catalog service.
type Option func(*service)

// WithDemoLifetime overrides how long seeded demo products stay visible.
func WithDemoLifetime(d time.Duration) Option {
	return func(s *service) {
		if d > 0 {
			s.demoLifetime = d
		}
	}
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, tx txRunner, opts ...Option) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	svc := &service{repo: repo, tx: tx, now: time.Now, demoLifetime: presets.DemoLifetime}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

func (s *service) ListCategories(ctx context.Context, tenantID uuid.UUID) ([]CategoryDTO, error) {
	rows, err := s.repo.ListCategories(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	out := make([]CategoryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, categoryFromModel(row))
	}
	return out, nil
}

func (s *service) CreateCategory(ctx context.Context, tenantID uuid.UUID, input CategoryInput) (*CategoryDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	order := 0
	if input.DisplayOrder != nil {
		order = *input.DisplayOrder
	} else {
		next, err := s.repo.NextDisplayOrder(ctx, tenantID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve display order")
		}
		order = next
	}

	category := models.Category{
		ID:           uuid.New(),
		TenantID:     tenantID,
		Name:         name,
		ImageURL:     trimmedPtr(input.ImageURL),
		IconName:     trimmedPtr(input.IconName),
		DisplayOrder: order,
	}
	if err := s.repo.CreateCategories(ctx, []models.Category{category}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create category")
	}
	created, err := s.repo.FindCategory(ctx, tenantID, category.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
	}
	dto := categoryFromModel(*created)
	return &dto, nil
}

func (s *service) UpdateCategory(ctx context.Context, tenantID, categoryID uuid.UUID, input CategoryUpdate) (*CategoryDTO, error) {
	category, err := s.repo.FindCategory(ctx, tenantID, categoryID)
	if err != nil {
		return nil, notFoundOr(err, "category not found", "load category")
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
		}
		category.Name = name
	}
	if input.ImageURL != nil {
		category.ImageURL = trimmedPtr(input.ImageURL)
	}
	if input.IconName != nil {
		category.IconName = trimmedPtr(input.IconName)
	}
	if input.DisplayOrder != nil {
		category.DisplayOrder = *input.DisplayOrder
	}
	if err := s.repo.SaveCategory(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update category")
	}
	dto := categoryFromModel(*category)
	return &dto, nil
}

func (s *service) DeleteCategory(ctx context.Context, tenantID, categoryID uuid.UUID) error {
	if err := s.repo.DeleteCategory(ctx, tenantID, categoryID); err != nil {
		return notFoundOr(err, "category not found", "delete category")
	}
	return nil
}

func (s *service) ListProducts(ctx context.Context, tenantID uuid.UUID, filter ProductFilter) ([]ProductDTO, error) {
	rows, err := s.repo.ListProducts(ctx, tenantID, ProductQuery{
		CategoryID:      filter.CategoryID,
		Search:          filter.Search,
		AvailableOnly:   filter.Storefront,
		HideExpiredDemo: filter.Storefront,
		Now:             s.now().UTC(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, productFromModel(row))
	}
	return out, nil
}

func (s *service) GetProduct(ctx context.Context, tenantID, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, notFoundOr(err, "product not found", "load product")
	}
	dto := productFromModel(*product)
	return &dto, nil
}

func (s *service) CreateProduct(ctx context.Context, tenantID uuid.UUID, input ProductInput) (*ProductDTO, error) {
	name := strings.TrimSpace(input.Name)
	unit := strings.TrimSpace(input.Unit)
	if err := validateProductFields(name, unit, input.PriceCents, input.StockQuantity); err != nil {
		return nil, err
	}
	if input.CategoryID != nil {
		if err := s.ensureCategory(ctx, tenantID, *input.CategoryID); err != nil {
			return nil, err
		}
	}
	available := true
	if input.IsAvailable != nil {
		available = *input.IsAvailable
	}

	product := models.Product{
		ID:            uuid.New(),
		TenantID:      tenantID,
		CategoryID:    input.CategoryID,
		Name:          name,
		Description:   trimmedPtr(input.Description),
		PriceCents:    input.PriceCents,
		Unit:          unit,
		Images:        cleanImages(input.Images),
		StockQuantity: input.StockQuantity,
		IsAvailable:   available,
	}
	if err := s.repo.CreateProducts(ctx, []models.Product{product}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return s.GetProduct(ctx, tenantID, product.ID)
}

func (s *service) UpdateProduct(ctx context.Context, tenantID, productID uuid.UUID, input ProductUpdate) (*ProductDTO, error) {
	product, err := s.repo.FindProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, notFoundOr(err, "product not found", "load product")
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Unit != nil {
		product.Unit = strings.TrimSpace(*input.Unit)
	}
	if input.PriceCents != nil {
		product.PriceCents = *input.PriceCents
	}
	if input.StockQuantity != nil {
		product.StockQuantity = *input.StockQuantity
	}
	if err := validateProductFields(product.Name, product.Unit, product.PriceCents, product.StockQuantity); err != nil {
		return nil, err
	}
	if input.Description != nil {
		product.Description = trimmedPtr(input.Description)
	}
	if input.Images != nil {
		product.Images = cleanImages(*input.Images)
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}
	switch {
	case input.ClearCategory:
		product.CategoryID = nil
	case input.CategoryID != nil:
		if err := s.ensureCategory(ctx, tenantID, *input.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = input.CategoryID
	}

	if err := s.repo.SaveProduct(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	dto := productFromModel(*product)
	return &dto, nil
}

func (s *service) DeleteProduct(ctx context.Context, tenantID, productID uuid.UUID) error {
	if err := s.repo.DeleteProduct(ctx, tenantID, productID); err != nil {
		return notFoundOr(err, "product not found", "delete product")
	}
	return nil
}

func (s *service) CountProducts(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	n, err := s.repo.CountProducts(ctx, tenantID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count products")
	}
	return n, nil
}

func (s *service) SeedDemo(ctx context.Context, tenantID uuid.UUID, businessType enums.BusinessType) (*SeedResult, error) {
	var result *SeedResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		result, err = s.SeedDemoWithTx(ctx, tx, tenantID, businessType)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SeedDemoWithTx inserts the preset categories and demo products. Products
// land in the category at their preset index, or the first one.
func (s *service) SeedDemoWithTx(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, businessType enums.BusinessType) (*SeedResult, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id is required")
	}
	if !businessType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid business type")
	}
	repo := s.repo.WithTx(tx)
	preset := presets.Get(businessType)

	categories := make([]models.Category, 0, len(preset.DefaultCategories))
	for i, c := range preset.DefaultCategories {
		icon := c.IconName
		categories = append(categories, models.Category{
			ID:           uuid.New(),
			TenantID:     tenantID,
			Name:         c.Name,
			IconName:     &icon,
			DisplayOrder: i,
		})
	}
	if err := repo.CreateCategories(ctx, categories); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to seed categories")
	}

	expiry := s.now().UTC().Add(s.demoLifetime)
	products := make([]models.Product, 0, len(preset.DemoProducts))
	for _, p := range preset.DemoProducts {
		var categoryID *uuid.UUID
		switch {
		case p.CategoryIndex >= 0 && p.CategoryIndex < len(categories):
			categoryID = &categories[p.CategoryIndex].ID
		case len(categories) > 0:
			categoryID = &categories[0].ID
		}
		description := p.Description
		products = append(products, models.Product{
			ID:            uuid.New(),
			TenantID:      tenantID,
			CategoryID:    categoryID,
			Name:          p.Name,
			Description:   &description,
			PriceCents:    p.PriceCents,
			Unit:          p.Unit,
			Images:        pq.StringArray{p.Image},
			StockQuantity: presets.DemoStock,
			IsAvailable:   true,
			IsDemo:        true,
			DemoExpiresAt: &expiry,
		})
	}
	if err := repo.CreateProducts(ctx, products); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "seed demo products")
	}

	return &SeedResult{Categories: len(categories), Products: len(products)}, nil
}

func (s *service) ensureCategory(ctx context.Context, tenantID, categoryID uuid.UUID) error {
	if _, err := s.repo.FindCategory(ctx, tenantID, categoryID); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeValidation, "category does not belong to this store")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
	}
	return nil
}

func validateProductFields(name, unit string, priceCents int64, stock int) error {
	details := map[string]string{}
	if name == "" {
		details["name"] = "required"
	}
	if unit == "" {
		details["unit"] = "required"
	}
	if priceCents < 0 {
		details["price"] = "must not be negative"
	}
	if stock < 0 {
		details["stock_quantity"] = "must not be negative"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product").WithDetails(details)
	}
	return nil
}

func cleanImages(images []string) pq.StringArray {
	out := make(pq.StringArray, 0, len(images))
	for _, img := range images {
		if trimmed := strings.TrimSpace(img); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func trimmedPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func notFoundOr(err error, notFound, op string) error {
	if db.IsNotFound(err) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFound)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, op)
}
