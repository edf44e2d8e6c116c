package tenants

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/profiles"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
	"github.com/angelmondragon/storefront-backend/pkg/presets"
)

const slugConstraint = "tenants_slug_key"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type catalogService interface {
	ListCategories(ctx context.Context, tenantID uuid.UUID) ([]catalog.CategoryDTO, error)
	ListProducts(ctx context.Context, tenantID uuid.UUID, filter catalog.ProductFilter) ([]catalog.ProductDTO, error)
	SeedDemoWithTx(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, businessType enums.BusinessType) (*catalog.SeedResult, error)
}

// Service exposes tenant onboarding, settings and super admin operations.
type Service interface {
	Onboard(ctx context.Context, ownerUserID uuid.UUID, input OnboardInput) (*Onboarded, error)
	CreateStore(ctx context.Context, creatorID uuid.UUID, input OnboardInput) (*Onboarded, error)
	GetBySlug(ctx context.Context, slug string) (*Storefront, error)
	GetByID(ctx context.Context, id uuid.UUID) (*TenantDTO, error)
	UpdateSettings(ctx context.Context, id uuid.UUID, input SettingsInput) (*TenantDTO, error)
	List(ctx context.Context, params pagination.Params) (*TenantList, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AssignVendor(ctx context.Context, tenantID, userID uuid.UUID) error
}

// ServiceParams groups the tenant service dependencies.
type ServiceParams struct {
	Repo     *Repository
	Profiles *profiles.Repository
	Catalog  catalogService
	Tx       txRunner
	Logger   *logger.Logger
	// SkipDemoSeed creates stores with an empty catalog.
	SkipDemoSeed bool
}

type service struct {
	repo     *Repository
	profiles *profiles.Repository
	catalog  catalogService
	tx       txRunner
	logg     *logger.Logger
	skipSeed bool
}

// NewService builds the tenant service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("tenant repository required")
	}
	if params.Profiles == nil {
		return nil, fmt.Errorf("profiles repository required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		repo:     params.Repo,
		profiles: params.Profiles,
		catalog:  params.Catalog,
		tx:       params.Tx,
		logg:     logg,
		skipSeed: params.SkipDemoSeed,
	}, nil
}

// Onboard creates the store, binds the owner as its admin and seeds the demo catalog.
func (s *service) Onboard(ctx context.Context, ownerUserID uuid.UUID, input OnboardInput) (*Onboarded, error) {
	return s.create(ctx, ownerUserID, input, true)
}

// CreateStore is the super admin variant that leaves the creator's profile alone.
func (s *service) CreateStore(ctx context.Context, creatorID uuid.UUID, input OnboardInput) (*Onboarded, error) {
	return s.create(ctx, creatorID, input, false)
}

func (s *service) create(ctx context.Context, ownerUserID uuid.UUID, input OnboardInput, promoteOwner bool) (*Onboarded, error) {
	if ownerUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Please sign in to continue")
	}
	name := strings.TrimSpace(input.StoreName)
	whatsapp := strings.TrimSpace(input.WhatsAppNumber)
	details := map[string]string{}
	if name == "" {
		details["store_name"] = "required"
	}
	if whatsapp == "" {
		details["whatsapp_number"] = "required"
	}
	if !input.BusinessType.IsValid() {
		details["business_type"] = "invalid"
	}
	slug := Slugify(name)
	if name != "" && slug == "" {
		details["store_name"] = "must contain letters or digits"
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid store details").WithDetails(details)
	}

	owner := ownerUserID
	tenant := &models.Tenant{
		ID:             uuid.New(),
		Slug:           slug,
		StoreName:      name,
		Description:    optional(input.Description),
		BusinessType:   input.BusinessType,
		ThemeConfig:    presets.Get(input.BusinessType).Theme,
		WhatsAppNumber: &whatsapp,
		Address:        optional(input.Address),
		OwnerUserID:    &owner,
	}

	var seeded *catalog.SeedResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, tenant); err != nil {
			if db.IsUniqueViolation(err, slugConstraint) || db.IsUniqueViolation(err, "tenants.slug") {
				return pkgerrors.New(pkgerrors.CodeConflict, "a store with this name already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create tenant")
		}
		if promoteOwner {
			profileRepo := s.profiles.WithTx(tx)
			if err := profileRepo.CreateIfMissing(ctx, &models.Profile{UserID: ownerUserID}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "ensure owner profile")
			}
			if err := profileRepo.AssignTenant(ctx, ownerUserID, enums.UserRoleAdmin, &tenant.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "promote owner")
			}
		}
		if s.skipSeed {
			seeded = &catalog.SeedResult{}
			return nil
		}
		var err error
		seeded, err = s.catalog.SeedDemoWithTx(ctx, tx, tenant.ID, tenant.BusinessType)
		return err
	})
	if err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(ctx, tenant.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load tenant")
	}
	ctx = s.logg.WithFields(ctx, map[string]any{"tenant_id": tenant.ID.String(), "slug": slug})
	s.logg.Info(ctx, "store onboarded")
	return &Onboarded{Tenant: FromModel(created), Seeded: *seeded}, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Storefront, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Store not found")
	}
	tenant, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, lookupError(err)
	}
	categories, err := s.catalog.ListCategories(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}
	products, err := s.catalog.ListProducts(ctx, tenant.ID, catalog.ProductFilter{Storefront: true})
	if err != nil {
		return nil, err
	}
	return &Storefront{Tenant: FromModel(tenant), Categories: categories, Products: products}, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*TenantDTO, error) {
	tenant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err)
	}
	dto := FromModel(tenant)
	return &dto, nil
}

func (s *service) UpdateSettings(ctx context.Context, id uuid.UUID, input SettingsInput) (*TenantDTO, error) {
	tenant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err)
	}
	if input.StoreName != nil {
		name := strings.TrimSpace(*input.StoreName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name is required")
		}
		tenant.StoreName = name
	}
	if input.WhatsAppNumber != nil {
		number := strings.TrimSpace(*input.WhatsAppNumber)
		if number == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "whatsapp number is required")
		}
		tenant.WhatsAppNumber = &number
	}
	if input.Description != nil {
		tenant.Description = optional(*input.Description)
	}
	if input.Address != nil {
		tenant.Address = optional(*input.Address)
	}
	if input.LogoURL != nil {
		tenant.LogoURL = optional(*input.LogoURL)
	}
	if input.HeroImageURL != nil {
		tenant.HeroImageURL = optional(*input.HeroImageURL)
	}
	if input.Theme != nil {
		tenant.ThemeConfig = *input.Theme
	}
	if err := s.repo.Save(ctx, tenant); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update tenant")
	}
	dto := FromModel(tenant)
	return &dto, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*TenantList, error) {
	if _, err := pagination.ParseCursor(params.Cursor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	rows, next, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list tenants")
	}
	out := make([]TenantDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return &TenantList{Tenants: out, NextCursor: next}, nil
}

// Delete removes the store and all its data. Vendors bound to it revert to customers.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.profiles.WithTx(tx).DetachTenant(ctx, id); err != nil {
			return err
		}
		return s.repo.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Store not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to delete store")
	}
	return nil
}

func (s *service) AssignVendor(ctx context.Context, tenantID, userID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, tenantID); err != nil {
		return lookupError(err)
	}
	if err := s.profiles.AssignTenant(ctx, userID, enums.UserRoleAdmin, &tenantID); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "vendor profile not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to assign vendor")
	}
	return nil
}

func lookupError(err error) error {
	if db.IsNotFound(err) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Store not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load tenant")
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
