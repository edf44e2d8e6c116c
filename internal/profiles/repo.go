package profiles

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// Repository exposes profile persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a profiles repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindByUserID loads the profile for an auth provider user.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreateIfMissing inserts a customer profile unless one already exists.
func (r *Repository) CreateIfMissing(ctx context.Context, profile *models.Profile) error {
	if profile.Role == "" {
		profile.Role = enums.UserRoleCustomer
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(profile).Error
}

// Save persists every column of the profile.
func (r *Repository) Save(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// AssignTenant sets the role and tenant binding. Returns ErrRecordNotFound
// when the profile does not exist.
func (r *Repository) AssignTenant(ctx context.Context, userID uuid.UUID, role enums.UserRole, tenantID *uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{"role": role, "tenant_id": tenantID})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DetachTenant drops every profile binding to the tenant back to customer.
func (r *Repository) DetachTenant(ctx context.Context, tenantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("tenant_id = ? AND role <> ?", tenantID, enums.UserRoleSuperAdmin).
		Updates(map[string]any{"role": enums.UserRoleCustomer, "tenant_id": nil}).Error
}
