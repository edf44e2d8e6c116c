package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// Repository handles category and product persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to catalog operations.
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

// ProductQuery narrows product listings.
type ProductQuery struct {
	CategoryID      *uuid.UUID
	Search          string
	AvailableOnly   bool
	HideExpiredDemo bool
	Now             time.Time
}

func (r *Repository) ListCategories(ctx context.Context, tenantID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("display_order ASC").
		Order("created_at ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *Repository) FindCategory(ctx context.Context, tenantID, categoryID uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, categoryID).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *Repository) NextDisplayOrder(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var maxOrder int
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Select("COALESCE(MAX(display_order), -1)").
		Where("tenant_id = ?", tenantID).
		Scan(&maxOrder).Error
	if err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}

func (r *Repository) CreateCategories(ctx context.Context, categories []models.Category) error {
	if len(categories) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&categories).Error
}

func (r *Repository) SaveCategory(ctx context.Context, category *models.Category) error {
	if category == nil {
		return fmt.Errorf("category is required")
	}
	return r.db.WithContext(ctx).Save(category).Error
}

// DeleteCategory removes the category and detaches its products.
func (r *Repository) DeleteCategory(ctx context.Context, tenantID, categoryID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).
			Where("tenant_id = ? AND category_id = ?", tenantID, categoryID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		res := tx.Where("tenant_id = ? AND id = ?", tenantID, categoryID).Delete(&models.Category{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *Repository) ListProducts(ctx context.Context, tenantID uuid.UUID, q ProductQuery) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if q.CategoryID != nil {
		query = query.Where("category_id = ?", *q.CategoryID)
	}
	if term := strings.ToLower(strings.TrimSpace(q.Search)); term != "" {
		like := "%" + term + "%"
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?)", like, like)
	}
	if q.AvailableOnly {
		query = query.Where("is_available = ?", true)
	}
	if q.HideExpiredDemo {
		query = query.Where("(is_demo = ? OR demo_expires_at IS NULL OR demo_expires_at > ?)", false, q.Now)
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Order("id DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// CountProducts counts every product the tenant owns, demo rows included.
func (r *Repository) CountProducts(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("tenant_id = ?", tenantID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Repository) FindProduct(ctx context.Context, tenantID, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, productID).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) CreateProducts(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&products).Error
}

func (r *Repository) SaveProduct(ctx context.Context, product *models.Product) error {
	if product == nil {
		return fmt.Errorf("product is required")
	}
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *Repository) DeleteProduct(ctx context.Context, tenantID, productID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, productID).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteExpiredDemo removes demo products whose expiry is at or before cutoff.
func (r *Repository) DeleteExpiredDemo(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("is_demo = ? AND demo_expires_at IS NOT NULL AND demo_expires_at <= ?", true, cutoff).
		Delete(&models.Product{})
	return res.RowsAffected, res.Error
}
