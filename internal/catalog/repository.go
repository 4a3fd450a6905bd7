package catalog

import (
	"context"
	"strings"

	"github.com/durendeer/petcare/internal/domain"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ProductRepository is the persistence contract for catalog products.
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindActive(ctx context.Context) ([]domain.Product, error)
	FindByCategory(ctx context.Context, q GetProductsByCategoryQuery) ([]domain.Product, error)
	FindBySku(ctx context.Context, sku string) (*domain.Product, error)
	Search(ctx context.Context, term string) ([]domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Updates(ctx context.Context, id int64, values map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

// GormProductRepository implements ProductRepository on gorm. Deletes are
// soft (see domain.Product.DeletedAt), so every query here automatically
// skips removed rows.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Preload("Category").
		Order("name ASC").Find(&products).Error
	return products, err
}

func (r *GormProductRepository) FindActive(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Preload("Category").
		Where("active = ?", true).
		Order("name ASC").Find(&products).Error
	return products, err
}

func (r *GormProductRepository) FindByCategory(ctx context.Context, q GetProductsByCategoryQuery) ([]domain.Product, error) {
	tx := r.db.WithContext(ctx).Preload("Category").
		Where("category_id = ?", q.CategoryId)
	if q.ActiveOnly {
		tx = tx.Where("active = ?", true)
	}
	if q.InStock {
		tx = tx.Where("stock_quantity > 0")
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	var products []domain.Product
	err := tx.Order(q.OrderClause()).Find(&products).Error
	return products, err
}

func (r *GormProductRepository) FindBySku(ctx context.Context, sku string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Preload("Category").
		Where("sku = ?", sku).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Search matches the term case-insensitively against the product name or
// description.
func (r *GormProductRepository) Search(ctx context.Context, term string) ([]domain.Product, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	var products []domain.Product
	err := r.db.WithContext(ctx).Preload("Category").
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Order("name ASC").Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *GormProductRepository) Updates(ctx context.Context, id int64, values map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormProductRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
