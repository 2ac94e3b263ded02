package models

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductFilters narrows a catalog listing. Zero values match everything.
type ProductFilters struct {
	PriceLessThan *decimal.Decimal
	InStock       bool
}

func (f ProductFilters) match(p Product) bool {
	if f.PriceLessThan != nil && !p.Price.LessThan(*f.PriceLessThan) {
		return false
	}
	if f.InStock && p.Stock <= 0 {
		return false
	}
	return true
}

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) GetAllProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

// GetFilteredProducts returns one page of matching products ordered by id,
// plus the number of matches across all pages.
func (r *ProductsRepository) GetFilteredProducts(ctx context.Context, offset, limit int, filters ProductFilters) ([]Product, int64, error) {
	var products []Product
	var total int64

	query := r.db.WithContext(ctx).Model(&Product{})

	// Filter
	if filters.PriceLessThan != nil {
		query = query.Where("price < ?", *filters.PriceLessThan)
	}
	if filters.InStock {
		query = query.Where("stock > 0")
	}

	// Count total after filtering
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count products")
	}

	// Apply pagination
	if err := query.Order("id").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list products")
	}

	return products, total, nil
}

func (r *ProductsRepository) GetProductByID(ctx context.Context, id uint) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, errors.Wrapf(err, "get product %d", id) // Other DB error
	}
	return &product, nil
}

func (r *ProductsRepository) CreateProduct(ctx context.Context, product *Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return errors.Wrap(err, "insert product")
	}
	return nil
}
