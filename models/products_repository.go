package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type ProductsRepository struct {
	db *gorm.DB
}

type ProductFilters struct {
	CategoryCode  string
	TypeID        string
	PriceLessThan *float64
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) GetFilteredProducts(ctx context.Context, offset, limit int, filters ProductFilters) ([]Product, int64, error) {
	var products []Product
	var total int64

	query := r.db.WithContext(ctx).Model(&Product{}).
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Preload("Category")

	// Filter
	if filters.CategoryCode != "" {
		query = query.Where("categories.code = ?", filters.CategoryCode)
	}
	if filters.TypeID != "" {
		query = query.Where("products.type_id = ?", filters.TypeID)
	}
	if filters.PriceLessThan != nil {
		query = query.Where("products.price < ?", *filters.PriceLessThan)
	}

	// Count total after filtering
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, storeError("count products", err)
	}

	if err := query.Order("products.id").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, storeError("list products", err)
	}

	return products, total, nil
}

func (r *ProductsRepository) GetBySKU(ctx context.Context, sku string) (*Product, error) {
	return r.first(ctx, "products.sku = ?", sku)
}

func (r *ProductsRepository) GetByID(ctx context.Context, id uint) (*Product, error) {
	return r.first(ctx, "products.id = ?", id)
}

func (r *ProductsRepository) first(ctx context.Context, cond string, arg any) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where(cond, arg).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, storeError("get product", err)
	}
	return &product, nil
}

func (r *ProductsRepository) Create(ctx context.Context, product *Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return storeError("create product", err)
	}
	return nil
}
