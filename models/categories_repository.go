package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{db: db}
}

func (r *CategoriesRepository) GetAllCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).Order("code").Find(&categories).Error; err != nil {
		return nil, storeError("list categories", err)
	}
	return categories, nil
}

func (r *CategoriesRepository) CreateCategory(ctx context.Context, category *Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCategoryExists
		}
		return storeError("create category", err)
	}
	return nil
}
