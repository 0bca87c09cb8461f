package models

import (
	"context"
	"fmt"
	"slices"

	"gorm.io/gorm"
)

type AttributesRepository struct {
	db *gorm.DB
}

func NewAttributesRepository(db *gorm.DB) *AttributesRepository {
	return &AttributesRepository{db: db}
}

// GetByCodes returns the attributes in the order of codes. Every code must
// exist; the first unknown one is reported with ErrAttributeNotFound.
func (r *AttributesRepository) GetByCodes(ctx context.Context, codes []string) ([]Attribute, error) {
	if len(codes) == 0 {
		return []Attribute{}, nil
	}

	var found []Attribute
	if err := r.db.WithContext(ctx).
		Preload("Options").
		Where("code IN ?", codes).
		Find(&found).Error; err != nil {
		return nil, storeError("get attributes", err)
	}

	byCode := make(map[string]Attribute, len(found))
	for _, a := range found {
		sortOptions(a.Options)
		byCode[a.Code] = a
	}

	attributes := make([]Attribute, 0, len(codes))
	for _, code := range codes {
		a, ok := byCode[code]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrAttributeNotFound, code)
		}
		attributes = append(attributes, a)
	}
	return attributes, nil
}

func (r *AttributesRepository) Create(ctx context.Context, attribute *Attribute) error {
	if err := r.db.WithContext(ctx).Create(attribute).Error; err != nil {
		return storeError("create attribute", err)
	}
	return nil
}

func sortOptions(options []AttributeOption) {
	slices.SortStableFunc(options, func(a, b AttributeOption) int {
		if a.SortOrder != b.SortOrder {
			return a.SortOrder - b.SortOrder
		}
		return int(a.ID) - int(b.ID)
	})
}
