package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ConfigurableRepository reads and writes the links between configurable
// parents, their attribute sets and their variants.
type ConfigurableRepository struct {
	db *gorm.DB
}

func NewConfigurableRepository(db *gorm.DB) *ConfigurableRepository {
	return &ConfigurableRepository{db: db}
}

// FilterIDsByType returns, in ascending order, the ids among ids whose
// stored type is typeID.
func (r *ConfigurableRepository) FilterIDsByType(ctx context.Context, ids []uint, typeID string) ([]uint, error) {
	matched := []uint{}
	if len(ids) == 0 {
		return matched, nil
	}
	if err := r.db.WithContext(ctx).
		Model(&Product{}).
		Where("type_id = ?", typeID).
		Where("id IN ?", ids).
		Order("id").
		Pluck("id", &matched).Error; err != nil {
		return nil, storeError("filter products by type", err)
	}
	return matched, nil
}

// ConfigurableAttributes returns the attribute set of a parent in
// configured order, options included.
func (r *ConfigurableRepository) ConfigurableAttributes(ctx context.Context, parentID uint) ([]Attribute, error) {
	var links []SuperAttribute
	if err := r.db.WithContext(ctx).
		Preload("Attribute.Options").
		Where("parent_id = ?", parentID).
		Order("position, id").
		Find(&links).Error; err != nil {
		return nil, storeError("get configurable attributes", err)
	}

	attributes := make([]Attribute, len(links))
	for i, l := range links {
		sortOptions(l.Attribute.Options)
		attributes[i] = l.Attribute
	}
	return attributes, nil
}

// UsedProducts returns the variants of a parent in link order. Configurable
// products are never returned as variants.
func (r *ConfigurableRepository) UsedProducts(ctx context.Context, parentID uint) ([]Product, error) {
	var children []Product
	if err := r.db.WithContext(ctx).
		Model(&Product{}).
		Joins("JOIN product_super_links ON product_super_links.child_id = products.id").
		Where("product_super_links.parent_id = ?", parentID).
		Where("products.type_id <> ?", TypeConfigurable).
		Order("product_super_links.position, products.id").
		Find(&children).Error; err != nil {
		return nil, storeError("get used products", err)
	}
	return children, nil
}

// ReplaceConfiguration swaps the attribute set and variants of a parent in
// one transaction. Positions follow slice order.
func (r *ConfigurableRepository) ReplaceConfiguration(ctx context.Context, parentID uint, attributeIDs, childIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(childIDs) > 0 {
			var valid int64
			if err := tx.Model(&Product{}).
				Where("id IN ?", childIDs).
				Where("type_id <> ?", TypeConfigurable).
				Where("id <> ?", parentID).
				Count(&valid).Error; err != nil {
				return err
			}
			if valid != int64(len(childIDs)) {
				return ErrInvalidChild
			}
		}

		if err := tx.Where("parent_id = ?", parentID).Delete(&SuperAttribute{}).Error; err != nil {
			return err
		}
		if err := tx.Where("parent_id = ?", parentID).Delete(&SuperLink{}).Error; err != nil {
			return err
		}

		if len(attributeIDs) > 0 {
			attrs := make([]SuperAttribute, len(attributeIDs))
			for i, id := range attributeIDs {
				attrs[i] = SuperAttribute{ParentID: parentID, AttributeID: id, Position: i}
			}
			if err := tx.Create(&attrs).Error; err != nil {
				return err
			}
		}
		if len(childIDs) > 0 {
			links := make([]SuperLink, len(childIDs))
			for i, id := range childIDs {
				links[i] = SuperLink{ParentID: parentID, ChildID: id, Position: i}
			}
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidChild) {
			return err
		}
		return storeError("replace configuration", err)
	}
	return nil
}
