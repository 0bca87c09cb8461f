package models

import "gorm.io/gorm"

// AutoMigrate creates or updates every catalog table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Category{},
		&Attribute{},
		&AttributeOption{},
		&Product{},
		&SuperAttribute{},
		&SuperLink{},
	)
}
