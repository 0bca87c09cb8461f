// Package modelstest opens throwaway catalog databases for tests.
package modelstest

import (
	"context"
	"testing"

	"github.com/mytheresa/go-configurable-catalog/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated in-memory SQLite database closed with the test.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a fresh database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return db
}

// Fixture is a configurable t-shirt with two variants, plus one simple
// product that belongs to no parent.
type Fixture struct {
	Category models.Category
	Color    models.Attribute
	Size     models.Attribute
	Parent   models.Product
	Red      models.Product
	Blue     models.Product
	Mug      models.Product
}

// Seed fills db with the Fixture. Children are linked Red then Blue with
// the attribute set [color, size].
func Seed(t testing.TB, db *gorm.DB) Fixture {
	t.Helper()
	ctx := context.Background()

	f := Fixture{
		Category: models.Category{Code: "clothing", Name: "Clothing"},
		Color: models.Attribute{Code: "color", Label: "Color", Options: []models.AttributeOption{
			{Value: "4", Label: "Red", SortOrder: 1},
			{Value: "5", Label: "Blue", SortOrder: 2},
		}},
		Size: models.Attribute{Code: "size", Label: "Size", Options: []models.AttributeOption{
			{Value: "10", Label: "S", SortOrder: 1},
			{Value: "11", Label: "M", SortOrder: 2},
		}},
	}
	require.NoError(t, db.Create(&f.Category).Error)

	attributes := models.NewAttributesRepository(db)
	require.NoError(t, attributes.Create(ctx, &f.Color))
	require.NoError(t, attributes.Create(ctx, &f.Size))

	products := models.NewProductsRepository(db)
	f.Parent = NewProduct("TSHIRT", models.TypeConfigurable, f.Category.ID, 25, nil)
	f.Red = NewProduct("TSHIRT-RED-M", models.TypeSimple, f.Category.ID, 25, models.AttributeValues{"color": "4", "size": "11"})
	f.Blue = NewProduct("TSHIRT-BLUE-M", models.TypeSimple, f.Category.ID, 27.5, models.AttributeValues{"color": "5", "size": "11"})
	f.Mug = NewProduct("MUG", models.TypeSimple, f.Category.ID, 9.99, nil)
	for _, p := range []*models.Product{&f.Parent, &f.Red, &f.Blue, &f.Mug} {
		require.NoError(t, products.Create(ctx, p))
	}

	links := models.NewConfigurableRepository(db)
	require.NoError(t, links.ReplaceConfiguration(ctx, f.Parent.ID,
		[]uint{f.Color.ID, f.Size.ID},
		[]uint{f.Red.ID, f.Blue.ID},
	))
	return f
}

// NewProduct builds an unsaved product.
func NewProduct(sku, typeID string, categoryID uint, price float64, values models.AttributeValues) models.Product {
	p := models.Product{
		SKU:        sku,
		Name:       sku,
		TypeID:     typeID,
		Price:      decimal.NewFromFloat(price),
		CategoryID: categoryID,
	}
	p.SetAttributes(values)
	return p
}
