package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Product type markers.
const (
	TypeSimple       = "simple"
	TypeVirtual      = "virtual"
	TypeConfigurable = "configurable"
)

// AttributeValues maps an attribute code to the raw value stored on a product.
type AttributeValues map[string]string

// Product represents a product in the catalog.
// A configurable product is the parent of a family of simple variants that
// differ along the parent's configurable attributes.
type Product struct {
	ID         uint            `gorm:"primaryKey"`
	SKU        string          `gorm:"uniqueIndex;not null"`
	Name       string          `gorm:"not null"`
	TypeID     string          `gorm:"index;not null"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CategoryID uint            `gorm:"not null"`
	Category   Category        `gorm:"foreignKey:CategoryID"`
	Data       datatypes.JSONType[AttributeValues]

	CompositeReadonly               bool `gorm:"not null;default:false"`
	AttributesConfigurationReadonly bool `gorm:"not null;default:false"`
}

func (p *Product) TableName() string {
	return "products"
}

// IsConfigurable reports whether p is a configurable parent.
func (p *Product) IsConfigurable() bool {
	return p.TypeID == TypeConfigurable
}

// AttributeValue returns the raw value stored for the attribute code.
func (p *Product) AttributeValue(code string) (string, bool) {
	v, ok := p.Data.Data()[code]
	return v, ok
}

// SetAttributes replaces the attribute values stored on p.
func (p *Product) SetAttributes(values AttributeValues) {
	p.Data = datatypes.NewJSONType(values)
}
