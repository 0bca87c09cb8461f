package models

// LabelResolver turns a raw stored value into its display text.
type LabelResolver interface {
	OptionText(raw string) string
}

// Attribute is a named product characteristic, e.g. color or size.
// Select attributes carry options mapping stored values to labels.
type Attribute struct {
	ID      uint              `gorm:"primaryKey"`
	Code    string            `gorm:"uniqueIndex;not null"`
	Label   string            `gorm:"not null"`
	Options []AttributeOption `gorm:"foreignKey:AttributeID"`
}

func (a *Attribute) TableName() string {
	return "attributes"
}

// OptionText returns the label of the option whose value is raw. Attributes
// without options display the raw value itself. Empty and unknown values
// resolve to an empty label.
func (a *Attribute) OptionText(raw string) string {
	if raw == "" {
		return ""
	}
	if len(a.Options) == 0 {
		return raw
	}
	for _, o := range a.Options {
		if o.Value == raw {
			return o.Label
		}
	}
	return ""
}

type AttributeOption struct {
	ID          uint   `gorm:"primaryKey"`
	AttributeID uint   `gorm:"index;not null"`
	Value       string `gorm:"not null"`
	Label       string `gorm:"not null"`
	SortOrder   int    `gorm:"not null;default:0"`
}

func (o *AttributeOption) TableName() string {
	return "attribute_options"
}
