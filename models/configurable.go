package models

// SuperAttribute puts an attribute in the configurable set of a parent
// product. Position orders the set.
type SuperAttribute struct {
	ID          uint      `gorm:"primaryKey"`
	ParentID    uint      `gorm:"uniqueIndex:idx_super_attribute_parent;not null"`
	AttributeID uint      `gorm:"uniqueIndex:idx_super_attribute_parent;not null"`
	Attribute   Attribute `gorm:"foreignKey:AttributeID"`
	Position    int       `gorm:"not null;default:0"`
}

func (s *SuperAttribute) TableName() string {
	return "product_super_attributes"
}

// SuperLink associates a child product with its configurable parent.
type SuperLink struct {
	ID       uint `gorm:"primaryKey"`
	ParentID uint `gorm:"uniqueIndex:idx_super_link_parent_child;not null"`
	ChildID  uint `gorm:"uniqueIndex:idx_super_link_parent_child;index;not null"`
	Position int  `gorm:"not null;default:0"`
}

func (s *SuperLink) TableName() string {
	return "product_super_links"
}
