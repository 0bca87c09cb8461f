package configurable

import (
	"context"

	"github.com/mytheresa/go-configurable-catalog/models"
)

// --- Mock Store ---

type MockStore struct {
	Products   map[uint]models.Product
	Attributes map[uint][]models.Attribute
	Children   map[uint][]uint
	Err        error

	calls        int
	lastIDs      []uint
	lastReplaced struct {
		parentID     uint
		attributeIDs []uint
		childIDs     []uint
	}
}

func (m *MockStore) FilterIDsByType(ctx context.Context, ids []uint, typeID string) ([]uint, error) {
	m.calls++
	m.lastIDs = ids
	if m.Err != nil {
		return nil, m.Err
	}
	var out []uint
	for _, id := range ids {
		if p, ok := m.Products[id]; ok && p.TypeID == typeID {
			out = append(out, id)
		}
	}
	return out, nil
}

func (m *MockStore) ConfigurableAttributes(ctx context.Context, parentID uint) ([]models.Attribute, error) {
	m.calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Attributes[parentID], nil
}

func (m *MockStore) UsedProducts(ctx context.Context, parentID uint) ([]models.Product, error) {
	m.calls++
	if m.Err != nil {
		return nil, m.Err
	}
	var out []models.Product
	for _, id := range m.Children[parentID] {
		out = append(out, m.Products[id])
	}
	return out, nil
}

func (m *MockStore) ReplaceConfiguration(ctx context.Context, parentID uint, attributeIDs, childIDs []uint) error {
	m.calls++
	m.lastReplaced.parentID = parentID
	m.lastReplaced.attributeIDs = attributeIDs
	m.lastReplaced.childIDs = childIDs
	return m.Err
}

func (m *MockStore) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	return &p, nil
}

func (m *MockStore) GetByCodes(ctx context.Context, codes []string) ([]models.Attribute, error) {
	var out []models.Attribute
	for _, code := range codes {
		a, ok := attributesByCode[code]
		if !ok {
			return nil, models.ErrAttributeNotFound
		}
		out = append(out, a)
	}
	return out, nil
}

// --- Helpers ---

var (
	colorAttr = models.Attribute{ID: 93, Code: "color", Label: "Color", Options: []models.AttributeOption{
		{Value: "4", Label: "Red"},
		{Value: "5", Label: "Blue"},
	}}
	sizeAttr = models.Attribute{ID: 94, Code: "size", Label: "Size", Options: []models.AttributeOption{
		{Value: "10", Label: "S"},
		{Value: "11", Label: "M"},
	}}
	attributesByCode = map[string]models.Attribute{"color": colorAttr, "size": sizeAttr}
)

func newProduct(id uint, typeID string, values models.AttributeValues) models.Product {
	p := models.Product{ID: id, SKU: "SKU-" + typeID, TypeID: typeID}
	p.SetAttributes(values)
	return p
}

// newShirtStore returns parent 1 with attributes [color, size] and
// children 101 (Red/M) and 102 (Blue/M).
func newShirtStore() *MockStore {
	return &MockStore{
		Products: map[uint]models.Product{
			1:   newProduct(1, models.TypeConfigurable, nil),
			101: newProduct(101, models.TypeSimple, models.AttributeValues{"color": "4", "size": "11"}),
			102: newProduct(102, models.TypeSimple, models.AttributeValues{"color": "5", "size": "11"}),
			200: newProduct(200, models.TypeSimple, nil),
		},
		Attributes: map[uint][]models.Attribute{1: {colorAttr, sizeAttr}},
		Children:   map[uint][]uint{1: {101, 102}},
	}
}
