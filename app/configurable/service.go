package configurable

import (
	"context"
	"fmt"

	"github.com/mytheresa/go-configurable-catalog/models"
	"go.uber.org/zap"
)

const (
	tabLabel  = "Associated Products"
	parentTab = "product-details"
	tabClass  = "ajax"
)

type ProductLookup interface {
	GetByID(ctx context.Context, id uint) (*models.Product, error)
}

type AttributeLookup interface {
	GetByCodes(ctx context.Context, codes []string) ([]models.Attribute, error)
}

type ConfigStore interface {
	LinkStore
	ReplaceConfiguration(ctx context.Context, parentID uint, attributeIDs, childIDs []uint) error
}

// Invalidator drops cached data of a parent after its configuration changed.
type Invalidator interface {
	Invalidate(ctx context.Context, parentID uint) error
}

// Tab is the data behind the admin "Associated Products" tab of a product.
type Tab struct {
	ProductID                       uint           `json:"product_id"`
	Label                           string         `json:"label"`
	Title                           string         `json:"title"`
	TabClass                        string         `json:"tab_class"`
	ParentTab                       string         `json:"parent_tab"`
	CanShowTab                      bool           `json:"can_show_tab"`
	IsHidden                        bool           `json:"is_hidden"`
	Readonly                        bool           `json:"readonly"`
	AttributesConfigurationReadonly bool           `json:"attributes_configuration_readonly"`
	AttributesPricesReadonly        bool           `json:"attributes_prices_readonly"`
	IsConfigurable                  bool           `json:"is_configurable"`
	Attributes                      []TabAttribute `json:"attributes"`
	SelectedAttributes              []TabAttribute `json:"selected_attributes"`
	Links                           VariantMap     `json:"links"`
}

type TabAttribute struct {
	ID      uint        `json:"attribute_id"`
	Code    string      `json:"code"`
	Label   string      `json:"label"`
	Options []TabOption `json:"values"`
}

type TabOption struct {
	Value string `json:"value_index"`
	Label string `json:"label"`
}

// Service backs the admin screens of configurable products.
type Service struct {
	products         ProductLookup
	attributes       AttributeLookup
	store            ConfigStore
	variants         VariantSource
	priceScopeGlobal bool
	logger           *zap.SugaredLogger
}

// NewService wires the admin service. When variants also implements
// Invalidator it is invalidated after every configuration change.
func NewService(products ProductLookup, attributes AttributeLookup, store ConfigStore, variants VariantSource, priceScopeGlobal bool, logger *zap.SugaredLogger) *Service {
	return &Service{
		products:         products,
		attributes:       attributes,
		store:            store,
		variants:         variants,
		priceScopeGlobal: priceScopeGlobal,
		logger:           logger,
	}
}

// TabData assembles the tab of product productID. requestedAttributes
// marks an admin request that is turning the product into a configurable
// one.
func (s *Service) TabData(ctx context.Context, productID uint, requestedAttributes bool) (*Tab, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	readonly := product.CompositeReadonly
	tab := &Tab{
		ProductID:                       product.ID,
		Label:                           tabLabel,
		Title:                           tabLabel,
		TabClass:                        tabClass,
		ParentTab:                       parentTab,
		CanShowTab:                      true,
		IsHidden:                        false,
		Readonly:                        readonly,
		AttributesConfigurationReadonly: product.AttributesConfigurationReadonly,
		AttributesPricesReadonly:        product.AttributesConfigurationReadonly || (s.priceScopeGlobal && readonly),
		IsConfigurable:                  product.IsConfigurable() || requestedAttributes,
		Attributes:                      []TabAttribute{},
		SelectedAttributes:              []TabAttribute{},
		Links:                           VariantMap{},
	}

	if !product.IsConfigurable() {
		return tab, nil
	}

	attributes, err := s.store.ConfigurableAttributes(ctx, product.ID)
	if err != nil {
		return nil, unavailable("tab attributes", err)
	}
	for i := range attributes {
		tab.Attributes = append(tab.Attributes, newTabAttribute(&attributes[i]))
	}
	tab.SelectedAttributes = tab.Attributes

	links, err := s.variants.BuildVariantMap(ctx, product)
	if err != nil {
		return nil, err
	}
	tab.Links = links
	return tab, nil
}

// Links returns the variant map of product productID; non-configurable
// products have none.
func (s *Service) Links(ctx context.Context, productID uint) (VariantMap, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsConfigurable() {
		return VariantMap{}, nil
	}
	return s.variants.BuildVariantMap(ctx, product)
}

// Configure replaces the attribute set and the variants of a configurable
// product. Duplicate codes and ids keep their first position.
func (s *Service) Configure(ctx context.Context, productID uint, attributeCodes []string, childIDs []uint) error {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if !product.IsConfigurable() {
		return fmt.Errorf("%w: %s", models.ErrNotConfigurable, product.SKU)
	}

	attributes, err := s.attributes.GetByCodes(ctx, dedupe(attributeCodes))
	if err != nil {
		return err
	}
	attributeIDs := make([]uint, len(attributes))
	for i, a := range attributes {
		attributeIDs[i] = a.ID
	}

	children := dedupe(childIDs)
	for _, id := range children {
		if id == productID {
			return fmt.Errorf("%w: product %d cannot be its own variant", models.ErrInvalidChild, id)
		}
	}

	if err := s.store.ReplaceConfiguration(ctx, productID, attributeIDs, children); err != nil {
		return err
	}
	s.logger.Infow("configurable product updated",
		"product_id", productID,
		"attributes", len(attributeIDs),
		"children", len(children))

	if inv, ok := s.variants.(Invalidator); ok {
		if err := inv.Invalidate(ctx, productID); err != nil {
			s.logger.Warnw("variant cache invalidation failed", "product_id", productID, "error", err)
		}
	}
	return nil
}

func newTabAttribute(a *models.Attribute) TabAttribute {
	options := make([]TabOption, len(a.Options))
	for i, o := range a.Options {
		options[i] = TabOption{Value: o.Value, Label: o.Label}
	}
	return TabAttribute{ID: a.ID, Code: a.Code, Label: a.Label, Options: options}
}

func dedupe[T comparable](in []T) []T {
	seen := make(map[T]struct{}, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
