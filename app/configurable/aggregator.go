package configurable

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mytheresa/go-configurable-catalog/app/metrics"
	"github.com/mytheresa/go-configurable-catalog/models"
)

// ErrNilProduct is returned when no parent product is given.
var ErrNilProduct = errors.New("nil product")

type LinkStore interface {
	ConfigurableAttributes(ctx context.Context, parentID uint) ([]models.Attribute, error)
	UsedProducts(ctx context.Context, parentID uint) ([]models.Product, error)
}

// VariantSource builds the variant map of a configurable parent.
type VariantSource interface {
	BuildVariantMap(ctx context.Context, parent *models.Product) (VariantMap, error)
}

// VariantAggregator resolves the variants of a configurable product and
// describes each along the parent's configurable attributes.
type VariantAggregator struct {
	store LinkStore
}

func NewVariantAggregator(store LinkStore) *VariantAggregator {
	return &VariantAggregator{store: store}
}

// BuildVariantMap returns one entry per child of parent, in link order. Every
// entry carries exactly one record per parent attribute, in attribute
// order. Either the whole map is built or an error is returned.
func (a *VariantAggregator) BuildVariantMap(ctx context.Context, parent *models.Product) (VariantMap, error) {
	if parent == nil {
		return nil, ErrNilProduct
	}
	start := time.Now()

	attributes, err := a.store.ConfigurableAttributes(ctx, parent.ID)
	if err != nil {
		metrics.VariantMapBuilds.WithLabelValues("error").Inc()
		return nil, unavailable(fmt.Sprintf("attributes of product %d", parent.ID), err)
	}
	children, err := a.store.UsedProducts(ctx, parent.ID)
	if err != nil {
		metrics.VariantMapBuilds.WithLabelValues("error").Inc()
		return nil, unavailable(fmt.Sprintf("children of product %d", parent.ID), err)
	}

	variants := make(VariantMap, 0, len(children))
	for i := range children {
		variants = append(variants, Variant{
			ProductID:  children[i].ID,
			Attributes: ConfigurableSettings(attributes, &children[i]),
		})
	}

	metrics.VariantMapBuilds.WithLabelValues("ok").Inc()
	metrics.VariantMapDuration.Observe(time.Since(start).Seconds())
	return variants, nil
}

// ConfigurableSettings describes child along attributes. A value missing
// on the child yields a record with empty label and value.
func ConfigurableSettings(attributes []models.Attribute, child *models.Product) []AttributeRecord {
	records := make([]AttributeRecord, len(attributes))
	for i := range attributes {
		raw, _ := child.AttributeValue(attributes[i].Code)
		records[i] = AttributeRecord{
			AttributeID: attributes[i].ID,
			Label:       labelOf(&attributes[i], raw),
			Value:       raw,
		}
	}
	return records
}

func labelOf(r models.LabelResolver, raw string) string {
	return r.OptionText(raw)
}

func unavailable(op string, err error) error {
	if errors.Is(err, models.ErrStoreUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, models.ErrStoreUnavailable, err)
}
