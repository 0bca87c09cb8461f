package configurable

import (
	"context"
	"slices"

	"github.com/mytheresa/go-configurable-catalog/app/metrics"
	"github.com/mytheresa/go-configurable-catalog/models"
)

type TypeStore interface {
	FilterIDsByType(ctx context.Context, ids []uint, typeID string) ([]uint, error)
}

// ProductFilter narrows a candidate set of product ids to one type.
type ProductFilter struct {
	store TypeStore
}

func NewProductFilter(store TypeStore) *ProductFilter {
	return &ProductFilter{store: store}
}

// FilterByType returns the ids among candidates whose stored type is
// typeID, ascending. Unknown ids are dropped; an empty candidate set never
// reaches the store.
func (f *ProductFilter) FilterByType(ctx context.Context, candidates []uint, typeID string) ([]uint, error) {
	if len(candidates) == 0 {
		return []uint{}, nil
	}

	ids := slices.Clone(candidates)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	matched, err := f.store.FilterIDsByType(ctx, ids, typeID)
	if err != nil {
		metrics.ProductFilterCalls.WithLabelValues(typeID, "error").Inc()
		return nil, unavailable("filter products by type", err)
	}
	metrics.ProductFilterCalls.WithLabelValues(typeID, "ok").Inc()

	if matched == nil {
		matched = []uint{}
	}
	return matched, nil
}

// ConfigurableIDs keeps the configurable products among candidates.
func (f *ProductFilter) ConfigurableIDs(ctx context.Context, candidates []uint) ([]uint, error) {
	return f.FilterByType(ctx, candidates, models.TypeConfigurable)
}
