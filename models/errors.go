package models

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrCategoryExists is returned when a category code is already taken.
	ErrCategoryExists = errors.New("category already exists")
	// ErrAttributeNotFound is returned when an attribute code is unknown.
	ErrAttributeNotFound = errors.New("attribute not found")
	// ErrStoreUnavailable wraps every failure of the underlying database.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrNotConfigurable is returned when a configurable operation targets
	// a product of another type.
	ErrNotConfigurable = errors.New("product is not configurable")
	// ErrInvalidChild is returned when a variant is missing or is itself
	// configurable.
	ErrInvalidChild = errors.New("invalid child product")
)

func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
