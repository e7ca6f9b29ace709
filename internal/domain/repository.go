// Package domain holds shared repository contracts for catalog and document
// storage.
package domain

import (
	"context"

	"vendorgate/internal/core/id"
)

// ListFilter carries common listing parameters.
type ListFilter struct {
	// Search is a free-text filter matched against code and name.
	Search string

	// IncludeDeleted includes soft-deleted rows.
	IncludeDeleted bool

	Limit  int
	Offset int
}

// Normalize applies defaults and caps.
func (f *ListFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 200 {
		f.Limit = 200
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// ListResult wraps a page of items with the unpaged total.
type ListResult[T any] struct {
	Items      []T
	TotalCount int64
}

// CatalogRepository is the common persistence contract for reference data.
type CatalogRepository[T any] interface {
	Create(ctx context.Context, entity T) error
	Update(ctx context.Context, entity T) error
	GetByID(ctx context.Context, entityID id.ID) (T, error)
	List(ctx context.Context, filter ListFilter) (ListResult[T], error)

	// Delete soft-deletes by setting the deletion mark.
	Delete(ctx context.Context, entityID id.ID) error
}
