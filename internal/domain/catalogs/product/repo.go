package product

import (
	"context"

	"vendorgate/internal/core/id"
	"vendorgate/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// FindByItemCode retrieves a product by the distributor SKU.
	FindByItemCode(ctx context.Context, distributorID id.ID, itemCode string) (*Product, error)

	// FindByBarcode retrieves a product by barcode.
	FindByBarcode(ctx context.Context, distributorID id.ID, barcode string) (*Product, error)

	// ListByDistributor retrieves the distributor's catalog page.
	ListByDistributor(ctx context.Context, distributorID id.ID, filter domain.ListFilter) (domain.ListResult[*Product], error)
}
