package pricing

import (
	"context"

	"vendorgate/internal/core/id"
	"vendorgate/internal/core/types"
)

// Repository defines persistence for the override layers and for bulk price
// administration against the products table.
type Repository interface {
	// GetVendorOverride retrieves the vendor-specific price row for one
	// product. Returns NotFound when the vendor has no override.
	GetVendorOverride(ctx context.Context, distributorID, vendorID, productID id.ID) (*VendorPriceOverride, error)

	// GetBulkPricing retrieves the bulk price row for one product.
	// Returns NotFound when the product has no bulk tier.
	GetBulkPricing(ctx context.Context, distributorID, productID id.ID) (*BulkPricing, error)

	// UpsertVendorOverride creates or replaces a vendor override row.
	UpsertVendorOverride(ctx context.Context, override *VendorPriceOverride) error

	// UpsertBulkPricing creates or replaces a bulk pricing row.
	UpsertBulkPricing(ctx context.Context, bulk *BulkPricing) error

	// DeleteVendorOverride removes a vendor override row.
	DeleteVendorOverride(ctx context.Context, distributorID, vendorID, productID id.ID) error

	// ApplyBulkPrice writes one price or cost column on a product row.
	// The column must come from FieldTarget.Column.
	ApplyBulkPrice(ctx context.Context, distributorID, productID id.ID, column string, price types.NullMoney) error
}
