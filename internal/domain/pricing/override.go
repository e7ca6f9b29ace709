package pricing

import (
	"context"

	"vendorgate/internal/core/apperror"
	"vendorgate/internal/core/entity"
	"vendorgate/internal/core/id"
	"vendorgate/internal/core/types"
)

// VendorPriceOverride is a vendor-specific price layer: one vendor, one
// product. Either price may be absent; the layer only participates in
// resolution for the unit types it actually carries.
type VendorPriceOverride struct {
	entity.BaseEntity

	DistributorID id.ID `db:"distributor_id" json:"distributorId"`
	VendorID      id.ID `db:"vendor_id" json:"vendorId"`
	ProductID     id.ID `db:"product_id" json:"productId"`

	UnitPrice types.NullMoney `db:"unit_price" json:"unitPrice"`
	CasePrice types.NullMoney `db:"case_price" json:"casePrice"`
}

// Layer adapts the row into a resolver override layer.
func (o *VendorPriceOverride) Layer() *Override {
	if o == nil {
		return nil
	}
	return &Override{UnitPrice: o.UnitPrice, CasePrice: o.CasePrice}
}

// Validate implements entity.Validatable.
func (o *VendorPriceOverride) Validate(ctx context.Context) error {
	if id.IsNil(o.VendorID) {
		return apperror.NewValidation("vendor is required").
			WithDetail("field", "vendorId")
	}
	if id.IsNil(o.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	if !o.UnitPrice.Valid && !o.CasePrice.Valid {
		return apperror.NewValidation("override must carry at least one price").
			WithDetail("field", "unitPrice")
	}
	for field, price := range map[string]types.NullMoney{
		"unitPrice": o.UnitPrice,
		"casePrice": o.CasePrice,
	} {
		if price.Valid && price.Decimal.IsNegative() {
			return apperror.NewValidation("price cannot be negative").
				WithDetail("field", field)
		}
	}
	return nil
}

// BulkPricing is the bulk price layer: a tier row for one product that
// applies regardless of vendor. Sits below vendor overrides and above the
// product's own prices.
type BulkPricing struct {
	entity.BaseEntity

	DistributorID id.ID `db:"distributor_id" json:"distributorId"`
	ProductID     id.ID `db:"product_id" json:"productId"`

	UnitPrice types.NullMoney `db:"unit_price" json:"unitPrice"`
	CasePrice types.NullMoney `db:"case_price" json:"casePrice"`
}

// Layer adapts the row into a resolver override layer.
func (b *BulkPricing) Layer() *Override {
	if b == nil {
		return nil
	}
	return &Override{UnitPrice: b.UnitPrice, CasePrice: b.CasePrice}
}

// Validate implements entity.Validatable.
func (b *BulkPricing) Validate(ctx context.Context) error {
	if id.IsNil(b.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	for field, price := range map[string]types.NullMoney{
		"unitPrice": b.UnitPrice,
		"casePrice": b.CasePrice,
	} {
		if price.Valid && price.Decimal.IsNegative() {
			return apperror.NewValidation("price cannot be negative").
				WithDetail("field", field)
		}
	}
	return nil
}
