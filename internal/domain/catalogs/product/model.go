// Package product provides the product catalog: the items a distributor
// offers for wholesale ordering, including their pricing facts.
package product

import (
	"context"

	"vendorgate/internal/core/apperror"
	"vendorgate/internal/core/entity"
	"vendorgate/internal/core/id"
	"vendorgate/internal/core/types"
	"vendorgate/internal/domain/pricing"
)

// Product represents one sellable item. The price columns come in two
// generations: the sell_* pair is canonical, unit_price/case_price are the
// legacy columns still populated on rows that predate the rename. The
// resolver consults both; nothing ever backfills one from the other.
type Product struct {
	entity.Catalog

	// DistributorID is the owning distributor
	DistributorID id.ID `db:"distributor_id" json:"distributorId"`

	// Category is the display category label
	Category string `db:"category" json:"category"`

	// ItemCode is the distributor's own SKU
	ItemCode *string `db:"item_code" json:"itemCode,omitempty"`

	// Barcode is the item barcode (EAN-13, etc.)
	Barcode *string `db:"barcode" json:"barcode,omitempty"`

	// Canonical sell prices. Absent means "not priced", never zero.
	SellUnitPrice types.NullMoney `db:"sell_unit_price" json:"sellUnitPrice"`
	SellCasePrice types.NullMoney `db:"sell_case_price" json:"sellCasePrice"`

	// Legacy price columns (pre-rename schema generation)
	LegacyUnitPrice types.NullMoney `db:"unit_price" json:"legacyUnitPrice"`
	LegacyCasePrice types.NullMoney `db:"case_price" json:"legacyCasePrice"`

	// Acquisition costs, addressable by bulk-pricing field targets
	UnitCost types.NullMoney `db:"unit_cost" json:"unitCost"`
	CaseCost types.NullMoney `db:"case_cost" json:"caseCost"`

	// UnitsPerCase is how many pieces one case holds
	UnitsPerCase int `db:"units_per_case" json:"unitsPerCase"`

	// AllowPiece / AllowCase gate which units a vendor may order by
	AllowPiece bool `db:"allow_piece" json:"allowPiece"`
	AllowCase  bool `db:"allow_case" json:"allowCase"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(distributorID id.ID, code, name string) *Product {
	return &Product{
		Catalog:       entity.NewCatalog(code, name),
		DistributorID: distributorID,
		AllowPiece:    true,
	}
}

// Pricing exposes the read-only pricing facts for the resolver.
func (p *Product) Pricing() pricing.ProductPricing {
	return pricing.ProductPricing{
		SellUnitPrice:   p.SellUnitPrice,
		SellCasePrice:   p.SellCasePrice,
		LegacyUnitPrice: p.LegacyUnitPrice,
		LegacyCasePrice: p.LegacyCasePrice,
		UnitsPerCase:    p.UnitsPerCase,
	}
}

// AllowsUnit reports whether ordering by the given unit is enabled.
func (p *Product) AllowsUnit(unit pricing.UnitType) bool {
	if unit == pricing.UnitCase {
		return p.AllowCase
	}
	return p.AllowPiece
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.DistributorID) {
		return apperror.NewValidation("distributor is required").
			WithDetail("field", "distributorId")
	}

	if p.UnitsPerCase < 0 {
		return apperror.NewValidation("units per case cannot be negative").
			WithDetail("field", "unitsPerCase")
	}

	// Zero prices are valid (promotional freebies); negative are not.
	for field, price := range map[string]types.NullMoney{
		"sellUnitPrice": p.SellUnitPrice,
		"sellCasePrice": p.SellCasePrice,
		"unitCost":      p.UnitCost,
		"caseCost":      p.CaseCost,
	} {
		if price.Valid && price.Decimal.IsNegative() {
			return apperror.NewValidation("price cannot be negative").
				WithDetail("field", field)
		}
	}

	if !p.AllowPiece && !p.AllowCase {
		return apperror.NewValidation("product must allow at least one order unit").
			WithDetail("field", "allowPiece")
	}

	return nil
}
