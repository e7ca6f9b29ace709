// Package pricing implements the effective price resolver: given a product's
// own pricing facts plus optional vendor and bulk override layers, it decides
// the single price to charge for a requested unit of sale.
//
// The resolver runs at order time. Rendering stored invoice lines is the
// billing package's job and never re-enters this code.
package pricing

import (
	"vendorgate/internal/core/apperror"
	"vendorgate/internal/core/types"
)

// UnitType is the unit of sale: a single piece or a full case.
type UnitType string

const (
	UnitPiece UnitType = "piece"
	UnitCase  UnitType = "case"
)

// IsValid reports whether u is a known unit type.
func (u UnitType) IsValid() bool {
	switch u {
	case UnitPiece, UnitCase:
		return true
	}
	return false
}

// ParseUnitType validates a unit type string.
func ParseUnitType(s string) (UnitType, error) {
	u := UnitType(s)
	if !u.IsValid() {
		return "", apperror.NewValidation("invalid unit type").
			WithDetail("field", "unitType").
			WithDetail("value", s)
	}
	return u, nil
}

// Source identifies which layer supplied a resolved price, so callers can
// label configured vs. default prices in the UI.
type Source string

const (
	SourceVendorOverride Source = "vendor_override"
	SourceBulkOverride   Source = "bulk_override"
	SourceProductDefault Source = "product_default"

	// SourceNone means no layer had a price for the requested unit.
	SourceNone Source = ""
)

// ProductPricing carries the read-only pricing facts of one product.
// Canonical and legacy field pairs both exist because the products table
// has been through several schema generations; rows written before the
// rename still carry only the legacy columns.
type ProductPricing struct {
	SellUnitPrice   types.NullMoney
	SellCasePrice   types.NullMoney
	LegacyUnitPrice types.NullMoney
	LegacyCasePrice types.NullMoney

	// UnitsPerCase is only consulted by the explicit equivalence helpers,
	// never by Resolve itself.
	UnitsPerCase int
}

// Override is one price override layer: a vendor-specific row or a bulk
// pricing tier. Each layer either has a value for a unit type or it does
// not; a layer never derives its case price from its unit price.
type Override struct {
	UnitPrice types.NullMoney
	CasePrice types.NullMoney
}

func (o *Override) priceFor(unit UnitType) types.NullMoney {
	if o == nil {
		return types.NoMoney()
	}
	if unit == UnitCase {
		return o.CasePrice
	}
	return o.UnitPrice
}

// Resolution is the outcome of price resolution. Price is absent (not zero)
// when no layer supplies a value for the requested unit type.
type Resolution struct {
	Price  types.NullMoney
	Source Source
}

// Resolve determines the effective price for one unit type.
//
// Precedence, first present value wins, each layer checked independently
// per unit type:
//
//  1. vendor override
//  2. bulk override
//  3. product canonical price
//  4. product legacy price
//
// A present zero is a valid price. No unit<->case conversion happens here;
// UnitEquivalent and CaseEquivalent exist for informational display only.
func Resolve(unit UnitType, product ProductPricing, vendorOv, bulkOv *Override) Resolution {
	if p := vendorOv.priceFor(unit); p.Valid {
		return Resolution{Price: p, Source: SourceVendorOverride}
	}
	if p := bulkOv.priceFor(unit); p.Valid {
		return Resolution{Price: p, Source: SourceBulkOverride}
	}
	if p := product.ownPrice(unit); p.Valid {
		return Resolution{Price: p, Source: SourceProductDefault}
	}
	return Resolution{Price: types.NoMoney(), Source: SourceNone}
}

func (p ProductPricing) ownPrice(unit UnitType) types.NullMoney {
	if unit == UnitCase {
		if p.SellCasePrice.Valid {
			return p.SellCasePrice
		}
		return p.LegacyCasePrice
	}
	if p.SellUnitPrice.Valid {
		return p.SellUnitPrice
	}
	return p.LegacyUnitPrice
}

// ResolveRequired is the hard-stop variant used when committing an order
// line: it shares Resolve's precedence and returns a typed error naming the
// missing unit type when no price exists. Read-only display paths use
// Resolve and render "Price Not Available" instead.
func ResolveRequired(unit UnitType, product ProductPricing, vendorOv, bulkOv *Override) (types.Money, Source, error) {
	res := Resolve(unit, product, vendorOv, bulkOv)
	if !res.Price.Valid {
		return types.Zero(), SourceNone, apperror.NewPriceRequired(string(unit))
	}
	return res.Price.Decimal, res.Source, nil
}
