// Package billing normalizes order and invoice line records for display and
// totaling. A line row may have been written by any historical version of
// the order schema; Normalize folds every shape into one canonical line.
//
// This is deliberately not the pricing resolver: pricing answers "what
// should this line cost right now, for ordering", billing answers "what are
// this stored line's definitive qty/price/total". Snapshotted values always
// beat live computation here, so re-running normalization against a stale
// product join can never rewrite history.
package billing

import (
	"github.com/shopspring/decimal"

	"vendorgate/internal/core/id"
	"vendorgate/internal/core/types"
	"vendorgate/internal/domain/pricing"
)

// UnknownItemName is displayed when no name survives on a line.
const UnknownItemName = "Unknown Item"

// UncategorizedLabel is displayed when no category label survives.
const UncategorizedLabel = "Uncategorized"

// RawLine is a tolerant view of a stored order/invoice line. Absent fields
// stay absent; the normalizer decides defaults. Snapshot fields were copied
// at invoice generation and are frozen thereafter.
type RawLine struct {
	ID        id.ID
	ProductID *id.ID
	Manual    bool
	OrderUnit pricing.UnitType // empty on pre-case-support rows
	ItemCode  *string

	// Snapshot fields (invoice generation time)
	NameSnapshot         *string
	CategorySnapshot     *string
	QtySnapshot          types.NullMoney
	UnitPriceSnapshot    types.NullMoney
	CasePriceSnapshot    types.NullMoney
	UnitsPerCaseSnapshot *int
	LineTotalSnapshot    types.NullMoney
	ExtAmount            types.NullMoney // older stored-total column

	// Mid-edit overrides on the order
	QtyEdited       types.NullMoney
	UnitPriceEdited types.NullMoney
	CasePriceEdited types.NullMoney

	// Historical quantity columns
	QtyCases  types.NullMoney
	QtyPieces types.NullMoney
	QtyLegacy types.NullMoney

	// Legacy price column
	UnitPriceLegacy types.NullMoney

	// Live values from the line row and the product join
	NameLive        *string
	CategoryLive    *string
	CasePriceLive   types.NullMoney
	ProductName     *string
	ProductCategory *string
	UnitsPerCase    *int
}

// Line is the canonical, display-ready line. All money fields are rounded
// to 2 decimal places at emission.
type Line struct {
	ID           id.ID            `json:"id"`
	ProductID    *id.ID           `json:"productId,omitempty"`
	Manual       bool             `json:"manual"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Unit         pricing.UnitType `json:"unit"`
	Quantity     types.Money      `json:"quantity"`
	UnitsPerCase int              `json:"unitsPerCase"`
	UnitPrice    types.Money      `json:"unitPrice"`
	CasePrice    types.Money      `json:"casePrice"`
	LineTotal    types.Money      `json:"lineTotal"`
	ItemCode     *string          `json:"itemCode,omitempty"`
}

// amountRule is one step of a fallback chain. The chains are kept as
// ordered named tables so the precedence is auditable and testable per
// rule, instead of being buried in nested conditionals.
type amountRule struct {
	name string
	get  func(RawLine) types.NullMoney
}

// quantityChain: snapshot > edited > unit-specific historical column >
// generic legacy column. Missing everywhere means zero.
var quantityChain = []amountRule{
	{"snapshot", func(l RawLine) types.NullMoney { return l.QtySnapshot }},
	{"edited", func(l RawLine) types.NullMoney { return l.QtyEdited }},
	{"unit_specific", func(l RawLine) types.NullMoney {
		if l.unit() == pricing.UnitCase {
			if l.QtyCases.Valid {
				return l.QtyCases
			}
			return l.QtyPieces
		}
		return l.QtyPieces
	}},
	{"legacy", func(l RawLine) types.NullMoney { return l.QtyLegacy }},
}

// unitPriceChain: snapshot > edited > legacy column. Missing means zero at
// this final display layer.
var unitPriceChain = []amountRule{
	{"snapshot", func(l RawLine) types.NullMoney { return l.UnitPriceSnapshot }},
	{"edited", func(l RawLine) types.NullMoney { return l.UnitPriceEdited }},
	{"legacy", func(l RawLine) types.NullMoney { return l.UnitPriceLegacy }},
}

// storedTotalChain: a stored total is absolute truth even when it disagrees
// with qty x price (manual price edits and generation-time rounding make
// that legitimate).
var storedTotalChain = []amountRule{
	{"snapshot", func(l RawLine) types.NullMoney { return l.LineTotalSnapshot }},
	{"ext_amount", func(l RawLine) types.NullMoney { return l.ExtAmount }},
}

func firstPresent(l RawLine, chain []amountRule) types.NullMoney {
	for _, rule := range chain {
		if v := rule.get(l); v.Valid {
			return v
		}
	}
	return types.NoMoney()
}

func (l RawLine) unit() pricing.UnitType {
	if l.OrderUnit == pricing.UnitCase {
		return pricing.UnitCase
	}
	return pricing.UnitPiece
}

func (l RawLine) unitsPerCase() int {
	if l.UnitsPerCaseSnapshot != nil && *l.UnitsPerCaseSnapshot > 0 {
		return *l.UnitsPerCaseSnapshot
	}
	if l.UnitsPerCase != nil && *l.UnitsPerCase > 0 {
		return *l.UnitsPerCase
	}
	return 1
}

func firstString(defaultVal string, candidates ...*string) string {
	for _, c := range candidates {
		if c != nil && *c != "" {
			return *c
		}
	}
	return defaultVal
}

// Normalize produces the canonical line. Pure and total: it never fails and
// coerces unknown numerics to zero only here, at the final display layer.
func Normalize(l RawLine) Line {
	unit := l.unit()
	upc := l.unitsPerCase()

	quantity := firstPresent(l, quantityChain).Decimal // absent decodes to 0
	unitPrice := firstPresent(l, unitPriceChain).Decimal

	casePrice := resolveCasePrice(l, unit, upc, &unitPrice)

	// Stored totals win verbatim; only compute when nothing was stored.
	var lineTotal types.Money
	if stored := firstPresent(l, storedTotalChain); stored.Valid {
		lineTotal = stored.Decimal
	} else {
		applicable := unitPrice
		if unit == pricing.UnitCase {
			applicable = casePrice
		}
		lineTotal = types.Round2(quantity.Mul(applicable))
	}

	return Line{
		ID:           l.ID,
		ProductID:    l.ProductID,
		Manual:       l.Manual,
		Name:         firstString(UnknownItemName, l.NameSnapshot, l.NameLive, l.ProductName),
		Category:     firstString(UncategorizedLabel, l.CategorySnapshot, l.CategoryLive, l.ProductCategory),
		Unit:         unit,
		Quantity:     quantity,
		UnitsPerCase: upc,
		UnitPrice:    types.Round2(unitPrice),
		CasePrice:    types.Round2(casePrice),
		LineTotal:    types.Round2(lineTotal),
		ItemCode:     l.ItemCode,
	}
}

// resolveCasePrice handles the historical case-price shapes. Like the
// unit-price chain it prefers snapshot > edited > live; only rows
// predating a dedicated case-price column fall through to the legacy
// conventions. It may rewrite unitPrice in place for the legacy case-mode
// convention where the unit-price column actually held the case price.
func resolveCasePrice(l RawLine, unit pricing.UnitType, upc int, unitPrice *types.Money) types.Money {
	if l.CasePriceSnapshot.Valid && !l.CasePriceSnapshot.Decimal.IsNegative() {
		return l.CasePriceSnapshot.Decimal
	}
	if l.CasePriceEdited.Valid && !l.CasePriceEdited.Decimal.IsNegative() {
		return l.CasePriceEdited.Decimal
	}
	if l.CasePriceLive.Valid && !l.CasePriceLive.Decimal.IsNegative() {
		return l.CasePriceLive.Decimal
	}

	if unit == pricing.UnitCase {
		// Legacy convention: case-mode rows stored the case price in the
		// unit-price column. Back-derive the true per-unit price when the
		// case actually holds more than one piece.
		casePrice := *unitPrice
		if upc > 1 {
			*unitPrice = casePrice.DivRound(decimal.NewFromInt(int64(upc)), 4)
		}
		return casePrice
	}

	// Piece-mode line without a case snapshot: derive informational case
	// price from the unit price.
	if upc > 1 {
		return unitPrice.Mul(decimal.NewFromInt(int64(upc)))
	}
	return *unitPrice
}

// Subtotal normalizes raw lines and sums their line totals. This is the
// only aggregation point; no other field is ever re-summed.
func Subtotal(lines []RawLine) types.Money {
	total := types.Zero()
	for _, l := range lines {
		total = total.Add(Normalize(l).LineTotal)
	}
	return types.Round2(total)
}
