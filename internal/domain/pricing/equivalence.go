package pricing

import (
	"github.com/shopspring/decimal"

	"vendorgate/internal/core/types"
)

// EffectiveUnitsPerCase clamps a stored units-per-case to a usable divisor.
// Anything that is not a positive integer counts as 1 for derivation
// purposes; the stored value is never rewritten.
func EffectiveUnitsPerCase(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// UnitEquivalent derives the informational per-unit equivalent of a case
// price ("~ $X/unit"), rounded to 4 decimal places. Returns absent when
// units-per-case is not a positive integer rather than dividing by an
// invalid value.
//
// This is explicitly not part of Resolve: a product without a case price
// stays unpriced for case ordering no matter what its unit price is.
func UnitEquivalent(casePrice types.Money, unitsPerCase int) types.NullMoney {
	if unitsPerCase < 1 {
		return types.NoMoney()
	}
	perUnit := casePrice.DivRound(decimal.NewFromInt(int64(unitsPerCase)), 4)
	return types.SomeMoney(perUnit)
}

// CaseEquivalent is the inverse derivation: unit price times units-per-case,
// rounded to 4 decimal places. Same validity rule as UnitEquivalent.
func CaseEquivalent(unitPrice types.Money, unitsPerCase int) types.NullMoney {
	if unitsPerCase < 1 {
		return types.NoMoney()
	}
	perCase := types.Round4(unitPrice.Mul(decimal.NewFromInt(int64(unitsPerCase))))
	return types.SomeMoney(perCase)
}
