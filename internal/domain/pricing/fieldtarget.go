package pricing

import (
	"strings"

	"vendorgate/internal/core/apperror"
)

// FieldTarget is the closed set of addressable price fields at the
// bulk-pricing administration boundary. A caller resolves a target once,
// then uses it to pick which price unit a bulk edit applies to and which
// column the edit writes.
type FieldTarget string

const (
	TargetSellUnit FieldTarget = "SELL_UNIT"
	TargetSellCase FieldTarget = "SELL_CASE"
	TargetCostUnit FieldTarget = "COST_UNIT"
	TargetCostCase FieldTarget = "COST_CASE"
)

// fieldTargetAliases maps deprecated and legacy raw-column spellings onto
// canonical targets. "COST" predates unit/case cost separation; the
// lowercase names are raw column names old admin exports still send.
var fieldTargetAliases = map[string]FieldTarget{
	"COST":       TargetCostUnit,
	"UNIT_PRICE": TargetSellUnit,
	"CASE_PRICE": TargetSellCase,
	"UNIT_COST":  TargetCostUnit,
	"CASE_COST":  TargetCostCase,
}

// ParseFieldTarget resolves a field-target string, canonical or alias.
// Unknown targets come back as an error value, never a panic, so batch
// edit UIs can report per-row failures without aborting the batch.
func ParseFieldTarget(s string) (FieldTarget, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	switch FieldTarget(norm) {
	case TargetSellUnit, TargetSellCase, TargetCostUnit, TargetCostCase:
		return FieldTarget(norm), nil
	}
	if t, ok := fieldTargetAliases[norm]; ok {
		return t, nil
	}
	return "", apperror.NewBusinessRule(apperror.CodeInvalidFieldTarget, "unknown price field target").
		WithDetail("target", s)
}

// Unit returns the price unit the target addresses.
func (t FieldTarget) Unit() UnitType {
	switch t {
	case TargetSellCase, TargetCostCase:
		return UnitCase
	default:
		return UnitPiece
	}
}

// Column returns the column name a bulk edit against this target writes.
func (t FieldTarget) Column() string {
	switch t {
	case TargetSellUnit:
		return "unit_price"
	case TargetSellCase:
		return "case_price"
	case TargetCostUnit:
		return "unit_cost"
	case TargetCostCase:
		return "case_cost"
	default:
		return ""
	}
}

// IsCost reports whether the target addresses a cost field rather than a
// sell price.
func (t FieldTarget) IsCost() bool {
	return t == TargetCostUnit || t == TargetCostCase
}
