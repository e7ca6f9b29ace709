package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorgate/internal/core/apperror"
	"vendorgate/internal/core/types"
)

func money(s string) types.NullMoney {
	return types.SomeMoney(types.MustMoney(s))
}

func TestResolve_Precedence(t *testing.T) {
	product := ProductPricing{
		SellUnitPrice: money("10.00"),
		SellCasePrice: money("90.00"),
	}

	tests := []struct {
		name       string
		unit       UnitType
		vendorOv   *Override
		bulkOv     *Override
		wantPrice  string
		wantSource Source
	}{
		{
			name:       "vendor beats bulk and product",
			unit:       UnitPiece,
			vendorOv:   &Override{UnitPrice: money("8.00")},
			bulkOv:     &Override{UnitPrice: money("9.00")},
			wantPrice:  "8.00",
			wantSource: SourceVendorOverride,
		},
		{
			name:       "bulk beats product",
			unit:       UnitPiece,
			bulkOv:     &Override{UnitPrice: money("9.00")},
			wantPrice:  "9.00",
			wantSource: SourceBulkOverride,
		},
		{
			name:       "product default when no overrides",
			unit:       UnitPiece,
			wantPrice:  "10.00",
			wantSource: SourceProductDefault,
		},
		{
			name:       "vendor zero still wins",
			unit:       UnitPiece,
			vendorOv:   &Override{UnitPrice: money("0")},
			bulkOv:     &Override{UnitPrice: money("9.00")},
			wantPrice:  "0",
			wantSource: SourceVendorOverride,
		},
		{
			name:       "layers are per unit type, vendor case gap falls through",
			unit:       UnitCase,
			vendorOv:   &Override{UnitPrice: money("8.00")}, // no case price
			bulkOv:     &Override{CasePrice: money("85.00")},
			wantPrice:  "85.00",
			wantSource: SourceBulkOverride,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.unit, product, tt.vendorOv, tt.bulkOv)
			require.True(t, res.Price.Valid)
			assert.True(t, res.Price.Decimal.Equal(types.MustMoney(tt.wantPrice)),
				"price = %s, want %s", res.Price.Decimal, tt.wantPrice)
			assert.Equal(t, tt.wantSource, res.Source)
		})
	}
}

func TestResolve_LegacyFieldFallback(t *testing.T) {
	product := ProductPricing{
		LegacyUnitPrice: money("4.25"),
		LegacyCasePrice: money("40.00"),
	}

	res := Resolve(UnitPiece, product, nil, nil)
	require.True(t, res.Price.Valid)
	assert.True(t, res.Price.Decimal.Equal(types.MustMoney("4.25")))
	assert.Equal(t, SourceProductDefault, res.Source)

	// Canonical field wins over legacy when both exist.
	product.SellUnitPrice = money("5.00")
	res = Resolve(UnitPiece, product, nil, nil)
	assert.True(t, res.Price.Decimal.Equal(types.MustMoney("5.00")))
}

func TestResolve_NoImplicitConversion(t *testing.T) {
	// Unit price only: resolving for case must stay absent, never a
	// silently derived case price.
	product := ProductPricing{
		SellUnitPrice: money("10.00"),
		UnitsPerCase:  12,
	}

	res := Resolve(UnitCase, product, nil, nil)
	assert.False(t, res.Price.Valid)
	assert.Equal(t, SourceNone, res.Source)
}

func TestResolve_AbsenceVersusZero(t *testing.T) {
	absent := ProductPricing{}
	res := Resolve(UnitPiece, absent, nil, nil)
	assert.False(t, res.Price.Valid)

	zero := ProductPricing{SellUnitPrice: money("0")}
	res = Resolve(UnitPiece, zero, nil, nil)
	require.True(t, res.Price.Valid)
	assert.True(t, res.Price.Decimal.IsZero())
}

func TestResolveRequired(t *testing.T) {
	product := ProductPricing{SellUnitPrice: money("10.00")}

	price, source, err := ResolveRequired(UnitPiece, product, nil, nil)
	require.NoError(t, err)
	assert.True(t, price.Equal(types.MustMoney("10.00")))
	assert.Equal(t, SourceProductDefault, source)

	_, _, err = ResolveRequired(UnitCase, product, nil, nil)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodePriceRequired, appErr.Code)
	assert.Equal(t, "case", appErr.Details["unitType"])
}

func TestParseNullMoney_TriState(t *testing.T) {
	tests := []struct {
		name  string
		in    any
		valid bool
		want  string
	}{
		{"nil is absent", nil, false, ""},
		{"empty string is absent", "", false, ""},
		{"blank string is absent", "   ", false, ""},
		{"nil string pointer is absent", (*string)(nil), false, ""},
		{"malformed string is absent", "n/a", false, ""},
		{"zero string is valid zero", "0", true, "0"},
		{"zero float is valid zero", float64(0), true, "0"},
		{"numeric string parses", "12.50", true, "12.50"},
		{"integer parses", 7, true, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := types.ParseNullMoney(tt.in)
			assert.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				assert.True(t, got.Decimal.Equal(types.MustMoney(tt.want)),
					"value = %s, want %s", got.Decimal, tt.want)
			}
		})
	}
}

func TestUnitEquivalent(t *testing.T) {
	eq := UnitEquivalent(types.MustMoney("10.00"), 3)
	require.True(t, eq.Valid)
	assert.Equal(t, "3.3333", eq.Decimal.StringFixed(4))

	// Invalid divisor never divides.
	assert.False(t, UnitEquivalent(types.MustMoney("10.00"), 0).Valid)
	assert.False(t, UnitEquivalent(types.MustMoney("10.00"), -4).Valid)
}

func TestCaseEquivalent(t *testing.T) {
	eq := CaseEquivalent(types.MustMoney("1.2345"), 10)
	require.True(t, eq.Valid)
	assert.Equal(t, "12.3450", eq.Decimal.StringFixed(4))

	assert.False(t, CaseEquivalent(types.MustMoney("1.00"), 0).Valid)
}

func TestParseFieldTarget(t *testing.T) {
	tests := []struct {
		in      string
		want    FieldTarget
		wantErr bool
	}{
		{"SELL_UNIT", TargetSellUnit, false},
		{"sell_case", TargetSellCase, false},
		{"COST", TargetCostUnit, false}, // deprecated alias
		{"unit_price", TargetSellUnit, false},
		{"case_cost", TargetCostCase, false},
		{"RETAIL", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFieldTarget(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				appErr, ok := apperror.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, apperror.CodeInvalidFieldTarget, appErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldTarget_UnitAndColumn(t *testing.T) {
	assert.Equal(t, UnitPiece, TargetSellUnit.Unit())
	assert.Equal(t, UnitCase, TargetSellCase.Unit())
	assert.Equal(t, UnitCase, TargetCostCase.Unit())
	assert.Equal(t, "case_price", TargetSellCase.Column())
	assert.Equal(t, "unit_cost", TargetCostUnit.Column())
	assert.True(t, TargetCostCase.IsCost())
	assert.False(t, TargetSellUnit.IsCost())
}
