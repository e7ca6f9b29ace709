package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorgate/internal/core/id"
	"vendorgate/internal/core/types"
	"vendorgate/internal/domain/pricing"
)

func money(s string) types.NullMoney {
	return types.SomeMoney(types.MustMoney(s))
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func assertMoney(t *testing.T, want string, got types.Money) {
	t.Helper()
	assert.True(t, got.Equal(types.MustMoney(want)), "got %s, want %s", got, want)
}

func TestNormalize_SnapshotTotalIsAbsoluteTruth(t *testing.T) {
	// Stored total deliberately inconsistent with qty x price: a manual
	// price edit before generation can legitimately cause this.
	line := RawLine{
		ID:                id.New(),
		OrderUnit:         pricing.UnitPiece,
		QtySnapshot:       money("3"),
		UnitPriceSnapshot: money("10.00"),
		LineTotalSnapshot: money("25.00"),
	}

	got := Normalize(line)
	assertMoney(t, "25.00", got.LineTotal)

	// ext_amount is the second stored-total shape.
	line.LineTotalSnapshot = types.NoMoney()
	line.ExtAmount = money("27.50")
	assertMoney(t, "27.50", Normalize(line).LineTotal)

	// Only without any stored total does qty x price apply.
	line.ExtAmount = types.NoMoney()
	assertMoney(t, "30.00", Normalize(line).LineTotal)
}

func TestNormalize_LegacyCaseInUnitPriceField(t *testing.T) {
	// order_unit=case, no case snapshot, unit_price=100, upc=10:
	// the unit-price column held the case price.
	line := RawLine{
		ID:              id.New(),
		OrderUnit:       pricing.UnitCase,
		QtyCases:        money("2"),
		UnitPriceLegacy: money("100"),
		UnitsPerCase:    intPtr(10),
	}

	got := Normalize(line)
	assertMoney(t, "100.00", got.CasePrice)
	assertMoney(t, "10.00", got.UnitPrice)
	assertMoney(t, "200.00", got.LineTotal)
}

func TestNormalize_CaseLineSingleUnitCase(t *testing.T) {
	// upc <= 1 keeps the unit price and derives case price from it.
	line := RawLine{
		OrderUnit:       pricing.UnitCase,
		QtyCases:        money("4"),
		UnitPriceLegacy: money("12.00"),
		UnitsPerCase:    intPtr(1),
	}

	got := Normalize(line)
	assertMoney(t, "12.00", got.UnitPrice)
	assertMoney(t, "12.00", got.CasePrice)
	assertMoney(t, "48.00", got.LineTotal)
}

func TestNormalize_PieceLineDerivesCasePrice(t *testing.T) {
	line := RawLine{
		OrderUnit:       pricing.UnitPiece,
		QtyPieces:       money("5"),
		UnitPriceLegacy: money("2.50"),
		UnitsPerCase:    intPtr(6),
	}

	got := Normalize(line)
	assertMoney(t, "2.50", got.UnitPrice)
	assertMoney(t, "15.00", got.CasePrice)
	assertMoney(t, "12.50", got.LineTotal) // piece mode totals on unit price
}

func TestNormalize_CaseSnapshotBeatsConvention(t *testing.T) {
	line := RawLine{
		OrderUnit:         pricing.UnitCase,
		QtySnapshot:       money("1"),
		UnitPriceSnapshot: money("9.00"),
		CasePriceSnapshot: money("95.00"),
		UnitsPerCase:      intPtr(12),
	}

	got := Normalize(line)
	assertMoney(t, "95.00", got.CasePrice)
	assertMoney(t, "9.00", got.UnitPrice) // snapshot unit price is not rewritten

	// A negative case snapshot is treated as absent.
	line.CasePriceSnapshot = money("-1")
	got = Normalize(line)
	assertMoney(t, "9.00", got.CasePrice)
}

func TestNormalize_CasePricePrecedence(t *testing.T) {
	// Live column: the price captured at ordering time.
	line := RawLine{
		OrderUnit:     pricing.UnitCase,
		QtyCases:      money("2"),
		CasePriceLive: money("100.00"),
		UnitsPerCase:  intPtr(12),
	}
	got := Normalize(line)
	assertMoney(t, "100.00", got.CasePrice)
	assertMoney(t, "200.00", got.LineTotal)

	// A review edit outranks the captured price.
	line.CasePriceEdited = money("50.00")
	got = Normalize(line)
	assertMoney(t, "50.00", got.CasePrice)
	assertMoney(t, "100.00", got.LineTotal)

	// The generation-time snapshot outranks both.
	line.CasePriceSnapshot = money("80.00")
	got = Normalize(line)
	assertMoney(t, "80.00", got.CasePrice)
	assertMoney(t, "160.00", got.LineTotal)
}

func TestNormalize_QuantityPrecedence(t *testing.T) {
	tests := []struct {
		name string
		line RawLine
		want string
	}{
		{
			name: "snapshot wins",
			line: RawLine{QtySnapshot: money("7"), QtyEdited: money("5"), QtyPieces: money("3")},
			want: "7",
		},
		{
			name: "edited beats stored columns",
			line: RawLine{QtyEdited: money("5"), QtyPieces: money("3"), QtyLegacy: money("1")},
			want: "5",
		},
		{
			name: "case line prefers cases quantity",
			line: RawLine{OrderUnit: pricing.UnitCase, QtyCases: money("2"), QtyPieces: money("24")},
			want: "2",
		},
		{
			name: "case line falls back to pieces quantity",
			line: RawLine{OrderUnit: pricing.UnitCase, QtyPieces: money("24")},
			want: "24",
		},
		{
			name: "generic legacy quantity last",
			line: RawLine{QtyLegacy: money("9")},
			want: "9",
		},
		{
			name: "nothing stored means zero",
			line: RawLine{},
			want: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertMoney(t, tt.want, Normalize(tt.line).Quantity)
		})
	}
}

func TestNormalize_RoundsOnFinalProduct(t *testing.T) {
	// 3 x 10.555 = 31.665 -> 31.67 (round-half-up on the product, not on
	// a pre-rounded unit price).
	line := RawLine{
		OrderUnit:       pricing.UnitPiece,
		QtyPieces:       money("3"),
		UnitPriceLegacy: money("10.555"),
	}

	got := Normalize(line)
	assertMoney(t, "31.67", got.LineTotal)
	assertMoney(t, "10.56", got.UnitPrice) // display price rounded independently
}

func TestNormalize_NameAndCategoryFallback(t *testing.T) {
	line := RawLine{
		NameLive:        strPtr(""),
		ProductName:     strPtr("Widget 12ct"),
		ProductCategory: strPtr("Hardware"),
	}

	got := Normalize(line)
	assert.Equal(t, "Widget 12ct", got.Name)
	assert.Equal(t, "Hardware", got.Category)

	got = Normalize(RawLine{})
	assert.Equal(t, UnknownItemName, got.Name)
	assert.Equal(t, UncategorizedLabel, got.Category)

	got = Normalize(RawLine{NameSnapshot: strPtr("Frozen Name"), NameLive: strPtr("Live Name")})
	assert.Equal(t, "Frozen Name", got.Name)
}

func TestNormalize_ManualLine(t *testing.T) {
	line := RawLine{
		Manual:          true,
		NameLive:        strPtr("Delivery surcharge"),
		QtyEdited:       money("1"),
		UnitPriceEdited: money("15.00"),
	}

	got := Normalize(line)
	assert.True(t, got.Manual)
	assert.Nil(t, got.ProductID)
	assertMoney(t, "15.00", got.LineTotal)
}

func TestNormalize_Idempotent(t *testing.T) {
	original := RawLine{
		ID:              id.New(),
		OrderUnit:       pricing.UnitCase,
		QtyCases:        money("3"),
		UnitPriceLegacy: money("100"),
		UnitsPerCase:    intPtr(8),
		NameLive:        strPtr("Bulk beans"),
	}

	first := Normalize(original)

	// Feed the normalized output back in as snapshot fields.
	roundTrip := RawLine{
		ID:                   first.ID,
		OrderUnit:            first.Unit,
		NameSnapshot:         &first.Name,
		QtySnapshot:          types.SomeMoney(first.Quantity),
		UnitPriceSnapshot:    types.SomeMoney(first.UnitPrice),
		CasePriceSnapshot:    types.SomeMoney(first.CasePrice),
		UnitsPerCaseSnapshot: &first.UnitsPerCase,
		LineTotalSnapshot:    types.SomeMoney(first.LineTotal),
	}

	second := Normalize(roundTrip)
	assert.Equal(t, first.Name, second.Name)
	assert.True(t, first.Quantity.Equal(second.Quantity))
	assert.True(t, first.UnitPrice.Equal(second.UnitPrice))
	assert.True(t, first.CasePrice.Equal(second.CasePrice))
	assert.True(t, first.LineTotal.Equal(second.LineTotal))
	assert.Equal(t, first.UnitsPerCase, second.UnitsPerCase)
}

func TestSubtotal(t *testing.T) {
	lines := []RawLine{
		{LineTotalSnapshot: money("10.00")},
		{ExtAmount: money("5.25")},
		{OrderUnit: pricing.UnitPiece, QtyPieces: money("2"), UnitPriceLegacy: money("3.10")},
	}

	got := Subtotal(lines)
	require.True(t, got.Equal(types.MustMoney("21.45")), "got %s", got)

	assert.True(t, Subtotal(nil).IsZero())
}
