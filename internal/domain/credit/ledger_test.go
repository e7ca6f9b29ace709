package credit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorgate/internal/core/types"
)

func entry(t EntryType, amount string) Entry {
	return Entry{Type: t, Amount: types.MustMoney(amount)}
}

func TestBalance_SignTable(t *testing.T) {
	entries := []Entry{
		entry(EntryCreditAdd, "50"),
		entry(EntryCreditDeduct, "20"),
		entry(EntryCreditApply, "10"),
		entry(EntryCreditReversal, "5"),
	}

	got := Balance(entries)
	require.True(t, got.Equal(types.MustMoney("25")), "balance = %s", got)
}

func TestBalance_OrderIndependent(t *testing.T) {
	forward := []Entry{
		entry(EntryCreditAdd, "100"),
		entry(EntryCreditApply, "30"),
		entry(EntryCreditReversal, "30"),
		entry(EntryCreditDeduct, "15.50"),
	}
	reversed := []Entry{forward[3], forward[2], forward[1], forward[0]}

	assert.True(t, Balance(forward).Equal(Balance(reversed)))
}

func TestBalance_Empty(t *testing.T) {
	assert.True(t, Balance(nil).IsZero())
	assert.True(t, Balance([]Entry{}).IsZero())
}

func TestBalance_CanGoNegative(t *testing.T) {
	// A deduct against an empty ledger is a data-layer decision; the sum
	// simply reports it.
	got := Balance([]Entry{entry(EntryCreditDeduct, "10")})
	assert.True(t, got.Equal(types.MustMoney("-10")))
}

func TestAmountDue(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		applied string
		want    string
	}{
		{"partial credit", "100", "30", "70"},
		{"exact credit", "45.50", "45.50", "0"},
		{"over-application clamps to zero", "30", "45", "0"},
		{"no credit", "19.99", "0", "19.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AmountDue(types.MustMoney(tt.total), types.MustMoney(tt.applied))
			assert.True(t, got.Equal(types.MustMoney(tt.want)), "got %s, want %s", got, tt.want)
			assert.False(t, got.IsNegative())
		})
	}
}

func TestEntryType_IsValid(t *testing.T) {
	for _, et := range []EntryType{EntryCreditAdd, EntryCreditDeduct, EntryCreditApply, EntryCreditReversal} {
		assert.True(t, et.IsValid(), "%s", et)
	}
	assert.False(t, EntryType("credit_bonus").IsValid())
	assert.False(t, EntryType("").IsValid())
}

func TestRoundMoney(t *testing.T) {
	got := RoundMoney(types.MustMoney("12.345"))
	assert.Equal(t, "12.35", got.StringFixed(2))

	got = RoundMoney(types.MustMoney("12.344"))
	assert.Equal(t, "12.34", got.StringFixed(2))
}
