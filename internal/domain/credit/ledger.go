// Package credit computes balances over a vendor's append-only credit
// ledger and the amount still due on an invoice after credit is applied.
// Pure computation: entries are read-only inputs, nothing is persisted, and
// the balance is always recomputed from the full ledger, never kept as a
// running counter.
package credit

import (
	"vendorgate/internal/core/types"
)

// EntryType is the closed set of ledger event types. Sign is derived from
// the type here and nowhere else; it is never stored separately.
type EntryType string

const (
	EntryCreditAdd      EntryType = "credit_add"
	EntryCreditDeduct   EntryType = "credit_deduct"
	EntryCreditApply    EntryType = "credit_apply"
	EntryCreditReversal EntryType = "credit_reversal"
)

// IsValid reports whether t is a known entry type. Writers validate with
// this before appending; Balance assumes it already holds.
func (t EntryType) IsValid() bool {
	switch t {
	case EntryCreditAdd, EntryCreditDeduct, EntryCreditApply, EntryCreditReversal:
		return true
	}
	return false
}

// Sign returns the signed direction of an entry type. The switch lists
// every member of the closed set; an unknown type contributes nothing,
// which only happens if a writer skipped validation.
func (t EntryType) Sign() int {
	switch t {
	case EntryCreditAdd:
		return 1
	case EntryCreditReversal:
		return 1
	case EntryCreditDeduct:
		return -1
	case EntryCreditApply:
		return -1
	}
	return 0
}

// Entry is one immutable signed financial event. Amount is non-negative;
// the writing RPC enforces that, this calculator does not re-validate.
type Entry struct {
	Type   EntryType
	Amount types.Money
}

// Balance sums signed amounts over the whole ledger. Order-independent by
// construction (a plain sum), empty ledger balances to zero.
func Balance(entries []Entry) types.Money {
	balance := types.Zero()
	for _, e := range entries {
		switch e.Type.Sign() {
		case 1:
			balance = balance.Add(e.Amount)
		case -1:
			balance = balance.Sub(e.Amount)
		}
	}
	return balance
}

// AmountDue combines an invoice/order total with the credit applied to it.
// Over-application is clamped to zero, never reported as a negative due;
// capping applied credit against the available balance is the ledger
// mutation path's responsibility, not this calculator's.
func AmountDue(total, creditApplied types.Money) types.Money {
	due := total.Sub(creditApplied)
	if due.IsNegative() {
		return types.Zero()
	}
	return types.Round2(due)
}

// RoundMoney normalizes a raw amount to 2 decimal places. Applied wherever
// money crosses a UI boundary so floating-point drift never reaches the
// display layer.
func RoundMoney(amount types.Money) types.Money {
	return types.Round2(amount)
}
