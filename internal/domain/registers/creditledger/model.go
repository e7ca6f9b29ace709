// Package creditledger is the persisted credit ledger register: append-only
// signed entries per vendor. Balance math lives in the credit package; this
// package owns validation, capping, and persistence of the entries.
package creditledger

import (
	"context"
	"time"

	"vendorgate/internal/core/apperror"
	"vendorgate/internal/core/id"
	"vendorgate/internal/core/types"
	"vendorgate/internal/domain/credit"
)

// Entry is one immutable ledger row. Entries are never updated or deleted;
// corrections happen by appending a reversal.
type Entry struct {
	ID id.ID `db:"id" json:"id"`

	DistributorID id.ID `db:"distributor_id" json:"distributorId"`
	VendorID      id.ID `db:"vendor_id" json:"vendorId"`

	// OrderID links credit_apply entries to the order they pay down.
	OrderID *id.ID `db:"order_id" json:"orderId,omitempty"`

	// ReversesID links a credit_reversal to the entry it undoes.
	ReversesID *id.ID `db:"reverses_id" json:"reversesId,omitempty"`

	Type   credit.EntryType `db:"entry_type" json:"type"`
	Amount types.Money      `db:"amount" json:"amount"`
	Memo   string           `db:"memo" json:"memo,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	CreatedBy string    `db:"created_by" json:"createdBy,omitempty"`
}

// NewEntry creates a ledger entry with generated ID and timestamp.
func NewEntry(distributorID, vendorID id.ID, entryType credit.EntryType, amount types.Money) *Entry {
	return &Entry{
		ID:            id.New(),
		DistributorID: distributorID,
		VendorID:      vendorID,
		Type:          entryType,
		Amount:        amount,
		CreatedAt:     time.Now().UTC(),
	}
}

// Validate checks entry invariants before append. The amount is always
// non-negative; direction comes from the type alone.
func (e *Entry) Validate(ctx context.Context) error {
	if id.IsNil(e.DistributorID) {
		return apperror.NewValidation("distributor is required").
			WithDetail("field", "distributorId")
	}
	if id.IsNil(e.VendorID) {
		return apperror.NewValidation("vendor is required").
			WithDetail("field", "vendorId")
	}
	if !e.Type.IsValid() {
		return apperror.NewBusinessRule(apperror.CodeInvalidLedgerEntry,
			"unknown ledger entry type").
			WithDetail("type", string(e.Type))
	}
	if e.Amount.IsNegative() {
		return apperror.NewBusinessRule(apperror.CodeInvalidLedgerEntry,
			"ledger amount cannot be negative").
			WithDetail("amount", e.Amount)
	}
	if e.Type == credit.EntryCreditApply && (e.OrderID == nil || id.IsNil(*e.OrderID)) {
		return apperror.NewValidation("credit application requires an order").
			WithDetail("field", "orderId")
	}
	return nil
}

// Core maps the row into the balance calculator's input.
func (e *Entry) Core() credit.Entry {
	return credit.Entry{Type: e.Type, Amount: e.Amount}
}
