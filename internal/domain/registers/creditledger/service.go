package creditledger

import (
	"context"

	"vendorgate/internal/core/apperror"
	appctx "vendorgate/internal/core/context"
	"vendorgate/internal/core/id"
	"vendorgate/internal/core/tx"
	"vendorgate/internal/core/types"
	"vendorgate/internal/domain/credit"
	"vendorgate/pkg/logger"
)

// Service provides ledger mutations and balance projections.
// All mutations recheck the balance inside a transaction so concurrent
// applications cannot overdraw a vendor's credit.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new credit ledger service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Balance recomputes a vendor's balance from the full ledger. Never kept
// as a running counter; the ledger rows are the only source of truth.
func (s *Service) Balance(ctx context.Context, distributorID, vendorID id.ID) (types.Money, error) {
	entries, err := s.repo.ListByVendor(ctx, distributorID, vendorID)
	if err != nil {
		return types.Zero(), err
	}
	return credit.Balance(coreEntries(entries)), nil
}

// Add grants credit to a vendor.
func (s *Service) Add(ctx context.Context, distributorID, vendorID id.ID, amount types.Money, memo string) (*Entry, error) {
	entry := NewEntry(distributorID, vendorID, credit.EntryCreditAdd, amount)
	entry.Memo = memo
	return s.append(ctx, entry)
}

// Deduct removes credit from a vendor. The balance may go negative; a
// deduction is an administrative correction, not a purchase.
func (s *Service) Deduct(ctx context.Context, distributorID, vendorID id.ID, amount types.Money, memo string) (*Entry, error) {
	entry := NewEntry(distributorID, vendorID, credit.EntryCreditDeduct, amount)
	entry.Memo = memo
	return s.append(ctx, entry)
}

// Apply spends credit against an order. The applied amount is capped by
// the current balance inside the transaction; applying from an empty
// balance is rejected rather than capped to zero.
func (s *Service) Apply(ctx context.Context, distributorID, vendorID, orderID id.ID, amount types.Money) (*Entry, error) {
	entry := NewEntry(distributorID, vendorID, credit.EntryCreditApply, amount)
	entry.OrderID = &orderID
	if err := entry.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		balance, err := s.Balance(ctx, distributorID, vendorID)
		if err != nil {
			return err
		}
		if !balance.IsPositive() {
			return apperror.NewBusinessRule(apperror.CodeInvalidLedgerEntry,
				"vendor has no credit to apply").
				WithDetail("vendorId", vendorID).
				WithDetail("balance", balance)
		}
		if entry.Amount.GreaterThan(balance) {
			entry.Amount = balance
		}
		entry.CreatedBy = appctx.GetUserID(ctx)
		return s.repo.Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "credit applied",
		"vendor_id", vendorID, "order_id", orderID, "amount", entry.Amount)
	return entry, nil
}

// Reverse undoes a deduction or application by appending a reversal of the
// same amount. Each entry can be reversed at most once.
func (s *Service) Reverse(ctx context.Context, entryID id.ID, memo string) (*Entry, error) {
	original, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if original.Type.Sign() >= 0 {
		return nil, apperror.NewBusinessRule(apperror.CodeInvalidLedgerEntry,
			"only deductions and applications can be reversed").
			WithDetail("entryId", entryID).
			WithDetail("type", string(original.Type))
	}

	reversal := NewEntry(original.DistributorID, original.VendorID, credit.EntryCreditReversal, original.Amount)
	reversal.OrderID = original.OrderID
	reversal.ReversesID = &original.ID
	reversal.Memo = memo

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.FindReversal(ctx, original.ID)
		if err != nil && !apperror.IsNotFound(err) {
			return err
		}
		if existing != nil {
			return apperror.NewConflict("entry has already been reversed").
				WithDetail("entryId", original.ID).
				WithDetail("reversalId", existing.ID)
		}
		reversal.CreatedBy = appctx.GetUserID(ctx)
		return s.repo.Append(ctx, reversal)
	})
	if err != nil {
		return nil, err
	}
	return reversal, nil
}

// History returns a vendor's ledger entries, oldest first.
func (s *Service) History(ctx context.Context, distributorID, vendorID id.ID) ([]*Entry, error) {
	return s.repo.ListByVendor(ctx, distributorID, vendorID)
}

// AppliedToOrder sums the credit applied to one order, reversals netted.
func (s *Service) AppliedToOrder(ctx context.Context, orderID id.ID) (types.Money, error) {
	entries, err := s.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return types.Zero(), err
	}
	applied := types.Zero()
	for _, e := range entries {
		switch e.Type {
		case credit.EntryCreditApply:
			applied = applied.Add(e.Amount)
		case credit.EntryCreditReversal:
			applied = applied.Sub(e.Amount)
		}
	}
	if applied.IsNegative() {
		applied = types.Zero()
	}
	return applied, nil
}

// AmountDue projects the amount still owed on an invoiced order: the
// invoice total minus netted applied credit, clamped at zero.
func (s *Service) AmountDue(ctx context.Context, orderID id.ID, invoiceTotal types.Money) (types.Money, error) {
	applied, err := s.AppliedToOrder(ctx, orderID)
	if err != nil {
		return types.Zero(), err
	}
	return credit.AmountDue(invoiceTotal, applied), nil
}

func (s *Service) append(ctx context.Context, entry *Entry) (*Entry, error) {
	if err := entry.Validate(ctx); err != nil {
		return nil, err
	}
	entry.CreatedBy = appctx.GetUserID(ctx)
	if err := s.repo.Append(ctx, entry); err != nil {
		return nil, err
	}
	logger.Info(ctx, "ledger entry appended",
		"vendor_id", entry.VendorID, "type", entry.Type, "amount", entry.Amount)
	return entry, nil
}

func coreEntries(entries []*Entry) []credit.Entry {
	out := make([]credit.Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Core())
	}
	return out
}
