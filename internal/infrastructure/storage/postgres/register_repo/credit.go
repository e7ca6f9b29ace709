// Package register_repo provides PostgreSQL implementations for
// accumulation registers.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"vendorgate/internal/core/apperror"
	"vendorgate/internal/core/id"
	"vendorgate/internal/domain/registers/creditledger"
	"vendorgate/internal/infrastructure/storage/postgres"
)

var _ creditledger.Repository = (*CreditLedgerRepo)(nil)

// CreditLedgerRepo is the PostgreSQL credit ledger repository. The table
// is append-only; no update or delete statement exists here.
type CreditLedgerRepo struct {
	txManager *postgres.TxManager
	cols      []string
}

// NewCreditLedgerRepo creates a credit ledger repository.
func NewCreditLedgerRepo(txManager *postgres.TxManager) *CreditLedgerRepo {
	return &CreditLedgerRepo{
		txManager: txManager,
		cols:      postgres.ExtractDBColumns[creditledger.Entry](),
	}
}

func (r *CreditLedgerRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Append inserts a new entry.
func (r *CreditLedgerRepo) Append(ctx context.Context, entry *creditledger.Entry) error {
	data := postgres.StructToMap(entry)
	filteredData := make(map[string]any, len(r.cols))
	for _, col := range r.cols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	sql, args, err := r.builder().
		Insert("credit_ledger").
		SetMap(filteredData).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// GetByID retrieves one entry.
func (r *CreditLedgerRepo) GetByID(ctx context.Context, entryID id.ID) (*creditledger.Entry, error) {
	sql, args, err := r.builder().
		Select(r.cols...).
		From("credit_ledger").
		Where(squirrel.Eq{"id": entryID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	entry := &creditledger.Entry{}
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), entry, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("ledger entry", entryID.String())
		}
		return nil, fmt.Errorf("get ledger entry: %w", err)
	}
	return entry, nil
}

// ListByVendor retrieves a vendor's full ledger, oldest first.
func (r *CreditLedgerRepo) ListByVendor(ctx context.Context, distributorID, vendorID id.ID) ([]*creditledger.Entry, error) {
	sql, args, err := r.builder().
		Select(r.cols...).
		From("credit_ledger").
		Where(squirrel.Eq{"distributor_id": distributorID}).
		Where(squirrel.Eq{"vendor_id": vendorID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entries []*creditledger.Entry
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	return entries, nil
}

// ListByOrder retrieves the entries linked to one order.
func (r *CreditLedgerRepo) ListByOrder(ctx context.Context, orderID id.ID) ([]*creditledger.Entry, error) {
	sql, args, err := r.builder().
		Select(r.cols...).
		From("credit_ledger").
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entries []*creditledger.Entry
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("list ledger by order: %w", err)
	}
	return entries, nil
}

// FindReversal retrieves the reversal of an entry, if one exists.
func (r *CreditLedgerRepo) FindReversal(ctx context.Context, entryID id.ID) (*creditledger.Entry, error) {
	sql, args, err := r.builder().
		Select(r.cols...).
		From("credit_ledger").
		Where(squirrel.Eq{"reverses_id": entryID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	entry := &creditledger.Entry{}
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), entry, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("reversal", entryID.String())
		}
		return nil, fmt.Errorf("find reversal: %w", err)
	}
	return entry, nil
}
