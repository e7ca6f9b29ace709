package creditledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorgate/internal/core/apperror"
	"vendorgate/internal/core/id"
	"vendorgate/internal/core/types"
	"vendorgate/internal/domain/credit"
)

type fakeRepo struct {
	entries []*Entry
}

func (r *fakeRepo) Append(_ context.Context, entry *Entry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, entryID id.ID) (*Entry, error) {
	for _, e := range r.entries {
		if e.ID == entryID {
			return e, nil
		}
	}
	return nil, apperror.NewNotFound("ledger entry", entryID)
}

func (r *fakeRepo) ListByVendor(_ context.Context, _, vendorID id.ID) ([]*Entry, error) {
	var out []*Entry
	for _, e := range r.entries {
		if e.VendorID == vendorID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListByOrder(_ context.Context, orderID id.ID) ([]*Entry, error) {
	var out []*Entry
	for _, e := range r.entries {
		if e.OrderID != nil && *e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindReversal(_ context.Context, entryID id.ID) (*Entry, error) {
	for _, e := range r.entries {
		if e.ReversesID != nil && *e.ReversesID == entryID {
			return e, nil
		}
	}
	return nil, apperror.NewNotFound("reversal", entryID)
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newFixture() (*Service, *fakeRepo, id.ID, id.ID) {
	repo := &fakeRepo{}
	return NewService(repo, passthroughTx{}), repo, id.New(), id.New()
}

func TestBalanceOverMutations(t *testing.T) {
	svc, _, distributorID, vendorID := newFixture()
	ctx := context.Background()

	_, err := svc.Add(ctx, distributorID, vendorID, types.MustMoney("50.00"), "goodwill")
	require.NoError(t, err)
	_, err = svc.Deduct(ctx, distributorID, vendorID, types.MustMoney("20.00"), "damaged stock")
	require.NoError(t, err)

	balance, err := svc.Balance(ctx, distributorID, vendorID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(types.MustMoney("30.00")), "got %s", balance)
}

func TestAddRejectsNegativeAmount(t *testing.T) {
	svc, repo, distributorID, vendorID := newFixture()
	ctx := context.Background()

	_, err := svc.Add(ctx, distributorID, vendorID, types.MustMoney("-5.00"), "")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidLedgerEntry, appErr.Code)
	assert.Empty(t, repo.entries)
}

func TestApplyCapsAtBalance(t *testing.T) {
	svc, _, distributorID, vendorID := newFixture()
	ctx := context.Background()
	orderID := id.New()

	_, err := svc.Add(ctx, distributorID, vendorID, types.MustMoney("25.00"), "")
	require.NoError(t, err)

	entry, err := svc.Apply(ctx, distributorID, vendorID, orderID, types.MustMoney("40.00"))
	require.NoError(t, err)
	assert.True(t, entry.Amount.Equal(types.MustMoney("25.00")), "capped at balance")

	balance, err := svc.Balance(ctx, distributorID, vendorID)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	// Nothing left to apply.
	_, err = svc.Apply(ctx, distributorID, vendorID, orderID, types.MustMoney("1.00"))
	require.Error(t, err)
}

func TestApplyRequiresOrder(t *testing.T) {
	svc, _, distributorID, vendorID := newFixture()
	ctx := context.Background()

	_, err := svc.Apply(ctx, distributorID, vendorID, id.Nil(), types.MustMoney("10.00"))
	require.Error(t, err)
}

func TestReverseOnceOnly(t *testing.T) {
	svc, _, distributorID, vendorID := newFixture()
	ctx := context.Background()

	_, err := svc.Add(ctx, distributorID, vendorID, types.MustMoney("100.00"), "")
	require.NoError(t, err)
	deduction, err := svc.Deduct(ctx, distributorID, vendorID, types.MustMoney("40.00"), "oops")
	require.NoError(t, err)

	reversal, err := svc.Reverse(ctx, deduction.ID, "entered twice")
	require.NoError(t, err)
	assert.Equal(t, credit.EntryCreditReversal, reversal.Type)
	assert.True(t, reversal.Amount.Equal(types.MustMoney("40.00")))

	balance, err := svc.Balance(ctx, distributorID, vendorID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(types.MustMoney("100.00")), "got %s", balance)

	_, err = svc.Reverse(ctx, deduction.ID, "again")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)

	// Additions cannot be reversed, only negative entries.
	_, err = svc.Reverse(ctx, reversal.ID, "")
	require.Error(t, err)
}

func TestAmountDueProjection(t *testing.T) {
	svc, _, distributorID, vendorID := newFixture()
	ctx := context.Background()
	orderID := id.New()

	_, err := svc.Add(ctx, distributorID, vendorID, types.MustMoney("30.00"), "")
	require.NoError(t, err)
	applyEntry, err := svc.Apply(ctx, distributorID, vendorID, orderID, types.MustMoney("30.00"))
	require.NoError(t, err)

	due, err := svc.AmountDue(ctx, orderID, types.MustMoney("100.00"))
	require.NoError(t, err)
	assert.True(t, due.Equal(types.MustMoney("70.00")), "got %s", due)

	// Reversing the application restores the full amount due.
	_, err = svc.Reverse(ctx, applyEntry.ID, "refund dispute")
	require.NoError(t, err)

	due, err = svc.AmountDue(ctx, orderID, types.MustMoney("100.00"))
	require.NoError(t, err)
	assert.True(t, due.Equal(types.MustMoney("100.00")), "got %s", due)
}
