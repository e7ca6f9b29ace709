package invoice

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorgate/internal/core/apperror"
	"vendorgate/internal/core/id"
	"vendorgate/internal/core/types"
	"vendorgate/internal/domain"
	"vendorgate/internal/domain/documents/order"
	"vendorgate/internal/domain/pricing"
	"vendorgate/pkg/numerator"
)

type fakeRepo struct {
	byID    map[id.ID]*Invoice
	byOrder map[id.ID]*Invoice
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[id.ID]*Invoice), byOrder: make(map[id.ID]*Invoice)}
}

func (r *fakeRepo) Create(_ context.Context, doc *Invoice) error {
	r.byID[doc.ID] = doc
	r.byOrder[doc.OrderID] = doc
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, invoiceID id.ID) (*Invoice, error) {
	if doc, ok := r.byID[invoiceID]; ok {
		return doc, nil
	}
	return nil, apperror.NewNotFound("invoice", invoiceID)
}

func (r *fakeRepo) GetByOrderID(_ context.Context, orderID id.ID) (*Invoice, error) {
	if doc, ok := r.byOrder[orderID]; ok {
		return doc, nil
	}
	return nil, apperror.NewNotFound("invoice", orderID)
}

func (r *fakeRepo) ListByVendor(_ context.Context, _, vendorID id.ID, _ domain.ListFilter) (domain.ListResult[*Invoice], error) {
	var items []*Invoice
	for _, doc := range r.byID {
		if doc.VendorID == vendorID {
			items = append(items, doc)
		}
	}
	return domain.ListResult[*Invoice]{Items: items, TotalCount: int64(len(items))}, nil
}

func (r *fakeRepo) ListByDistributor(_ context.Context, _ id.ID, _ domain.ListFilter) (domain.ListResult[*Invoice], error) {
	var items []*Invoice
	for _, doc := range r.byID {
		items = append(items, doc)
	}
	return domain.ListResult[*Invoice]{Items: items, TotalCount: int64(len(items))}, nil
}

type fakeOrders struct {
	orders map[id.ID]*order.Order
}

func (f *fakeOrders) GetByID(_ context.Context, orderID id.ID) (*order.Order, error) {
	if doc, ok := f.orders[orderID]; ok {
		return doc, nil
	}
	return nil, apperror.NewNotFound("order", orderID)
}

func (f *fakeOrders) Update(_ context.Context, doc *order.Order) error {
	f.orders[doc.ID] = doc
	return nil
}

type fakeNumerator struct{ next int }

func (f *fakeNumerator) GetNextNumber(_ context.Context, cfg numerator.Config, _ *numerator.Options, _ time.Time) (string, error) {
	f.next++
	return fmt.Sprintf("%s-%05d", cfg.Prefix, f.next), nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func submittedOrder() *order.Order {
	doc := order.NewOrder(id.New(), id.New())
	doc.Number = "ORD-2026-00001"
	doc.Status = order.StatusSubmitted
	productID := id.New()
	doc.Lines = []order.Line{
		{
			LineID:       id.New(),
			OrderID:      doc.ID,
			LineNo:       1,
			ProductID:    &productID,
			Name:         "Cola",
			Category:     "Beverages",
			Unit:         pricing.UnitCase,
			Qty:          types.MustMoney("2"),
			CasePrice:    types.SomeMoney(types.MustMoney("30.00")),
			UnitPrice:    types.SomeMoney(types.MustMoney("1.25")),
			UnitsPerCase: 24,
		},
		{
			LineID:    id.New(),
			OrderID:   doc.ID,
			LineNo:    2,
			Manual:    true,
			Name:      "Delivery fee",
			Unit:      pricing.UnitPiece,
			Qty:       types.MustMoney("1"),
			UnitPrice: types.SomeMoney(types.MustMoney("5.99")),
		},
	}
	return doc
}

func newService(repo *fakeRepo, orders *fakeOrders, taxes []TaxRate) *Service {
	return NewService(repo, orders, &fakeNumerator{}, passthroughTx{}, taxes)
}

func TestGenerateFreezesSnapshots(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	doc := submittedOrder()
	orders := &fakeOrders{orders: map[id.ID]*order.Order{doc.ID: doc}}
	svc := newService(repo, orders, []TaxRate{{Label: "Sales Tax", Rate: types.MustMoney("0.08")}})

	inv, err := svc.Generate(ctx, doc.ID)
	require.NoError(t, err)

	assert.Equal(t, "INV-00001", inv.Number)
	require.Len(t, inv.Lines, 2)

	// 2 cases x 30.00 + 1 x 5.99
	assert.True(t, inv.Subtotal.Equal(types.MustMoney("65.99")), "got %s", inv.Subtotal)
	assert.True(t, inv.TaxTotal.Equal(types.MustMoney("5.28")), "got %s", inv.TaxTotal)
	assert.True(t, inv.Total.Equal(types.MustMoney("71.27")), "got %s", inv.Total)

	first := inv.Lines[0]
	assert.Equal(t, "Cola", first.NameSnapshot)
	assert.True(t, first.CasePriceSnapshot.Equal(types.MustMoney("30.00")))
	assert.True(t, first.LineTotalSnapshot.Equal(types.MustMoney("60.00")))
	assert.Equal(t, 24, first.UnitsPerCase)

	assert.Equal(t, order.StatusInvoiced, doc.Status, "order is locked")
}

func TestGenerateRejectsWrongStatus(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	doc := submittedOrder()
	doc.Status = order.StatusDraft
	orders := &fakeOrders{orders: map[id.ID]*order.Order{doc.ID: doc}}
	svc := newService(repo, orders, nil)

	_, err := svc.Generate(ctx, doc.ID)
	require.Error(t, err)

	doc.Status = order.StatusSubmitted
	_, err = svc.Generate(ctx, doc.ID)
	require.NoError(t, err)

	// Second generation hits the invoiced guard.
	_, err = svc.Generate(ctx, doc.ID)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestRenderReplaysStoredTotals(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	doc := submittedOrder()
	orders := &fakeOrders{orders: map[id.ID]*order.Order{doc.ID: doc}}
	svc := newService(repo, orders, nil)

	inv, err := svc.Generate(ctx, doc.ID)
	require.NoError(t, err)

	// A stored total that disagrees with qty x price is rendered verbatim;
	// manual generation-time adjustments are history, not errors.
	inv.Lines[0].LineTotalSnapshot = types.MustMoney("55.00")

	_, lines, err := svc.Render(ctx, inv.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.True(t, lines[0].LineTotal.Equal(types.MustMoney("55.00")))
	assert.True(t, lines[1].LineTotal.Equal(types.MustMoney("5.99")))
}

func TestGenerateWithoutTaxes(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	doc := submittedOrder()
	orders := &fakeOrders{orders: map[id.ID]*order.Order{doc.ID: doc}}
	svc := newService(repo, orders, nil)

	inv, err := svc.Generate(ctx, doc.ID)
	require.NoError(t, err)
	assert.True(t, inv.TaxTotal.IsZero())
	assert.True(t, inv.Total.Equal(inv.Subtotal))
	assert.Empty(t, inv.TaxLines)
}
