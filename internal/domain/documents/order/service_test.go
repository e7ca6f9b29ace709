package order

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
	"vendorgate/internal/domain/catalogs/product"
	"vendorgate/internal/domain/catalogs/vendor"
	"vendorgate/internal/domain/pricing"
	"vendorgate/pkg/numerator"
)

type fakeRepo struct {
	orders map[id.ID]*Order
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{orders: make(map[id.ID]*Order)}
}

func (r *fakeRepo) Create(_ context.Context, doc *Order) error {
	r.orders[doc.ID] = doc
	return nil
}

func (r *fakeRepo) Update(_ context.Context, doc *Order) error {
	r.orders[doc.ID] = doc
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, orderID id.ID) (*Order, error) {
	doc, ok := r.orders[orderID]
	if !ok {
		return nil, apperror.NewNotFound("order", orderID)
	}
	return doc, nil
}

func (r *fakeRepo) ListByVendor(_ context.Context, _, vendorID id.ID, _ domain.ListFilter) (domain.ListResult[*Order], error) {
	var items []*Order
	for _, doc := range r.orders {
		if doc.VendorID == vendorID {
			items = append(items, doc)
		}
	}
	return domain.ListResult[*Order]{Items: items, TotalCount: int64(len(items))}, nil
}

func (r *fakeRepo) ListByDistributor(_ context.Context, _ id.ID, _ domain.ListFilter) (domain.ListResult[*Order], error) {
	var items []*Order
	for _, doc := range r.orders {
		items = append(items, doc)
	}
	return domain.ListResult[*Order]{Items: items, TotalCount: int64(len(items))}, nil
}

func (r *fakeRepo) AddLine(_ context.Context, line *Line) error {
	doc, ok := r.orders[line.OrderID]
	if !ok {
		return apperror.NewNotFound("order", line.OrderID)
	}
	line.LineNo = len(doc.Lines) + 1
	doc.Lines = append(doc.Lines, *line)
	return nil
}

func (r *fakeRepo) UpdateLine(_ context.Context, line *Line) error {
	doc, ok := r.orders[line.OrderID]
	if !ok {
		return apperror.NewNotFound("order", line.OrderID)
	}
	for i := range doc.Lines {
		if doc.Lines[i].LineID == line.LineID {
			doc.Lines[i] = *line
			return nil
		}
	}
	return apperror.NewNotFound("order line", line.LineID)
}

func (r *fakeRepo) DeleteLine(_ context.Context, orderID, lineID id.ID) error {
	doc, ok := r.orders[orderID]
	if !ok {
		return apperror.NewNotFound("order", orderID)
	}
	for i := range doc.Lines {
		if doc.Lines[i].LineID == lineID {
			doc.Lines = append(doc.Lines[:i], doc.Lines[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound("order line", lineID)
}

func (r *fakeRepo) GetLine(_ context.Context, orderID, lineID id.ID) (*Line, error) {
	doc, ok := r.orders[orderID]
	if !ok {
		return nil, apperror.NewNotFound("order", orderID)
	}
	for i := range doc.Lines {
		if doc.Lines[i].LineID == lineID {
			line := doc.Lines[i]
			return &line, nil
		}
	}
	return nil, apperror.NewNotFound("order line", lineID)
}

type fakeProducts struct {
	items map[id.ID]*product.Product
}

func (f *fakeProducts) GetByID(_ context.Context, productID id.ID) (*product.Product, error) {
	if item, ok := f.items[productID]; ok {
		return item, nil
	}
	return nil, apperror.NewNotFound("product", productID)
}

type fakeVendors struct {
	items map[id.ID]*vendor.Vendor
}

func (f *fakeVendors) GetByID(_ context.Context, vendorID id.ID) (*vendor.Vendor, error) {
	if v, ok := f.items[vendorID]; ok {
		return v, nil
	}
	return nil, apperror.NewNotFound("vendor", vendorID)
}

// fakeResolver resolves from the product facts only, no override layers.
type fakeResolver struct{}

func (fakeResolver) Effective(_ context.Context, unit pricing.UnitType, _, _, _ id.ID, facts pricing.ProductPricing) (pricing.Resolution, error) {
	return pricing.Resolve(unit, facts, nil, nil), nil
}

func (fakeResolver) EffectiveRequired(_ context.Context, unit pricing.UnitType, _, _, _ id.ID, facts pricing.ProductPricing) (types.Money, pricing.Source, error) {
	return pricing.ResolveRequired(unit, facts, nil, nil)
}

type fakeNumerator struct {
	next int
}

func (f *fakeNumerator) GetNextNumber(_ context.Context, cfg numerator.Config, _ *numerator.Options, _ time.Time) (string, error) {
	f.next++
	return fmt.Sprintf("%s-%05d", cfg.Prefix, f.next), nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	svc           *Service
	repo          *fakeRepo
	products      *fakeProducts
	vendors       *fakeVendors
	distributorID id.ID
	vendorID      id.ID
}

func newFixture() *fixture {
	f := &fixture{
		repo:          newFakeRepo(),
		products:      &fakeProducts{items: make(map[id.ID]*product.Product)},
		vendors:       &fakeVendors{items: make(map[id.ID]*vendor.Vendor)},
		distributorID: id.New(),
		vendorID:      id.New(),
	}
	f.vendors.items[f.vendorID] = vendor.NewVendor(f.distributorID, "VND-1", "Corner Market")
	f.svc = NewService(f.repo, f.products, f.vendors, fakeResolver{}, &fakeNumerator{}, passthroughTx{})
	return f
}

func (f *fixture) addProduct(name string, unitPrice, casePrice string, upc int) *product.Product {
	item := product.NewProduct(f.distributorID, "PRD-"+name, name)
	item.AllowCase = true
	item.UnitsPerCase = upc
	if unitPrice != "" {
		item.SellUnitPrice = types.SomeMoney(types.MustMoney(unitPrice))
	}
	if casePrice != "" {
		item.SellCasePrice = types.SomeMoney(types.MustMoney(casePrice))
	}
	f.products.items[item.ID] = item
	return item
}

func TestCreateGeneratesNumber(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	doc, err := f.svc.Create(ctx, f.distributorID, f.vendorID)
	require.NoError(t, err)
	assert.Equal(t, "ORD-00001", doc.Number)
	assert.Equal(t, StatusDraft, doc.Status)

	_, err = f.svc.Create(ctx, f.distributorID, id.New())
	require.Error(t, err, "unknown vendor")
	assert.True(t, apperror.IsNotFound(err))
}

func TestAddLineCapturesResolvedPrice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := f.addProduct("Cola", "1.50", "30.00", 24)

	doc, err := f.svc.Create(ctx, f.distributorID, f.vendorID)
	require.NoError(t, err)

	line, err := f.svc.AddLine(ctx, doc.ID, AddLineInput{
		ProductID: item.ID,
		Unit:      pricing.UnitCase,
		Qty:       types.MustMoney("2"),
	})
	require.NoError(t, err)

	assert.Equal(t, pricing.SourceProductDefault, line.Source)
	require.True(t, line.CasePrice.Valid)
	assert.True(t, line.CasePrice.Decimal.Equal(types.MustMoney("30.00")))
	require.True(t, line.UnitPrice.Valid)
	assert.True(t, line.UnitPrice.Decimal.Equal(types.MustMoney("1.50")))
	assert.Equal(t, "Cola", line.Name)
	assert.Equal(t, 24, line.UnitsPerCase)
}

func TestAddLineUnpricedUnitIsHardStop(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := f.addProduct("Chips", "2.00", "", 12) // no case price anywhere

	doc, err := f.svc.Create(ctx, f.distributorID, f.vendorID)
	require.NoError(t, err)

	_, err = f.svc.AddLine(ctx, doc.ID, AddLineInput{
		ProductID: item.ID,
		Unit:      pricing.UnitCase,
		Qty:       types.MustMoney("1"),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsPriceRequired(err))

	got, err := f.svc.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Lines, "no zero-priced line may be written")
}

func TestAddLineRespectsUnitGates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := f.addProduct("Gum", "0.50", "12.00", 24)
	item.AllowCase = false

	doc, err := f.svc.Create(ctx, f.distributorID, f.vendorID)
	require.NoError(t, err)

	_, err = f.svc.AddLine(ctx, doc.ID, AddLineInput{
		ProductID: item.ID,
		Unit:      pricing.UnitCase,
		Qty:       types.MustMoney("1"),
	})
	require.Error(t, err)
}

func TestEditLineOverrides(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := f.addProduct("Water", "1.00", "20.00", 24)

	doc, err := f.svc.Create(ctx, f.distributorID, f.vendorID)
	require.NoError(t, err)
	line, err := f.svc.AddLine(ctx, doc.ID, AddLineInput{
		ProductID: item.ID, Unit: pricing.UnitPiece, Qty: types.MustMoney("10"),
	})
	require.NoError(t, err)

	// Zero price is a legitimate edit; zero quantity is not.
	_, err = f.svc.EditLine(ctx, doc.ID, line.LineID, LineEdits{
		Qty: types.SomeMoney(types.Zero()),
	})
	require.Error(t, err)

	edited, err := f.svc.EditLine(ctx, doc.ID, line.LineID, LineEdits{
		Qty:       types.SomeMoney(types.MustMoney("8")),
		UnitPrice: types.SomeMoney(types.Zero()),
	})
	require.NoError(t, err)
	assert.True(t, edited.EffectiveQty().Equal(types.MustMoney("8")))
	require.True(t, edited.EditedUnitPrice.Valid)
	assert.True(t, edited.EditedUnitPrice.Decimal.IsZero())
}

func TestSubmitLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := f.addProduct("Juice", "3.00", "60.00", 24)

	doc, err := f.svc.Create(ctx, f.distributorID, f.vendorID)
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, doc.ID)
	require.Error(t, err, "empty order")

	_, err = f.svc.AddLine(ctx, doc.ID, AddLineInput{
		ProductID: item.ID, Unit: pricing.UnitPiece, Qty: types.MustMoney("5"),
	})
	require.NoError(t, err)

	submitted, err := f.svc.Submit(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, submitted.Status)

	_, err = f.svc.Submit(ctx, doc.ID)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeOrderSubmitted, appErr.Code)
}

func TestSubmitBlockedByCreditHold(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := f.addProduct("Beans", "1.25", "", 1)
	f.vendors.items[f.vendorID].CreditHold = true

	doc, err := f.svc.Create(ctx, f.distributorID, f.vendorID)
	require.NoError(t, err)
	_, err = f.svc.AddLine(ctx, doc.ID, AddLineInput{
		ProductID: item.ID, Unit: pricing.UnitPiece, Qty: types.MustMoney("1"),
	})
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, doc.ID)
	require.Error(t, err)
}

func TestInvoicedOrderIsLocked(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := f.addProduct("Milk", "2.50", "", 1)

	doc, err := f.svc.Create(ctx, f.distributorID, f.vendorID)
	require.NoError(t, err)
	line, err := f.svc.AddLine(ctx, doc.ID, AddLineInput{
		ProductID: item.ID, Unit: pricing.UnitPiece, Qty: types.MustMoney("4"),
	})
	require.NoError(t, err)

	doc.Status = StatusInvoiced

	_, err = f.svc.AddLine(ctx, doc.ID, AddLineInput{
		ProductID: item.ID, Unit: pricing.UnitPiece, Qty: types.MustMoney("1"),
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvoiceLocked, appErr.Code)

	_, err = f.svc.EditLine(ctx, doc.ID, line.LineID, LineEdits{
		Qty: types.SomeMoney(types.MustMoney("2")),
	})
	require.Error(t, err)

	_, err = f.svc.Cancel(ctx, doc.ID)
	require.Error(t, err)
}

func TestRenderUsesEditsAndCasePrices(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := f.addProduct("Soda", "1.50", "30.00", 24)

	doc, err := f.svc.Create(ctx, f.distributorID, f.vendorID)
	require.NoError(t, err)
	line, err := f.svc.AddLine(ctx, doc.ID, AddLineInput{
		ProductID: item.ID, Unit: pricing.UnitCase, Qty: types.MustMoney("3"),
	})
	require.NoError(t, err)

	lines, subtotal, err := f.svc.Render(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].CasePrice.Equal(types.MustMoney("30.00")))
	assert.True(t, lines[0].LineTotal.Equal(types.MustMoney("90.00")))
	assert.True(t, subtotal.Equal(types.MustMoney("90.00")))

	// Distributor trims the quantity; the rendered total follows.
	_, err = f.svc.EditLine(ctx, doc.ID, line.LineID, LineEdits{
		Qty: types.SomeMoney(types.MustMoney("2")),
	})
	require.NoError(t, err)

	_, subtotal, err = f.svc.Render(ctx, doc.ID)
	require.NoError(t, err)
	assert.True(t, subtotal.Equal(types.MustMoney("60.00")), "got %s", subtotal)
}

func TestEditLinePriceOnCaseLineChangesTotal(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := f.addProduct("Crate", "", "100.00", 12)

	doc, err := f.svc.Create(ctx, f.distributorID, f.vendorID)
	require.NoError(t, err)
	line, err := f.svc.AddLine(ctx, doc.ID, AddLineInput{
		ProductID: item.ID, Unit: pricing.UnitCase, Qty: types.MustMoney("2"),
	})
	require.NoError(t, err)

	_, subtotal, err := f.svc.Render(ctx, doc.ID)
	require.NoError(t, err)
	assert.True(t, subtotal.Equal(types.MustMoney("200.00")), "got %s", subtotal)

	// The price edit is per ordered unit, so on a case line it replaces
	// the captured case price and the total follows.
	edited, err := f.svc.EditLine(ctx, doc.ID, line.LineID, LineEdits{
		UnitPrice: types.SomeMoney(types.MustMoney("50.00")),
	})
	require.NoError(t, err)
	require.True(t, edited.EditedCasePrice.Valid)
	assert.False(t, edited.EditedUnitPrice.Valid)

	lines, subtotal, err := f.svc.Render(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].CasePrice.Equal(types.MustMoney("50.00")))
	assert.True(t, lines[0].LineTotal.Equal(types.MustMoney("100.00")))
	assert.True(t, subtotal.Equal(types.MustMoney("100.00")), "got %s", subtotal)
}
