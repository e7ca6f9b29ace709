package pricing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorgate/internal/core/apperror"
	"vendorgate/internal/core/id"
	"vendorgate/internal/core/types"
)

type fakeRepo struct {
	vendorOverrides map[id.ID]*VendorPriceOverride
	bulkPricing     map[id.ID]*BulkPricing
	applied         []string
	applyErr        map[id.ID]error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		vendorOverrides: make(map[id.ID]*VendorPriceOverride),
		bulkPricing:     make(map[id.ID]*BulkPricing),
		applyErr:        make(map[id.ID]error),
	}
}

func (r *fakeRepo) GetVendorOverride(_ context.Context, _, _, productID id.ID) (*VendorPriceOverride, error) {
	if ov, ok := r.vendorOverrides[productID]; ok {
		return ov, nil
	}
	return nil, apperror.NewNotFound("vendor price override", productID)
}

func (r *fakeRepo) GetBulkPricing(_ context.Context, _, productID id.ID) (*BulkPricing, error) {
	if b, ok := r.bulkPricing[productID]; ok {
		return b, nil
	}
	return nil, apperror.NewNotFound("bulk pricing", productID)
}

func (r *fakeRepo) UpsertVendorOverride(_ context.Context, ov *VendorPriceOverride) error {
	r.vendorOverrides[ov.ProductID] = ov
	return nil
}

func (r *fakeRepo) UpsertBulkPricing(_ context.Context, b *BulkPricing) error {
	r.bulkPricing[b.ProductID] = b
	return nil
}

func (r *fakeRepo) DeleteVendorOverride(_ context.Context, _, _, productID id.ID) error {
	delete(r.vendorOverrides, productID)
	return nil
}

func (r *fakeRepo) ApplyBulkPrice(_ context.Context, _, productID id.ID, column string, price types.NullMoney) error {
	if err, ok := r.applyErr[productID]; ok {
		return err
	}
	r.applied = append(r.applied, column+"="+price.Decimal.StringFixed(2))
	return nil
}

func TestServiceEffectiveLoadsLayers(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	distributorID := id.New()
	vendorID := id.New()
	productID := id.New()

	product := ProductPricing{SellUnitPrice: money("10.00")}

	// No override rows: product price wins.
	res, err := svc.Effective(ctx, UnitPiece, distributorID, vendorID, productID, product)
	require.NoError(t, err)
	assert.Equal(t, SourceProductDefault, res.Source)
	assertMoneyEq(t, "10.00", res.Price)

	// A bulk row outranks it.
	repo.bulkPricing[productID] = &BulkPricing{
		DistributorID: distributorID,
		ProductID:     productID,
		UnitPrice:     money("9.00"),
	}
	res, err = svc.Effective(ctx, UnitPiece, distributorID, vendorID, productID, product)
	require.NoError(t, err)
	assert.Equal(t, SourceBulkOverride, res.Source)
	assertMoneyEq(t, "9.00", res.Price)

	// A vendor row outranks both.
	repo.vendorOverrides[productID] = &VendorPriceOverride{
		DistributorID: distributorID,
		VendorID:      vendorID,
		ProductID:     productID,
		UnitPrice:     money("8.50"),
	}
	res, err = svc.Effective(ctx, UnitPiece, distributorID, vendorID, productID, product)
	require.NoError(t, err)
	assert.Equal(t, SourceVendorOverride, res.Source)
	assertMoneyEq(t, "8.50", res.Price)
}

func TestServiceEffectiveSkipsVendorLayerWithoutVendor(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	productID := id.New()
	repo.vendorOverrides[productID] = &VendorPriceOverride{
		ProductID: productID,
		UnitPrice: money("5.00"),
	}

	res, err := svc.Effective(ctx, UnitPiece, id.New(), id.Nil(), productID,
		ProductPricing{SellUnitPrice: money("10.00")})
	require.NoError(t, err)
	assert.Equal(t, SourceProductDefault, res.Source)
}

func TestServiceEffectiveRequiredMissing(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())

	_, _, err := svc.EffectiveRequired(ctx, UnitCase, id.New(), id.New(), id.New(),
		ProductPricing{SellUnitPrice: money("10.00")})
	require.Error(t, err)
	assert.True(t, apperror.IsPriceRequired(err))
}

func TestApplyBulkEditsPerRowResults(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	distributorID := id.New()
	goodID := id.New()
	badTargetID := id.New()
	failingID := id.New()
	repo.applyErr[failingID] = apperror.NewNotFound("product", failingID)

	results := svc.ApplyBulkEdits(ctx, distributorID, []BulkEditRow{
		{ProductID: goodID, Target: "SELL_CASE", Price: types.MustMoney("42.00")},
		{ProductID: badTargetID, Target: "WHOLESALE", Price: types.MustMoney("1.00")},
		{ProductID: failingID, Target: "COST", Price: types.MustMoney("2.00")},
		{ProductID: goodID, Target: "unit_price", Price: types.MustMoney("3.50")},
	})

	require.Len(t, results, 4)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, TargetSellCase, results[0].Target)

	require.Error(t, results[1].Err)
	appErr, ok := apperror.AsAppError(results[1].Err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidFieldTarget, appErr.Code)

	// Row 3 fails at the repository but the batch continues.
	require.Error(t, results[2].Err)
	assert.Equal(t, TargetCostUnit, results[2].Target)

	assert.NoError(t, results[3].Err)
	assert.Equal(t, TargetSellUnit, results[3].Target)

	assert.Equal(t, []string{"case_price=42.00", "unit_price=3.50"}, repo.applied)
}

func TestVendorOverrideValidate(t *testing.T) {
	ctx := context.Background()

	ov := &VendorPriceOverride{VendorID: id.New(), ProductID: id.New()}
	require.Error(t, ov.Validate(ctx), "must carry at least one price")

	ov.UnitPrice = money("-1.00")
	require.Error(t, ov.Validate(ctx))

	ov.UnitPrice = money("0.00")
	require.NoError(t, ov.Validate(ctx), "zero is a valid price")
}

func assertMoneyEq(t *testing.T, want string, got types.NullMoney) {
	t.Helper()
	require.True(t, got.Valid)
	assert.True(t, got.Decimal.Equal(types.MustMoney(want)),
		"want %s, got %s", want, got.Decimal)
}
