package pricing

import (
	"context"

	"vendorgate/internal/core/apperror"
	"vendorgate/internal/core/entity"
	"vendorgate/internal/core/id"
	"vendorgate/internal/core/types"
	"vendorgate/pkg/logger"
)

// Service loads override layers and runs price resolution on top of them.
// It also owns bulk price administration.
type Service struct {
	repo Repository
}

// NewService creates a new pricing service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Effective resolves the display price for one product and unit type.
// Missing override rows are treated as absent layers, not errors.
func (s *Service) Effective(ctx context.Context, unit UnitType, distributorID, vendorID, productID id.ID, product ProductPricing) (Resolution, error) {
	vendorOv, bulkOv, err := s.layers(ctx, distributorID, vendorID, productID)
	if err != nil {
		return Resolution{}, err
	}
	return Resolve(unit, product, vendorOv, bulkOv), nil
}

// EffectiveRequired resolves the price for committing an order line.
// Returns PRICE_REQUIRED when no layer supplies a value.
func (s *Service) EffectiveRequired(ctx context.Context, unit UnitType, distributorID, vendorID, productID id.ID, product ProductPricing) (types.Money, Source, error) {
	vendorOv, bulkOv, err := s.layers(ctx, distributorID, vendorID, productID)
	if err != nil {
		return types.Zero(), SourceNone, err
	}
	return ResolveRequired(unit, product, vendorOv, bulkOv)
}

func (s *Service) layers(ctx context.Context, distributorID, vendorID, productID id.ID) (*Override, *Override, error) {
	var vendorOv, bulkOv *Override

	if !id.IsNil(vendorID) {
		row, err := s.repo.GetVendorOverride(ctx, distributorID, vendorID, productID)
		if err != nil && !apperror.IsNotFound(err) {
			return nil, nil, err
		}
		vendorOv = row.Layer()
	}

	row, err := s.repo.GetBulkPricing(ctx, distributorID, productID)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, nil, err
	}
	bulkOv = row.Layer()

	return vendorOv, bulkOv, nil
}

// SetVendorOverride validates and stores a vendor-specific price row.
func (s *Service) SetVendorOverride(ctx context.Context, override *VendorPriceOverride) error {
	if err := override.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(override.ID) {
		override.BaseEntity = entity.NewBaseEntity()
	}
	if err := s.repo.UpsertVendorOverride(ctx, override); err != nil {
		return err
	}
	logger.Info(ctx, "vendor price override saved",
		"vendor_id", override.VendorID, "product_id", override.ProductID)
	return nil
}

// ClearVendorOverride removes a vendor-specific price row.
func (s *Service) ClearVendorOverride(ctx context.Context, distributorID, vendorID, productID id.ID) error {
	return s.repo.DeleteVendorOverride(ctx, distributorID, vendorID, productID)
}

// SetBulkPricing validates and stores a bulk price tier.
func (s *Service) SetBulkPricing(ctx context.Context, bulk *BulkPricing) error {
	if err := bulk.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(bulk.ID) {
		bulk.BaseEntity = entity.NewBaseEntity()
	}
	return s.repo.UpsertBulkPricing(ctx, bulk)
}

// BulkEditRow is one row of a spreadsheet-style bulk price edit.
type BulkEditRow struct {
	ProductID id.ID
	Target    string
	Price     types.Money
}

// BulkEditResult reports the outcome for one row. Err is nil on success.
type BulkEditResult struct {
	ProductID id.ID
	Target    FieldTarget
	Err       error
}

// ApplyBulkEdits writes price and cost columns for a batch of products.
// Each row is applied independently; one bad row never aborts the batch.
// The returned slice has one result per input row, in order.
func (s *Service) ApplyBulkEdits(ctx context.Context, distributorID id.ID, rows []BulkEditRow) []BulkEditResult {
	results := make([]BulkEditResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, s.applyBulkEdit(ctx, distributorID, row))
	}
	return results
}

func (s *Service) applyBulkEdit(ctx context.Context, distributorID id.ID, row BulkEditRow) BulkEditResult {
	result := BulkEditResult{ProductID: row.ProductID}

	target, err := ParseFieldTarget(row.Target)
	if err != nil {
		result.Err = err
		return result
	}
	result.Target = target

	if id.IsNil(row.ProductID) {
		result.Err = apperror.NewValidation("product is required").
			WithDetail("field", "productId")
		return result
	}
	if row.Price.IsNegative() {
		result.Err = apperror.NewValidation("price cannot be negative").
			WithDetail("field", "price")
		return result
	}

	err = s.repo.ApplyBulkPrice(ctx, distributorID, row.ProductID, target.Column(), types.SomeMoney(row.Price))
	if err != nil {
		logger.Warn(ctx, "bulk price edit failed",
			"product_id", row.ProductID, "target", target, "error", err)
		result.Err = err
	}
	return result
}
