// Package pricing_repo provides PostgreSQL storage for the price override
// layers and bulk price administration.
package pricing_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"vendorgate/internal/core/apperror"
	"vendorgate/internal/core/id"
	"vendorgate/internal/core/types"
	"vendorgate/internal/domain/pricing"
	"vendorgate/internal/infrastructure/storage/postgres"
)

var _ pricing.Repository = (*OverrideRepo)(nil)

// allowedBulkColumns whitelists the columns a bulk edit may write. The
// column name reaches SQL text, so it never comes from user input
// directly; the field-target parser plus this set guard the path.
var allowedBulkColumns = map[string]bool{
	"unit_price": true,
	"case_price": true,
	"unit_cost":  true,
	"case_cost":  true,
}

// OverrideRepo is the PostgreSQL pricing repository.
type OverrideRepo struct {
	txManager  *postgres.TxManager
	vendorCols []string
	bulkCols   []string
}

// NewOverrideRepo creates a pricing repository.
func NewOverrideRepo(txManager *postgres.TxManager) *OverrideRepo {
	return &OverrideRepo{
		txManager:  txManager,
		vendorCols: postgres.ExtractDBColumns[pricing.VendorPriceOverride](),
		bulkCols:   postgres.ExtractDBColumns[pricing.BulkPricing](),
	}
}

func (r *OverrideRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// GetVendorOverride retrieves the vendor-specific price row for a product.
func (r *OverrideRepo) GetVendorOverride(ctx context.Context, distributorID, vendorID, productID id.ID) (*pricing.VendorPriceOverride, error) {
	sql, args, err := r.builder().
		Select(r.vendorCols...).
		From("vendor_price_overrides").
		Where(squirrel.Eq{
			"distributor_id": distributorID,
			"vendor_id":      vendorID,
			"product_id":     productID,
			"deletion_mark":  false,
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := &pricing.VendorPriceOverride{}
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("vendor price override", productID.String())
		}
		return nil, fmt.Errorf("get vendor override: %w", err)
	}
	return row, nil
}

// GetBulkPricing retrieves the bulk price row for a product.
func (r *OverrideRepo) GetBulkPricing(ctx context.Context, distributorID, productID id.ID) (*pricing.BulkPricing, error) {
	sql, args, err := r.builder().
		Select(r.bulkCols...).
		From("bulk_pricing").
		Where(squirrel.Eq{
			"distributor_id": distributorID,
			"product_id":     productID,
			"deletion_mark":  false,
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := &pricing.BulkPricing{}
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("bulk pricing", productID.String())
		}
		return nil, fmt.Errorf("get bulk pricing: %w", err)
	}
	return row, nil
}

// UpsertVendorOverride creates or replaces a vendor override row, keyed by
// (vendor, product).
func (r *OverrideRepo) UpsertVendorOverride(ctx context.Context, override *pricing.VendorPriceOverride) error {
	data := postgres.StructToMap(override)
	filteredData := make(map[string]any, len(r.vendorCols))
	for _, col := range r.vendorCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	sql, args, err := r.builder().
		Insert("vendor_price_overrides").
		SetMap(filteredData).
		Suffix(`ON CONFLICT (vendor_id, product_id) DO UPDATE SET
			unit_price = EXCLUDED.unit_price,
			case_price = EXCLUDED.case_price,
			deletion_mark = false,
			version = vendor_price_overrides.version + 1`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("upsert vendor override: %w", err)
	}
	return nil
}

// UpsertBulkPricing creates or replaces a bulk pricing row, keyed by
// product.
func (r *OverrideRepo) UpsertBulkPricing(ctx context.Context, bulk *pricing.BulkPricing) error {
	data := postgres.StructToMap(bulk)
	filteredData := make(map[string]any, len(r.bulkCols))
	for _, col := range r.bulkCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	sql, args, err := r.builder().
		Insert("bulk_pricing").
		SetMap(filteredData).
		Suffix(`ON CONFLICT (product_id) DO UPDATE SET
			unit_price = EXCLUDED.unit_price,
			case_price = EXCLUDED.case_price,
			deletion_mark = false,
			version = bulk_pricing.version + 1`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("upsert bulk pricing: %w", err)
	}
	return nil
}

// DeleteVendorOverride removes a vendor override row.
func (r *OverrideRepo) DeleteVendorOverride(ctx context.Context, distributorID, vendorID, productID id.ID) error {
	sql, args, err := r.builder().
		Delete("vendor_price_overrides").
		Where(squirrel.Eq{
			"distributor_id": distributorID,
			"vendor_id":      vendorID,
			"product_id":     productID,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete vendor override: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("vendor price override", productID.String())
	}
	return nil
}

// ApplyBulkPrice writes one price or cost column on a product row.
func (r *OverrideRepo) ApplyBulkPrice(ctx context.Context, distributorID, productID id.ID, column string, price types.NullMoney) error {
	if !allowedBulkColumns[column] {
		return apperror.NewBusinessRule(apperror.CodeInvalidFieldTarget, "unknown price column").
			WithDetail("column", column)
	}

	sql, args, err := r.builder().
		Update("products").
		Set(column, price).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{
			"distributor_id": distributorID,
			"id":             productID,
			"deletion_mark":  false,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build bulk price update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("apply bulk price: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID.String())
	}
	return nil
}
