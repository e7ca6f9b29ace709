package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"vendorgate/internal/core/id"
	"vendorgate/internal/domain"
	"vendorgate/internal/domain/catalogs/product"
	"vendorgate/internal/infrastructure/storage/postgres"
)

var _ product.Repository = (*ProductRepo)(nil)

// ProductRepo is the PostgreSQL product repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"products",
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
	}
}

// FindByItemCode retrieves a product by the distributor SKU.
func (r *ProductRepo) FindByItemCode(ctx context.Context, distributorID id.ID, itemCode string) (*product.Product, error) {
	q := r.Builder().
		Select(r.selectCols...).
		From(r.tableName).
		Where(squirrel.Eq{"distributor_id": distributorID}).
		Where(squirrel.Eq{"item_code": itemCode}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)
	return r.FindOne(ctx, q)
}

// FindByBarcode retrieves a product by barcode.
func (r *ProductRepo) FindByBarcode(ctx context.Context, distributorID id.ID, barcode string) (*product.Product, error) {
	q := r.Builder().
		Select(r.selectCols...).
		From(r.tableName).
		Where(squirrel.Eq{"distributor_id": distributorID}).
		Where(squirrel.Eq{"barcode": barcode}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)
	return r.FindOne(ctx, q)
}

// ListByDistributor retrieves the distributor's catalog page.
func (r *ProductRepo) ListByDistributor(ctx context.Context, distributorID id.ID, filter domain.ListFilter) (domain.ListResult[*product.Product], error) {
	return r.ListWhere(ctx, filter, squirrel.Eq{"distributor_id": distributorID})
}
