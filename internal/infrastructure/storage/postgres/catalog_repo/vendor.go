package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"vendorgate/internal/core/id"
	"vendorgate/internal/domain"
	"vendorgate/internal/domain/catalogs/vendor"
	"vendorgate/internal/infrastructure/storage/postgres"
)

var _ vendor.Repository = (*VendorRepo)(nil)

// VendorRepo is the PostgreSQL vendor repository.
type VendorRepo struct {
	*BaseCatalogRepo[*vendor.Vendor]
}

// NewVendorRepo creates a vendor repository.
func NewVendorRepo(txManager *postgres.TxManager) *VendorRepo {
	return &VendorRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"vendors",
			postgres.ExtractDBColumns[vendor.Vendor](),
			func() *vendor.Vendor { return &vendor.Vendor{} },
		),
	}
}

// FindByEmail retrieves a vendor by contact email.
func (r *VendorRepo) FindByEmail(ctx context.Context, distributorID id.ID, email string) (*vendor.Vendor, error) {
	q := r.Builder().
		Select(r.selectCols...).
		From(r.tableName).
		Where(squirrel.Eq{"distributor_id": distributorID}).
		Where(squirrel.Eq{"email": email}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)
	return r.FindOne(ctx, q)
}

// ListByDistributor retrieves the distributor's vendor page.
func (r *VendorRepo) ListByDistributor(ctx context.Context, distributorID id.ID, filter domain.ListFilter) (domain.ListResult[*vendor.Vendor], error) {
	return r.ListWhere(ctx, filter, squirrel.Eq{"distributor_id": distributorID})
}
