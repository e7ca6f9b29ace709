package invoice

import (
	"context"

	"vendorgate/internal/core/id"
	"vendorgate/internal/domain"
)

// Repository defines persistence for invoices. Invoices are insert-only;
// there is no update path.
type Repository interface {
	// Create stores the invoice header with its lines and tax lines.
	Create(ctx context.Context, doc *Invoice) error

	// GetByID retrieves the invoice with its lines.
	GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error)

	// GetByOrderID retrieves the invoice generated for an order.
	GetByOrderID(ctx context.Context, orderID id.ID) (*Invoice, error)

	// ListByVendor retrieves a vendor's invoices, newest first.
	ListByVendor(ctx context.Context, distributorID, vendorID id.ID, filter domain.ListFilter) (domain.ListResult[*Invoice], error)

	// ListByDistributor retrieves all invoices of a distributor.
	ListByDistributor(ctx context.Context, distributorID id.ID, filter domain.ListFilter) (domain.ListResult[*Invoice], error)
}
