package order

import (
	"context"

	"vendorgate/internal/core/id"
	"vendorgate/internal/domain"
)

// Repository defines persistence for orders and their lines.
type Repository interface {
	// Create stores the order header.
	Create(ctx context.Context, doc *Order) error

	// Update stores header changes with optimistic locking.
	Update(ctx context.Context, doc *Order) error

	// GetByID retrieves the order header with its lines.
	GetByID(ctx context.Context, orderID id.ID) (*Order, error)

	// ListByVendor retrieves a vendor's orders, newest first.
	ListByVendor(ctx context.Context, distributorID, vendorID id.ID, filter domain.ListFilter) (domain.ListResult[*Order], error)

	// ListByDistributor retrieves all orders of a distributor, newest first.
	ListByDistributor(ctx context.Context, distributorID id.ID, filter domain.ListFilter) (domain.ListResult[*Order], error)

	// AddLine appends a line with the next line number.
	AddLine(ctx context.Context, line *Line) error

	// UpdateLine stores line changes.
	UpdateLine(ctx context.Context, line *Line) error

	// DeleteLine removes a line.
	DeleteLine(ctx context.Context, orderID, lineID id.ID) error

	// GetLine retrieves one line.
	GetLine(ctx context.Context, orderID, lineID id.ID) (*Line, error)
}
