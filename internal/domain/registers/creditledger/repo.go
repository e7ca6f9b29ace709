package creditledger

import (
	"context"

	"vendorgate/internal/core/id"
)

// Repository defines persistence for the append-only ledger.
type Repository interface {
	// Append inserts a new entry. There is no update or delete.
	Append(ctx context.Context, entry *Entry) error

	// GetByID retrieves one entry.
	GetByID(ctx context.Context, entryID id.ID) (*Entry, error)

	// ListByVendor retrieves a vendor's full ledger, oldest first.
	ListByVendor(ctx context.Context, distributorID, vendorID id.ID) ([]*Entry, error)

	// ListByOrder retrieves the entries linked to one order.
	ListByOrder(ctx context.Context, orderID id.ID) ([]*Entry, error)

	// FindReversal retrieves the reversal of an entry, if one exists.
	FindReversal(ctx context.Context, entryID id.ID) (*Entry, error)
}
