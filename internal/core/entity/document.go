package entity

import (
	"context"
	"time"

	"vendorgate/internal/core/apperror"
	"vendorgate/internal/core/id"
)

// Document is the base type for business transactions.
// Examples: Order, Invoice.
type Document struct {
	BaseDocument

	// Number is the document number (auto-generated, unique within type+period)
	Number string `db:"number" json:"number"`

	// Date is the business date of the document
	Date time.Time `db:"date" json:"date"`

	// DistributorID is the owning distributor
	DistributorID id.ID `db:"distributor_id" json:"distributorId"`

	// VendorID is the ordering vendor
	VendorID id.ID `db:"vendor_id" json:"vendorId"`

	// Comment is an optional user comment
	Comment string `db:"comment" json:"comment,omitempty"`
}

// NewDocument creates a new Document with generated ID.
func NewDocument(distributorID, vendorID id.ID) Document {
	return Document{
		BaseDocument:  NewBaseDocument(),
		Date:          time.Now().UTC(),
		DistributorID: distributorID,
		VendorID:      vendorID,
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if id.IsNil(d.DistributorID) {
		return apperror.NewValidation("distributor is required").
			WithDetail("field", "distributorId")
	}

	if id.IsNil(d.VendorID) {
		return apperror.NewValidation("vendor is required").
			WithDetail("field", "vendorId")
	}

	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	return nil
}
