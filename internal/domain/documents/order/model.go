// Package order provides the purchase order document: a vendor's cart of
// lines that gets submitted to the distributor and eventually invoiced.
package order

import (
	"context"

	"vendorgate/internal/core/apperror"
	"vendorgate/internal/core/entity"
	"vendorgate/internal/core/id"
	"vendorgate/internal/core/types"
	"vendorgate/internal/domain/billing"
	"vendorgate/internal/domain/pricing"
)

// Status is the order lifecycle state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusInvoiced  Status = "invoiced"
	StatusCancelled Status = "cancelled"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusInvoiced, StatusCancelled:
		return true
	}
	return false
}

// Order is the purchase order document.
type Order struct {
	entity.Document

	Status Status `db:"status" json:"status"`

	// Lines are loaded separately by the repository.
	Lines []Line `db:"-" json:"lines,omitempty"`
}

// Line is one order line. Prices are captured at add time from the
// resolver; Source records which layer supplied the price. Quantity and
// unit price may be edited while the order is still open.
type Line struct {
	LineID  id.ID `db:"id" json:"id"`
	OrderID id.ID `db:"order_id" json:"orderId"`
	LineNo  int   `db:"line_no" json:"lineNo"`

	ProductID *id.ID `db:"product_id" json:"productId,omitempty"`

	// Manual lines are free-text entries with no product reference.
	Manual bool `db:"manual" json:"manual"`

	Name     string  `db:"name" json:"name"`
	Category string  `db:"category" json:"category"`
	ItemCode *string `db:"item_code" json:"itemCode,omitempty"`

	Unit pricing.UnitType `db:"order_unit" json:"unit"`
	Qty  types.Money      `db:"qty" json:"qty"`

	UnitPrice    types.NullMoney `db:"unit_price" json:"unitPrice"`
	CasePrice    types.NullMoney `db:"case_price" json:"casePrice"`
	UnitsPerCase int             `db:"units_per_case" json:"unitsPerCase"`

	// Source is the resolver layer that supplied the captured price.
	Source pricing.Source `db:"price_source" json:"priceSource,omitempty"`

	// Distributor-side edits made during order review. A price edit lands
	// on the column matching the line's order unit.
	EditedQty       types.NullMoney `db:"edited_qty" json:"editedQty"`
	EditedUnitPrice types.NullMoney `db:"edited_unit_price" json:"editedUnitPrice"`
	EditedCasePrice types.NullMoney `db:"edited_case_price" json:"editedCasePrice"`
}

// NewOrder creates a draft order.
func NewOrder(distributorID, vendorID id.ID) *Order {
	return &Order{
		Document: entity.NewDocument(distributorID, vendorID),
		Status:   StatusDraft,
	}
}

// IsOpen reports whether the order still accepts line changes.
func (o *Order) IsOpen() bool {
	return o.Status == StatusDraft || o.Status == StatusSubmitted
}

// Validate implements entity.Validatable.
func (o *Order) Validate(ctx context.Context) error {
	if err := o.Document.Validate(ctx); err != nil {
		return err
	}
	if !o.Status.IsValid() {
		return apperror.NewValidation("invalid order status").
			WithDetail("field", "status").
			WithDetail("value", string(o.Status))
	}
	return nil
}

// Validate checks line invariants.
func (l *Line) Validate(ctx context.Context) error {
	if !l.Manual && (l.ProductID == nil || id.IsNil(*l.ProductID)) {
		return apperror.NewValidation("product is required on non-manual lines").
			WithDetail("field", "productId")
	}
	if !l.Unit.IsValid() {
		return apperror.NewValidation("invalid unit type").
			WithDetail("field", "unit").
			WithDetail("value", string(l.Unit))
	}
	if !l.Qty.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "qty")
	}
	return nil
}

// EffectiveQty returns the quantity after distributor edits.
func (l *Line) EffectiveQty() types.Money {
	if l.EditedQty.Valid {
		return l.EditedQty.Decimal
	}
	return l.Qty
}

// ToRawLine maps a stored order line into the billing normalizer's input
// shape. Captured prices land in the live columns so Edited* overrides
// outrank them; snapshot columns stay empty until invoice generation.
func (l *Line) ToRawLine() billing.RawLine {
	raw := billing.RawLine{
		ID:              l.LineID,
		ProductID:       l.ProductID,
		Manual:          l.Manual,
		OrderUnit:       l.Unit,
		ItemCode:        l.ItemCode,
		CasePriceLive:   l.CasePrice,
		UnitPriceLegacy: l.UnitPrice,
		QtyEdited:       l.EditedQty,
		UnitPriceEdited: l.EditedUnitPrice,
		CasePriceEdited: l.EditedCasePrice,
	}
	if l.Name != "" {
		name := l.Name
		raw.NameLive = &name
	}
	if l.Category != "" {
		category := l.Category
		raw.CategoryLive = &category
	}
	if l.UnitsPerCase > 0 {
		upc := l.UnitsPerCase
		raw.UnitsPerCase = &upc
	}
	qty := types.SomeMoney(l.Qty)
	if l.Unit == pricing.UnitCase {
		raw.QtyCases = qty
	} else {
		raw.QtyPieces = qty
	}
	return raw
}

// RawLines maps all order lines for normalization.
func (o *Order) RawLines() []billing.RawLine {
	raws := make([]billing.RawLine, 0, len(o.Lines))
	for i := range o.Lines {
		raws = append(raws, o.Lines[i].ToRawLine())
	}
	return raws
}

// Subtotal computes the current order subtotal from normalized lines.
func (o *Order) Subtotal() types.Money {
	return billing.Subtotal(o.RawLines())
}
