// Package invoice provides the invoice document: a frozen financial
// snapshot generated from a submitted order. Once generated, nothing on an
// invoice changes; rendering always replays the stored snapshots.
package invoice

import (
	"context"
	"time"

	"vendorgate/internal/core/apperror"
	"vendorgate/internal/core/entity"
	"vendorgate/internal/core/id"
	"vendorgate/internal/core/types"
	"vendorgate/internal/domain/billing"
	"vendorgate/internal/domain/pricing"
)

// Invoice is the generated invoice document.
type Invoice struct {
	entity.Document

	// OrderID is the order this invoice was generated from
	OrderID id.ID `db:"order_id" json:"orderId"`

	GeneratedAt time.Time `db:"generated_at" json:"generatedAt"`

	Subtotal types.Money `db:"subtotal" json:"subtotal"`
	TaxTotal types.Money `db:"tax_total" json:"taxTotal"`
	Total    types.Money `db:"total" json:"total"`

	// Lines and TaxLines are loaded separately by the repository.
	Lines    []Line    `db:"-" json:"lines,omitempty"`
	TaxLines []TaxLine `db:"-" json:"taxLines,omitempty"`
}

// Line is one frozen invoice line. Every field was snapshotted at
// generation time; the product join is never consulted again.
type Line struct {
	LineID    id.ID `db:"id" json:"id"`
	InvoiceID id.ID `db:"invoice_id" json:"invoiceId"`
	LineNo    int   `db:"line_no" json:"lineNo"`

	ProductID *id.ID `db:"product_id" json:"productId,omitempty"`
	Manual    bool   `db:"manual" json:"manual"`

	NameSnapshot     string  `db:"name_snapshot" json:"name"`
	CategorySnapshot string  `db:"category_snapshot" json:"category"`
	ItemCode         *string `db:"item_code" json:"itemCode,omitempty"`

	Unit         pricing.UnitType `db:"order_unit" json:"unit"`
	QtySnapshot  types.Money      `db:"qty_snapshot" json:"qty"`
	UnitsPerCase int              `db:"units_per_case" json:"unitsPerCase"`

	UnitPriceSnapshot types.Money `db:"unit_price_snapshot" json:"unitPrice"`
	CasePriceSnapshot types.Money `db:"case_price_snapshot" json:"casePrice"`
	LineTotalSnapshot types.Money `db:"line_total_snapshot" json:"lineTotal"`
}

// TaxLine is one tax component applied at generation time.
type TaxLine struct {
	InvoiceID id.ID       `db:"invoice_id" json:"invoiceId"`
	Label     string      `db:"label" json:"label"`
	Rate      types.Money `db:"rate" json:"rate"`
	Amount    types.Money `db:"amount" json:"amount"`
}

// Validate implements entity.Validatable.
func (inv *Invoice) Validate(ctx context.Context) error {
	if err := inv.Document.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(inv.OrderID) {
		return apperror.NewValidation("order is required").
			WithDetail("field", "orderId")
	}
	return nil
}

// ToRawLine maps a frozen line into the normalizer's input shape. All
// values arrive through the snapshot fields, so stored totals stay
// authoritative over any recomputation.
func (l *Line) ToRawLine() billing.RawLine {
	name := l.NameSnapshot
	category := l.CategorySnapshot
	upc := l.UnitsPerCase
	return billing.RawLine{
		ID:                   l.LineID,
		ProductID:            l.ProductID,
		Manual:               l.Manual,
		OrderUnit:            l.Unit,
		ItemCode:             l.ItemCode,
		NameSnapshot:         &name,
		CategorySnapshot:     &category,
		QtySnapshot:          types.SomeMoney(l.QtySnapshot),
		UnitPriceSnapshot:    types.SomeMoney(l.UnitPriceSnapshot),
		CasePriceSnapshot:    types.SomeMoney(l.CasePriceSnapshot),
		UnitsPerCaseSnapshot: &upc,
		LineTotalSnapshot:    types.SomeMoney(l.LineTotalSnapshot),
	}
}

// RawLines maps all invoice lines for normalization.
func (inv *Invoice) RawLines() []billing.RawLine {
	raws := make([]billing.RawLine, 0, len(inv.Lines))
	for i := range inv.Lines {
		raws = append(raws, inv.Lines[i].ToRawLine())
	}
	return raws
}
