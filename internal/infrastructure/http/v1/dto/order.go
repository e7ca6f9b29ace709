package dto

import (
	"time"

	"vendorgate/internal/core/types"
	"vendorgate/internal/domain/billing"
	"vendorgate/internal/domain/documents/order"
	"vendorgate/internal/domain/pricing"
)

// --- Request DTOs ---

// CreateOrderRequest opens a draft order. VendorID is required for
// distributor staff; vendor users always order for themselves.
type CreateOrderRequest struct {
	VendorID string `json:"vendorId"`
}

// AddLineRequest appends a product line to an open order.
type AddLineRequest struct {
	ProductID string      `json:"productId" binding:"required"`
	Unit      string      `json:"unit" binding:"required"`
	Qty       types.Money `json:"qty" binding:"required"`
}

// AddManualLineRequest appends a free-text line priced by the caller.
type AddManualLineRequest struct {
	Name      string      `json:"name" binding:"required"`
	Category  string      `json:"category"`
	Unit      string      `json:"unit" binding:"required"`
	Qty       types.Money `json:"qty" binding:"required"`
	UnitPrice types.Money `json:"unitPrice"`
}

// EditLineRequest carries review edits; absent fields stay untouched.
type EditLineRequest struct {
	Qty       *types.Money `json:"qty"`
	UnitPrice *types.Money `json:"unitPrice"`
}

// ToEdits converts the request into domain line edits.
func (r *EditLineRequest) ToEdits() order.LineEdits {
	return order.LineEdits{
		Qty:       NullMoneyOf(r.Qty),
		UnitPrice: NullMoneyOf(r.UnitPrice),
	}
}

// --- Response DTOs ---

// OrderLineResponse is one order line as stored.
type OrderLineResponse struct {
	ID              string           `json:"id"`
	LineNo          int              `json:"lineNo"`
	ProductID       *string          `json:"productId,omitempty"`
	Manual          bool             `json:"manual"`
	Name            string           `json:"name"`
	Category        string           `json:"category"`
	ItemCode        *string          `json:"itemCode,omitempty"`
	Unit            pricing.UnitType `json:"unit"`
	Qty             types.Money      `json:"qty"`
	UnitPrice       *types.Money     `json:"unitPrice"`
	CasePrice       *types.Money     `json:"casePrice"`
	UnitsPerCase    int              `json:"unitsPerCase"`
	PriceSource     pricing.Source   `json:"priceSource,omitempty"`
	EditedQty       *types.Money     `json:"editedQty,omitempty"`
	EditedUnitPrice *types.Money     `json:"editedUnitPrice,omitempty"`
	EditedCasePrice *types.Money     `json:"editedCasePrice,omitempty"`
}

// FromOrderLine creates response DTO from a domain line.
func FromOrderLine(l order.Line) OrderLineResponse {
	resp := OrderLineResponse{
		ID:              l.LineID.String(),
		LineNo:          l.LineNo,
		Manual:          l.Manual,
		Name:            l.Name,
		Category:        l.Category,
		ItemCode:        l.ItemCode,
		Unit:            l.Unit,
		Qty:             l.Qty,
		UnitPrice:       MoneyPtr(l.UnitPrice),
		CasePrice:       MoneyPtr(l.CasePrice),
		UnitsPerCase:    l.UnitsPerCase,
		PriceSource:     l.Source,
		EditedQty:       MoneyPtr(l.EditedQty),
		EditedUnitPrice: MoneyPtr(l.EditedUnitPrice),
		EditedCasePrice: MoneyPtr(l.EditedCasePrice),
	}
	if l.ProductID != nil {
		s := l.ProductID.String()
		resp.ProductID = &s
	}
	return resp
}

// OrderResponse is the full order document.
type OrderResponse struct {
	ID       string              `json:"id"`
	Number   string              `json:"number"`
	Date     time.Time           `json:"date"`
	VendorID string              `json:"vendorId"`
	Status   order.Status        `json:"status"`
	Version  int                 `json:"version"`
	Lines    []OrderLineResponse `json:"lines"`
}

// FromOrder creates response DTO from domain entity.
func FromOrder(doc *order.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		lines = append(lines, FromOrderLine(l))
	}
	return OrderResponse{
		ID:       doc.ID.String(),
		Number:   doc.Number,
		Date:     doc.Date,
		VendorID: doc.VendorID.String(),
		Status:   doc.Status,
		Version:  doc.Version,
		Lines:    lines,
	}
}

// OrderSummaryResponse is the list view without lines.
type OrderSummaryResponse struct {
	ID       string       `json:"id"`
	Number   string       `json:"number"`
	Date     time.Time    `json:"date"`
	VendorID string       `json:"vendorId"`
	Status   order.Status `json:"status"`
}

// FromOrderSummary creates a list-view DTO from domain entity.
func FromOrderSummary(doc *order.Order) OrderSummaryResponse {
	return OrderSummaryResponse{
		ID:       doc.ID.String(),
		Number:   doc.Number,
		Date:     doc.Date,
		VendorID: doc.VendorID.String(),
		Status:   doc.Status,
	}
}

// --- Rendered view ---

// RenderedLineResponse is one normalized, display-ready line.
type RenderedLineResponse struct {
	ID           string           `json:"id"`
	ProductID    *string          `json:"productId,omitempty"`
	Manual       bool             `json:"manual"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Unit         pricing.UnitType `json:"unit"`
	Quantity     types.Money      `json:"quantity"`
	UnitsPerCase int              `json:"unitsPerCase"`
	UnitPrice    types.Money      `json:"unitPrice"`
	CasePrice    types.Money      `json:"casePrice"`
	LineTotal    types.Money      `json:"lineTotal"`
	ItemCode     *string          `json:"itemCode,omitempty"`
}

// FromBillingLine creates response DTO from a normalized line.
func FromBillingLine(l billing.Line) RenderedLineResponse {
	resp := RenderedLineResponse{
		ID:           l.ID.String(),
		Manual:       l.Manual,
		Name:         l.Name,
		Category:     l.Category,
		Unit:         l.Unit,
		Quantity:     l.Quantity,
		UnitsPerCase: l.UnitsPerCase,
		UnitPrice:    l.UnitPrice,
		CasePrice:    l.CasePrice,
		LineTotal:    l.LineTotal,
		ItemCode:     l.ItemCode,
	}
	if l.ProductID != nil {
		s := l.ProductID.String()
		resp.ProductID = &s
	}
	return resp
}

// RenderedOrderResponse is the normalized order view with its subtotal.
type RenderedOrderResponse struct {
	OrderID  string                 `json:"orderId"`
	Lines    []RenderedLineResponse `json:"lines"`
	Subtotal types.Money            `json:"subtotal"`
}
