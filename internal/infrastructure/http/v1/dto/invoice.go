package dto

import (
	"time"

	"vendorgate/internal/core/types"
	"vendorgate/internal/domain/documents/invoice"
	"vendorgate/internal/domain/pricing"
)

// InvoiceLineResponse is one frozen invoice line.
type InvoiceLineResponse struct {
	ID           string           `json:"id"`
	LineNo       int              `json:"lineNo"`
	ProductID    *string          `json:"productId,omitempty"`
	Manual       bool             `json:"manual"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	ItemCode     *string          `json:"itemCode,omitempty"`
	Unit         pricing.UnitType `json:"unit"`
	Qty          types.Money      `json:"qty"`
	UnitsPerCase int              `json:"unitsPerCase"`
	UnitPrice    types.Money      `json:"unitPrice"`
	CasePrice    types.Money      `json:"casePrice"`
	LineTotal    types.Money      `json:"lineTotal"`
}

// FromInvoiceLine creates response DTO from a domain line.
func FromInvoiceLine(l invoice.Line) InvoiceLineResponse {
	resp := InvoiceLineResponse{
		ID:           l.LineID.String(),
		LineNo:       l.LineNo,
		Manual:       l.Manual,
		Name:         l.NameSnapshot,
		Category:     l.CategorySnapshot,
		ItemCode:     l.ItemCode,
		Unit:         l.Unit,
		Qty:          l.QtySnapshot,
		UnitsPerCase: l.UnitsPerCase,
		UnitPrice:    l.UnitPriceSnapshot,
		CasePrice:    l.CasePriceSnapshot,
		LineTotal:    l.LineTotalSnapshot,
	}
	if l.ProductID != nil {
		s := l.ProductID.String()
		resp.ProductID = &s
	}
	return resp
}

// TaxLineResponse is one tax component of an invoice.
type TaxLineResponse struct {
	Label  string      `json:"label"`
	Rate   types.Money `json:"rate"`
	Amount types.Money `json:"amount"`
}

// InvoiceResponse is the full invoice document.
type InvoiceResponse struct {
	ID          string                `json:"id"`
	Number      string                `json:"number"`
	OrderID     string                `json:"orderId"`
	VendorID    string                `json:"vendorId"`
	GeneratedAt time.Time             `json:"generatedAt"`
	Subtotal    types.Money           `json:"subtotal"`
	TaxTotal    types.Money           `json:"taxTotal"`
	Total       types.Money           `json:"total"`
	Lines       []InvoiceLineResponse `json:"lines"`
	TaxLines    []TaxLineResponse     `json:"taxLines"`
}

// FromInvoice creates response DTO from domain entity.
func FromInvoice(inv *invoice.Invoice) InvoiceResponse {
	lines := make([]InvoiceLineResponse, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		lines = append(lines, FromInvoiceLine(l))
	}
	taxes := make([]TaxLineResponse, 0, len(inv.TaxLines))
	for _, t := range inv.TaxLines {
		taxes = append(taxes, TaxLineResponse{Label: t.Label, Rate: t.Rate, Amount: t.Amount})
	}
	return InvoiceResponse{
		ID:          inv.ID.String(),
		Number:      inv.Number,
		OrderID:     inv.OrderID.String(),
		VendorID:    inv.VendorID.String(),
		GeneratedAt: inv.GeneratedAt,
		Subtotal:    inv.Subtotal,
		TaxTotal:    inv.TaxTotal,
		Total:       inv.Total,
		Lines:       lines,
		TaxLines:    taxes,
	}
}

// InvoiceSummaryResponse is the list view without lines.
type InvoiceSummaryResponse struct {
	ID          string      `json:"id"`
	Number      string      `json:"number"`
	OrderID     string      `json:"orderId"`
	VendorID    string      `json:"vendorId"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Total       types.Money `json:"total"`
}

// FromInvoiceSummary creates a list-view DTO from domain entity.
func FromInvoiceSummary(inv *invoice.Invoice) InvoiceSummaryResponse {
	return InvoiceSummaryResponse{
		ID:          inv.ID.String(),
		Number:      inv.Number,
		OrderID:     inv.OrderID.String(),
		VendorID:    inv.VendorID.String(),
		GeneratedAt: inv.GeneratedAt,
		Total:       inv.Total,
	}
}
