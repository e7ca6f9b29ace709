package handlers

import (
	"github.com/gin-gonic/gin"

	"vendorgate/internal/core/apperror"
	appctx "vendorgate/internal/core/context"
	"vendorgate/internal/domain/documents/invoice"
	"vendorgate/internal/infrastructure/http/v1/dto"
	"vendorgate/internal/infrastructure/storage/postgres"
)

// InvoiceHandler handles invoice generation and retrieval.
type InvoiceHandler struct {
	*BaseHandler
	service *invoice.Service
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(base *BaseHandler, service *invoice.Service) *InvoiceHandler {
	return &InvoiceHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Generate handles POST /orders/:id/invoice
//
// Freezes the submitted order into an immutable invoice. Generating
// twice for one order is a conflict, not a second invoice.
func (h *InvoiceHandler) Generate(c *gin.Context) {
	orderID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	inv, err := h.service.Generate(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Audit(c, "invoice", inv.ID, postgres.AuditActionInvoice, map[string]any{
		"number":  inv.Number,
		"orderId": orderID.String(),
		"total":   inv.Total,
	})
	h.OK(c, dto.FromInvoice(inv))
}

// GetByID handles GET /invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	inv, ok := h.loadInvoice(c)
	if !ok {
		return
	}
	h.OK(c, dto.FromInvoice(inv))
}

// GetByOrder handles GET /orders/:id/invoice
func (h *InvoiceHandler) GetByOrder(c *gin.Context) {
	orderID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	inv, err := h.service.GetByOrderID(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if !h.CanAccessVendor(c, inv.VendorID) {
		h.Error(c, apperror.NewForbidden("invoice belongs to another vendor"))
		return
	}

	h.OK(c, dto.FromInvoice(inv))
}

// List handles GET /invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.ListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	distributorID, ok := h.DistributorID(c)
	if !ok {
		return
	}

	user := appctx.GetUser(ctx)
	requested := c.Query("vendorId")

	if user != nil && user.Role != appctx.RoleVendor && requested == "" {
		result, err := h.service.ListByDistributor(ctx, distributorID, query.ToFilter())
		if err != nil {
			h.Error(c, err)
			return
		}
		h.OK(c, dto.NewListResponse(&query, result, dto.FromInvoiceSummary))
		return
	}

	vendorID, ok := h.VendorScope(c, requested)
	if !ok {
		return
	}

	result, err := h.service.ListByVendor(ctx, distributorID, vendorID, query.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(&query, result, dto.FromInvoiceSummary))
}

// Rendered handles GET /invoices/:id/rendered
//
// Replays the stored snapshots through normalization. Stored line
// totals win verbatim, so the view matches the generated invoice even
// if display rules evolve later.
func (h *InvoiceHandler) Rendered(c *gin.Context) {
	inv, ok := h.loadInvoice(c)
	if !ok {
		return
	}

	_, lines, err := h.service.Render(c.Request.Context(), inv.ID)
	if err != nil {
		h.Error(c, err)
		return
	}

	rendered := make([]dto.RenderedLineResponse, 0, len(lines))
	for _, l := range lines {
		rendered = append(rendered, dto.FromBillingLine(l))
	}

	h.OK(c, gin.H{
		"invoiceId": inv.ID.String(),
		"lines":     rendered,
		"subtotal":  inv.Subtotal,
		"taxTotal":  inv.TaxTotal,
		"total":     inv.Total,
	})
}

// loadInvoice fetches the invoice from the path and enforces vendor scope.
func (h *InvoiceHandler) loadInvoice(c *gin.Context) (*invoice.Invoice, bool) {
	invoiceID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return nil, false
	}

	inv, err := h.service.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.Error(c, err)
		return nil, false
	}

	if !h.CanAccessVendor(c, inv.VendorID) {
		h.Error(c, apperror.NewForbidden("invoice belongs to another vendor"))
		return nil, false
	}
	return inv, true
}
