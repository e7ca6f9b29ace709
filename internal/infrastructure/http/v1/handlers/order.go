package handlers

import (
	"github.com/gin-gonic/gin"

	"vendorgate/internal/core/apperror"
	appctx "vendorgate/internal/core/context"
	"vendorgate/internal/core/id"
	"vendorgate/internal/domain/documents/order"
	"vendorgate/internal/domain/pricing"
	"vendorgate/internal/infrastructure/http/v1/dto"
	"vendorgate/internal/infrastructure/storage/postgres"
)

// OrderHandler handles order lifecycle endpoints.
type OrderHandler struct {
	*BaseHandler
	service *order.Service
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(base *BaseHandler, service *order.Service) *OrderHandler {
	return &OrderHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	distributorID, ok := h.DistributorID(c)
	if !ok {
		return
	}
	vendorID, ok := h.VendorScope(c, req.VendorID)
	if !ok {
		return
	}

	doc, err := h.service.Create(ctx, distributorID, vendorID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromOrder(doc))
}

// GetByID handles GET /orders/:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	doc, ok := h.loadOrder(c)
	if !ok {
		return
	}
	h.OK(c, dto.FromOrder(doc))
}

// List handles GET /orders
//
// Vendor users see their own orders; distributor staff see all orders,
// optionally narrowed by vendorId.
func (h *OrderHandler) List(c *gin.Context) {
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
		h.OK(c, dto.NewListResponse(&query, result, dto.FromOrderSummary))
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
	h.OK(c, dto.NewListResponse(&query, result, dto.FromOrderSummary))
}

// AddLine handles POST /orders/:id/lines
func (h *OrderHandler) AddLine(c *gin.Context) {
	ctx := c.Request.Context()

	doc, ok := h.loadOrder(c)
	if !ok {
		return
	}

	var req dto.AddLineRequest
	if !h.BindJSON(c, &req) {
		return
	}

	productID, err := id.Parse(req.ProductID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId").WithDetail("field", "productId"))
		return
	}
	unit, err := pricing.ParseUnitType(req.Unit)
	if err != nil {
		h.Error(c, err)
		return
	}

	line, err := h.service.AddLine(ctx, doc.ID, order.AddLineInput{
		ProductID: productID,
		Unit:      unit,
		Qty:       req.Qty,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromOrderLine(*line))
}

// AddManualLine handles POST /orders/:id/manual-lines
func (h *OrderHandler) AddManualLine(c *gin.Context) {
	ctx := c.Request.Context()

	doc, ok := h.loadOrder(c)
	if !ok {
		return
	}

	var req dto.AddManualLineRequest
	if !h.BindJSON(c, &req) {
		return
	}

	unit, err := pricing.ParseUnitType(req.Unit)
	if err != nil {
		h.Error(c, err)
		return
	}

	line, err := h.service.AddManualLine(ctx, doc.ID, order.AddManualLineInput{
		Name:      req.Name,
		Category:  req.Category,
		Unit:      unit,
		Qty:       req.Qty,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromOrderLine(*line))
}

// EditLine handles PATCH /orders/:id/lines/:lineId
func (h *OrderHandler) EditLine(c *gin.Context) {
	ctx := c.Request.Context()

	doc, ok := h.loadOrder(c)
	if !ok {
		return
	}
	lineID, ok := h.ParseIDParam(c, "lineId")
	if !ok {
		return
	}

	var req dto.EditLineRequest
	if !h.BindJSON(c, &req) {
		return
	}

	line, err := h.service.EditLine(ctx, doc.ID, lineID, req.ToEdits())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromOrderLine(*line))
}

// RemoveLine handles DELETE /orders/:id/lines/:lineId
func (h *OrderHandler) RemoveLine(c *gin.Context) {
	doc, ok := h.loadOrder(c)
	if !ok {
		return
	}
	lineID, ok := h.ParseIDParam(c, "lineId")
	if !ok {
		return
	}

	if err := h.service.RemoveLine(c.Request.Context(), doc.ID, lineID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// Submit handles POST /orders/:id/submit
func (h *OrderHandler) Submit(c *gin.Context) {
	doc, ok := h.loadOrder(c)
	if !ok {
		return
	}

	submitted, err := h.service.Submit(c.Request.Context(), doc.ID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Audit(c, "order", submitted.ID, postgres.AuditActionSubmit, map[string]any{
		"number": submitted.Number,
		"status": string(submitted.Status),
	})
	h.OK(c, dto.FromOrder(submitted))
}

// Cancel handles POST /orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	doc, ok := h.loadOrder(c)
	if !ok {
		return
	}

	cancelled, err := h.service.Cancel(c.Request.Context(), doc.ID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Audit(c, "order", cancelled.ID, postgres.AuditActionUpdate, map[string]any{
		"status": string(cancelled.Status),
	})
	h.OK(c, dto.FromOrder(cancelled))
}

// Rendered handles GET /orders/:id/rendered
//
// Returns the normalized, display-ready view with line totals and the
// order subtotal.
func (h *OrderHandler) Rendered(c *gin.Context) {
	doc, ok := h.loadOrder(c)
	if !ok {
		return
	}

	lines, subtotal, err := h.service.Render(c.Request.Context(), doc.ID)
	if err != nil {
		h.Error(c, err)
		return
	}

	rendered := make([]dto.RenderedLineResponse, 0, len(lines))
	for _, l := range lines {
		rendered = append(rendered, dto.FromBillingLine(l))
	}

	h.OK(c, dto.RenderedOrderResponse{
		OrderID:  doc.ID.String(),
		Lines:    rendered,
		Subtotal: subtotal,
	})
}

// loadOrder fetches the order from the path and enforces vendor scope.
func (h *OrderHandler) loadOrder(c *gin.Context) (*order.Order, bool) {
	orderID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return nil, false
	}

	doc, err := h.service.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return nil, false
	}

	if !h.CanAccessVendor(c, doc.VendorID) {
		h.Error(c, apperror.NewForbidden("order belongs to another vendor"))
		return nil, false
	}
	return doc, true
}
