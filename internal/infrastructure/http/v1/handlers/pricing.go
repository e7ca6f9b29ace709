package handlers

import (
	"github.com/gin-gonic/gin"

	"vendorgate/internal/core/id"
	"vendorgate/internal/domain/pricing"
	"vendorgate/internal/infrastructure/http/v1/dto"
	"vendorgate/internal/infrastructure/storage/postgres"
)

// PricingHandler handles price override administration and bulk edits.
type PricingHandler struct {
	*BaseHandler
	service *pricing.Service
}

// NewPricingHandler creates a new pricing handler.
func NewPricingHandler(base *BaseHandler, service *pricing.Service) *PricingHandler {
	return &PricingHandler{
		BaseHandler: base,
		service:     service,
	}
}

// SetVendorOverride handles PUT /pricing/vendor-overrides
func (h *PricingHandler) SetVendorOverride(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SetVendorOverrideRequest
	if !h.BindJSON(c, &req) {
		return
	}

	distributorID, ok := h.DistributorID(c)
	if !ok {
		return
	}

	override, err := req.ToEntity(distributorID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.SetVendorOverride(ctx, override); err != nil {
		h.Error(c, err)
		return
	}

	h.Audit(c, "vendor_price_override", override.ProductID, postgres.AuditActionUpdate, map[string]any{
		"vendorId":  override.VendorID.String(),
		"unitPrice": override.UnitPrice,
		"casePrice": override.CasePrice,
	})
	h.Success(c, "vendor override saved")
}

// ClearVendorOverride handles DELETE /pricing/vendor-overrides/:vendorId/:productId
func (h *PricingHandler) ClearVendorOverride(c *gin.Context) {
	distributorID, ok := h.DistributorID(c)
	if !ok {
		return
	}
	vendorID, ok := h.ParseIDParam(c, "vendorId")
	if !ok {
		return
	}
	productID, ok := h.ParseIDParam(c, "productId")
	if !ok {
		return
	}

	if err := h.service.ClearVendorOverride(c.Request.Context(), distributorID, vendorID, productID); err != nil {
		h.Error(c, err)
		return
	}

	h.Audit(c, "vendor_price_override", productID, postgres.AuditActionDelete, map[string]any{
		"vendorId": vendorID.String(),
	})
	h.NoContent(c)
}

// SetBulkPricing handles PUT /pricing/bulk-tiers
func (h *PricingHandler) SetBulkPricing(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SetBulkPricingRequest
	if !h.BindJSON(c, &req) {
		return
	}

	distributorID, ok := h.DistributorID(c)
	if !ok {
		return
	}

	bulk, err := req.ToEntity(distributorID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.SetBulkPricing(ctx, bulk); err != nil {
		h.Error(c, err)
		return
	}

	h.Audit(c, "bulk_pricing", bulk.ProductID, postgres.AuditActionUpdate, map[string]any{
		"unitPrice": bulk.UnitPrice,
		"casePrice": bulk.CasePrice,
	})
	h.Success(c, "bulk pricing saved")
}

// BulkEdit handles POST /pricing/bulk-edit
//
// Spreadsheet-style batch of price writes. Each row is applied
// independently; the response reports per-row outcomes so one bad row
// never loses the rest of the batch.
func (h *PricingHandler) BulkEdit(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.BulkEditRequest
	if !h.BindJSON(c, &req) {
		return
	}

	distributorID, ok := h.DistributorID(c)
	if !ok {
		return
	}

	rows := make([]pricing.BulkEditRow, 0, len(req.Rows))
	for _, r := range req.Rows {
		productID, err := id.Parse(r.ProductID)
		if err != nil {
			// Keep the row so the response stays aligned with the
			// request; the nil ID comes back as a not-found result.
			productID = id.Nil()
		}
		rows = append(rows, pricing.BulkEditRow{
			ProductID: productID,
			Target:    r.Target,
			Price:     r.Price,
		})
	}

	results := h.service.ApplyBulkEdits(ctx, distributorID, rows)

	resp := make([]dto.BulkEditResultResponse, 0, len(results))
	for i, r := range results {
		if r.Err == nil {
			h.Audit(c, "product", r.ProductID, postgres.AuditActionUpdate, map[string]any{
				"target": string(r.Target),
				"price":  req.Rows[i].Price,
			})
		}
		resp = append(resp, dto.FromBulkEditResult(r))
	}
	h.OK(c, gin.H{"results": resp})
}
