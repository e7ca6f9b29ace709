package handlers

import (
	"github.com/gin-gonic/gin"

	"vendorgate/internal/domain/catalogs/vendor"
	"vendorgate/internal/infrastructure/http/v1/dto"
	"vendorgate/internal/infrastructure/storage/postgres"
)

// VendorHandler handles vendor account administration.
type VendorHandler struct {
	*BaseHandler
	service *vendor.Service
}

// NewVendorHandler creates a new vendor handler.
func NewVendorHandler(base *BaseHandler, service *vendor.Service) *VendorHandler {
	return &VendorHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /vendors
func (h *VendorHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateVendorRequest
	if !h.BindJSON(c, &req) {
		return
	}

	distributorID, ok := h.DistributorID(c)
	if !ok {
		return
	}

	item := req.ToEntity(distributorID)
	if err := h.service.Create(ctx, item); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, item.ID)
}

// Update handles PUT /vendors/:id
func (h *VendorHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	vendorID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateVendorRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.service.GetByID(ctx, vendorID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(item)
	if err := h.service.Update(ctx, item); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromVendor(item))
}

// GetByID handles GET /vendors/:id
func (h *VendorHandler) GetByID(c *gin.Context) {
	vendorID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), vendorID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromVendor(item))
}

// List handles GET /vendors
func (h *VendorHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	distributorID, ok := h.DistributorID(c)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), distributorID, query.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(&query, result, dto.FromVendor))
}

// Delete handles DELETE /vendors/:id
func (h *VendorHandler) Delete(c *gin.Context) {
	vendorID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), vendorID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// SetCreditHold handles PUT /vendors/:id/credit-hold
func (h *VendorHandler) SetCreditHold(c *gin.Context) {
	vendorID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.SetCreditHoldRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetCreditHold(c.Request.Context(), vendorID, req.Hold); err != nil {
		h.Error(c, err)
		return
	}

	h.Audit(c, "vendor", vendorID, postgres.AuditActionUpdate, map[string]any{
		"creditHold": req.Hold,
	})
	h.Success(c, "credit hold updated")
}
