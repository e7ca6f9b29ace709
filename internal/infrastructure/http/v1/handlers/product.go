package handlers

import (
	"github.com/gin-gonic/gin"

	"vendorgate/internal/domain/catalogs/product"
	"vendorgate/internal/domain/pricing"
	"vendorgate/internal/infrastructure/http/v1/dto"
	"vendorgate/internal/infrastructure/storage/postgres"
)

// ProductHandler handles the distributor-side product catalog plus the
// vendor-facing priced catalog view.
type ProductHandler struct {
	*BaseHandler
	service *product.Service
	prices  *pricing.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *product.Service, prices *pricing.Service) *ProductHandler {
	return &ProductHandler{
		BaseHandler: base,
		service:     service,
		prices:      prices,
	}
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateProductRequest
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

	h.Audit(c, "product", item.ID, postgres.AuditActionCreate, postgres.StructToMap(item))
	h.Created(c, item.ID)
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	productID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.service.GetByID(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	before := postgres.StructToMap(item)
	req.ApplyTo(item)
	if err := h.service.Update(ctx, item); err != nil {
		h.Error(c, err)
		return
	}

	h.Audit(c, "product", item.ID, postgres.AuditActionUpdate, postgres.Diff(before, postgres.StructToMap(item)))
	h.OK(c, dto.FromProduct(item))
}

// GetByID handles GET /products/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	productID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromProduct(item))
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
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

	h.OK(c, dto.NewListResponse(&query, result, dto.FromProduct))
}

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), productID); err != nil {
		h.Error(c, err)
		return
	}

	h.Audit(c, "product", productID, postgres.AuditActionDelete, nil)
	h.NoContent(c)
}

// History handles GET /products/:id/history
//
// Change history for one product, newest first. Price disputes start
// here: who set what, and when.
func (h *ProductHandler) History(c *gin.Context) {
	productID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	entries := []postgres.AuditEntry{}
	if h.audit != nil {
		var err error
		entries, err = h.audit.GetEntityHistory(c.Request.Context(), "product", productID, 100)
		if err != nil {
			h.Error(c, err)
			return
		}
	}

	h.OK(c, gin.H{"entries": entries})
}

// Catalog handles GET /catalog
//
// The vendor-facing browse view: each product carries its effective
// price per orderable unit, resolved through the override layers for
// the calling vendor. A unit nothing prices comes back with a null
// price, never zero.
func (h *ProductHandler) Catalog(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.ListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	distributorID, ok := h.DistributorID(c)
	if !ok {
		return
	}
	vendorID, ok := h.VendorScopeOptional(c, c.Query("vendorId"))
	if !ok {
		return
	}

	result, err := h.service.List(ctx, distributorID, query.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.CatalogItemResponse, 0, len(result.Items))
	for _, p := range result.Items {
		entry := dto.CatalogItemResponse{
			ID:           p.ID.String(),
			Name:         p.Name,
			Category:     p.Category,
			ItemCode:     p.ItemCode,
			UnitsPerCase: p.UnitsPerCase,
		}

		for _, unit := range []pricing.UnitType{pricing.UnitPiece, pricing.UnitCase} {
			if !p.AllowsUnit(unit) {
				continue
			}
			res, err := h.prices.Effective(ctx, unit, distributorID, vendorID, p.ID, p.Pricing())
			if err != nil {
				h.Error(c, err)
				return
			}
			priced := dto.PricedUnit{
				Unit:   unit,
				Price:  dto.MoneyPtr(res.Price),
				Source: res.Source,
			}
			if unit == pricing.UnitCase && res.Price.Valid {
				priced.PerPieceEquivalent = dto.MoneyPtr(
					pricing.UnitEquivalent(res.Price.Decimal, p.UnitsPerCase),
				)
			}
			entry.Units = append(entry.Units, priced)
		}

		items = append(items, entry)
	}

	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Page:       query.Page,
		PageSize:   query.PageSize,
	})
}

// Price handles GET /catalog/:id/price?unit=piece|case
//
// Resolves the effective price of one product for the calling vendor.
func (h *ProductHandler) Price(c *gin.Context) {
	ctx := c.Request.Context()

	productID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	unit, err := pricing.ParseUnitType(c.DefaultQuery("unit", string(pricing.UnitPiece)))
	if err != nil {
		h.Error(c, err)
		return
	}

	distributorID, ok := h.DistributorID(c)
	if !ok {
		return
	}
	vendorID, ok := h.VendorScopeOptional(c, c.Query("vendorId"))
	if !ok {
		return
	}

	item, err := h.service.GetByID(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	res, err := h.prices.Effective(ctx, unit, distributorID, vendorID, item.ID, item.Pricing())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromResolution(unit, res))
}
