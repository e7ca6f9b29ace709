package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"vendorgate/internal/core/apperror"
	"vendorgate/internal/core/id"
	"vendorgate/internal/core/types"
	"vendorgate/internal/domain/documents/invoice"
	"vendorgate/internal/domain/registers/creditledger"
	"vendorgate/internal/infrastructure/http/v1/dto"
)

// CreditHandler handles the store-credit ledger endpoints.
type CreditHandler struct {
	*BaseHandler
	service  *creditledger.Service
	invoices *invoice.Service
}

// NewCreditHandler creates a new credit handler.
func NewCreditHandler(base *BaseHandler, service *creditledger.Service, invoices *invoice.Service) *CreditHandler {
	return &CreditHandler{
		BaseHandler: base,
		service:     service,
		invoices:    invoices,
	}
}

// Balance handles GET /credit/balance
func (h *CreditHandler) Balance(c *gin.Context) {
	distributorID, ok := h.DistributorID(c)
	if !ok {
		return
	}
	vendorID, ok := h.VendorScope(c, c.Query("vendorId"))
	if !ok {
		return
	}

	balance, err := h.service.Balance(c.Request.Context(), distributorID, vendorID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.BalanceResponse{
		VendorID: vendorID.String(),
		Balance:  balance,
	})
}

// History handles GET /credit/history
func (h *CreditHandler) History(c *gin.Context) {
	distributorID, ok := h.DistributorID(c)
	if !ok {
		return
	}
	vendorID, ok := h.VendorScope(c, c.Query("vendorId"))
	if !ok {
		return
	}

	entries, err := h.service.History(c.Request.Context(), distributorID, vendorID)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.FromLedgerEntry(e))
	}
	h.OK(c, gin.H{"items": items})
}

// Add handles POST /credit/add (distributor staff only).
func (h *CreditHandler) Add(c *gin.Context) {
	h.adjust(c, h.service.Add)
}

// Deduct handles POST /credit/deduct (distributor staff only).
func (h *CreditHandler) Deduct(c *gin.Context) {
	h.adjust(c, h.service.Deduct)
}

// Apply handles POST /credit/apply
//
// Applies available credit against an order; the amount is capped to the
// current balance, never overdrawing it.
func (h *CreditHandler) Apply(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreditApplyRequest
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
	orderID, err := id.Parse(req.OrderID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid orderId").WithDetail("field", "orderId"))
		return
	}

	entry, err := h.service.Apply(ctx, distributorID, vendorID, orderID, req.Amount)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromLedgerEntry(entry))
}

// Reverse handles POST /credit/entries/:id/reverse (distributor staff only).
func (h *CreditHandler) Reverse(c *gin.Context) {
	entryID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreditReverseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := h.service.Reverse(c.Request.Context(), entryID, req.Memo)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromLedgerEntry(entry))
}

// AmountDue handles GET /orders/:id/amount-due
//
// The payable remainder of the order's invoice after netting applied
// credit against reversals, floored at zero.
func (h *CreditHandler) AmountDue(c *gin.Context) {
	ctx := c.Request.Context()

	orderID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	inv, err := h.invoices.GetByOrderID(ctx, orderID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if !h.CanAccessVendor(c, inv.VendorID) {
		h.Error(c, apperror.NewForbidden("order belongs to another vendor"))
		return
	}

	applied, err := h.service.AppliedToOrder(ctx, orderID)
	if err != nil {
		h.Error(c, err)
		return
	}
	due, err := h.service.AmountDue(ctx, orderID, inv.Total)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.AmountDueResponse{
		OrderID:       orderID.String(),
		InvoiceTotal:  inv.Total,
		CreditApplied: applied,
		AmountDue:     due,
	})
}

type adjustFn func(ctx context.Context, distributorID, vendorID id.ID, amount types.Money, memo string) (*creditledger.Entry, error)

func (h *CreditHandler) adjust(c *gin.Context, fn adjustFn) {
	ctx := c.Request.Context()

	var req dto.CreditAdjustRequest
	if !h.BindJSON(c, &req) {
		return
	}

	distributorID, ok := h.DistributorID(c)
	if !ok {
		return
	}
	vendorID, err := id.Parse(req.VendorID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid vendorId").WithDetail("field", "vendorId"))
		return
	}

	entry, err := fn(ctx, distributorID, vendorID, req.Amount, req.Memo)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromLedgerEntry(entry))
}
