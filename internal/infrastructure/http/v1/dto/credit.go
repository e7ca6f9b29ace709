package dto

import (
	"time"

	"vendorgate/internal/core/types"
	"vendorgate/internal/domain/credit"
	"vendorgate/internal/domain/registers/creditledger"
)

// --- Request DTOs ---

// CreditAdjustRequest adds or deducts store credit.
type CreditAdjustRequest struct {
	VendorID string      `json:"vendorId" binding:"required"`
	Amount   types.Money `json:"amount" binding:"required"`
	Memo     string      `json:"memo"`
}

// CreditApplyRequest applies available credit against an order.
type CreditApplyRequest struct {
	VendorID string      `json:"vendorId" binding:"required"`
	OrderID  string      `json:"orderId" binding:"required"`
	Amount   types.Money `json:"amount" binding:"required"`
}

// CreditReverseRequest undoes a deduct or apply entry.
type CreditReverseRequest struct {
	Memo string `json:"memo"`
}

// --- Response DTOs ---

// LedgerEntryResponse is one credit ledger entry.
type LedgerEntryResponse struct {
	ID         string           `json:"id"`
	VendorID   string           `json:"vendorId"`
	OrderID    *string          `json:"orderId,omitempty"`
	ReversesID *string          `json:"reversesId,omitempty"`
	Type       credit.EntryType `json:"type"`
	Amount     types.Money      `json:"amount"`
	Memo       string           `json:"memo,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// FromLedgerEntry creates response DTO from domain entity.
func FromLedgerEntry(e *creditledger.Entry) LedgerEntryResponse {
	resp := LedgerEntryResponse{
		ID:        e.ID.String(),
		VendorID:  e.VendorID.String(),
		Type:      e.Type,
		Amount:    e.Amount,
		Memo:      e.Memo,
		CreatedAt: e.CreatedAt,
	}
	if e.OrderID != nil {
		s := e.OrderID.String()
		resp.OrderID = &s
	}
	if e.ReversesID != nil {
		s := e.ReversesID.String()
		resp.ReversesID = &s
	}
	return resp
}

// BalanceResponse is the current credit balance of a vendor.
type BalanceResponse struct {
	VendorID string      `json:"vendorId"`
	Balance  types.Money `json:"balance"`
}

// AmountDueResponse is the payable remainder of an invoice after
// applied credit.
type AmountDueResponse struct {
	OrderID       string      `json:"orderId"`
	InvoiceTotal  types.Money `json:"invoiceTotal"`
	CreditApplied types.Money `json:"creditApplied"`
	AmountDue     types.Money `json:"amountDue"`
}
