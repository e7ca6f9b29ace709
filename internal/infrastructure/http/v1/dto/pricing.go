package dto

import (
	"vendorgate/internal/core/id"
	"vendorgate/internal/core/types"
	"vendorgate/internal/domain/pricing"
)

// --- Request DTOs ---

// SetVendorOverrideRequest creates or replaces a vendor price override.
type SetVendorOverrideRequest struct {
	VendorID  string       `json:"vendorId" binding:"required"`
	ProductID string       `json:"productId" binding:"required"`
	UnitPrice *types.Money `json:"unitPrice"`
	CasePrice *types.Money `json:"casePrice"`
}

// ToEntity converts the request into a domain override.
func (r *SetVendorOverrideRequest) ToEntity(distributorID id.ID) (*pricing.VendorPriceOverride, error) {
	vendorID, err := id.Parse(r.VendorID)
	if err != nil {
		return nil, err
	}
	productID, err := id.Parse(r.ProductID)
	if err != nil {
		return nil, err
	}
	return &pricing.VendorPriceOverride{
		DistributorID: distributorID,
		VendorID:      vendorID,
		ProductID:     productID,
		UnitPrice:     NullMoneyOf(r.UnitPrice),
		CasePrice:     NullMoneyOf(r.CasePrice),
	}, nil
}

// SetBulkPricingRequest creates or replaces a bulk pricing tier.
type SetBulkPricingRequest struct {
	ProductID string       `json:"productId" binding:"required"`
	UnitPrice *types.Money `json:"unitPrice"`
	CasePrice *types.Money `json:"casePrice"`
}

// ToEntity converts the request into a domain bulk tier.
func (r *SetBulkPricingRequest) ToEntity(distributorID id.ID) (*pricing.BulkPricing, error) {
	productID, err := id.Parse(r.ProductID)
	if err != nil {
		return nil, err
	}
	return &pricing.BulkPricing{
		DistributorID: distributorID,
		ProductID:     productID,
		UnitPrice:     NullMoneyOf(r.UnitPrice),
		CasePrice:     NullMoneyOf(r.CasePrice),
	}, nil
}

// BulkEditRowRequest is one row of a spreadsheet-style price edit.
type BulkEditRowRequest struct {
	ProductID string      `json:"productId" binding:"required"`
	Target    string      `json:"target" binding:"required"`
	Price     types.Money `json:"price"`
}

// BulkEditRequest carries a batch of price edits.
type BulkEditRequest struct {
	Rows []BulkEditRowRequest `json:"rows" binding:"required,min=1"`
}

// --- Response DTOs ---

// BulkEditResultResponse reports the outcome of one edit row.
type BulkEditResultResponse struct {
	ProductID string              `json:"productId"`
	Target    pricing.FieldTarget `json:"target,omitempty"`
	Applied   bool                `json:"applied"`
	Error     string              `json:"error,omitempty"`
}

// FromBulkEditResult creates response DTO from a domain result.
func FromBulkEditResult(r pricing.BulkEditResult) BulkEditResultResponse {
	resp := BulkEditResultResponse{
		ProductID: r.ProductID.String(),
		Target:    r.Target,
		Applied:   r.Err == nil,
	}
	if r.Err != nil {
		resp.Error = r.Err.Error()
	}
	return resp
}

// ResolutionResponse is the effective price for one unit type, with the
// layer that supplied it. Price is null when nothing covers the unit.
type ResolutionResponse struct {
	Unit   pricing.UnitType `json:"unit"`
	Price  *types.Money     `json:"price"`
	Source pricing.Source   `json:"source,omitempty"`
}

// FromResolution creates response DTO from a resolver outcome.
func FromResolution(unit pricing.UnitType, res pricing.Resolution) ResolutionResponse {
	return ResolutionResponse{
		Unit:   unit,
		Price:  MoneyPtr(res.Price),
		Source: res.Source,
	}
}
