package dto

import (
	"vendorgate/internal/core/id"
	"vendorgate/internal/core/types"
	"vendorgate/internal/domain/catalogs/product"
	"vendorgate/internal/domain/pricing"
)

// --- Request DTOs ---

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Code          string       `json:"code"`
	Name          string       `json:"name" binding:"required"`
	Category      string       `json:"category"`
	ItemCode      *string      `json:"itemCode"`
	Barcode       *string      `json:"barcode"`
	SellUnitPrice *types.Money `json:"sellUnitPrice"`
	SellCasePrice *types.Money `json:"sellCasePrice"`
	UnitCost      *types.Money `json:"unitCost"`
	CaseCost      *types.Money `json:"caseCost"`
	UnitsPerCase  int          `json:"unitsPerCase"`
	AllowPiece    *bool        `json:"allowPiece"`
	AllowCase     bool         `json:"allowCase"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity(distributorID id.ID) *product.Product {
	item := product.NewProduct(distributorID, r.Code, r.Name)
	item.Category = r.Category
	item.ItemCode = r.ItemCode
	item.Barcode = r.Barcode
	item.SellUnitPrice = NullMoneyOf(r.SellUnitPrice)
	item.SellCasePrice = NullMoneyOf(r.SellCasePrice)
	item.UnitCost = NullMoneyOf(r.UnitCost)
	item.CaseCost = NullMoneyOf(r.CaseCost)
	item.UnitsPerCase = r.UnitsPerCase
	if r.AllowPiece != nil {
		item.AllowPiece = *r.AllowPiece
	}
	item.AllowCase = r.AllowCase
	return item
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	Code          string       `json:"code"`
	Name          string       `json:"name" binding:"required"`
	Category      string       `json:"category"`
	ItemCode      *string      `json:"itemCode"`
	Barcode       *string      `json:"barcode"`
	SellUnitPrice *types.Money `json:"sellUnitPrice"`
	SellCasePrice *types.Money `json:"sellCasePrice"`
	UnitCost      *types.Money `json:"unitCost"`
	CaseCost      *types.Money `json:"caseCost"`
	UnitsPerCase  int          `json:"unitsPerCase"`
	AllowPiece    bool         `json:"allowPiece"`
	AllowCase     bool         `json:"allowCase"`
	Version       int          `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(item *product.Product) {
	item.Code = r.Code
	item.Name = r.Name
	item.Category = r.Category
	item.ItemCode = r.ItemCode
	item.Barcode = r.Barcode
	item.SellUnitPrice = NullMoneyOf(r.SellUnitPrice)
	item.SellCasePrice = NullMoneyOf(r.SellCasePrice)
	item.UnitCost = NullMoneyOf(r.UnitCost)
	item.CaseCost = NullMoneyOf(r.CaseCost)
	item.UnitsPerCase = r.UnitsPerCase
	item.AllowPiece = r.AllowPiece
	item.AllowCase = r.AllowCase
	item.Version = r.Version
}

// --- Response DTOs ---

// ProductResponse is the distributor-side view of a product.
type ProductResponse struct {
	ID            string       `json:"id"`
	Code          string       `json:"code"`
	Name          string       `json:"name"`
	Category      string       `json:"category"`
	ItemCode      *string      `json:"itemCode,omitempty"`
	Barcode       *string      `json:"barcode,omitempty"`
	SellUnitPrice *types.Money `json:"sellUnitPrice"`
	SellCasePrice *types.Money `json:"sellCasePrice"`
	UnitCost      *types.Money `json:"unitCost"`
	CaseCost      *types.Money `json:"caseCost"`
	UnitsPerCase  int          `json:"unitsPerCase"`
	AllowPiece    bool         `json:"allowPiece"`
	AllowCase     bool         `json:"allowCase"`
	DeletionMark  bool         `json:"deletionMark"`
	Version       int          `json:"version"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(item *product.Product) ProductResponse {
	return ProductResponse{
		ID:            item.ID.String(),
		Code:          item.Code,
		Name:          item.Name,
		Category:      item.Category,
		ItemCode:      item.ItemCode,
		Barcode:       item.Barcode,
		SellUnitPrice: MoneyPtr(item.SellUnitPrice),
		SellCasePrice: MoneyPtr(item.SellCasePrice),
		UnitCost:      MoneyPtr(item.UnitCost),
		CaseCost:      MoneyPtr(item.CaseCost),
		UnitsPerCase:  item.UnitsPerCase,
		AllowPiece:    item.AllowPiece,
		AllowCase:     item.AllowCase,
		DeletionMark:  item.DeletionMark,
		Version:       item.Version,
	}
}

// --- Vendor catalog view ---

// PricedUnit is one orderable unit with its resolved effective price.
// Price is null when no pricing layer covers the unit; the UI renders
// that as "Price Not Available" rather than zero.
type PricedUnit struct {
	Unit   pricing.UnitType `json:"unit"`
	Price  *types.Money     `json:"price"`
	Source pricing.Source   `json:"source,omitempty"`

	// PerPieceEquivalent is the informational "~ $X/unit" breakdown of a
	// case price. Display only, never an orderable price.
	PerPieceEquivalent *types.Money `json:"perPieceEquivalent,omitempty"`
}

// CatalogItemResponse is the vendor-facing catalog entry: the product
// identity plus the effective price per orderable unit.
type CatalogItemResponse struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Category     string       `json:"category"`
	ItemCode     *string      `json:"itemCode,omitempty"`
	UnitsPerCase int          `json:"unitsPerCase"`
	Units        []PricedUnit `json:"units"`
}
