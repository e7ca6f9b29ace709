package dto

import (
	"vendorgate/internal/core/id"
	"vendorgate/internal/domain/catalogs/vendor"
)

// --- Request DTOs ---

// CreateVendorRequest is the request body for creating a vendor account.
type CreateVendorRequest struct {
	Code        string  `json:"code"`
	Name        string  `json:"name" binding:"required"`
	ContactName *string `json:"contactName"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateVendorRequest) ToEntity(distributorID id.ID) *vendor.Vendor {
	item := vendor.NewVendor(distributorID, r.Code, r.Name)
	item.ContactName = r.ContactName
	item.Email = r.Email
	item.Phone = r.Phone
	return item
}

// UpdateVendorRequest is the request body for updating a vendor.
type UpdateVendorRequest struct {
	Code        string  `json:"code"`
	Name        string  `json:"name" binding:"required"`
	ContactName *string `json:"contactName"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Version     int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateVendorRequest) ApplyTo(item *vendor.Vendor) {
	item.Code = r.Code
	item.Name = r.Name
	item.ContactName = r.ContactName
	item.Email = r.Email
	item.Phone = r.Phone
	item.Version = r.Version
}

// SetCreditHoldRequest toggles the submission block on a vendor.
type SetCreditHoldRequest struct {
	Hold bool `json:"hold"`
}

// --- Response DTOs ---

// VendorResponse is the response body for a vendor account.
type VendorResponse struct {
	ID           string  `json:"id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	ContactName  *string `json:"contactName,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	CreditHold   bool    `json:"creditHold"`
	DeletionMark bool    `json:"deletionMark"`
	Version      int     `json:"version"`
}

// FromVendor creates response DTO from domain entity.
func FromVendor(item *vendor.Vendor) VendorResponse {
	return VendorResponse{
		ID:           item.ID.String(),
		Code:         item.Code,
		Name:         item.Name,
		ContactName:  item.ContactName,
		Email:        item.Email,
		Phone:        item.Phone,
		CreditHold:   item.CreditHold,
		DeletionMark: item.DeletionMark,
		Version:      item.Version,
	}
}
