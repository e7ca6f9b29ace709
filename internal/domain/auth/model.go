// Package auth provides portal accounts and JWT session tokens.
package auth

import (
	"context"
	"strings"

	"vendorgate/internal/core/apperror"
	appctx "vendorgate/internal/core/context"
	"vendorgate/internal/core/entity"
	"vendorgate/internal/core/id"
)

// User is one portal account. Vendor users carry the vendor they act for;
// distributor staff have no vendor scope.
type User struct {
	entity.BaseEntity

	DistributorID id.ID `db:"distributor_id" json:"distributorId"`

	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`

	// Role is one of the context roles: distributor or vendor.
	Role string `db:"role" json:"role"`

	// VendorID is set for vendor users only.
	VendorID *id.ID `db:"vendor_id" json:"vendorId,omitempty"`

	IsAdmin  bool `db:"is_admin" json:"isAdmin"`
	Disabled bool `db:"disabled" json:"disabled"`
}

// NewUser creates a user with generated ID.
func NewUser(distributorID id.ID, email, role string) *User {
	return &User{
		BaseEntity:    entity.NewBaseEntity(),
		DistributorID: distributorID,
		Email:         strings.ToLower(strings.TrimSpace(email)),
		Role:          role,
	}
}

// Validate implements entity.Validatable.
func (u *User) Validate(ctx context.Context) error {
	if id.IsNil(u.DistributorID) {
		return apperror.NewValidation("distributor is required").
			WithDetail("field", "distributorId")
	}
	if !strings.Contains(u.Email, "@") {
		return apperror.NewValidation("invalid email").
			WithDetail("field", "email")
	}
	switch u.Role {
	case appctx.RoleDistributor:
		// no vendor scope
	case appctx.RoleVendor:
		if u.VendorID == nil || id.IsNil(*u.VendorID) {
			return apperror.NewValidation("vendor users require a vendor").
				WithDetail("field", "vendorId")
		}
	default:
		return apperror.NewValidation("unknown role").
			WithDetail("field", "role").
			WithDetail("value", u.Role)
	}
	return nil
}

// Context builds the request-scoped user view.
func (u *User) Context() *appctx.UserContext {
	uc := &appctx.UserContext{
		UserID:        u.ID.String(),
		Email:         u.Email,
		Role:          u.Role,
		DistributorID: u.DistributorID.String(),
		IsAdmin:       u.IsAdmin,
	}
	if u.VendorID != nil {
		uc.VendorID = u.VendorID.String()
	}
	return uc
}
