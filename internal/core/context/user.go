// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// Roles recognized by the portal. Distributor staff administer the catalog
// and pricing; vendors browse, order, and view their own invoices and credit.
const (
	RoleDistributor = "distributor"
	RoleVendor      = "vendor"
)

// UserContext contains authenticated user information.
type UserContext struct {
	UserID        string
	Email         string
	Role          string
	DistributorID string
	VendorID      string // set for vendor users, empty for distributor staff
	IsAdmin       bool
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or empty string.
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}

// GetDistributorID returns the distributor scope from context or empty string.
func GetDistributorID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.DistributorID
	}
	return ""
}

// GetVendorID returns the vendor scope from context or empty string.
func GetVendorID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.VendorID
	}
	return ""
}

// HasRole checks if user has the specific role.
func HasRole(ctx context.Context, role string) bool {
	u := GetUser(ctx)
	if u == nil {
		return false
	}
	return u.Role == role
}

// IsDistributor reports whether the caller is distributor staff.
func IsDistributor(ctx context.Context) bool {
	return HasRole(ctx, RoleDistributor)
}
