package dto

import (
	"vendorgate/internal/core/id"
	"vendorgate/internal/domain/auth"
)

// --- Request DTOs ---

// RegisterRequest is the request body for creating a portal user.
type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required"`
	Role     string  `json:"role" binding:"required"`
	VendorID *string `json:"vendorId"`
	IsAdmin  bool    `json:"isAdmin"`
}

// ToUser converts the request into a domain user owned by distributorID.
func (r *RegisterRequest) ToUser(distributorID id.ID) (*auth.User, error) {
	user := auth.NewUser(distributorID, r.Email, r.Role)
	user.IsAdmin = r.IsAdmin
	if r.VendorID != nil && *r.VendorID != "" {
		vendorID, err := id.Parse(*r.VendorID)
		if err != nil {
			return nil, err
		}
		user.VendorID = &vendorID
	}
	return user, nil
}

// LoginRequest is the request body for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest is the request body for password rotation.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// --- Response DTOs ---

// UserResponse is the public view of a portal user.
type UserResponse struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	VendorID *string `json:"vendorId,omitempty"`
	IsAdmin  bool    `json:"isAdmin"`
	Disabled bool    `json:"disabled"`
}

// FromUser creates response DTO from domain entity.
func FromUser(u *auth.User) UserResponse {
	resp := UserResponse{
		ID:       u.ID.String(),
		Email:    u.Email,
		Role:     u.Role,
		IsAdmin:  u.IsAdmin,
		Disabled: u.Disabled,
	}
	if u.VendorID != nil {
		s := u.VendorID.String()
		resp.VendorID = &s
	}
	return resp
}

// LoginResponse carries the session token and the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
