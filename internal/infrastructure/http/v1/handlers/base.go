// Package handlers provides HTTP request handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vendorgate/internal/core/apperror"
	appctx "vendorgate/internal/core/context"
	"vendorgate/internal/core/id"
	"vendorgate/internal/infrastructure/http/v1/dto"
	"vendorgate/internal/infrastructure/storage/postgres"
	"vendorgate/pkg/logger"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct {
	audit *postgres.AuditService
}

// NewBaseHandler creates a new base handler.
func NewBaseHandler(audit *postgres.AuditService) *BaseHandler {
	return &BaseHandler{audit: audit}
}

// BindJSON binds and validates JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// BindQuery binds and validates query parameters.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid query parameters").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// Error registers error on Gin context and aborts request.
// Actual JSON response is produced by middleware.ErrorHandler.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ParseIDParam parses a path parameter as an entity ID.
func (h *BaseHandler) ParseIDParam(c *gin.Context, name string) (id.ID, bool) {
	parsed, err := id.Parse(c.Param(name))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id").WithDetail("param", name))
		return id.Nil(), false
	}
	return parsed, true
}

// DistributorID extracts the caller's distributor scope.
func (h *BaseHandler) DistributorID(c *gin.Context) (id.ID, bool) {
	raw := appctx.GetDistributorID(c.Request.Context())
	parsed, err := id.Parse(raw)
	if err != nil || id.IsNil(parsed) {
		h.Error(c, apperror.NewUnauthorized("missing distributor scope"))
		return id.Nil(), false
	}
	return parsed, true
}

// VendorScope resolves the vendor a request operates on. Vendor users are
// pinned to their own account; distributor staff pass the target vendor
// explicitly.
func (h *BaseHandler) VendorScope(c *gin.Context, requested string) (id.ID, bool) {
	user := appctx.GetUser(c.Request.Context())
	if user == nil {
		h.Error(c, apperror.NewUnauthorized("authentication required"))
		return id.Nil(), false
	}

	if user.Role == appctx.RoleVendor {
		parsed, err := id.Parse(user.VendorID)
		if err != nil {
			h.Error(c, apperror.NewUnauthorized("missing vendor scope"))
			return id.Nil(), false
		}
		return parsed, true
	}

	if requested == "" {
		h.Error(c, apperror.NewValidation("vendorId is required").WithDetail("field", "vendorId"))
		return id.Nil(), false
	}
	parsed, err := id.Parse(requested)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid vendorId").WithDetail("field", "vendorId"))
		return id.Nil(), false
	}
	return parsed, true
}

// VendorScopeOptional is VendorScope for browse endpoints: distributor
// staff may omit the vendor, in which case the vendor-specific pricing
// layer simply does not participate.
func (h *BaseHandler) VendorScopeOptional(c *gin.Context, requested string) (id.ID, bool) {
	user := appctx.GetUser(c.Request.Context())
	if user != nil && user.Role != appctx.RoleVendor && requested == "" {
		return id.Nil(), true
	}
	return h.VendorScope(c, requested)
}

// CanAccessVendor reports whether the caller may read data belonging to
// the given vendor. Distributor staff see everything; vendor users only
// their own account.
func (h *BaseHandler) CanAccessVendor(c *gin.Context, vendorID id.ID) bool {
	user := appctx.GetUser(c.Request.Context())
	if user == nil {
		return false
	}
	if user.Role != appctx.RoleVendor {
		return true
	}
	return user.VendorID == vendorID.String()
}

// Audit records a change-history entry. Failures never fail the request,
// they are logged and the response proceeds.
func (h *BaseHandler) Audit(c *gin.Context, entityType string, entityID id.ID, action postgres.AuditAction, changes map[string]any) {
	if h.audit == nil {
		return
	}
	ctx := c.Request.Context()
	if err := h.audit.LogChange(ctx, entityType, entityID, action, changes); err != nil {
		logger.Warn(ctx, "audit write failed",
			"entity_type", entityType,
			"entity_id", entityID.String(),
			"action", action,
			"error", err,
		)
	}
}

// Created sends 201 response with ID.
func (h *BaseHandler) Created(c *gin.Context, entityID id.ID) {
	c.JSON(http.StatusCreated, dto.NewIDResponse(entityID))
}

// OK sends 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// NoContent sends 204 response.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Success sends success response.
func (h *BaseHandler) Success(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: message})
}
