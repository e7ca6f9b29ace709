// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"vendorgate/internal/core/id"
	"vendorgate/internal/domain"
)

// --- Pagination ---

// PaginationRequest contains pagination parameters.
type PaginationRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"pageSize" binding:"omitempty,min=1,max=200"`
}

// Defaults sets default pagination values.
func (p *PaginationRequest) Defaults() {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = 20
	}
}

// Offset calculates SQL offset.
func (p *PaginationRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// --- List ---

// ListQuery carries pagination plus the free-text search filter.
type ListQuery struct {
	PaginationRequest
	Search         string `form:"search"`
	IncludeDeleted bool   `form:"includeDeleted"`
}

// ToFilter converts the query into the domain list filter.
func (q *ListQuery) ToFilter() domain.ListFilter {
	q.Defaults()
	return domain.ListFilter{
		Search:         q.Search,
		IncludeDeleted: q.IncludeDeleted,
		Limit:          q.PageSize,
		Offset:         q.Offset(),
	}
}

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
}

// NewListResponse builds a list envelope from a domain result page.
func NewListResponse[T any, D any](q *ListQuery, result domain.ListResult[T], mapFn func(T) D) ListResponse {
	items := make([]D, 0, len(result.Items))
	for _, it := range result.Items {
		items = append(items, mapFn(it))
	}
	return ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}
}

// --- ID Response ---

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
