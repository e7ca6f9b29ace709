package product

import (
	"context"
	"fmt"
	"time"

	"vendorgate/internal/core/apperror"
	"vendorgate/internal/core/id"
	"vendorgate/internal/domain"
	"vendorgate/pkg/logger"
	"vendorgate/pkg/numerator"
)

// Service provides business logic for the product catalog.
type Service struct {
	repo      Repository
	numerator numerator.Generator
}

// NewService creates a new product service.
func NewService(repo Repository, gen numerator.Generator) *Service {
	return &Service{
		repo:      repo,
		numerator: gen,
	}
}

// Create validates and stores a new product, generating a code if absent.
func (s *Service) Create(ctx context.Context, item *Product) error {
	if err := item.Validate(ctx); err != nil {
		return err
	}

	if item.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("PRD"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		item.Code = code
	}

	if err := s.checkItemCodeUnique(ctx, item); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return err
	}

	logger.Info(ctx, "product created", "id", item.ID, "code", item.Code)
	return nil
}

// Update validates and stores product changes.
func (s *Service) Update(ctx context.Context, item *Product) error {
	if err := item.Validate(ctx); err != nil {
		return err
	}

	if err := s.checkItemCodeUnique(ctx, item); err != nil {
		return err
	}

	return s.repo.Update(ctx, item)
}

// GetByID retrieves one product.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

// List retrieves a catalog page for a distributor.
func (s *Service) List(ctx context.Context, distributorID id.ID, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	filter.Normalize()
	return s.repo.ListByDistributor(ctx, distributorID, filter)
}

// Delete soft-deletes a product.
func (s *Service) Delete(ctx context.Context, productID id.ID) error {
	return s.repo.Delete(ctx, productID)
}

// FindByBarcode retrieves a product by barcode.
func (s *Service) FindByBarcode(ctx context.Context, distributorID id.ID, barcode string) (*Product, error) {
	return s.repo.FindByBarcode(ctx, distributorID, barcode)
}

func (s *Service) checkItemCodeUnique(ctx context.Context, item *Product) error {
	if item.ItemCode == nil || *item.ItemCode == "" {
		return nil
	}
	existing, err := s.repo.FindByItemCode(ctx, item.DistributorID, *item.ItemCode)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != item.ID {
		return apperror.NewDuplicate("product", "item code", *item.ItemCode)
	}
	return nil
}
