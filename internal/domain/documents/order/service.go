package order

import (
	"context"
	"fmt"
	"time"

	"vendorgate/internal/core/apperror"
	"vendorgate/internal/core/id"
	"vendorgate/internal/core/tx"
	"vendorgate/internal/core/types"
	"vendorgate/internal/domain"
	"vendorgate/internal/domain/billing"
	"vendorgate/internal/domain/catalogs/product"
	"vendorgate/internal/domain/catalogs/vendor"
	"vendorgate/internal/domain/pricing"
	"vendorgate/pkg/logger"
	"vendorgate/pkg/numerator"
)

// ProductGetter is the product lookup the order service needs.
type ProductGetter interface {
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)
}

// VendorGetter is the vendor lookup the order service needs.
type VendorGetter interface {
	GetByID(ctx context.Context, vendorID id.ID) (*vendor.Vendor, error)
}

// PriceResolver captures effective prices for order lines.
type PriceResolver interface {
	Effective(ctx context.Context, unit pricing.UnitType, distributorID, vendorID, productID id.ID, facts pricing.ProductPricing) (pricing.Resolution, error)
	EffectiveRequired(ctx context.Context, unit pricing.UnitType, distributorID, vendorID, productID id.ID, facts pricing.ProductPricing) (types.Money, pricing.Source, error)
}

// Service provides business logic for purchase orders.
type Service struct {
	repo      Repository
	products  ProductGetter
	vendors   VendorGetter
	prices    PriceResolver
	numerator numerator.Generator
	txManager tx.Manager
}

// NewService creates a new order service.
func NewService(repo Repository, products ProductGetter, vendors VendorGetter, prices PriceResolver, gen numerator.Generator, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		vendors:   vendors,
		prices:    prices,
		numerator: gen,
		txManager: txManager,
	}
}

// Create opens a new draft order for a vendor.
func (s *Service) Create(ctx context.Context, distributorID, vendorID id.ID) (*Order, error) {
	if _, err := s.vendors.GetByID(ctx, vendorID); err != nil {
		return nil, err
	}

	doc := NewOrder(distributorID, vendorID)

	number, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("ORD"),
		&numerator.Options{Strategy: numerator.StrategyCached}, time.Now())
	if err != nil {
		return nil, fmt.Errorf("generate order number: %w", err)
	}
	doc.Number = number

	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, err
	}

	logger.Info(ctx, "order created", "id", doc.ID, "number", doc.Number, "vendor_id", vendorID)
	return doc, nil
}

// GetByID retrieves an order with its lines.
func (s *Service) GetByID(ctx context.Context, orderID id.ID) (*Order, error) {
	return s.repo.GetByID(ctx, orderID)
}

// ListByVendor retrieves a vendor's order page.
func (s *Service) ListByVendor(ctx context.Context, distributorID, vendorID id.ID, filter domain.ListFilter) (domain.ListResult[*Order], error) {
	filter.Normalize()
	return s.repo.ListByVendor(ctx, distributorID, vendorID, filter)
}

// ListByDistributor retrieves the distributor's order page.
func (s *Service) ListByDistributor(ctx context.Context, distributorID id.ID, filter domain.ListFilter) (domain.ListResult[*Order], error) {
	filter.Normalize()
	return s.repo.ListByDistributor(ctx, distributorID, filter)
}

// AddLineInput is a request to add a product line to an order.
type AddLineInput struct {
	ProductID id.ID
	Unit      pricing.UnitType
	Qty       types.Money
}

// AddLine prices and appends a product line. The effective price is
// resolved and captured now; a missing price is a hard stop, not a
// zero-priced line.
func (s *Service) AddLine(ctx context.Context, orderID id.ID, input AddLineInput) (*Line, error) {
	doc, err := s.mustOpenOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	item, err := s.products.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if !item.AllowsUnit(input.Unit) {
		return nil, apperror.NewBusinessRule(apperror.CodeBusinessRule,
			fmt.Sprintf("product cannot be ordered by %s", input.Unit)).
			WithDetail("productId", input.ProductID).
			WithDetail("unit", string(input.Unit))
	}

	price, source, err := s.prices.EffectiveRequired(ctx, input.Unit,
		doc.DistributorID, doc.VendorID, item.ID, item.Pricing())
	if err != nil {
		return nil, err
	}

	productID := item.ID
	line := &Line{
		LineID:       id.New(),
		OrderID:      doc.ID,
		ProductID:    &productID,
		Name:         item.Name,
		Category:     item.Category,
		ItemCode:     item.ItemCode,
		Unit:         input.Unit,
		Qty:          input.Qty,
		UnitsPerCase: item.UnitsPerCase,
		Source:       source,
	}
	if input.Unit == pricing.UnitCase {
		line.CasePrice = types.SomeMoney(price)
		// Informational per-piece price, when one resolves.
		if res, err := s.prices.Effective(ctx, pricing.UnitPiece,
			doc.DistributorID, doc.VendorID, item.ID, item.Pricing()); err == nil && res.Price.Valid {
			line.UnitPrice = res.Price
		}
	} else {
		line.UnitPrice = types.SomeMoney(price)
	}

	if err := line.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.AddLine(ctx, line); err != nil {
			return err
		}
		doc.Touch()
		return s.repo.Update(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "order line added",
		"order_id", doc.ID, "line_id", line.LineID, "price_source", source)
	return line, nil
}

// AddManualLineInput is a request for a free-text line with no product.
type AddManualLineInput struct {
	Name      string
	Category  string
	Unit      pricing.UnitType
	Qty       types.Money
	UnitPrice types.Money
}

// AddManualLine appends a free-text line priced by the caller.
func (s *Service) AddManualLine(ctx context.Context, orderID id.ID, input AddManualLineInput) (*Line, error) {
	doc, err := s.mustOpenOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if input.Name == "" {
		return nil, apperror.NewValidation("name is required on manual lines").
			WithDetail("field", "name")
	}
	if input.UnitPrice.IsNegative() {
		return nil, apperror.NewValidation("price cannot be negative").
			WithDetail("field", "unitPrice")
	}

	line := &Line{
		LineID:   id.New(),
		OrderID:  doc.ID,
		Manual:   true,
		Name:     input.Name,
		Category: input.Category,
		Unit:     input.Unit,
		Qty:      input.Qty,
	}
	if input.Unit == pricing.UnitCase {
		line.CasePrice = types.SomeMoney(input.UnitPrice)
	} else {
		line.UnitPrice = types.SomeMoney(input.UnitPrice)
	}

	if err := line.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.AddLine(ctx, line); err != nil {
			return err
		}
		doc.Touch()
		return s.repo.Update(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// LineEdits carries distributor-side review edits. Absent fields stay
// unchanged; a present zero quantity is rejected, a present zero price is
// accepted. UnitPrice is the price per ordered unit: on a case line it
// lands on the case price, since that is what the total is computed from.
type LineEdits struct {
	Qty       types.NullMoney
	UnitPrice types.NullMoney
}

// EditLine applies review edits to a line of an open order.
func (s *Service) EditLine(ctx context.Context, orderID, lineID id.ID, edits LineEdits) (*Line, error) {
	doc, err := s.mustOpenOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	line, err := s.repo.GetLine(ctx, orderID, lineID)
	if err != nil {
		return nil, err
	}

	if edits.Qty.Valid {
		if !edits.Qty.Decimal.IsPositive() {
			return nil, apperror.NewValidation("quantity must be positive").
				WithDetail("field", "qty")
		}
		line.EditedQty = edits.Qty
	}
	if edits.UnitPrice.Valid {
		if edits.UnitPrice.Decimal.IsNegative() {
			return nil, apperror.NewValidation("price cannot be negative").
				WithDetail("field", "unitPrice")
		}
		if line.Unit == pricing.UnitCase {
			line.EditedCasePrice = edits.UnitPrice
		} else {
			line.EditedUnitPrice = edits.UnitPrice
		}
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateLine(ctx, line); err != nil {
			return err
		}
		doc.Touch()
		return s.repo.Update(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// RemoveLine deletes a line from an open order.
func (s *Service) RemoveLine(ctx context.Context, orderID, lineID id.ID) error {
	doc, err := s.mustOpenOrder(ctx, orderID)
	if err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.DeleteLine(ctx, orderID, lineID); err != nil {
			return err
		}
		doc.Touch()
		return s.repo.Update(ctx, doc)
	})
}

// Submit moves a draft order to submitted. Credit-held vendors are blocked
// here, not at cart-building time.
func (s *Service) Submit(ctx context.Context, orderID id.ID) (*Order, error) {
	doc, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if doc.Status != StatusDraft {
		return nil, apperror.NewBusinessRule(apperror.CodeOrderSubmitted,
			"order has already been submitted").
			WithDetail("orderId", orderID).
			WithDetail("status", string(doc.Status))
	}
	if len(doc.Lines) == 0 {
		return nil, apperror.NewBusinessRule(apperror.CodeBusinessRule,
			"cannot submit an empty order").
			WithDetail("orderId", orderID)
	}

	vnd, err := s.vendors.GetByID(ctx, doc.VendorID)
	if err != nil {
		return nil, err
	}
	if vnd.CreditHold {
		return nil, apperror.NewBusinessRule(apperror.CodeBusinessRule,
			"vendor is on credit hold").
			WithDetail("vendorId", doc.VendorID)
	}

	doc.Status = StatusSubmitted
	doc.Touch()
	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, err
	}

	logger.Info(ctx, "order submitted",
		"id", doc.ID, "number", doc.Number, "subtotal", doc.Subtotal())
	return doc, nil
}

// Cancel voids an order that has not been invoiced.
func (s *Service) Cancel(ctx context.Context, orderID id.ID) (*Order, error) {
	doc, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if doc.Status == StatusInvoiced {
		return nil, apperror.NewInvoiceLocked(orderID)
	}
	if doc.Status == StatusCancelled {
		return doc, nil
	}

	doc.Status = StatusCancelled
	doc.Touch()
	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Render normalizes the order's lines for display.
func (s *Service) Render(ctx context.Context, orderID id.ID) ([]billing.Line, types.Money, error) {
	doc, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, types.Zero(), err
	}
	raws := doc.RawLines()
	lines := make([]billing.Line, 0, len(raws))
	for _, raw := range raws {
		lines = append(lines, billing.Normalize(raw))
	}
	return lines, billing.Subtotal(raws), nil
}

// mustOpenOrder loads an order and rejects line changes once it is
// invoiced or cancelled.
func (s *Service) mustOpenOrder(ctx context.Context, orderID id.ID) (*Order, error) {
	doc, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if doc.Status == StatusInvoiced {
		return nil, apperror.NewInvoiceLocked(orderID)
	}
	if doc.Status == StatusCancelled {
		return nil, apperror.NewBusinessRule(apperror.CodeBusinessRule,
			"order has been cancelled").
			WithDetail("orderId", orderID)
	}
	return doc, nil
}
