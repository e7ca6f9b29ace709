package invoice

import (
	"context"
	"fmt"
	"time"

	"vendorgate/internal/core/apperror"
	"vendorgate/internal/core/entity"
	"vendorgate/internal/core/id"
	"vendorgate/internal/core/tx"
	"vendorgate/internal/core/types"
	"vendorgate/internal/domain"
	"vendorgate/internal/domain/billing"
	"vendorgate/internal/domain/documents/order"
	"vendorgate/pkg/logger"
	"vendorgate/pkg/numerator"
)

// OrderStore is the slice of order persistence invoice generation needs.
type OrderStore interface {
	GetByID(ctx context.Context, orderID id.ID) (*order.Order, error)
	Update(ctx context.Context, doc *order.Order) error
}

// TaxRate is one configured tax component, e.g. {"Sales Tax", 0.08}.
type TaxRate struct {
	Label string
	Rate  types.Money
}

// Service provides invoice generation and rendering.
type Service struct {
	repo      Repository
	orders    OrderStore
	numerator numerator.Generator
	txManager tx.Manager
	taxes     []TaxRate
}

// NewService creates a new invoice service.
func NewService(repo Repository, orders OrderStore, gen numerator.Generator, txManager tx.Manager, taxes []TaxRate) *Service {
	return &Service{
		repo:      repo,
		orders:    orders,
		numerator: gen,
		txManager: txManager,
		taxes:     taxes,
	}
}

// Generate freezes a submitted order into an invoice. Lines are normalized
// once, here, and the results are stored verbatim; every later render
// replays these snapshots. The order flips to invoiced in the same
// transaction, locking it against further edits.
func (s *Service) Generate(ctx context.Context, orderID id.ID) (*Invoice, error) {
	doc, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch doc.Status {
	case order.StatusSubmitted:
		// proceed
	case order.StatusInvoiced:
		existing, err := s.repo.GetByOrderID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		return nil, apperror.NewConflict("order has already been invoiced").
			WithDetail("orderId", orderID).
			WithDetail("invoiceId", existing.ID)
	default:
		return nil, apperror.NewBusinessRule(apperror.CodeBusinessRule,
			"only submitted orders can be invoiced").
			WithDetail("orderId", orderID).
			WithDetail("status", string(doc.Status))
	}

	number, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("INV"), nil, time.Now())
	if err != nil {
		return nil, fmt.Errorf("generate invoice number: %w", err)
	}

	inv := s.buildInvoice(doc, number)

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, inv); err != nil {
			return err
		}
		doc.Status = order.StatusInvoiced
		doc.Touch()
		return s.orders.Update(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "invoice generated",
		"id", inv.ID, "number", inv.Number, "order_id", orderID, "total", inv.Total)
	return inv, nil
}

func (s *Service) buildInvoice(doc *order.Order, number string) *Invoice {
	inv := &Invoice{
		Document: entity.NewDocument(doc.DistributorID, doc.VendorID),
		OrderID:  doc.ID,
	}
	inv.Number = number
	inv.GeneratedAt = inv.CreatedAt

	raws := doc.RawLines()
	for i, raw := range raws {
		norm := billing.Normalize(raw)
		inv.Lines = append(inv.Lines, Line{
			LineID:            id.New(),
			InvoiceID:         inv.ID,
			LineNo:            i + 1,
			ProductID:         norm.ProductID,
			Manual:            norm.Manual,
			NameSnapshot:      norm.Name,
			CategorySnapshot:  norm.Category,
			ItemCode:          norm.ItemCode,
			Unit:              norm.Unit,
			QtySnapshot:       norm.Quantity,
			UnitsPerCase:      norm.UnitsPerCase,
			UnitPriceSnapshot: norm.UnitPrice,
			CasePriceSnapshot: norm.CasePrice,
			LineTotalSnapshot: norm.LineTotal,
		})
	}

	inv.Subtotal = billing.Subtotal(raws)
	inv.TaxTotal = types.Zero()
	for _, rate := range s.taxes {
		amount := types.Round2(inv.Subtotal.Mul(rate.Rate))
		inv.TaxLines = append(inv.TaxLines, TaxLine{
			InvoiceID: inv.ID,
			Label:     rate.Label,
			Rate:      rate.Rate,
			Amount:    amount,
		})
		inv.TaxTotal = inv.TaxTotal.Add(amount)
	}
	inv.Total = types.Round2(inv.Subtotal.Add(inv.TaxTotal))
	return inv
}

// GetByID retrieves an invoice with its lines.
func (s *Service) GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	return s.repo.GetByID(ctx, invoiceID)
}

// GetByOrderID retrieves the invoice generated for an order.
func (s *Service) GetByOrderID(ctx context.Context, orderID id.ID) (*Invoice, error) {
	return s.repo.GetByOrderID(ctx, orderID)
}

// ListByVendor retrieves a vendor's invoice page.
func (s *Service) ListByVendor(ctx context.Context, distributorID, vendorID id.ID, filter domain.ListFilter) (domain.ListResult[*Invoice], error) {
	filter.Normalize()
	return s.repo.ListByVendor(ctx, distributorID, vendorID, filter)
}

// ListByDistributor retrieves the distributor's invoice page.
func (s *Service) ListByDistributor(ctx context.Context, distributorID id.ID, filter domain.ListFilter) (domain.ListResult[*Invoice], error) {
	filter.Normalize()
	return s.repo.ListByDistributor(ctx, distributorID, filter)
}

// Render normalizes the frozen lines for display. Stored snapshots win
// over recomputation, so this returns the same numbers on every call no
// matter what happened to the product catalog since generation.
func (s *Service) Render(ctx context.Context, invoiceID id.ID) (*Invoice, []billing.Line, error) {
	inv, err := s.repo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	raws := inv.RawLines()
	lines := make([]billing.Line, 0, len(raws))
	for _, raw := range raws {
		lines = append(lines, billing.Normalize(raw))
	}
	return inv, lines, nil
}
