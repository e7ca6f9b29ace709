package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"vendorgate/internal/core/apperror"
	"vendorgate/internal/core/id"
	"vendorgate/internal/domain"
	"vendorgate/internal/domain/documents/invoice"
	"vendorgate/internal/infrastructure/storage/postgres"
)

var _ invoice.Repository = (*InvoiceRepo)(nil)

// InvoiceRepo is the PostgreSQL invoice repository. Invoices are
// insert-only: header, lines, and tax lines are written once at
// generation and never updated.
type InvoiceRepo struct {
	*BaseDocumentRepo[*invoice.Invoice]
	lineCols []string
	taxCols  []string
}

// NewInvoiceRepo creates an invoice repository.
func NewInvoiceRepo(txManager *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			"invoices",
			postgres.ExtractDBColumns[invoice.Invoice](),
			func() *invoice.Invoice { return &invoice.Invoice{} },
		),
		lineCols: postgres.ExtractDBColumns[invoice.Line](),
		taxCols:  postgres.ExtractDBColumns[invoice.TaxLine](),
	}
}

// Create stores the invoice header with its lines and tax lines.
func (r *InvoiceRepo) Create(ctx context.Context, doc *invoice.Invoice) error {
	if err := r.BaseDocumentRepo.Create(ctx, doc); err != nil {
		return err
	}
	for i := range doc.Lines {
		if err := r.insertRow(ctx, "invoice_lines", r.lineCols, &doc.Lines[i]); err != nil {
			return fmt.Errorf("insert invoice line %d: %w", i+1, err)
		}
	}
	for i := range doc.TaxLines {
		if err := r.insertRow(ctx, "invoice_tax_lines", r.taxCols, &doc.TaxLines[i]); err != nil {
			return fmt.Errorf("insert tax line %d: %w", i+1, err)
		}
	}
	return nil
}

func (r *InvoiceRepo) insertRow(ctx context.Context, table string, cols []string, row any) error {
	data := postgres.StructToMap(row)
	filteredData := make(map[string]any, len(cols))
	for _, col := range cols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	sql, args, err := r.Builder().
		Insert(table).
		SetMap(filteredData).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = r.querier(ctx).Exec(ctx, sql, args...)
	return err
}

// GetByID retrieves the invoice with its lines.
func (r *InvoiceRepo) GetByID(ctx context.Context, invoiceID id.ID) (*invoice.Invoice, error) {
	doc, err := r.GetHeader(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return r.withLines(ctx, doc)
}

// GetByOrderID retrieves the invoice generated for an order.
func (r *InvoiceRepo) GetByOrderID(ctx context.Context, orderID id.ID) (*invoice.Invoice, error) {
	sql, args, err := r.Builder().
		Select(r.selectCols...).
		From(r.tableName).
		Where(squirrel.Eq{"order_id": orderID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	doc := &invoice.Invoice{}
	if err := pgxscan.Get(ctx, r.querier(ctx), doc, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("invoice", orderID.String())
		}
		return nil, fmt.Errorf("get by order: %w", err)
	}
	return r.withLines(ctx, doc)
}

func (r *InvoiceRepo) withLines(ctx context.Context, doc *invoice.Invoice) (*invoice.Invoice, error) {
	sql, args, err := r.Builder().
		Select(r.lineCols...).
		From("invoice_lines").
		Where(squirrel.Eq{"invoice_id": doc.ID}).
		OrderBy("line_no ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lines query: %w", err)
	}
	if err := pgxscan.Select(ctx, r.querier(ctx), &doc.Lines, sql, args...); err != nil {
		return nil, fmt.Errorf("load invoice lines: %w", err)
	}

	sql, args, err = r.Builder().
		Select(r.taxCols...).
		From("invoice_tax_lines").
		Where(squirrel.Eq{"invoice_id": doc.ID}).
		OrderBy("label ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build tax lines query: %w", err)
	}
	if err := pgxscan.Select(ctx, r.querier(ctx), &doc.TaxLines, sql, args...); err != nil {
		return nil, fmt.Errorf("load tax lines: %w", err)
	}
	return doc, nil
}

// ListByVendor retrieves a vendor's invoices, newest first.
func (r *InvoiceRepo) ListByVendor(ctx context.Context, distributorID, vendorID id.ID, filter domain.ListFilter) (domain.ListResult[*invoice.Invoice], error) {
	return r.ListWhere(ctx, filter,
		squirrel.Eq{"distributor_id": distributorID},
		squirrel.Eq{"vendor_id": vendorID},
	)
}

// ListByDistributor retrieves all invoices of a distributor.
func (r *InvoiceRepo) ListByDistributor(ctx context.Context, distributorID id.ID, filter domain.ListFilter) (domain.ListResult[*invoice.Invoice], error) {
	return r.ListWhere(ctx, filter, squirrel.Eq{"distributor_id": distributorID})
}
