package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"vendorgate/internal/core/apperror"
	"vendorgate/internal/core/id"
	"vendorgate/internal/domain"
	"vendorgate/internal/domain/documents/order"
	"vendorgate/internal/infrastructure/storage/postgres"
)

var _ order.Repository = (*OrderRepo)(nil)

// OrderRepo is the PostgreSQL order repository: a header row in orders
// plus line rows in order_lines.
type OrderRepo struct {
	*BaseDocumentRepo[*order.Order]
	lineCols []string
}

// NewOrderRepo creates an order repository.
func NewOrderRepo(txManager *postgres.TxManager) *OrderRepo {
	return &OrderRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			"orders",
			postgres.ExtractDBColumns[order.Order](),
			func() *order.Order { return &order.Order{} },
		),
		lineCols: postgres.ExtractDBColumns[order.Line](),
	}
}

// GetByID retrieves the order header with its lines.
func (r *OrderRepo) GetByID(ctx context.Context, orderID id.ID) (*order.Order, error) {
	doc, err := r.GetHeader(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if doc.Lines, err = r.loadLines(ctx, orderID); err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *OrderRepo) loadLines(ctx context.Context, orderID id.ID) ([]order.Line, error) {
	sql, args, err := r.Builder().
		Select(r.lineCols...).
		From("order_lines").
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("line_no ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lines query: %w", err)
	}

	var lines []order.Line
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("load order lines: %w", err)
	}
	return lines, nil
}

// ListByVendor retrieves a vendor's orders, newest first.
func (r *OrderRepo) ListByVendor(ctx context.Context, distributorID, vendorID id.ID, filter domain.ListFilter) (domain.ListResult[*order.Order], error) {
	return r.ListWhere(ctx, filter,
		squirrel.Eq{"distributor_id": distributorID},
		squirrel.Eq{"vendor_id": vendorID},
	)
}

// ListByDistributor retrieves all orders of a distributor, newest first.
func (r *OrderRepo) ListByDistributor(ctx context.Context, distributorID id.ID, filter domain.ListFilter) (domain.ListResult[*order.Order], error) {
	return r.ListWhere(ctx, filter, squirrel.Eq{"distributor_id": distributorID})
}

// AddLine appends a line with the next line number.
func (r *OrderRepo) AddLine(ctx context.Context, line *order.Line) error {
	querier := r.querier(ctx)

	if line.LineNo == 0 {
		sql, args, err := r.Builder().
			Select("COALESCE(MAX(line_no), 0) + 1").
			From("order_lines").
			Where(squirrel.Eq{"order_id": line.OrderID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build line_no query: %w", err)
		}
		if err := querier.QueryRow(ctx, sql, args...).Scan(&line.LineNo); err != nil {
			return fmt.Errorf("next line_no: %w", err)
		}
	}

	data := postgres.StructToMap(line)
	filteredData := make(map[string]any, len(r.lineCols))
	for _, col := range r.lineCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	sql, args, err := r.Builder().
		Insert("order_lines").
		SetMap(filteredData).
		ToSql()
	if err != nil {
		return fmt.Errorf("build line insert: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert order line: %w", err)
	}
	return nil
}

// UpdateLine stores line changes.
func (r *OrderRepo) UpdateLine(ctx context.Context, line *order.Line) error {
	data := postgres.StructToMap(line)
	filteredData := make(map[string]any, len(r.lineCols))
	for _, col := range r.lineCols {
		if col == "id" || col == "order_id" {
			continue
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	sql, args, err := r.Builder().
		Update("order_lines").
		SetMap(filteredData).
		Where(squirrel.Eq{"id": line.LineID}).
		Where(squirrel.Eq{"order_id": line.OrderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build line update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update order line: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("order line", line.LineID.String())
	}
	return nil
}

// DeleteLine removes a line.
func (r *OrderRepo) DeleteLine(ctx context.Context, orderID, lineID id.ID) error {
	sql, args, err := r.Builder().
		Delete("order_lines").
		Where(squirrel.Eq{"id": lineID}).
		Where(squirrel.Eq{"order_id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build line delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete order line: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("order line", lineID.String())
	}
	return nil
}

// GetLine retrieves one line.
func (r *OrderRepo) GetLine(ctx context.Context, orderID, lineID id.ID) (*order.Line, error) {
	sql, args, err := r.Builder().
		Select(r.lineCols...).
		From("order_lines").
		Where(squirrel.Eq{"id": lineID}).
		Where(squirrel.Eq{"order_id": orderID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build line query: %w", err)
	}

	line := &order.Line{}
	if err := pgxscan.Get(ctx, r.querier(ctx), line, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("order line", lineID.String())
		}
		return nil, fmt.Errorf("get order line: %w", err)
	}
	return line, nil
}
