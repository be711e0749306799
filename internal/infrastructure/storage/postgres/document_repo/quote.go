package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"faktura/internal/core/id"
	"faktura/internal/domain"
	"faktura/internal/domain/quote"
	"faktura/internal/infrastructure/storage/postgres"
)

const (
	quotesTable     = "doc_quotes"
	quoteLinesTable = "doc_quote_lines"
)

// QuoteRepo implements quote.Repository.
type QuoteRepo struct {
	*BaseDocumentRepo[*quote.Quote]
}

// NewQuoteRepo creates a new quote repository.
func NewQuoteRepo(txManager *postgres.TxManager) *QuoteRepo {
	return &QuoteRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			quotesTable,
			postgres.ExtractDBColumns[quote.Quote](),
			func() *quote.Quote { return &quote.Quote{} },
		),
	}
}

// GetLines retrieves lines for a quote in line order.
func (r *QuoteRepo) GetLines(ctx context.Context, docID id.ID) ([]quote.Line, error) {
	sql, args, err := r.Builder().
		Select(
			"line_id", "line_no", "product_id", "product_name", "product_code",
			"unit", "quantity", "unit_price", "subtotal",
		).
		From(quoteLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []quote.Line
	if err := pgxscan.Select(ctx, r.Querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines replaces the lines of a quote.
func (r *QuoteRepo) SaveLines(ctx context.Context, docID id.ID, lines []quote.Line) error {
	querier := r.Querier(ctx)

	deleteSQL := "DELETE FROM " + quoteLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(quoteLinesTable).
		Columns(
			"line_id", "document_id", "line_no", "product_id", "product_name",
			"product_code", "unit", "quantity", "unit_price", "subtotal",
		)
	for _, line := range lines {
		q = q.Values(
			line.LineID, docID, line.LineNo, line.ProductID, line.ProductName,
			line.ProductCode, line.Unit, line.Quantity, line.UnitPrice, line.Subtotal,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

// List retrieves quotes with filtering.
func (r *QuoteRepo) List(ctx context.Context, filter quote.ListFilter) (domain.ListResult[*quote.Quote], error) {
	q := r.filteredSelect(filter.ListFilter)

	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	return r.listWithBuilder(ctx, q, filter.ListFilter)
}
