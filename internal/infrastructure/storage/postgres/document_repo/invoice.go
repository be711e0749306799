package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"faktura/internal/core/apperror"
	"faktura/internal/core/id"
	"faktura/internal/core/types"
	"faktura/internal/domain"
	"faktura/internal/domain/invoice"
	"faktura/internal/infrastructure/storage/postgres"
)

const (
	invoicesTable     = "doc_invoices"
	invoiceLinesTable = "doc_invoice_lines"
)

// InvoiceRepo implements invoice.Repository and the ledger's
// InvoiceStore slice of it.
type InvoiceRepo struct {
	*BaseDocumentRepo[*invoice.Invoice]
}

// NewInvoiceRepo creates a new invoice repository.
func NewInvoiceRepo(txManager *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			invoicesTable,
			postgres.ExtractDBColumns[invoice.Invoice](),
			func() *invoice.Invoice { return &invoice.Invoice{} },
		),
	}
}

// UpdatePaymentFields persists only the payment-derived columns,
// bypassing optimistic locking: the caller already holds the row lock.
func (r *InvoiceRepo) UpdatePaymentFields(ctx context.Context, docID id.ID, paid, remaining types.Money, status invoice.PaymentStatus) error {
	sql, args, err := r.Builder().
		Update(invoicesTable).
		Set("paid_amount", paid).
		Set("remaining_amount", remaining).
		Set("payment_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": docID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update payment fields: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(invoicesTable, docID.String())
	}

	return nil
}

// GetLines retrieves lines for an invoice in line order.
func (r *InvoiceRepo) GetLines(ctx context.Context, docID id.ID) ([]invoice.Line, error) {
	sql, args, err := r.Builder().
		Select(
			"line_id", "line_no", "product_id", "product_name", "product_code",
			"unit", "quantity", "unit_price", "vat_rate", "vat_amount", "subtotal",
		).
		From(invoiceLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []invoice.Line
	if err := pgxscan.Select(ctx, r.Querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines replaces the lines of an invoice.
func (r *InvoiceRepo) SaveLines(ctx context.Context, docID id.ID, lines []invoice.Line) error {
	querier := r.Querier(ctx)

	deleteSQL := "DELETE FROM " + invoiceLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(invoiceLinesTable).
		Columns(
			"line_id", "document_id", "line_no", "product_id", "product_name",
			"product_code", "unit", "quantity", "unit_price", "vat_rate",
			"vat_amount", "subtotal",
		)
	for _, line := range lines {
		q = q.Values(
			line.LineID, docID, line.LineNo, line.ProductID, line.ProductName,
			line.ProductCode, line.Unit, line.Quantity, line.UnitPrice, line.VATRate,
			line.VATAmount, line.Subtotal,
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

// List retrieves invoices with filtering.
func (r *InvoiceRepo) List(ctx context.Context, filter invoice.ListFilter) (domain.ListResult[*invoice.Invoice], error) {
	q := r.filteredSelect(filter.ListFilter)

	if filter.Type != nil {
		q = q.Where(squirrel.Eq{"invoice_type": *filter.Type})
	}
	if filter.PartyKind != nil {
		q = q.Where(squirrel.Eq{"party_kind": *filter.PartyKind})
	}
	if filter.PartyID != nil {
		q = q.Where(squirrel.Eq{"party_id": *filter.PartyID})
	}
	if filter.PaymentStatus != nil {
		q = q.Where(squirrel.Eq{"payment_status": *filter.PaymentStatus})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	return r.listWithBuilder(ctx, q, filter.ListFilter)
}
