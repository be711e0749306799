// Package report_repo provides the PostgreSQL implementation of report
// queries. Reports read committed document state only; they never join
// against uncommitted ledger rows.
package report_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"faktura/internal/domain/reports"
	"faktura/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetReceivables aggregates unpaid invoice positions per party.
func (r *ReportRepo) GetReceivables(ctx context.Context, filter reports.ReceivablesFilter) (*reports.ReceivablesReport, error) {
	q := r.builder.Select(
		"party_kind", "party_id", "party_name",
		"COUNT(*) AS invoice_count",
		"COALESCE(SUM(total), 0) AS invoiced",
		"COALESCE(SUM(paid_amount), 0) AS paid",
		"COALESCE(SUM(remaining_amount), 0) AS outstanding",
	).From("doc_invoices").
		Where(squirrel.Eq{"owner_id": filter.OwnerID}).
		Where(squirrel.NotEq{"payment_status": "paid"})

	if filter.PartyKind != nil {
		q = q.Where(squirrel.Eq{"party_kind": *filter.PartyKind})
	}
	if filter.AsOfDate != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.AsOfDate})
	}

	q = q.GroupBy("party_kind", "party_id", "party_name").
		OrderBy("outstanding DESC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []reports.ReceivablesItem
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select receivables: %w", err)
	}

	report := &reports.ReceivablesReport{
		Items:      items,
		TotalItems: len(items),
	}
	for _, item := range items {
		report.TotalInvoiced = report.TotalInvoiced.Add(item.Invoiced)
		report.TotalPaid = report.TotalPaid.Add(item.Paid)
		report.TotalOutstanding = report.TotalOutstanding.Add(item.Outstanding)
	}

	return report, nil
}

// GetSalesSummary aggregates invoice totals per type over a period.
func (r *ReportRepo) GetSalesSummary(ctx context.Context, filter reports.SalesSummaryFilter) (*reports.SalesSummary, error) {
	sql := `
		SELECT invoice_type,
		       COUNT(*) AS count,
		       COALESCE(SUM(subtotal), 0) AS subtotal,
		       COALESCE(SUM(vat_amount), 0) AS vat,
		       COALESCE(SUM(total), 0) AS total,
		       COALESCE(SUM(paid_amount), 0) AS paid
		FROM doc_invoices
		WHERE owner_id = $1 AND date >= $2 AND date <= $3
		GROUP BY invoice_type
		ORDER BY invoice_type
	`

	var rows []reports.SalesSummaryRow
	err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql,
		filter.OwnerID, filter.FromDate, filter.ToDate)
	if err != nil {
		return nil, fmt.Errorf("select sales summary: %w", err)
	}

	return &reports.SalesSummary{
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
		Rows:     rows,
	}, nil
}

// GetJournal returns a cross-type document listing via UNION ALL over
// the three document tables.
func (r *ReportRepo) GetJournal(ctx context.Context, filter reports.JournalFilter) (*reports.Journal, error) {
	wanted := map[string]bool{"quote": true, "invoice": true, "payment": true}
	if len(filter.DocumentTypes) > 0 {
		wanted = make(map[string]bool, len(filter.DocumentTypes))
		for _, t := range filter.DocumentTypes {
			wanted[t] = true
		}
	}

	var parts []string
	args := []any{filter.OwnerID}
	argIdx := 2

	cond := "owner_id = $1"
	if filter.FromDate != nil {
		cond += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, *filter.FromDate)
		argIdx++
	}
	if filter.ToDate != nil {
		cond += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, *filter.ToDate)
		argIdx++
	}
	if filter.NumberContains != "" {
		cond += fmt.Sprintf(" AND number ILIKE $%d", argIdx)
		args = append(args, "%"+filter.NumberContains+"%")
		argIdx++
	}

	if wanted["quote"] {
		parts = append(parts, fmt.Sprintf(
			`SELECT id, 'quote' AS document_type, number, date, customer_name AS party_name, total, created_at
			 FROM doc_quotes WHERE %s`, cond))
	}
	if wanted["invoice"] {
		parts = append(parts, fmt.Sprintf(
			`SELECT id, 'invoice' AS document_type, number, date, party_name, total, created_at
			 FROM doc_invoices WHERE %s`, cond))
	}
	if wanted["payment"] {
		parts = append(parts, fmt.Sprintf(
			`SELECT id, 'payment' AS document_type, number, date, party_name, amount AS total, created_at
			 FROM doc_payments WHERE %s`, cond))
	}

	if len(parts) == 0 {
		return &reports.Journal{Limit: filter.Limit, Offset: filter.Offset}, nil
	}

	union := strings.Join(parts, "\nUNION ALL\n")

	countSQL := fmt.Sprintf(`SELECT COUNT(*) FROM (%s) j`, union)
	var total int
	if err := r.txManager.GetQuerier(ctx).QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count journal: %w", err)
	}

	pageSQL := fmt.Sprintf(`
		SELECT id, document_type, number, date, party_name, total, created_at
		FROM (%s) j
		ORDER BY date DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, union, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset)

	var items []reports.JournalItem
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, pageSQL, args...); err != nil {
		return nil, fmt.Errorf("select journal: %w", err)
	}

	return &reports.Journal{
		Items:      items,
		TotalCount: total,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}, nil
}

var _ reports.Repository = (*ReportRepo)(nil)
