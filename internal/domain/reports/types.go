// Package reports provides read-only reporting over documents and
// ledger state. Reports aggregate in SQL and never mutate anything.
package reports

import (
	"time"

	"faktura/internal/core/id"
	"faktura/internal/core/types"
	"faktura/internal/domain/party"
)

// --- Receivables report ---

// ReceivablesFilter defines the filter for the outstanding invoices report.
type ReceivablesFilter struct {
	OwnerID string

	// PartyKind narrows the report to customers or suppliers.
	PartyKind *party.Kind

	// AsOfDate limits to invoices dated on or before this date.
	AsOfDate *time.Time

	Limit  int
	Offset int
}

// ReceivablesItem is one party's outstanding position.
type ReceivablesItem struct {
	PartyKind    party.Kind  `db:"party_kind" json:"partyKind"`
	PartyID      id.ID       `db:"party_id" json:"partyId"`
	PartyName    string      `db:"party_name" json:"partyName"`
	InvoiceCount int         `db:"invoice_count" json:"invoiceCount"`
	Invoiced     types.Money `db:"invoiced" json:"invoiced"`
	Paid         types.Money `db:"paid" json:"paid"`
	Outstanding  types.Money `db:"outstanding" json:"outstanding"`
}

// ReceivablesReport is the full outstanding invoices report.
type ReceivablesReport struct {
	Items      []ReceivablesItem `json:"items"`
	TotalItems int               `json:"totalItems"`

	TotalInvoiced    types.Money `json:"totalInvoiced"`
	TotalPaid        types.Money `json:"totalPaid"`
	TotalOutstanding types.Money `json:"totalOutstanding"`
}

// --- Sales summary ---

// SalesSummaryFilter defines the period for the sales summary.
type SalesSummaryFilter struct {
	OwnerID  string
	FromDate time.Time
	ToDate   time.Time
}

// SalesSummaryRow aggregates one invoice type over the period.
type SalesSummaryRow struct {
	InvoiceType string      `db:"invoice_type" json:"invoiceType"`
	Count       int         `db:"count" json:"count"`
	Subtotal    types.Money `db:"subtotal" json:"subtotal"`
	VAT         types.Money `db:"vat" json:"vat"`
	Total       types.Money `db:"total" json:"total"`
	Paid        types.Money `db:"paid" json:"paid"`
}

// SalesSummary is the per-type totals report for a period.
type SalesSummary struct {
	FromDate time.Time         `json:"fromDate"`
	ToDate   time.Time         `json:"toDate"`
	Rows     []SalesSummaryRow `json:"rows"`
}

// --- Document journal ---

// JournalFilter defines the filter for the document journal.
type JournalFilter struct {
	OwnerID string

	// DocumentTypes limits to a subset of quote, invoice, payment.
	DocumentTypes []string

	FromDate *time.Time
	ToDate   *time.Time

	NumberContains string

	Limit  int
	Offset int
}

// JournalItem is one document in the cross-type journal.
type JournalItem struct {
	ID           id.ID       `db:"id" json:"id"`
	DocumentType string      `db:"document_type" json:"documentType"`
	Number       string      `db:"number" json:"number"`
	Date         time.Time   `db:"date" json:"date"`
	PartyName    string      `db:"party_name" json:"partyName"`
	Total        types.Money `db:"total" json:"total"`
	CreatedAt    time.Time   `db:"created_at" json:"createdAt"`
}

// Journal is the document journal result.
type Journal struct {
	Items      []JournalItem `json:"items"`
	TotalCount int           `json:"totalCount"`
	Limit      int           `json:"limit"`
	Offset     int           `json:"offset"`
}
