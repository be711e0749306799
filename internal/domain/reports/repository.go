package reports

import (
	"context"
)

// Repository defines report data access.
type Repository interface {
	GetReceivables(ctx context.Context, filter ReceivablesFilter) (*ReceivablesReport, error)
	GetSalesSummary(ctx context.Context, filter SalesSummaryFilter) (*SalesSummary, error)
	GetJournal(ctx context.Context, filter JournalFilter) (*Journal, error)
}
