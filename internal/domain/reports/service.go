package reports

import (
	"context"
	"fmt"

	"faktura/internal/core/apperror"
)

// Service provides report generation operations.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetReceivables generates the outstanding invoices report.
func (s *Service) GetReceivables(ctx context.Context, filter ReceivablesFilter) (*ReceivablesReport, error) {
	if filter.OwnerID == "" {
		return nil, apperror.NewValidation("owner is required").WithDetail("field", "ownerId")
	}

	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}

	report, err := s.repo.GetReceivables(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get receivables report: %w", err)
	}

	return report, nil
}

// GetSalesSummary generates per-type invoice totals for a period.
func (s *Service) GetSalesSummary(ctx context.Context, filter SalesSummaryFilter) (*SalesSummary, error) {
	if filter.OwnerID == "" {
		return nil, apperror.NewValidation("owner is required").WithDetail("field", "ownerId")
	}
	if filter.FromDate.IsZero() || filter.ToDate.IsZero() {
		return nil, apperror.NewValidation("fromDate and toDate are required")
	}
	if filter.FromDate.After(filter.ToDate) {
		return nil, apperror.NewValidation("fromDate must be before toDate")
	}

	summary, err := s.repo.GetSalesSummary(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get sales summary: %w", err)
	}

	return summary, nil
}

// GetJournal returns the cross-type document journal.
func (s *Service) GetJournal(ctx context.Context, filter JournalFilter) (*Journal, error) {
	if filter.OwnerID == "" {
		return nil, apperror.NewValidation("owner is required").WithDetail("field", "ownerId")
	}

	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}

	journal, err := s.repo.GetJournal(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get document journal: %w", err)
	}

	return journal, nil
}
