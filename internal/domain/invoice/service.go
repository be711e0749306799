package invoice

import (
	"context"
	"fmt"
	"time"

	"faktura/internal/core/apperror"
	"faktura/internal/core/id"
	"faktura/internal/core/numerator"
	"faktura/internal/core/tx"
	"faktura/internal/domain"
	"faktura/internal/domain/audit"
	"faktura/internal/domain/event"
	"faktura/internal/domain/totals"
	"faktura/pkg/logger"
)

const auditEntity = "invoice"

// NumeratorStrategy defines the numbering strategy for invoices.
// Invoice numbers are legally sequential, so the Strict strategy is
// mandatory here.
const NumeratorStrategy = numerator.StrategyStrict

// Ledger applies and reverses the financial side effects of invoices.
type Ledger interface {
	InvoiceCreated(ctx context.Context, inv *Invoice) error
	InvoiceDeleted(ctx context.Context, inv *Invoice) error
}

// Service provides business operations for invoice documents.
type Service struct {
	repo      Repository
	numerator numerator.Generator
	ledger    Ledger
	txManager tx.Manager
	auditor   audit.Recorder
	events    event.Publisher
}

// NewService creates a new invoice service.
func NewService(repo Repository, gen numerator.Generator, ledger Ledger, txManager tx.Manager, auditor audit.Recorder, events event.Publisher) *Service {
	if auditor == nil {
		auditor = audit.NopRecorder{}
	}
	if events == nil {
		events = event.NopPublisher{}
	}
	return &Service{
		repo:      repo,
		numerator: gen,
		ledger:    ledger,
		txManager: txManager,
		auditor:   auditor,
		events:    events,
	}
}

// recordAudit writes an audit entry. Audit is best-effort: a failure is
// logged but never surfaced to the caller.
func (s *Service) recordAudit(ctx context.Context, ownerID string, docID id.ID, action audit.Action, changes map[string]any) {
	if err := s.auditor.Record(ctx, ownerID, auditEntity, docID, action, changes); err != nil {
		logger.Warn(ctx, "audit record failed", "entity", auditEntity, "id", docID, "error", err)
	}
}

// Create creates a new invoice: validates, recomputes per-line VAT and
// document totals, allocates the next FTR number and persists the
// document together with its ledger effects in one transaction. If any
// effect fails the whole creation rolls back.
func (s *Service) Create(ctx context.Context, doc *Invoice) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	doc.ApplyTotals(totals.Invoice(doc.LineTotals(), doc.DiscountAmount, doc.WithholdingAmount))

	if doc.Number == "" {
		number, err := s.numerator.GetNextNumber(ctx, doc.OwnerID, numerator.InvoiceSeries(),
			&numerator.Options{Strategy: NumeratorStrategy}, time.Now())
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		if err := s.ledger.InvoiceCreated(ctx, doc); err != nil {
			return err
		}
		return s.events.Publish(ctx, event.Event{
			AggregateType: "invoice",
			AggregateID:   doc.ID,
			Type:          event.TypeInvoiceCreated,
			OwnerID:       doc.OwnerID,
			Payload:       doc,
		})
	})
	if err != nil {
		return err
	}

	s.recordAudit(ctx, doc.OwnerID, doc.ID, audit.ActionCreate, map[string]any{
		"number": doc.Number,
		"type":   doc.Type,
		"total":  doc.Total,
	})

	logger.Info(ctx, "invoice created",
		"id", doc.ID, "number", doc.Number, "type", doc.Type, "total", doc.Total)
	return nil
}

// GetByID retrieves an invoice with lines, scoped to the owner.
func (s *Service) GetByID(ctx context.Context, ownerID string, docID id.ID) (*Invoice, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if !doc.OwnedBy(ownerID) {
		return nil, apperror.NewNotFound("invoice", docID.String())
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// List retrieves the owner's invoices with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Invoice], error) {
	if filter.OwnerID == "" {
		return domain.ListResult[*Invoice]{}, apperror.NewValidation("owner is required").
			WithDetail("field", "ownerId")
	}
	return s.repo.List(ctx, filter)
}

// Delete removes an invoice owned by the caller and reverses its ledger
// effects in the same transaction. The document row, the balance
// reversal and the stock movement removal commit or roll back together,
// so a reversal failure never leaves a half-deleted invoice.
func (s *Service) Delete(ctx context.Context, ownerID string, docID id.ID) error {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}
	if !doc.OwnedBy(ownerID) {
		return apperror.NewNotFound("invoice", docID.String())
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		deleted, err := s.repo.Delete(ctx, ownerID, docID)
		if err != nil {
			return err
		}
		if !deleted {
			return apperror.NewNotFound("invoice", docID.String())
		}
		if err := s.ledger.InvoiceDeleted(ctx, doc); err != nil {
			return apperror.NewLedgerReversal("invoice", docID.String(), err)
		}
		return s.events.Publish(ctx, event.Event{
			AggregateType: "invoice",
			AggregateID:   docID,
			Type:          event.TypeInvoiceDeleted,
			OwnerID:       ownerID,
			Payload:       map[string]any{"number": doc.Number},
		})
	})
	if err != nil {
		return err
	}

	s.recordAudit(ctx, ownerID, docID, audit.ActionDelete, map[string]any{
		"number": doc.Number,
	})

	logger.Info(ctx, "invoice deleted", "id", docID, "number", doc.Number)
	return nil
}
