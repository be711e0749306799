package quote

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

const auditEntity = "quote"

// NumeratorStrategy defines the numbering strategy for quotes.
// Quotes use the Strict strategy: numbers must be sequential with no
// gaps or repeats.
const NumeratorStrategy = numerator.StrategyStrict

// Service provides business operations for quote documents.
type Service struct {
	repo      Repository
	numerator numerator.Generator
	txManager tx.Manager
	auditor   audit.Recorder
	events    event.Publisher
}

// NewService creates a new quote service.
func NewService(repo Repository, gen numerator.Generator, txManager tx.Manager, auditor audit.Recorder, events event.Publisher) *Service {
	if auditor == nil {
		auditor = audit.NopRecorder{}
	}
	if events == nil {
		events = event.NopPublisher{}
	}
	return &Service{
		repo:      repo,
		numerator: gen,
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

// Create creates a new quote document: validates, computes totals,
// allocates the next FT number and persists. No ledger effects.
func (s *Service) Create(ctx context.Context, doc *Quote) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	doc.ApplyTotals(totals.Quote(
		doc.LineSubtotals(),
		totals.Discount{Type: doc.DiscountType, Value: doc.DiscountValue},
		doc.VATRate,
	))

	if doc.Number == "" {
		number, err := s.numerator.GetNextNumber(ctx, doc.OwnerID, numerator.QuoteSeries(),
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
		return nil
	})
	if err != nil {
		return err
	}

	s.recordAudit(ctx, doc.OwnerID, doc.ID, audit.ActionCreate, map[string]any{
		"number": doc.Number,
		"status": doc.Status,
		"total":  doc.Total,
	})

	logger.Info(ctx, "quote created", "id", doc.ID, "number", doc.Number, "total", doc.Total)
	return nil
}

// GetByID retrieves a quote with lines, scoped to the owner.
func (s *Service) GetByID(ctx context.Context, ownerID string, docID id.ID) (*Quote, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if !doc.OwnedBy(ownerID) {
		return nil, apperror.NewNotFound("quote", docID.String())
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// List retrieves the owner's quotes with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Quote], error) {
	if filter.OwnerID == "" {
		return domain.ListResult[*Quote]{}, apperror.NewValidation("owner is required").
			WithDetail("field", "ownerId")
	}
	return s.repo.List(ctx, filter)
}

// ListPending retrieves pending quotes across all owners.
// Admin-scoped: the only cross-owner read on quotes.
func (s *Service) ListPending(ctx context.Context, limit, offset int) (domain.ListResult[*Quote], error) {
	status := StatusPending
	f := ListFilter{
		ListFilter: domain.ListFilter{
			Limit:   limit,
			Offset:  offset,
			OrderBy: "-created_at",
		},
		Status: &status,
	}
	return s.repo.List(ctx, f)
}

// UpdateStatus applies a status transition. No other field can change
// through this path. Approval records the actor and timestamp; rejection
// records the reason. There is deliberately no guard against overwriting
// an approved or rejected status: the stored behavior allows direct
// status overwrite and documents already in the wild rely on it.
func (s *Service) UpdateStatus(ctx context.Context, docID id.ID, newStatus Status, actorID, reason string) (*Quote, error) {
	if !ValidStatus(newStatus) {
		return nil, apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(newStatus))
	}

	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	doc.Status = newStatus
	switch newStatus {
	case StatusApproved:
		now := time.Now().UTC()
		doc.ApprovedBy = actorID
		doc.ApprovedAt = &now
		doc.RejectionReason = ""
	case StatusRejected:
		doc.RejectionReason = reason
		doc.ApprovedBy = ""
		doc.ApprovedAt = nil
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return err
		}
		return s.events.Publish(ctx, event.Event{
			AggregateType: "quote",
			AggregateID:   doc.ID,
			Type:          event.TypeQuoteStatusChanged,
			OwnerID:       doc.OwnerID,
			Payload:       map[string]any{"status": newStatus, "actor": actorID},
		})
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, doc.OwnerID, doc.ID, audit.ActionUpdate, map[string]any{
		"status": newStatus,
		"actor":  actorID,
	})

	logger.Info(ctx, "quote status updated",
		"id", doc.ID, "number", doc.Number, "status", newStatus, "actor", actorID)
	return doc, nil
}

// Delete hard-deletes a quote owned by the caller.
// Quotes have no ledger effects, so there is nothing to reverse.
func (s *Service) Delete(ctx context.Context, ownerID string, docID id.ID) error {
	var deleted bool
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.repo.Delete(ctx, ownerID, docID)
		return err
	})
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NewNotFound("quote", docID.String())
	}

	s.recordAudit(ctx, ownerID, docID, audit.ActionDelete, nil)

	logger.Info(ctx, "quote deleted", "id", docID)
	return nil
}
