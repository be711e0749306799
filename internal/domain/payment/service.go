package payment

import (
	"context"
	"fmt"

	"faktura/internal/core/apperror"
	"faktura/internal/core/id"
	"faktura/internal/core/tx"
	"faktura/internal/domain"
	"faktura/internal/domain/audit"
	"faktura/internal/domain/event"
	"faktura/internal/domain/ledger"
	"faktura/pkg/logger"
)

const auditEntity = "payment"

// Ledger applies and reverses the financial side effects of payments.
type Ledger interface {
	PaymentCreated(ctx context.Context, eff ledger.PaymentEffect) error
	PaymentDeleted(ctx context.Context, eff ledger.PaymentEffect) error
}

// Service provides business operations for payment documents.
type Service struct {
	repo      Repository
	ledger    Ledger
	txManager tx.Manager
	auditor   audit.Recorder
	events    event.Publisher
}

// NewService creates a new payment service.
func NewService(repo Repository, ledger Ledger, txManager tx.Manager, auditor audit.Recorder, events event.Publisher) *Service {
	if auditor == nil {
		auditor = audit.NopRecorder{}
	}
	if events == nil {
		events = event.NopPublisher{}
	}
	return &Service{
		repo:      repo,
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

// Create records a payment and applies its ledger effects in one
// transaction: invoice payment tracking, account balance and
// counterparty balance move together or not at all.
func (s *Service) Create(ctx context.Context, doc *Payment) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.ledger.PaymentCreated(ctx, doc.Effect()); err != nil {
			return err
		}
		return s.events.Publish(ctx, event.Event{
			AggregateType: "payment",
			AggregateID:   doc.ID,
			Type:          event.TypePaymentCreated,
			OwnerID:       doc.OwnerID,
			Payload:       doc,
		})
	})
	if err != nil {
		return err
	}

	s.recordAudit(ctx, doc.OwnerID, doc.ID, audit.ActionCreate, map[string]any{
		"direction": doc.Direction,
		"amount":    doc.Amount,
	})

	logger.Info(ctx, "payment created",
		"id", doc.ID, "direction", doc.Direction, "amount", doc.Amount)
	return nil
}

// GetByID retrieves a payment, scoped to the owner.
func (s *Service) GetByID(ctx context.Context, ownerID string, docID id.ID) (*Payment, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if !doc.OwnedBy(ownerID) {
		return nil, apperror.NewNotFound("payment", docID.String())
	}
	return doc, nil
}

// List retrieves the owner's payments with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Payment], error) {
	if filter.OwnerID == "" {
		return domain.ListResult[*Payment]{}, apperror.NewValidation("owner is required").
			WithDetail("field", "ownerId")
	}
	return s.repo.List(ctx, filter)
}

// Delete removes a payment owned by the caller and reverses its ledger
// effects in the same transaction. The linked invoice's paid amount is
// floored at zero during reversal.
func (s *Service) Delete(ctx context.Context, ownerID string, docID id.ID) error {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}
	if !doc.OwnedBy(ownerID) {
		return apperror.NewNotFound("payment", docID.String())
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		deleted, err := s.repo.Delete(ctx, ownerID, docID)
		if err != nil {
			return err
		}
		if !deleted {
			return apperror.NewNotFound("payment", docID.String())
		}
		if err := s.ledger.PaymentDeleted(ctx, doc.Effect()); err != nil {
			return apperror.NewLedgerReversal("payment", docID.String(), err)
		}
		return s.events.Publish(ctx, event.Event{
			AggregateType: "payment",
			AggregateID:   docID,
			Type:          event.TypePaymentDeleted,
			OwnerID:       ownerID,
			Payload:       map[string]any{"amount": doc.Amount},
		})
	})
	if err != nil {
		return err
	}

	s.recordAudit(ctx, ownerID, docID, audit.ActionDelete, nil)

	logger.Info(ctx, "payment deleted", "id", docID)
	return nil
}
