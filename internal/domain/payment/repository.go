package payment

import (
	"context"
	"time"

	"faktura/internal/core/id"
	"faktura/internal/domain"
	"faktura/internal/domain/party"
)

// Repository defines operations for payment documents.
type Repository interface {
	Create(ctx context.Context, doc *Payment) error

	// GetByID retrieves a payment regardless of owner.
	// Owner checks happen in the service layer.
	GetByID(ctx context.Context, docID id.ID) (*Payment, error)

	// Delete removes the payment owned by ownerID.
	// Returns false if no such payment exists for that owner.
	Delete(ctx context.Context, ownerID string, docID id.ID) (bool, error)

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Payment], error)
}

// ListFilter for filtering payments.
type ListFilter struct {
	domain.ListFilter

	Direction *Direction
	PartyKind *party.Kind
	PartyID   *id.ID
	InvoiceID *id.ID
	AccountID *id.ID
	DateFrom  *time.Time
	DateTo    *time.Time
}
