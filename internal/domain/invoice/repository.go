package invoice

import (
	"context"
	"time"

	"faktura/internal/core/id"
	"faktura/internal/core/types"
	"faktura/internal/domain"
	"faktura/internal/domain/party"
)

// Repository defines operations for invoice documents.
type Repository interface {
	Create(ctx context.Context, doc *Invoice) error

	// GetByID retrieves an invoice without lines, regardless of owner.
	// Owner checks happen in the service layer.
	GetByID(ctx context.Context, docID id.ID) (*Invoice, error)

	// GetForUpdate retrieves the invoice with a row lock so payment
	// propagation reads consistent paid amounts inside its transaction.
	GetForUpdate(ctx context.Context, docID id.ID) (*Invoice, error)

	// UpdatePaymentFields persists the payment-derived columns only.
	UpdatePaymentFields(ctx context.Context, docID id.ID, paid, remaining types.Money, status PaymentStatus) error

	// Delete removes the invoice owned by ownerID.
	// Returns false if no such invoice exists for that owner.
	Delete(ctx context.Context, ownerID string, docID id.ID) (bool, error)

	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Invoice], error)
}

// ListFilter for filtering invoices.
type ListFilter struct {
	domain.ListFilter

	Type          *Type
	PartyKind     *party.Kind
	PartyID       *id.ID
	PaymentStatus *PaymentStatus
	DateFrom      *time.Time
	DateTo        *time.Time
}
