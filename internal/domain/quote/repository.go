package quote

import (
	"context"
	"time"

	"faktura/internal/core/id"
	"faktura/internal/domain"
)

// Repository defines operations for quote documents.
type Repository interface {
	Create(ctx context.Context, doc *Quote) error

	// GetByID retrieves a quote without lines, regardless of owner.
	// Owner checks happen in the service layer because status updates
	// are admin-scoped while reads and deletes are owner-scoped.
	GetByID(ctx context.Context, docID id.ID) (*Quote, error)

	// Update persists the document with optimistic locking.
	Update(ctx context.Context, doc *Quote) error

	// Delete removes the quote owned by ownerID.
	// Returns false if no such quote exists for that owner.
	Delete(ctx context.Context, ownerID string, docID id.ID) (bool, error)

	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Quote], error)
}

// ListFilter for filtering quotes.
type ListFilter struct {
	domain.ListFilter

	CustomerID *id.ID
	Status     *Status
	DateFrom   *time.Time
	DateTo     *time.Time
}
