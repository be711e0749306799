package entity

import (
	"context"
	"time"

	"faktura/internal/core/apperror"
)

// Document is the base type for business transactions.
// Examples: Quote, Invoice, Payment.
type Document struct {
	BaseDocument

	// Number is the document number (auto-generated, unique within owner+series)
	Number string `db:"number" json:"number"`

	// Date is the business date of the document
	Date time.Time `db:"date" json:"date"`

	// Currency is the ISO currency code for document amounts
	Currency string `db:"currency" json:"currency"`

	// Notes is an optional user comment
	Notes string `db:"notes" json:"notes,omitempty"`
}

// NewDocument creates a new Document owned by the given user.
func NewDocument(ownerID string) Document {
	return Document{
		BaseDocument: NewBaseDocument(ownerID),
		Date:         time.Now().UTC(),
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.OwnerID == "" {
		return apperror.NewValidation("owner is required").
			WithDetail("field", "ownerId")
	}

	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	if d.Currency == "" {
		return apperror.NewValidation("currency is required").
			WithDetail("field", "currency")
	}

	return nil
}
