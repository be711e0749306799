// Package supplier provides the Supplier catalog. Suppliers are the
// counterparties of purchase invoices and expense payments.
package supplier

import (
	"context"
	"regexp"

	"faktura/internal/core/apperror"
	"faktura/internal/core/entity"
	"faktura/internal/core/types"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Supplier represents a vendor we purchase from.
type Supplier struct {
	entity.Catalog

	TaxID string `db:"tax_id" json:"taxId,omitempty"`

	Email         string `db:"email" json:"email,omitempty"`
	Phone         string `db:"phone" json:"phone,omitempty"`
	ContactPerson string `db:"contact_person" json:"contactPerson,omitempty"`
	Address       string `db:"address" json:"address,omitempty"`

	// Balance is maintained by ledger propagation only. Negative means
	// we owe the supplier; expense payments bring it back toward zero.
	Balance types.Money `db:"balance" json:"balance"`

	Notes string `db:"notes" json:"notes,omitempty"`
}

// New creates a new Supplier owned by the given user.
func New(ownerID, code, name string) *Supplier {
	return &Supplier{
		Catalog: entity.NewCatalog(ownerID, code, name),
		Balance: types.Zero(),
	}
}

// Validate implements entity.Validatable.
func (s *Supplier) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}

	if s.Email != "" && !emailRE.MatchString(s.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}
