// Package customer provides the Customer catalog. Customers are the
// counterparties of quotes and sales invoices; their balance is the
// running amount the customer owes and is mutated only by invoice and
// payment propagation, never through catalog updates.
package customer

import (
	"context"
	"regexp"

	"faktura/internal/core/apperror"
	"faktura/internal/core/entity"
	"faktura/internal/core/types"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Customer represents a buyer.
type Customer struct {
	entity.Catalog

	// TaxID is the customer's fiscal identifier
	TaxID string `db:"tax_id" json:"taxId,omitempty"`

	Email   string `db:"email" json:"email,omitempty"`
	Phone   string `db:"phone" json:"phone,omitempty"`
	Company string `db:"company" json:"company,omitempty"`
	Address string `db:"address" json:"address,omitempty"`

	// Balance is the amount the customer owes. Positive means they owe
	// us, negative means we owe them (overpayment). Maintained by
	// ledger propagation only.
	Balance types.Money `db:"balance" json:"balance"`

	Notes string `db:"notes" json:"notes,omitempty"`
}

// New creates a new Customer owned by the given user.
func New(ownerID, code, name string) *Customer {
	return &Customer{
		Catalog: entity.NewCatalog(ownerID, code, name),
		Balance: types.Zero(),
	}
}

// Validate implements entity.Validatable.
func (c *Customer) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if c.Email != "" && !emailRE.MatchString(c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}
