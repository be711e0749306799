// Package account provides the money account catalog (cash boxes and
// bank accounts). Account balances move only through payment
// propagation; an update that tries to change the balance directly is
// rejected rather than silently ignored, because a hand-edited account
// balance would desynchronize the ledger.
package account

import (
	"context"

	"faktura/internal/core/apperror"
	"faktura/internal/core/entity"
	"faktura/internal/core/types"
)

// Type discriminates account kinds.
type Type string

const (
	TypeCash Type = "cash"
	TypeBank Type = "bank"
)

// ValidType reports whether t is a known account type.
func ValidType(t Type) bool {
	return t == TypeCash || t == TypeBank
}

// Account represents a money account.
type Account struct {
	entity.Catalog

	Type Type `db:"account_type" json:"accountType"`

	// IBAN for bank accounts
	IBAN string `db:"iban" json:"iban,omitempty"`

	// Currency is the ISO currency code of the account
	Currency string `db:"currency" json:"currency"`

	// Balance is maintained by payment propagation only
	Balance types.Money `db:"balance" json:"balance"`
}

// New creates a new Account owned by the given user.
func New(ownerID, code, name string, accType Type, currency string) *Account {
	return &Account{
		Catalog:  entity.NewCatalog(ownerID, code, name),
		Type:     accType,
		Currency: currency,
		Balance:  types.Zero(),
	}
}

// Validate implements entity.Validatable.
func (a *Account) Validate(ctx context.Context) error {
	if err := a.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !ValidType(a.Type) {
		return apperror.NewValidation("invalid account type").
			WithDetail("field", "accountType").
			WithDetail("value", string(a.Type))
	}

	if a.Currency == "" {
		return apperror.NewValidation("currency is required").
			WithDetail("field", "currency")
	}

	return nil
}
