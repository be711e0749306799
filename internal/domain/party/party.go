// Package party provides the counterparty reference shared by invoices
// and payments. The counterparty is a tagged variant: the kind selects
// which catalog (customers or suppliers) holds the balance the ledger
// propagator mutates.
package party

import (
	"context"

	"faktura/internal/core/apperror"
	"faktura/internal/core/id"
)

// Kind discriminates the counterparty variant.
type Kind string

const (
	KindCustomer Kind = "customer"
	KindSupplier Kind = "supplier"
)

// ValidKind reports whether k is a known counterparty kind.
func ValidKind(k Kind) bool {
	return k == KindCustomer || k == KindSupplier
}

// Ref is a counterparty reference with denormalized display fields.
// Name and TaxID are snapshots taken when the document was created and
// survive later catalog edits.
type Ref struct {
	Kind  Kind   `db:"party_kind" json:"partyKind"`
	ID    id.ID  `db:"party_id" json:"partyId"`
	Name  string `db:"party_name" json:"partyName"`
	TaxID string `db:"party_tax_id" json:"partyTaxId,omitempty"`
}

// Validate checks the reference invariants.
func (r *Ref) Validate(ctx context.Context) error {
	if !ValidKind(r.Kind) {
		return apperror.NewValidation("invalid party kind").
			WithDetail("field", "partyKind").
			WithDetail("value", string(r.Kind))
	}
	if id.IsNil(r.ID) {
		return apperror.NewValidation("party is required").
			WithDetail("field", "partyId")
	}
	return nil
}
