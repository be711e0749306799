// Package payment provides the Payment document: money received from a
// customer (income) or paid to a supplier (expense). Payments drive the
// account and counterparty balance ledgers and maintain the linked
// invoice's payment tracking.
package payment

import (
	"context"

	"faktura/internal/core/apperror"
	"faktura/internal/core/entity"
	"faktura/internal/core/id"
	"faktura/internal/core/types"
	"faktura/internal/domain/ledger"
	"faktura/internal/domain/party"
)

// Direction discriminates money flow.
type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

// ValidDirection reports whether d is a known direction.
func ValidDirection(d Direction) bool {
	return d == DirectionIncome || d == DirectionExpense
}

// Method is the settlement instrument.
type Method string

const (
	MethodCash     Method = "cash"
	MethodTransfer Method = "transfer"
	MethodCheck    Method = "check"
	MethodCard     Method = "card"
)

// ValidMethod reports whether m is a known settlement method.
func ValidMethod(m Method) bool {
	switch m {
	case MethodCash, MethodTransfer, MethodCheck, MethodCard:
		return true
	}
	return false
}

// Payment represents a settlement document. The invoice and account
// links are optional: a payment can be recorded against a counterparty
// alone, and its ledger effects degrade gracefully when a link target
// disappears later.
type Payment struct {
	entity.Document

	Direction Direction `db:"direction" json:"direction"`
	Method    Method    `db:"method" json:"method"`

	party.Ref

	// InvoiceID links the settled invoice, if any
	InvoiceID *id.ID `db:"invoice_id" json:"invoiceId,omitempty"`

	// AccountID is the money account the payment flows through, if any
	AccountID *id.ID `db:"account_id" json:"accountId,omitempty"`

	Amount types.Money `db:"amount" json:"amount"`

	// Reference is a free-form external reference (check number,
	// bank transaction id)
	Reference string `db:"reference" json:"reference,omitempty"`
}

// New creates a new payment owned by the given user.
func New(ownerID string, direction Direction, p party.Ref, amount types.Money) *Payment {
	return &Payment{
		Document:  entity.NewDocument(ownerID),
		Direction: direction,
		Method:    MethodTransfer,
		Ref:       p,
		Amount:    amount,
	}
}

// Effect projects the payment onto the ledger.
func (p *Payment) Effect() ledger.PaymentEffect {
	return ledger.PaymentEffect{
		OwnerID:   p.OwnerID,
		PaymentID: p.ID,
		InvoiceID: p.InvoiceID,
		Party:     p.Ref,
		AccountID: p.AccountID,
		Inflow:    p.Direction == DirectionIncome,
		Amount:    p.Amount,
	}
}

// Validate implements entity.Validatable.
func (p *Payment) Validate(ctx context.Context) error {
	if err := p.Document.Validate(ctx); err != nil {
		return err
	}

	if !ValidDirection(p.Direction) {
		return apperror.NewValidation("invalid direction").
			WithDetail("field", "direction").
			WithDetail("value", string(p.Direction))
	}

	if !ValidMethod(p.Method) {
		return apperror.NewValidation("invalid method").
			WithDetail("field", "method").
			WithDetail("value", string(p.Method))
	}

	if err := p.Ref.Validate(ctx); err != nil {
		return err
	}

	if !p.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount")
	}

	return nil
}
