// Package ledger propagates document side effects into the balance and
// stock ledgers. Invoices move the counterparty balance and record stock
// movements; payments move account and counterparty balances and update
// the originating invoice's payment tracking. Deleting a document applies
// the exact inverse of its creation effects.
//
// Missing downstream entities are skipped with a warning rather than
// failing the operation: a payment whose invoice was deleted still moves
// the account balance, and deleting an invoice whose customer is gone
// still removes the stock movements.
package ledger

import (
	"context"
	"fmt"

	"faktura/internal/core/apperror"
	"faktura/internal/core/entity"
	"faktura/internal/core/id"
	"faktura/internal/core/types"
	"faktura/internal/domain/invoice"
	"faktura/internal/domain/party"
	"faktura/pkg/logger"
)

// RecorderInvoice tags stock movements created by invoices.
const RecorderInvoice = "invoice"

// BalanceStore applies a signed delta to a stored balance.
// Implementations return false without error when the target row does
// not exist, which the propagator treats as a skip, not a failure.
type BalanceStore interface {
	ApplyBalanceDelta(ctx context.Context, ownerID string, targetID id.ID, delta types.Money) (bool, error)
}

// InvoiceStore is the slice of the invoice repository the propagator
// needs to maintain payment-derived fields.
type InvoiceStore interface {
	GetForUpdate(ctx context.Context, docID id.ID) (*invoice.Invoice, error)
	UpdatePaymentFields(ctx context.Context, docID id.ID, paid, remaining types.Money, status invoice.PaymentStatus) error
}

// MovementStore records and removes stock movements by their recorder.
type MovementStore interface {
	CreateMovements(ctx context.Context, movements []entity.StockMovement) error
	DeleteByRecorder(ctx context.Context, ownerID string, recorderID id.ID) (int64, error)
}

// PaymentEffect is the ledger-relevant projection of a payment.
// Inflow is true for income payments (money received) and false for
// expense payments (money paid out).
type PaymentEffect struct {
	OwnerID   string
	PaymentID id.ID
	InvoiceID *id.ID
	Party     party.Ref
	AccountID *id.ID
	Inflow    bool
	Amount    types.Money
}

// accountSign is the direction the payment moves the account balance.
func (e PaymentEffect) accountSign() types.Money {
	if e.Inflow {
		return e.Amount
	}
	return e.Amount.Neg()
}

// Propagator applies and reverses ledger effects. All methods expect to
// run inside the caller's transaction so a failure rolls back every
// ledger write together with the document write.
type Propagator struct {
	customers BalanceStore
	suppliers BalanceStore
	accounts  BalanceStore
	invoices  InvoiceStore
	stock     MovementStore
}

// NewPropagator creates a ledger propagator.
func NewPropagator(customers, suppliers, accounts BalanceStore, invoices InvoiceStore, stock MovementStore) *Propagator {
	return &Propagator{
		customers: customers,
		suppliers: suppliers,
		accounts:  accounts,
		invoices:  invoices,
		stock:     stock,
	}
}

// partyStore selects the balance store for the counterparty variant.
func (p *Propagator) partyStore(kind party.Kind) BalanceStore {
	if kind == party.KindSupplier {
		return p.suppliers
	}
	return p.customers
}

// applyPartyDelta moves the counterparty balance, skipping silently when
// the counterparty no longer exists.
func (p *Propagator) applyPartyDelta(ctx context.Context, ownerID string, ref party.Ref, delta types.Money) error {
	found, err := p.partyStore(ref.Kind).ApplyBalanceDelta(ctx, ownerID, ref.ID, delta)
	if err != nil {
		return fmt.Errorf("apply %s balance delta: %w", ref.Kind, err)
	}
	if !found {
		logger.Warn(ctx, "party missing, balance effect skipped",
			"party_kind", ref.Kind, "party_id", ref.ID, "delta", delta)
	}
	return nil
}

// InvoiceCreated applies the creation effects of an invoice: the
// counterparty balance moves by the invoice total (positive for sales,
// negative for purchases) and one stock movement is recorded per line
// (out for sales, in for purchases).
func (p *Propagator) InvoiceCreated(ctx context.Context, inv *invoice.Invoice) error {
	delta := invoiceDelta(inv)
	if err := p.applyPartyDelta(ctx, inv.OwnerID, inv.Ref, delta); err != nil {
		return err
	}

	movements := p.movementsFor(inv)
	if len(movements) > 0 {
		if err := p.stock.CreateMovements(ctx, movements); err != nil {
			return fmt.Errorf("record stock movements: %w", err)
		}
	}

	logger.Info(ctx, "invoice effects applied",
		"invoice_id", inv.ID, "party_delta", delta, "movements", len(movements))
	return nil
}

// InvoiceDeleted reverses the creation effects of an invoice: the
// counterparty balance moves by the negated total and every stock
// movement recorded by the invoice is removed.
func (p *Propagator) InvoiceDeleted(ctx context.Context, inv *invoice.Invoice) error {
	delta := invoiceDelta(inv).Neg()
	if err := p.applyPartyDelta(ctx, inv.OwnerID, inv.Ref, delta); err != nil {
		return err
	}

	removed, err := p.stock.DeleteByRecorder(ctx, inv.OwnerID, inv.ID)
	if err != nil {
		return fmt.Errorf("remove stock movements: %w", err)
	}

	logger.Info(ctx, "invoice effects reversed",
		"invoice_id", inv.ID, "party_delta", delta, "movements_removed", removed)
	return nil
}

// PaymentCreated applies the creation effects of a payment:
//  1. the linked invoice's paid amount grows by the payment amount and
//     its remaining amount and payment status are re-derived,
//  2. the account balance moves by +amount for income, -amount for
//     expense,
//  3. the counterparty balance moves the opposite way (an income payment
//     settles what the customer owes).
func (p *Propagator) PaymentCreated(ctx context.Context, eff PaymentEffect) error {
	if err := p.applyInvoicePaid(ctx, eff, eff.Amount); err != nil {
		return err
	}
	if err := p.applyAccountDelta(ctx, eff, eff.accountSign()); err != nil {
		return err
	}
	return p.applyPartyDelta(ctx, eff.OwnerID, eff.Party, eff.accountSign().Neg())
}

// PaymentDeleted reverses the creation effects of a payment. The
// invoice's paid amount is floored at zero so deleting a payment that
// was recorded against an already-reduced invoice never drives the paid
// amount negative.
func (p *Propagator) PaymentDeleted(ctx context.Context, eff PaymentEffect) error {
	if err := p.applyInvoicePaid(ctx, eff, eff.Amount.Neg()); err != nil {
		return err
	}
	if err := p.applyAccountDelta(ctx, eff, eff.accountSign().Neg()); err != nil {
		return err
	}
	return p.applyPartyDelta(ctx, eff.OwnerID, eff.Party, eff.accountSign())
}

// applyInvoicePaid moves the linked invoice's paid amount by delta and
// re-derives remaining amount and payment status. A missing invoice is
// skipped with a warning.
func (p *Propagator) applyInvoicePaid(ctx context.Context, eff PaymentEffect, delta types.Money) error {
	if eff.InvoiceID == nil {
		return nil
	}

	inv, err := p.invoices.GetForUpdate(ctx, *eff.InvoiceID)
	if err != nil {
		if apperror.IsNotFound(err) {
			logger.Warn(ctx, "invoice missing, payment tracking skipped",
				"invoice_id", *eff.InvoiceID, "payment_id", eff.PaymentID)
			return nil
		}
		return fmt.Errorf("lock invoice: %w", err)
	}

	paid := inv.PaidAmount.Add(delta)
	if paid.IsNegative() {
		paid = types.Zero()
	}
	remaining := inv.Total.Sub(paid)
	status := invoice.DerivePaymentStatus(paid, remaining)

	if err := p.invoices.UpdatePaymentFields(ctx, inv.ID, paid, remaining, status); err != nil {
		return fmt.Errorf("update payment fields: %w", err)
	}
	return nil
}

// applyAccountDelta moves the account balance, skipping silently when
// the payment has no account or the account no longer exists.
func (p *Propagator) applyAccountDelta(ctx context.Context, eff PaymentEffect, delta types.Money) error {
	if eff.AccountID == nil {
		return nil
	}
	found, err := p.accounts.ApplyBalanceDelta(ctx, eff.OwnerID, *eff.AccountID, delta)
	if err != nil {
		return fmt.Errorf("apply account balance delta: %w", err)
	}
	if !found {
		logger.Warn(ctx, "account missing, balance effect skipped",
			"account_id", *eff.AccountID, "payment_id", eff.PaymentID, "delta", delta)
	}
	return nil
}

// invoiceDelta is the counterparty balance movement the invoice causes:
// positive total for sales, negated for purchases.
func invoiceDelta(inv *invoice.Invoice) types.Money {
	if inv.BalanceSign() < 0 {
		return inv.Total.Neg()
	}
	return inv.Total
}

// movementsFor builds one stock movement per invoice line. Sales issue
// stock, purchases receive it.
func (p *Propagator) movementsFor(inv *invoice.Invoice) []entity.StockMovement {
	direction := entity.StockOut
	if inv.Type == invoice.TypePurchase {
		direction = entity.StockIn
	}

	movements := make([]entity.StockMovement, 0, len(inv.Lines))
	for _, line := range inv.Lines {
		movements = append(movements, entity.NewStockMovement(
			inv.OwnerID, inv.ID, RecorderInvoice, inv.Date,
			direction, line.ProductID, line.Quantity, line.UnitPrice,
		))
	}
	return movements
}
