// Package invoice provides the Invoice document: the binding sales or
// purchase document that drives the ledgers. Creating an invoice moves
// the counterparty balance and records stock movements; deleting it
// reverses both.
package invoice

import (
	"context"
	"time"

	"faktura/internal/core/apperror"
	"faktura/internal/core/entity"
	"faktura/internal/core/id"
	"faktura/internal/core/types"
	"faktura/internal/domain/party"
	"faktura/internal/domain/totals"
)

// Type discriminates the invoice direction.
type Type string

const (
	TypeSales    Type = "sales"
	TypePurchase Type = "purchase"
)

// ValidType reports whether t is a known invoice type.
func ValidType(t Type) bool {
	return t == TypeSales || t == TypePurchase
}

// PaymentStatus is derived from PaidAmount and RemainingAmount and never
// set directly by callers.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// DerivePaymentStatus computes the payment status from the paid and
// remaining amounts. Overpayment (negative remaining) still reads as paid.
func DerivePaymentStatus(paid, remaining types.Money) PaymentStatus {
	switch {
	case remaining.LessThanOrEqual(types.Zero()):
		return PaymentPaid
	case paid.IsZero():
		return PaymentUnpaid
	default:
		return PaymentPartial
	}
}

// Invoice represents a sales or purchase invoice.
// The Party snapshot and the per-line product snapshots are taken at
// creation time and survive later catalog edits. PaidAmount,
// RemainingAmount and PaymentStatus are maintained exclusively by
// payment propagation.
type Invoice struct {
	entity.Document

	Type Type `db:"invoice_type" json:"invoiceType"`

	party.Ref

	// Amounts
	Subtotal          types.Money `db:"subtotal" json:"subtotal"`
	DiscountAmount    types.Money `db:"discount_amount" json:"discountAmount"`
	VATAmount         types.Money `db:"vat_amount" json:"vatAmount"`
	WithholdingAmount types.Money `db:"withholding_amount" json:"withholdingAmount"`
	Total             types.Money `db:"total" json:"total"`

	// Payment tracking, mutated only by payment propagation
	PaidAmount      types.Money   `db:"paid_amount" json:"paidAmount"`
	RemainingAmount types.Money   `db:"remaining_amount" json:"remainingAmount"`
	PaymentStatus   PaymentStatus `db:"payment_status" json:"paymentStatus"`

	DueDate *time.Time `db:"due_date" json:"dueDate,omitempty"`

	// Table part: invoiced items
	Lines []Line `db:"-" json:"lines"`
}

// Line represents an invoiced item. VATAmount is recomputed from
// Quantity, UnitPrice and VATRate at creation time; stored line values
// are trusted afterwards.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID   id.ID  `db:"product_id" json:"productId"`
	ProductName string `db:"product_name" json:"productName"`
	ProductCode string `db:"product_code" json:"productCode,omitempty"`
	Unit        string `db:"unit" json:"unit"`

	Quantity  types.Quantity `db:"quantity" json:"quantity"`
	UnitPrice types.Money    `db:"unit_price" json:"unitPrice"`
	VATRate   types.Money    `db:"vat_rate" json:"vatRate"`
	VATAmount types.Money    `db:"vat_amount" json:"vatAmount"`
	Subtotal  types.Money    `db:"subtotal" json:"subtotal"`
}

// New creates a new invoice owned by the given user.
func New(ownerID string, invType Type, p party.Ref) *Invoice {
	return &Invoice{
		Document:        entity.NewDocument(ownerID),
		Type:            invType,
		Ref:             p,
		PaidAmount:      types.Zero(),
		RemainingAmount: types.Zero(),
		PaymentStatus:   PaymentUnpaid,
		Lines:           make([]Line, 0),
	}
}

// AddLine appends an invoiced item, computing the line subtotal and
// VAT amount once here.
func (inv *Invoice) AddLine(productID id.ID, name, code, unit string, quantity types.Quantity, unitPrice, vatRate types.Money) {
	lt := totals.InvoiceLine(totals.InvoiceLineInput{
		Quantity:  quantity,
		UnitPrice: unitPrice,
		VATRate:   vatRate,
	})
	inv.Lines = append(inv.Lines, Line{
		LineID:      id.New(),
		LineNo:      len(inv.Lines) + 1,
		ProductID:   productID,
		ProductName: name,
		ProductCode: code,
		Unit:        unit,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		VATRate:     vatRate,
		VATAmount:   lt.VATAmount,
		Subtotal:    lt.Subtotal,
	})
}

// ApplyTotals stores computed totals and initializes payment tracking:
// a fresh invoice is fully unpaid.
func (inv *Invoice) ApplyTotals(t totals.InvoiceTotals) {
	inv.Subtotal = t.Subtotal
	inv.VATAmount = t.VATAmount
	inv.DiscountAmount = t.DiscountAmount
	inv.WithholdingAmount = t.WithholdingAmount
	inv.Total = t.Total
	inv.PaidAmount = types.Zero()
	inv.RemainingAmount = t.Total
	inv.PaymentStatus = DerivePaymentStatus(inv.PaidAmount, inv.RemainingAmount)
}

// LineTotals returns per-line computed totals in line order.
func (inv *Invoice) LineTotals() []totals.InvoiceLineTotals {
	out := make([]totals.InvoiceLineTotals, len(inv.Lines))
	for i, l := range inv.Lines {
		out[i] = totals.InvoiceLineTotals{Subtotal: l.Subtotal, VATAmount: l.VATAmount}
	}
	return out
}

// BalanceSign is the direction the invoice moves the counterparty
// balance: +1 for sales (customer owes us more), -1 for purchase
// (we owe the supplier more).
func (inv *Invoice) BalanceSign() int64 {
	if inv.Type == TypePurchase {
		return -1
	}
	return 1
}

// Validate implements entity.Validatable.
func (inv *Invoice) Validate(ctx context.Context) error {
	if err := inv.Document.Validate(ctx); err != nil {
		return err
	}

	if !ValidType(inv.Type) {
		return apperror.NewValidation("invalid invoice type").
			WithDetail("field", "invoiceType").
			WithDetail("value", string(inv.Type))
	}

	if err := inv.Ref.Validate(ctx); err != nil {
		return err
	}

	if len(inv.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	if inv.DiscountAmount.IsNegative() {
		return apperror.NewValidation("discount amount must be non-negative").
			WithDetail("field", "discountAmount")
	}

	if inv.WithholdingAmount.IsNegative() {
		return apperror.NewValidation("withholding amount must be non-negative").
			WithDetail("field", "withholdingAmount")
	}

	for i, line := range inv.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity.IsNegative() {
			return apperror.NewValidation("quantity must be non-negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.VATRate.IsNegative() || line.VATRate.GreaterThan(types.NewMoney(100)) {
			return apperror.NewValidation("vat rate must be between 0 and 100").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}
