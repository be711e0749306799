// Package totals computes quote and invoice financial totals.
// All functions are pure: no I/O, no clock, decimal arithmetic only.
// Results carry full precision; rounding to 2 decimals is a presentation
// concern and never happens here.
package totals

import (
	"faktura/internal/core/types"
)

// DiscountType selects how the discount value is interpreted.
type DiscountType string

const (
	// DiscountPercentage applies Value as a percentage of the subtotal
	DiscountPercentage DiscountType = "percentage"
	// DiscountAmount applies Value as a fixed amount
	DiscountAmount DiscountType = "amount"
)

// Discount is the document-level discount configuration.
// Value is not clamped to the subtotal: a fixed discount larger than the
// subtotal produces a negative taxable amount. Kept as-is pending a
// decision on whether that is a credit scenario or bad input.
type Discount struct {
	Type  DiscountType `json:"type"`
	Value types.Money  `json:"value"`
}

// VATMode describes whether line prices already contain VAT.
// Carried on quotes for presentation; the computation below is always
// additive, matching the numbers on documents already issued.
type VATMode string

const (
	VATIncluded VATMode = "included"
	VATExcluded VATMode = "excluded"
)

// QuoteTotals is the computed financial summary of a quote.
type QuoteTotals struct {
	Subtotal       types.Money `json:"subtotal"`
	DiscountAmount types.Money `json:"discountAmount"`
	VATAmount      types.Money `json:"vatAmount"`
	Total          types.Money `json:"total"`
}

// Quote computes quote totals from per-line subtotals.
// Line subtotals are trusted as given (quantity x unit price was computed
// when the line was captured) and are not recomputed here.
//
//	subtotal        = sum(line subtotals)
//	discount_amount = subtotal * value/100  (percentage) | value (amount)
//	taxable         = subtotal - discount_amount
//	vat_amount      = taxable * vat_rate/100
//	total           = taxable + vat_amount
func Quote(lineSubtotals []types.Money, discount Discount, vatRate types.Money) QuoteTotals {
	subtotal := types.Zero()
	for _, s := range lineSubtotals {
		subtotal = subtotal.Add(s)
	}

	var discountAmount types.Money
	if discount.Type == DiscountPercentage {
		discountAmount = subtotal.Mul(types.Percent(discount.Value))
	} else {
		discountAmount = discount.Value
	}

	taxable := subtotal.Sub(discountAmount)
	vatAmount := taxable.Mul(types.Percent(vatRate))

	return QuoteTotals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		VATAmount:      vatAmount,
		Total:          taxable.Add(vatAmount),
	}
}

// InvoiceLineInput is one invoice line before totals computation.
type InvoiceLineInput struct {
	Quantity  types.Quantity
	UnitPrice types.Money
	VATRate   types.Money // percentage 0-100
}

// InvoiceLineTotals is the computed financial part of one invoice line.
// Unlike quotes, invoice lines are recomputed from quantity and unit
// price, with VAT applied additively per line.
type InvoiceLineTotals struct {
	Subtotal  types.Money
	VATAmount types.Money
}

// InvoiceLine computes one line's subtotal and VAT amount.
func InvoiceLine(in InvoiceLineInput) InvoiceLineTotals {
	subtotal := in.Quantity.Mul(in.UnitPrice)
	return InvoiceLineTotals{
		Subtotal:  subtotal,
		VATAmount: subtotal.Mul(types.Percent(in.VATRate)),
	}
}

// InvoiceTotals is the computed financial summary of an invoice.
type InvoiceTotals struct {
	Subtotal          types.Money `json:"subtotal"`
	VATAmount         types.Money `json:"vatAmount"`
	DiscountAmount    types.Money `json:"discountAmount"`
	WithholdingAmount types.Money `json:"withholdingAmount"`
	Total             types.Money `json:"total"`
}

// Invoice computes invoice totals from computed lines.
//
//	subtotal   = sum(line subtotals)
//	vat_amount = sum(line vat amounts)
//	total      = subtotal + vat_amount - discount_amount - withholding_amount
func Invoice(lines []InvoiceLineTotals, discountAmount, withholdingAmount types.Money) InvoiceTotals {
	subtotal := types.Zero()
	vatAmount := types.Zero()
	for _, l := range lines {
		subtotal = subtotal.Add(l.Subtotal)
		vatAmount = vatAmount.Add(l.VATAmount)
	}

	return InvoiceTotals{
		Subtotal:          subtotal,
		VATAmount:         vatAmount,
		DiscountAmount:    discountAmount,
		WithholdingAmount: withholdingAmount,
		Total:             subtotal.Add(vatAmount).Sub(discountAmount).Sub(withholdingAmount),
	}
}
