package totals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"faktura/internal/core/types"
)

func money(s string) types.Money {
	return types.MustMoney(s)
}

func TestQuote_NoDiscountNoVAT_EqualsLineSum(t *testing.T) {
	lines := []types.Money{money("10.50"), money("99.99"), money("0.01")}

	got := Quote(lines, Discount{Type: DiscountPercentage, Value: types.Zero()}, types.Zero())

	assert.True(t, got.Subtotal.Equal(money("110.50")), "subtotal %s", got.Subtotal)
	assert.True(t, got.DiscountAmount.IsZero())
	assert.True(t, got.VATAmount.IsZero())
	assert.True(t, got.Total.Equal(got.Subtotal))
}

func TestQuote_PercentageDiscountWithVAT(t *testing.T) {
	// One line: quantity 5 x unit price 30.75 = 153.75,
	// 10% discount, 18% VAT.
	lines := []types.Money{money("153.75")}

	got := Quote(lines, Discount{Type: DiscountPercentage, Value: money("10")}, money("18"))

	assert.True(t, got.Subtotal.Equal(money("153.75")), "subtotal %s", got.Subtotal)
	assert.True(t, got.DiscountAmount.Equal(money("15.375")), "discount %s", got.DiscountAmount)
	assert.True(t, got.VATAmount.Equal(money("24.9075")), "vat %s", got.VATAmount)
	assert.True(t, got.Total.Equal(money("163.2825")), "total %s", got.Total)
}

func TestQuote_FixedAmountDiscount(t *testing.T) {
	lines := []types.Money{money("200")}

	got := Quote(lines, Discount{Type: DiscountAmount, Value: money("50")}, money("20"))

	assert.True(t, got.DiscountAmount.Equal(money("50")))
	assert.True(t, got.VATAmount.Equal(money("30")), "vat %s", got.VATAmount)
	assert.True(t, got.Total.Equal(money("180")), "total %s", got.Total)
}

func TestQuote_FixedDiscountExceedingSubtotal_GoesNegative(t *testing.T) {
	// Unclamped discount is preserved behavior: taxable and total can
	// go negative.
	lines := []types.Money{money("100")}

	got := Quote(lines, Discount{Type: DiscountAmount, Value: money("150")}, types.Zero())

	assert.True(t, got.Total.Equal(money("-50")), "total %s", got.Total)
}

func TestQuote_EmptyLines(t *testing.T) {
	got := Quote(nil, Discount{Type: DiscountPercentage, Value: money("10")}, money("18"))

	assert.True(t, got.Subtotal.IsZero())
	assert.True(t, got.Total.IsZero())
}

func TestInvoiceLine_RecomputesFromQuantityAndPrice(t *testing.T) {
	got := InvoiceLine(InvoiceLineInput{
		Quantity:  types.NewQuantity(3),
		UnitPrice: money("25.50"),
		VATRate:   money("20"),
	})

	assert.True(t, got.Subtotal.Equal(money("76.50")), "subtotal %s", got.Subtotal)
	assert.True(t, got.VATAmount.Equal(money("15.30")), "vat %s", got.VATAmount)
}

func TestInvoice_TotalsAcrossLines(t *testing.T) {
	lines := []InvoiceLineTotals{
		{Subtotal: money("100"), VATAmount: money("18")},
		{Subtotal: money("50"), VATAmount: money("9")},
	}

	got := Invoice(lines, money("10"), money("5"))

	assert.True(t, got.Subtotal.Equal(money("150")))
	assert.True(t, got.VATAmount.Equal(money("27")))
	// 150 + 27 - 10 - 5
	assert.True(t, got.Total.Equal(money("162")), "total %s", got.Total)
}

func TestInvoice_NoLines(t *testing.T) {
	got := Invoice(nil, types.Zero(), types.Zero())
	assert.True(t, got.Total.IsZero())
}
