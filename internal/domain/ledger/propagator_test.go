package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faktura/internal/core/apperror"
	"faktura/internal/core/entity"
	"faktura/internal/core/id"
	"faktura/internal/core/types"
	"faktura/internal/domain/invoice"
	"faktura/internal/domain/party"
	"faktura/internal/domain/totals"
)

// fakeBalances holds balances keyed by target id.
type fakeBalances struct {
	balances map[id.ID]types.Money
}

func newFakeBalances(ids ...id.ID) *fakeBalances {
	f := &fakeBalances{balances: make(map[id.ID]types.Money)}
	for _, target := range ids {
		f.balances[target] = types.Zero()
	}
	return f
}

func (f *fakeBalances) ApplyBalanceDelta(_ context.Context, _ string, targetID id.ID, delta types.Money) (bool, error) {
	current, ok := f.balances[targetID]
	if !ok {
		return false, nil
	}
	f.balances[targetID] = current.Add(delta)
	return true, nil
}

type fakeInvoices struct {
	docs map[id.ID]*invoice.Invoice
}

func newFakeInvoices(docs ...*invoice.Invoice) *fakeInvoices {
	f := &fakeInvoices{docs: make(map[id.ID]*invoice.Invoice)}
	for _, doc := range docs {
		f.docs[doc.ID] = doc
	}
	return f
}

func (f *fakeInvoices) GetForUpdate(_ context.Context, docID id.ID) (*invoice.Invoice, error) {
	doc, ok := f.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("invoice", docID.String())
	}
	return doc, nil
}

func (f *fakeInvoices) UpdatePaymentFields(_ context.Context, docID id.ID, paid, remaining types.Money, status invoice.PaymentStatus) error {
	doc := f.docs[docID]
	doc.PaidAmount = paid
	doc.RemainingAmount = remaining
	doc.PaymentStatus = status
	return nil
}

type fakeMovements struct {
	movements []entity.StockMovement
}

func (f *fakeMovements) CreateMovements(_ context.Context, movements []entity.StockMovement) error {
	f.movements = append(f.movements, movements...)
	return nil
}

func (f *fakeMovements) DeleteByRecorder(_ context.Context, ownerID string, recorderID id.ID) (int64, error) {
	kept := f.movements[:0]
	var removed int64
	for _, m := range f.movements {
		if m.OwnerID == ownerID && m.RecorderID == recorderID {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	f.movements = kept
	return removed, nil
}

type fixture struct {
	customers *fakeBalances
	suppliers *fakeBalances
	accounts  *fakeBalances
	invoices  *fakeInvoices
	stock     *fakeMovements
	prop      *Propagator
}

func newFixture(customerID, supplierID, accountID id.ID, invoices ...*invoice.Invoice) *fixture {
	f := &fixture{
		customers: newFakeBalances(customerID),
		suppliers: newFakeBalances(supplierID),
		accounts:  newFakeBalances(accountID),
		invoices:  newFakeInvoices(invoices...),
		stock:     &fakeMovements{},
	}
	f.prop = NewPropagator(f.customers, f.suppliers, f.accounts, f.invoices, f.stock)
	return f
}

// totalsOf mirrors what the invoice service computes on create.
func totalsOf(inv *invoice.Invoice) totals.InvoiceTotals {
	return totals.Invoice(inv.LineTotals(), inv.DiscountAmount, inv.WithholdingAmount)
}

func TestInvoiceCreated_SalesMovesCustomerBalanceAndIssuesStock(t *testing.T) {
	ctx := context.Background()
	customerID, supplierID, accountID := id.New(), id.New(), id.New()
	f := newFixture(customerID, supplierID, accountID)

	inv := invoice.New("owner-1", invoice.TypeSales, party.Ref{
		Kind: party.KindCustomer, ID: customerID, Name: "Acme Trading",
	})
	inv.Currency = "EUR"
	inv.AddLine(id.New(), "Laptop stand", "PRD-00003", "pcs",
		types.NewMoney(2), types.NewMoney(100), types.NewMoney(25))
	inv.ApplyTotals(totalsOf(inv))

	require.NoError(t, f.prop.InvoiceCreated(ctx, inv))

	// 2 x 100 + 25% VAT = 250, customer owes more.
	assert.True(t, f.customers.balances[customerID].Equal(types.NewMoney(250)),
		"customer balance %s", f.customers.balances[customerID])

	require.Len(t, f.stock.movements, 1)
	m := f.stock.movements[0]
	assert.Equal(t, entity.StockOut, m.Direction)
	assert.Equal(t, inv.ID, m.RecorderID)
	assert.Equal(t, RecorderInvoice, m.RecorderType)
	assert.True(t, m.Quantity.Equal(types.NewMoney(2)))
}

func TestInvoiceCreated_PurchaseMovesSupplierNegativeAndReceivesStock(t *testing.T) {
	ctx := context.Background()
	customerID, supplierID, accountID := id.New(), id.New(), id.New()
	f := newFixture(customerID, supplierID, accountID)

	inv := invoice.New("owner-1", invoice.TypePurchase, party.Ref{
		Kind: party.KindSupplier, ID: supplierID, Name: "Nordic Paper",
	})
	inv.Currency = "EUR"
	inv.AddLine(id.New(), "Office paper A4", "PRD-00002", "pack",
		types.NewMoney(10), types.NewMoney(4), types.Zero())
	inv.ApplyTotals(totalsOf(inv))

	require.NoError(t, f.prop.InvoiceCreated(ctx, inv))

	assert.True(t, f.suppliers.balances[supplierID].Equal(types.NewMoney(-40)),
		"supplier balance %s", f.suppliers.balances[supplierID])
	require.Len(t, f.stock.movements, 1)
	assert.Equal(t, entity.StockIn, f.stock.movements[0].Direction)
}

func TestInvoiceDeleted_ReversesBalanceAndRemovesMovements(t *testing.T) {
	ctx := context.Background()
	customerID, supplierID, accountID := id.New(), id.New(), id.New()
	f := newFixture(customerID, supplierID, accountID)

	inv := invoice.New("owner-1", invoice.TypeSales, party.Ref{
		Kind: party.KindCustomer, ID: customerID, Name: "Acme Trading",
	})
	inv.Currency = "EUR"
	inv.AddLine(id.New(), "Laptop stand", "PRD-00003", "pcs",
		types.NewMoney(1), types.NewMoney(100), types.Zero())
	inv.ApplyTotals(totalsOf(inv))

	require.NoError(t, f.prop.InvoiceCreated(ctx, inv))
	require.NoError(t, f.prop.InvoiceDeleted(ctx, inv))

	assert.True(t, f.customers.balances[customerID].IsZero(),
		"customer balance %s", f.customers.balances[customerID])
	assert.Empty(t, f.stock.movements)
}

func TestInvoiceCreated_MissingPartySkipsBalance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(id.New(), id.New(), id.New())

	inv := invoice.New("owner-1", invoice.TypeSales, party.Ref{
		Kind: party.KindCustomer, ID: id.New(), Name: "Deleted customer",
	})
	inv.Currency = "EUR"
	inv.AddLine(id.New(), "Laptop stand", "PRD-00003", "pcs",
		types.NewMoney(1), types.NewMoney(50), types.Zero())
	inv.ApplyTotals(totalsOf(inv))

	// Movement still recorded even though the balance effect is skipped.
	require.NoError(t, f.prop.InvoiceCreated(ctx, inv))
	assert.Len(t, f.stock.movements, 1)
}

func TestPaymentCreated_IncomeSettlesInvoiceAndMovesBalances(t *testing.T) {
	ctx := context.Background()
	customerID, supplierID, accountID := id.New(), id.New(), id.New()

	inv := invoice.New("owner-1", invoice.TypeSales, party.Ref{
		Kind: party.KindCustomer, ID: customerID, Name: "Acme Trading",
	})
	inv.Currency = "EUR"
	inv.AddLine(id.New(), "Consulting hour", "PRD-00001", "h",
		types.NewMoney(1), types.NewMoney(200), types.Zero())
	inv.ApplyTotals(totalsOf(inv))

	f := newFixture(customerID, supplierID, accountID, inv)

	eff := PaymentEffect{
		OwnerID:   "owner-1",
		PaymentID: id.New(),
		InvoiceID: &inv.ID,
		Party:     inv.Ref,
		AccountID: &accountID,
		Inflow:    true,
		Amount:    types.NewMoney(150),
	}
	require.NoError(t, f.prop.PaymentCreated(ctx, eff))

	assert.True(t, inv.PaidAmount.Equal(types.NewMoney(150)))
	assert.True(t, inv.RemainingAmount.Equal(types.NewMoney(50)))
	assert.Equal(t, invoice.PaymentPartial, inv.PaymentStatus)

	assert.True(t, f.accounts.balances[accountID].Equal(types.NewMoney(150)))
	// The customer owes 150 less.
	assert.True(t, f.customers.balances[customerID].Equal(types.NewMoney(-150)))
}

func TestPaymentCreated_FullPaymentMarksInvoicePaid(t *testing.T) {
	ctx := context.Background()
	customerID, accountID := id.New(), id.New()

	inv := invoice.New("owner-1", invoice.TypeSales, party.Ref{
		Kind: party.KindCustomer, ID: customerID, Name: "Acme Trading",
	})
	inv.Currency = "EUR"
	inv.AddLine(id.New(), "Consulting hour", "PRD-00001", "h",
		types.NewMoney(1), types.NewMoney(200), types.Zero())
	inv.ApplyTotals(totalsOf(inv))

	f := newFixture(customerID, id.New(), accountID, inv)

	eff := PaymentEffect{
		OwnerID:   "owner-1",
		PaymentID: id.New(),
		InvoiceID: &inv.ID,
		Party:     inv.Ref,
		Inflow:    true,
		Amount:    types.NewMoney(200),
	}
	require.NoError(t, f.prop.PaymentCreated(ctx, eff))

	assert.Equal(t, invoice.PaymentPaid, inv.PaymentStatus)
	assert.True(t, inv.RemainingAmount.IsZero())
}

func TestPaymentCreated_SequentialPaymentsSettleInvoice(t *testing.T) {
	ctx := context.Background()
	customerID, accountID := id.New(), id.New()

	inv := invoice.New("owner-1", invoice.TypeSales, party.Ref{
		Kind: party.KindCustomer, ID: customerID, Name: "Acme Trading",
	})
	inv.Currency = "EUR"
	inv.AddLine(id.New(), "Consulting hour", "PRD-00001", "h",
		types.NewMoney(1), types.NewMoney(500), types.Zero())
	inv.ApplyTotals(totalsOf(inv))

	f := newFixture(customerID, id.New(), accountID, inv)
	require.Equal(t, invoice.PaymentUnpaid, inv.PaymentStatus)

	pay := func(amount float64) PaymentEffect {
		return PaymentEffect{
			OwnerID:   "owner-1",
			PaymentID: id.New(),
			InvoiceID: &inv.ID,
			Party:     inv.Ref,
			AccountID: &accountID,
			Inflow:    true,
			Amount:    types.NewMoney(amount),
		}
	}

	require.NoError(t, f.prop.PaymentCreated(ctx, pay(100)))
	assert.Equal(t, invoice.PaymentPartial, inv.PaymentStatus)
	assert.True(t, inv.PaidAmount.Equal(types.NewMoney(100)))
	assert.True(t, inv.PaidAmount.Add(inv.RemainingAmount).Equal(inv.Total))

	require.NoError(t, f.prop.PaymentCreated(ctx, pay(400)))
	assert.Equal(t, invoice.PaymentPaid, inv.PaymentStatus)
	assert.True(t, inv.PaidAmount.Equal(types.NewMoney(500)))
	assert.True(t, inv.RemainingAmount.IsZero())
	assert.True(t, inv.PaidAmount.Add(inv.RemainingAmount).Equal(inv.Total))

	assert.True(t, f.accounts.balances[accountID].Equal(types.NewMoney(500)))
	assert.True(t, f.customers.balances[customerID].Equal(types.NewMoney(-500)))
}

func TestPaymentDeleted_ReversesEffectsAndFloorsPaidAtZero(t *testing.T) {
	ctx := context.Background()
	customerID, accountID := id.New(), id.New()

	inv := invoice.New("owner-1", invoice.TypeSales, party.Ref{
		Kind: party.KindCustomer, ID: customerID, Name: "Acme Trading",
	})
	inv.Currency = "EUR"
	inv.AddLine(id.New(), "Consulting hour", "PRD-00001", "h",
		types.NewMoney(1), types.NewMoney(100), types.Zero())
	inv.ApplyTotals(totalsOf(inv))

	f := newFixture(customerID, id.New(), accountID, inv)

	eff := PaymentEffect{
		OwnerID:   "owner-1",
		PaymentID: id.New(),
		InvoiceID: &inv.ID,
		Party:     inv.Ref,
		AccountID: &accountID,
		Inflow:    true,
		Amount:    types.NewMoney(60),
	}
	require.NoError(t, f.prop.PaymentCreated(ctx, eff))
	require.NoError(t, f.prop.PaymentDeleted(ctx, eff))

	assert.True(t, inv.PaidAmount.IsZero())
	assert.True(t, inv.RemainingAmount.Equal(types.NewMoney(100)))
	assert.Equal(t, invoice.PaymentUnpaid, inv.PaymentStatus)
	assert.True(t, f.accounts.balances[accountID].IsZero())
	assert.True(t, f.customers.balances[customerID].IsZero())

	// Deleting again floors the paid amount at zero instead of going negative.
	require.NoError(t, f.prop.PaymentDeleted(ctx, eff))
	assert.True(t, inv.PaidAmount.IsZero())
}

func TestPaymentCreated_ExpenseToSupplier(t *testing.T) {
	ctx := context.Background()
	supplierID, accountID := id.New(), id.New()
	f := newFixture(id.New(), supplierID, accountID)

	eff := PaymentEffect{
		OwnerID:   "owner-1",
		PaymentID: id.New(),
		Party:     party.Ref{Kind: party.KindSupplier, ID: supplierID, Name: "Nordic Paper"},
		AccountID: &accountID,
		Inflow:    false,
		Amount:    types.NewMoney(80),
	}
	require.NoError(t, f.prop.PaymentCreated(ctx, eff))

	assert.True(t, f.accounts.balances[accountID].Equal(types.NewMoney(-80)))
	// We owe the supplier 80 less.
	assert.True(t, f.suppliers.balances[supplierID].Equal(types.NewMoney(80)))
}

func TestPaymentCreated_MissingInvoiceSkipsTracking(t *testing.T) {
	ctx := context.Background()
	customerID, accountID := id.New(), id.New()
	f := newFixture(customerID, id.New(), accountID)

	missing := id.New()
	eff := PaymentEffect{
		OwnerID:   "owner-1",
		PaymentID: id.New(),
		InvoiceID: &missing,
		Party:     party.Ref{Kind: party.KindCustomer, ID: customerID, Name: "Acme Trading"},
		AccountID: &accountID,
		Inflow:    true,
		Amount:    types.NewMoney(30),
	}

	// Account and party balances still move.
	require.NoError(t, f.prop.PaymentCreated(ctx, eff))
	assert.True(t, f.accounts.balances[accountID].Equal(types.NewMoney(30)))
	assert.True(t, f.customers.balances[customerID].Equal(types.NewMoney(-30)))
}

func TestDerivePaymentStatus(t *testing.T) {
	assert.Equal(t, invoice.PaymentUnpaid,
		invoice.DerivePaymentStatus(types.Zero(), types.NewMoney(100)))
	assert.Equal(t, invoice.PaymentPartial,
		invoice.DerivePaymentStatus(types.NewMoney(40), types.NewMoney(60)))
	assert.Equal(t, invoice.PaymentPaid,
		invoice.DerivePaymentStatus(types.NewMoney(100), types.Zero()))
	// Overpaid still reads as paid.
	assert.Equal(t, invoice.PaymentPaid,
		invoice.DerivePaymentStatus(types.NewMoney(120), types.NewMoney(-20)))
}
