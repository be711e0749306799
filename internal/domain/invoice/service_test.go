package invoice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faktura/internal/core/apperror"
	"faktura/internal/core/id"
	"faktura/internal/core/numerator"
	"faktura/internal/core/types"
	"faktura/internal/domain"
	"faktura/internal/domain/party"
)

type nopTxManager struct{}

func (nopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeLedger records applied and reversed invoices and can be told to fail.
type fakeLedger struct {
	created  []id.ID
	deleted  []id.ID
	failWith error
}

func (l *fakeLedger) InvoiceCreated(_ context.Context, inv *Invoice) error {
	if l.failWith != nil {
		return l.failWith
	}
	l.created = append(l.created, inv.ID)
	return nil
}

func (l *fakeLedger) InvoiceDeleted(_ context.Context, inv *Invoice) error {
	if l.failWith != nil {
		return l.failWith
	}
	l.deleted = append(l.deleted, inv.ID)
	return nil
}

type fakeRepo struct {
	docs  map[id.ID]*Invoice
	lines map[id.ID][]Line
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{docs: make(map[id.ID]*Invoice), lines: make(map[id.ID][]Line)}
}

func (r *fakeRepo) Create(_ context.Context, doc *Invoice) error {
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, docID id.ID) (*Invoice, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("invoice", docID.String())
	}
	cp := *doc
	return &cp, nil
}

func (r *fakeRepo) GetForUpdate(ctx context.Context, docID id.ID) (*Invoice, error) {
	return r.GetByID(ctx, docID)
}

func (r *fakeRepo) UpdatePaymentFields(_ context.Context, docID id.ID, paid, remaining types.Money, status PaymentStatus) error {
	doc := r.docs[docID]
	doc.PaidAmount = paid
	doc.RemainingAmount = remaining
	doc.PaymentStatus = status
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, ownerID string, docID id.ID) (bool, error) {
	doc, ok := r.docs[docID]
	if !ok || doc.OwnerID != ownerID {
		return false, nil
	}
	delete(r.docs, docID)
	return true, nil
}

func (r *fakeRepo) GetLines(_ context.Context, docID id.ID) ([]Line, error) {
	return r.lines[docID], nil
}

func (r *fakeRepo) SaveLines(_ context.Context, docID id.ID, lines []Line) error {
	r.lines[docID] = lines
	return nil
}

func (r *fakeRepo) List(_ context.Context, filter ListFilter) (domain.ListResult[*Invoice], error) {
	out := make([]*Invoice, 0, len(r.docs))
	for _, doc := range r.docs {
		if doc.OwnerID == filter.OwnerID {
			out = append(out, doc)
		}
	}
	return domain.ListResult[*Invoice]{Items: out, TotalCount: int64(len(out))}, nil
}

func newTestService(repo *fakeRepo, ledger *fakeLedger) *Service {
	return NewService(repo, &numerator.MockGenerator{}, ledger, nopTxManager{}, nil, nil)
}

func validInvoice(ownerID string, invType Type) *Invoice {
	kind := party.KindCustomer
	if invType == TypePurchase {
		kind = party.KindSupplier
	}
	inv := New(ownerID, invType, party.Ref{Kind: kind, ID: id.New(), Name: "Acme Trading"})
	inv.Currency = "EUR"
	inv.AddLine(id.New(), "Consulting hour", "PRD-00001", "h",
		types.NewMoney(2), types.NewMoney(100), types.NewMoney(25))
	return inv
}

func TestCreate_AssignsYearedNumber(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeLedger{})

	first := validInvoice("owner-1", TypeSales)
	require.NoError(t, svc.Create(ctx, first))
	second := validInvoice("owner-1", TypeSales)
	require.NoError(t, svc.Create(ctx, second))

	assert.Regexp(t, `^FTR-\d{4}-00001$`, first.Number)
	assert.Regexp(t, `^FTR-\d{4}-00002$`, second.Number)
}

func TestCreate_ComputesTotalsAndPaymentTracking(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeLedger{})

	inv := validInvoice("owner-1", TypeSales)
	require.NoError(t, svc.Create(ctx, inv))

	// 2 x 100 = 200 subtotal, 25% VAT = 50.
	assert.True(t, inv.Subtotal.Equal(types.NewMoney(200)), "subtotal %s", inv.Subtotal)
	assert.True(t, inv.VATAmount.Equal(types.NewMoney(50)), "vat %s", inv.VATAmount)
	assert.True(t, inv.Total.Equal(types.NewMoney(250)), "total %s", inv.Total)

	assert.True(t, inv.PaidAmount.IsZero())
	assert.True(t, inv.RemainingAmount.Equal(inv.Total))
	assert.Equal(t, PaymentUnpaid, inv.PaymentStatus)
}

func TestCreate_AppliesLedgerEffects(t *testing.T) {
	ctx := context.Background()
	ledger := &fakeLedger{}
	svc := newTestService(newFakeRepo(), ledger)

	inv := validInvoice("owner-1", TypeSales)
	require.NoError(t, svc.Create(ctx, inv))

	require.Len(t, ledger.created, 1)
	assert.Equal(t, inv.ID, ledger.created[0])
}

func TestCreate_LedgerFailurePropagates(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("balance store unavailable")
	svc := newTestService(newFakeRepo(), &fakeLedger{failWith: boom})

	err := svc.Create(ctx, validInvoice("owner-1", TypeSales))
	assert.ErrorIs(t, err, boom)
}

func TestCreate_RejectsMismatchedParty(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeRepo(), &fakeLedger{})

	inv := validInvoice("owner-1", TypeSales)
	inv.Kind = party.Kind("organization")

	err := svc.Create(ctx, inv)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestGetByID_ScopedToOwner(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeLedger{})

	inv := validInvoice("owner-1", TypeSales)
	require.NoError(t, svc.Create(ctx, inv))

	_, err := svc.GetByID(ctx, "owner-2", inv.ID)
	assert.True(t, apperror.IsNotFound(err))

	got, err := svc.GetByID(ctx, "owner-1", inv.ID)
	require.NoError(t, err)
	assert.Len(t, got.Lines, 1)
}

func TestDelete_ReversesLedgerEffects(t *testing.T) {
	ctx := context.Background()
	ledger := &fakeLedger{}
	repo := newFakeRepo()
	svc := newTestService(repo, ledger)

	inv := validInvoice("owner-1", TypeSales)
	require.NoError(t, svc.Create(ctx, inv))
	require.NoError(t, svc.Delete(ctx, "owner-1", inv.ID))

	require.Len(t, ledger.deleted, 1)
	assert.Equal(t, inv.ID, ledger.deleted[0])
}

func TestDelete_ReversalFailureIsLedgerReversalError(t *testing.T) {
	ctx := context.Background()
	ledger := &fakeLedger{}
	repo := newFakeRepo()
	svc := newTestService(repo, ledger)

	inv := validInvoice("owner-1", TypeSales)
	require.NoError(t, svc.Create(ctx, inv))

	ledger.failWith = errors.New("stock store unavailable")
	err := svc.Delete(ctx, "owner-1", inv.ID)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeLedgerReversal, appErr.Code)
}

func TestDelete_ForeignOwnerNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeLedger{})

	inv := validInvoice("owner-1", TypeSales)
	require.NoError(t, svc.Create(ctx, inv))

	assert.True(t, apperror.IsNotFound(svc.Delete(ctx, "owner-2", inv.ID)))
}

func TestList_RequiresOwner(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeRepo(), &fakeLedger{})

	_, err := svc.List(ctx, ListFilter{})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
