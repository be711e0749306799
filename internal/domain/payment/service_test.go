package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faktura/internal/core/apperror"
	"faktura/internal/core/id"
	"faktura/internal/core/types"
	"faktura/internal/domain"
	"faktura/internal/domain/ledger"
	"faktura/internal/domain/party"
)

type nopTxManager struct{}

func (nopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeLedger struct {
	created  []ledger.PaymentEffect
	deleted  []ledger.PaymentEffect
	failWith error
}

func (l *fakeLedger) PaymentCreated(_ context.Context, eff ledger.PaymentEffect) error {
	if l.failWith != nil {
		return l.failWith
	}
	l.created = append(l.created, eff)
	return nil
}

func (l *fakeLedger) PaymentDeleted(_ context.Context, eff ledger.PaymentEffect) error {
	if l.failWith != nil {
		return l.failWith
	}
	l.deleted = append(l.deleted, eff)
	return nil
}

type fakeRepo struct {
	docs map[id.ID]*Payment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{docs: make(map[id.ID]*Payment)}
}

func (r *fakeRepo) Create(_ context.Context, doc *Payment) error {
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, docID id.ID) (*Payment, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("payment", docID.String())
	}
	cp := *doc
	return &cp, nil
}

func (r *fakeRepo) Delete(_ context.Context, ownerID string, docID id.ID) (bool, error) {
	doc, ok := r.docs[docID]
	if !ok || doc.OwnerID != ownerID {
		return false, nil
	}
	delete(r.docs, docID)
	return true, nil
}

func (r *fakeRepo) List(_ context.Context, filter ListFilter) (domain.ListResult[*Payment], error) {
	out := make([]*Payment, 0, len(r.docs))
	for _, doc := range r.docs {
		if doc.OwnerID == filter.OwnerID {
			out = append(out, doc)
		}
	}
	return domain.ListResult[*Payment]{Items: out, TotalCount: int64(len(out))}, nil
}

func newTestService(repo *fakeRepo, l *fakeLedger) *Service {
	return NewService(repo, l, nopTxManager{}, nil, nil)
}

func incomePayment(ownerID string) *Payment {
	p := New(ownerID, DirectionIncome,
		party.Ref{Kind: party.KindCustomer, ID: id.New(), Name: "Acme Trading"},
		types.NewMoney(150))
	p.Currency = "EUR"
	return p
}

func TestCreate_AppliesLedgerEffect(t *testing.T) {
	ctx := context.Background()
	l := &fakeLedger{}
	svc := newTestService(newFakeRepo(), l)

	accountID := id.New()
	p := incomePayment("owner-1")
	p.AccountID = &accountID
	require.NoError(t, svc.Create(ctx, p))

	require.Len(t, l.created, 1)
	eff := l.created[0]
	assert.Equal(t, p.ID, eff.PaymentID)
	assert.True(t, eff.Inflow)
	assert.True(t, eff.Amount.Equal(types.NewMoney(150)))
	require.NotNil(t, eff.AccountID)
	assert.Equal(t, accountID, *eff.AccountID)
}

func TestCreate_ExpenseProjectsOutflow(t *testing.T) {
	ctx := context.Background()
	l := &fakeLedger{}
	svc := newTestService(newFakeRepo(), l)

	p := New("owner-1", DirectionExpense,
		party.Ref{Kind: party.KindSupplier, ID: id.New(), Name: "Nordic Paper"},
		types.NewMoney(80))
	p.Currency = "EUR"
	p.Method = MethodCash
	require.NoError(t, svc.Create(ctx, p))

	require.Len(t, l.created, 1)
	assert.False(t, l.created[0].Inflow)
}

func TestCreate_DefaultsToTransferMethod(t *testing.T) {
	p := incomePayment("owner-1")
	assert.Equal(t, MethodTransfer, p.Method)
}

func TestCreate_RejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeRepo(), &fakeLedger{})

	p := incomePayment("owner-1")
	p.Amount = types.Zero()

	err := svc.Create(ctx, p)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestCreate_RejectsUnknownMethod(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeRepo(), &fakeLedger{})

	p := incomePayment("owner-1")
	p.Method = Method("barter")

	err := svc.Create(ctx, p)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestCreate_LedgerFailurePropagates(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("account store unavailable")
	svc := newTestService(newFakeRepo(), &fakeLedger{failWith: boom})

	err := svc.Create(ctx, incomePayment("owner-1"))
	assert.ErrorIs(t, err, boom)
}

func TestGetByID_ScopedToOwner(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeLedger{})

	p := incomePayment("owner-1")
	require.NoError(t, svc.Create(ctx, p))

	_, err := svc.GetByID(ctx, "owner-2", p.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDelete_ReversesLedgerEffect(t *testing.T) {
	ctx := context.Background()
	l := &fakeLedger{}
	repo := newFakeRepo()
	svc := newTestService(repo, l)

	p := incomePayment("owner-1")
	require.NoError(t, svc.Create(ctx, p))
	require.NoError(t, svc.Delete(ctx, "owner-1", p.ID))

	require.Len(t, l.deleted, 1)
	assert.Equal(t, p.ID, l.deleted[0].PaymentID)
}

func TestDelete_ReversalFailureIsLedgerReversalError(t *testing.T) {
	ctx := context.Background()
	l := &fakeLedger{}
	repo := newFakeRepo()
	svc := newTestService(repo, l)

	p := incomePayment("owner-1")
	require.NoError(t, svc.Create(ctx, p))

	l.failWith = errors.New("invoice lock failed")
	err := svc.Delete(ctx, "owner-1", p.ID)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeLedgerReversal, appErr.Code)
}
