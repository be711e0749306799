package quote

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faktura/internal/core/apperror"
	"faktura/internal/core/id"
	"faktura/internal/core/numerator"
	"faktura/internal/core/types"
	"faktura/internal/domain"
)

type nopTxManager struct{}

func (nopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeRepo is an in-memory quote repository.
type fakeRepo struct {
	docs       map[id.ID]*Quote
	lines      map[id.ID][]Line
	lastFilter ListFilter
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		docs:  make(map[id.ID]*Quote),
		lines: make(map[id.ID][]Line),
	}
}

func (r *fakeRepo) Create(_ context.Context, doc *Quote) error {
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, docID id.ID) (*Quote, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("quote", docID.String())
	}
	cp := *doc
	return &cp, nil
}

func (r *fakeRepo) Update(_ context.Context, doc *Quote) error {
	if _, ok := r.docs[doc.ID]; !ok {
		return apperror.NewNotFound("quote", doc.ID.String())
	}
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, ownerID string, docID id.ID) (bool, error) {
	doc, ok := r.docs[docID]
	if !ok || doc.OwnerID != ownerID {
		return false, nil
	}
	delete(r.docs, docID)
	delete(r.lines, docID)
	return true, nil
}

func (r *fakeRepo) GetLines(_ context.Context, docID id.ID) ([]Line, error) {
	return r.lines[docID], nil
}

func (r *fakeRepo) SaveLines(_ context.Context, docID id.ID, lines []Line) error {
	r.lines[docID] = lines
	return nil
}

func (r *fakeRepo) List(_ context.Context, filter ListFilter) (domain.ListResult[*Quote], error) {
	r.lastFilter = filter
	out := make([]*Quote, 0, len(r.docs))
	for _, doc := range r.docs {
		if filter.OwnerID != "" && doc.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Status != nil && doc.Status != *filter.Status {
			continue
		}
		out = append(out, doc)
	}
	return domain.ListResult[*Quote]{Items: out, TotalCount: int64(len(out))}, nil
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, &numerator.MockGenerator{}, nopTxManager{}, nil, nil)
}

func validQuote(ownerID string) *Quote {
	q := New(ownerID, id.New(), "Acme Trading")
	q.Currency = "EUR"
	q.ValidityDate = time.Now().AddDate(0, 1, 0)
	q.VATRate = types.NewMoney(25)
	q.AddLine(id.New(), "Consulting hour", "PRD-00001", "h", types.NewMoney(4), types.NewMoney(80))
	return q
}

func TestCreate_AssignsSequentialNumbers(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo)

	first := validQuote("owner-1")
	require.NoError(t, svc.Create(ctx, first))
	second := validQuote("owner-1")
	require.NoError(t, svc.Create(ctx, second))

	assert.Equal(t, "FT-00001", first.Number)
	assert.Equal(t, "FT-00002", second.Number)

	// Another owner starts its own series.
	other := validQuote("owner-2")
	require.NoError(t, svc.Create(ctx, other))
	assert.Equal(t, "FT-00001", other.Number)
}

func TestCreate_ComputesTotals(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo)

	q := validQuote("owner-1")
	require.NoError(t, svc.Create(ctx, q))

	// 4 x 80 = 320, no discount, 25% VAT excluded.
	assert.True(t, q.Subtotal.Equal(types.NewMoney(320)), "subtotal %s", q.Subtotal)
	assert.True(t, q.DiscountAmount.IsZero())
	assert.True(t, q.VATAmount.Equal(types.NewMoney(80)), "vat %s", q.VATAmount)
	assert.True(t, q.Total.Equal(types.NewMoney(400)), "total %s", q.Total)

	stored, err := svc.GetByID(ctx, "owner-1", q.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Lines, 1)
	assert.True(t, stored.Lines[0].Subtotal.Equal(types.NewMoney(320)))
}

func TestCreate_KeepsPresetNumber(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeRepo())

	q := validQuote("owner-1")
	q.Number = "FT-00099"
	require.NoError(t, svc.Create(ctx, q))
	assert.Equal(t, "FT-00099", q.Number)
}

func TestCreate_RejectsEmptyLines(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeRepo())

	q := validQuote("owner-1")
	q.Lines = nil
	err := svc.Create(ctx, q)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestGetByID_ScopedToOwner(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo)

	q := validQuote("owner-1")
	require.NoError(t, svc.Create(ctx, q))

	_, err := svc.GetByID(ctx, "owner-2", q.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdateStatus_Approve(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo)

	q := validQuote("owner-1")
	require.NoError(t, svc.Create(ctx, q))

	updated, err := svc.UpdateStatus(ctx, q.ID, StatusApproved, "admin-1", "")
	require.NoError(t, err)

	assert.Equal(t, StatusApproved, updated.Status)
	assert.Equal(t, "admin-1", updated.ApprovedBy)
	require.NotNil(t, updated.ApprovedAt)
	assert.Empty(t, updated.RejectionReason)
}

func TestUpdateStatus_RejectClearsApproval(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo)

	q := validQuote("owner-1")
	require.NoError(t, svc.Create(ctx, q))

	_, err := svc.UpdateStatus(ctx, q.ID, StatusApproved, "admin-1", "")
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, q.ID, StatusRejected, "admin-1", "pricing out of date")
	require.NoError(t, err)

	assert.Equal(t, StatusRejected, updated.Status)
	assert.Equal(t, "pricing out of date", updated.RejectionReason)
	assert.Empty(t, updated.ApprovedBy)
	assert.Nil(t, updated.ApprovedAt)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeRepo())

	_, err := svc.UpdateStatus(ctx, id.New(), Status("archived"), "admin-1", "")

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestListPending_FiltersOnPendingStatus(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo)

	q := validQuote("owner-1")
	require.NoError(t, svc.Create(ctx, q))
	_, err := svc.UpdateStatus(ctx, q.ID, StatusPending, "owner-1", "")
	require.NoError(t, err)

	other := validQuote("owner-2")
	require.NoError(t, svc.Create(ctx, other))

	result, err := svc.ListPending(ctx, 20, 0)
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, q.ID, result.Items[0].ID)
	// Cross-owner: no owner filter applied.
	assert.Empty(t, repo.lastFilter.OwnerID)
}

func TestDelete_NotFoundForMissingOrForeign(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo)

	q := validQuote("owner-1")
	require.NoError(t, svc.Create(ctx, q))

	assert.True(t, apperror.IsNotFound(svc.Delete(ctx, "owner-2", q.ID)))
	require.NoError(t, svc.Delete(ctx, "owner-1", q.ID))
	assert.True(t, apperror.IsNotFound(svc.Delete(ctx, "owner-1", q.ID)))
}
