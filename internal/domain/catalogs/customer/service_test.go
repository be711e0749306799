package customer

import (
	"context"
	"testing"

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

type fakeRepo struct {
	customers map[id.ID]*Customer
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{customers: make(map[id.ID]*Customer)}
}

func (r *fakeRepo) Create(_ context.Context, c *Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, ownerID string, entityID id.ID) (*Customer, error) {
	c, ok := r.customers[entityID]
	if !ok || c.OwnerID != ownerID {
		return nil, apperror.NewNotFound("customer", entityID.String())
	}
	cp := *c
	return &cp, nil
}

func (r *fakeRepo) GetByCode(_ context.Context, ownerID, code string) (*Customer, error) {
	for _, c := range r.customers {
		if c.OwnerID == ownerID && c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("customer", code)
}

func (r *fakeRepo) ExistsByCode(_ context.Context, ownerID, code string) (bool, error) {
	for _, c := range r.customers {
		if c.OwnerID == ownerID && c.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) Update(_ context.Context, c *Customer) error {
	if _, ok := r.customers[c.ID]; !ok {
		return apperror.NewNotFound("customer", c.ID.String())
	}
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, ownerID string, entityID id.ID) error {
	c, ok := r.customers[entityID]
	if !ok || c.OwnerID != ownerID {
		return apperror.NewNotFound("customer", entityID.String())
	}
	delete(r.customers, entityID)
	return nil
}

func (r *fakeRepo) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[*Customer], error) {
	out := make([]*Customer, 0, len(r.customers))
	for _, c := range r.customers {
		if c.OwnerID == filter.OwnerID {
			out = append(out, c)
		}
	}
	return domain.ListResult[*Customer]{Items: out, TotalCount: int64(len(out))}, nil
}

func (r *fakeRepo) Exists(_ context.Context, ownerID string, entityID id.ID) (bool, error) {
	c, ok := r.customers[entityID]
	return ok && c.OwnerID == ownerID, nil
}

func (r *fakeRepo) FindByTaxID(_ context.Context, ownerID, taxID string) (*Customer, error) {
	for _, c := range r.customers {
		if c.OwnerID == ownerID && c.TaxID == taxID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("customer", taxID)
}

func (r *fakeRepo) ApplyBalanceDelta(_ context.Context, ownerID string, customerID id.ID, delta types.Money) (bool, error) {
	c, ok := r.customers[customerID]
	if !ok || c.OwnerID != ownerID {
		return false, nil
	}
	c.Balance = c.Balance.Add(delta)
	return true, nil
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, &numerator.MockGenerator{}, nopTxManager{})
}

func TestCreate_GeneratesCode(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo)

	first := New("owner-1", "", "Acme Trading")
	require.NoError(t, svc.Create(ctx, first))
	second := New("owner-1", "", "Blue Harbor")
	require.NoError(t, svc.Create(ctx, second))

	assert.Equal(t, "CUS-00001", first.Code)
	assert.Equal(t, "CUS-00002", second.Code)
}

func TestCreate_KeepsExplicitCode(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeRepo())

	c := New("owner-1", "CUS-CUSTOM", "Acme Trading")
	require.NoError(t, svc.Create(ctx, c))
	assert.Equal(t, "CUS-CUSTOM", c.Code)
}

func TestCreate_ZeroesBalance(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo)

	c := New("owner-1", "", "Acme Trading")
	c.Balance = types.NewMoney(999)
	require.NoError(t, svc.Create(ctx, c))

	assert.True(t, c.Balance.IsZero(), "balance %s", c.Balance)
}

func TestCreate_DuplicateTaxIDRejected(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo)

	first := New("owner-1", "", "Acme Trading")
	first.TaxID = "HR11111111111"
	require.NoError(t, svc.Create(ctx, first))

	second := New("owner-1", "", "Acme Clone")
	second.TaxID = "HR11111111111"
	err := svc.Create(ctx, second)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)

	// Same tax id for a different owner is fine.
	other := New("owner-2", "", "Acme Trading")
	other.TaxID = "HR11111111111"
	assert.NoError(t, svc.Create(ctx, other))
}

func TestUpdate_BalanceWriteIgnored(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo)

	c := New("owner-1", "", "Acme Trading")
	require.NoError(t, svc.Create(ctx, c))

	// The ledger moves the stored balance.
	_, err := repo.ApplyBalanceDelta(ctx, "owner-1", c.ID, types.NewMoney(250))
	require.NoError(t, err)

	// A catalog update trying to overwrite the balance is pinned back.
	c.Name = "Acme Trading Ltd"
	c.Balance = types.NewMoney(-500)
	require.NoError(t, svc.Update(ctx, c))

	stored, err := repo.GetByID(ctx, "owner-1", c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Trading Ltd", stored.Name)
	assert.True(t, stored.Balance.Equal(types.NewMoney(250)), "balance %s", stored.Balance)
}

func TestCreate_RejectsInvalidEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeRepo())

	c := New("owner-1", "", "Acme Trading")
	c.Email = "not-an-email"
	err := svc.Create(ctx, c)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
