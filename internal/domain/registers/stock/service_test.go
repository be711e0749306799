package stock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faktura/internal/core/apperror"
	"faktura/internal/core/entity"
	"faktura/internal/core/id"
	"faktura/internal/core/types"
)

// fakeRepo keeps movements in memory and derives balances on read.
type fakeRepo struct {
	movements []entity.StockMovement
}

func (r *fakeRepo) CreateMovements(_ context.Context, movements []entity.StockMovement) error {
	r.movements = append(r.movements, movements...)
	return nil
}

func (r *fakeRepo) DeleteByRecorder(_ context.Context, ownerID string, recorderID id.ID) (int64, error) {
	kept := r.movements[:0]
	var removed int64
	for _, m := range r.movements {
		if m.OwnerID == ownerID && m.RecorderID == recorderID {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	r.movements = kept
	return removed, nil
}

func (r *fakeRepo) GetByRecorder(_ context.Context, ownerID string, recorderID id.ID) ([]entity.StockMovement, error) {
	var out []entity.StockMovement
	for _, m := range r.movements {
		if m.OwnerID == ownerID && m.RecorderID == recorderID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetBalance(_ context.Context, ownerID string, productID id.ID) (entity.StockBalance, error) {
	balance := entity.StockBalance{ProductID: productID, Quantity: types.Zero()}
	for _, m := range r.movements {
		if m.OwnerID != ownerID || m.ProductID != productID {
			continue
		}
		balance.Quantity = balance.Quantity.Add(m.SignedQuantity())
		if m.CreatedAt.After(balance.LastMovementAt) {
			balance.LastMovementAt = m.CreatedAt
		}
	}
	return balance, nil
}

func (r *fakeRepo) GetBalances(ctx context.Context, ownerID string, filter BalanceFilter) ([]entity.StockBalance, error) {
	seen := make(map[id.ID]bool)
	var out []entity.StockBalance
	for _, m := range r.movements {
		if m.OwnerID != ownerID || seen[m.ProductID] {
			continue
		}
		seen[m.ProductID] = true
		balance, _ := r.GetBalance(ctx, ownerID, m.ProductID)
		if filter.ExcludeZero && balance.Quantity.IsZero() {
			continue
		}
		out = append(out, balance)
	}
	return out, nil
}

func (r *fakeRepo) GetMovementHistory(_ context.Context, ownerID string, productID id.ID, filter MovementFilter) ([]entity.StockMovement, error) {
	var out []entity.StockMovement
	for _, m := range r.movements {
		if m.OwnerID != ownerID || m.ProductID != productID {
			continue
		}
		if filter.Direction != nil && m.Direction != *filter.Direction {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func movement(ownerID string, recorderID, productID id.ID, dir entity.StockDirection, qty float64) entity.StockMovement {
	return entity.NewStockMovement(ownerID, recorderID, "invoice", time.Now().UTC(),
		dir, productID, types.NewQuantity(qty), types.NewMoney(10))
}

func TestRecordMovements_Validates(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	svc := NewService(repo)

	bad := movement("owner-1", id.New(), id.New(), entity.StockIn, 5)
	bad.Quantity = types.NewQuantity(-1)
	err := svc.RecordMovements(ctx, []entity.StockMovement{bad})

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Empty(t, repo.movements)

	noRecorder := movement("owner-1", id.Nil(), id.New(), entity.StockIn, 5)
	err = svc.RecordMovements(ctx, []entity.StockMovement{noRecorder})
	assert.Error(t, err)
}

func TestRecordMovements_EmptyIsNoop(t *testing.T) {
	svc := NewService(&fakeRepo{})
	assert.NoError(t, svc.RecordMovements(context.Background(), nil))
}

func TestBalance_NetsInAndOut(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	svc := NewService(repo)
	productID := id.New()

	require.NoError(t, svc.RecordMovements(ctx, []entity.StockMovement{
		movement("owner-1", id.New(), productID, entity.StockIn, 10),
		movement("owner-1", id.New(), productID, entity.StockOut, 3),
	}))

	balance, err := svc.GetProductBalance(ctx, "owner-1", productID)
	require.NoError(t, err)
	assert.True(t, balance.Quantity.Equal(types.NewQuantity(7)), "balance %s", balance.Quantity)
}

func TestBalance_CanGoNegative(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	svc := NewService(repo)
	productID := id.New()

	require.NoError(t, svc.RecordMovements(ctx, []entity.StockMovement{
		movement("owner-1", id.New(), productID, entity.StockOut, 4),
	}))

	balance, err := svc.GetProductBalance(ctx, "owner-1", productID)
	require.NoError(t, err)
	assert.True(t, balance.Quantity.Equal(types.NewQuantity(-4)), "balance %s", balance.Quantity)
}

func TestReverseMovements_RemovesOnlyRecorder(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	svc := NewService(repo)
	productID := id.New()
	invoiceA, invoiceB := id.New(), id.New()

	require.NoError(t, svc.RecordMovements(ctx, []entity.StockMovement{
		movement("owner-1", invoiceA, productID, entity.StockIn, 10),
		movement("owner-1", invoiceB, productID, entity.StockIn, 5),
	}))

	removed, err := svc.ReverseMovements(ctx, "owner-1", invoiceA)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	balance, err := svc.GetProductBalance(ctx, "owner-1", productID)
	require.NoError(t, err)
	assert.True(t, balance.Quantity.Equal(types.NewQuantity(5)))
}

func TestTurnover(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	svc := NewService(repo)
	productID := id.New()

	require.NoError(t, svc.RecordMovements(ctx, []entity.StockMovement{
		movement("owner-1", id.New(), productID, entity.StockIn, 10),
		movement("owner-1", id.New(), productID, entity.StockIn, 2),
		movement("owner-1", id.New(), productID, entity.StockOut, 7),
	}))

	turnover, err := svc.Turnover(ctx, "owner-1", productID, MovementFilter{})
	require.NoError(t, err)

	assert.True(t, turnover.Received.Equal(types.NewQuantity(12)), "received %s", turnover.Received)
	assert.True(t, turnover.Issued.Equal(types.NewQuantity(7)), "issued %s", turnover.Issued)
	assert.True(t, turnover.Net.Equal(types.NewQuantity(5)), "net %s", turnover.Net)
}

func TestGetBalances_ExcludeZero(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	svc := NewService(repo)
	zeroed, stocked := id.New(), id.New()
	recorder := id.New()

	require.NoError(t, svc.RecordMovements(ctx, []entity.StockMovement{
		movement("owner-1", recorder, zeroed, entity.StockIn, 3),
		movement("owner-1", recorder, zeroed, entity.StockOut, 3),
		movement("owner-1", recorder, stocked, entity.StockIn, 8),
	}))

	balances, err := svc.GetBalances(ctx, "owner-1", BalanceFilter{ExcludeZero: true})
	require.NoError(t, err)

	require.Len(t, balances, 1)
	assert.Equal(t, stocked, balances[0].ProductID)
}
