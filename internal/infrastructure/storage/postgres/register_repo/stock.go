// Package register_repo provides PostgreSQL implementations for register
// repositories. Balances are not stored: they are aggregated from movements
// on read, which keeps movement reversal a plain DELETE.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"faktura/internal/core/entity"
	"faktura/internal/core/id"
	"faktura/internal/core/types"
	"faktura/internal/domain/registers/stock"
	"faktura/internal/infrastructure/storage/postgres"
)

const stockMovementsTable = "reg_stock_movements"

var stockMovementColumns = []string{
	"line_id", "owner_id", "recorder_id", "recorder_type",
	"product_id", "direction", "quantity",
	"unit_price", "total_value", "period", "created_at",
}

// StockRepo implements stock.Repository over the movements table.
type StockRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewStockRepo creates a new stock register repository.
func NewStockRepo(txManager *postgres.TxManager) *StockRepo {
	return &StockRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateMovements batch inserts movements. Uses COPY when called inside a
// transaction, which is the normal path during invoice propagation.
func (r *StockRepo) CreateMovements(ctx context.Context, movements []entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	if tx := r.txManager.GetTx(ctx); tx != nil {
		inserter := postgres.NewBatchInserter(r.txManager)
		rows := make([][]any, 0, len(movements))
		for _, m := range movements {
			rows = append(rows, []any{
				m.LineID, m.OwnerID, m.RecorderID, m.RecorderType,
				m.ProductID, m.Direction, m.Quantity,
				m.UnitPrice, m.TotalValue, m.Period, m.CreatedAt,
			})
		}
		if _, err := inserter.CopyFromSlice(ctx, stockMovementsTable, stockMovementColumns, rows); err != nil {
			return fmt.Errorf("copy movements: %w", err)
		}
		return nil
	}

	q := r.builder.Insert(stockMovementsTable).Columns(stockMovementColumns...)
	for _, m := range movements {
		q = q.Values(
			m.LineID, m.OwnerID, m.RecorderID, m.RecorderType,
			m.ProductID, m.Direction, m.Quantity,
			m.UnitPrice, m.TotalValue, m.Period, m.CreatedAt,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movements: %w", err)
	}

	return nil
}

// DeleteByRecorder removes every movement a document recorded and returns
// the number of rows removed. Zero is not an error: a document without
// stock effects simply has nothing to reverse.
func (r *StockRepo) DeleteByRecorder(ctx context.Context, ownerID string, recorderID id.ID) (int64, error) {
	q := r.builder.Delete(stockMovementsTable).
		Where(squirrel.Eq{"owner_id": ownerID, "recorder_id": recorderID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete movements: %w", err)
	}

	return tag.RowsAffected(), nil
}

// GetByRecorder retrieves all movements recorded by a document.
func (r *StockRepo) GetByRecorder(ctx context.Context, ownerID string, recorderID id.ID) ([]entity.StockMovement, error) {
	q := r.builder.Select(stockMovementColumns...).
		From(stockMovementsTable).
		Where(squirrel.Eq{"owner_id": ownerID, "recorder_id": recorderID}).
		OrderBy("created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var movements []entity.StockMovement
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("select movements: %w", err)
	}

	return movements, nil
}

// GetBalance returns the current balance for a product. A product with no
// movements has a zero balance, not an error.
func (r *StockRepo) GetBalance(ctx context.Context, ownerID string, productID id.ID) (entity.StockBalance, error) {
	sql := `
		SELECT
			product_id,
			COALESCE(SUM(CASE WHEN direction = 'in' THEN quantity ELSE -quantity END), 0) AS quantity,
			MAX(created_at) AS last_movement_at
		FROM reg_stock_movements
		WHERE owner_id = $1 AND product_id = $2
		GROUP BY product_id
	`

	var balance entity.StockBalance
	err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &balance, sql, ownerID, productID)
	if err != nil {
		if pgxscan.NotFound(err) {
			return entity.StockBalance{
				ProductID: productID,
				Quantity:  types.Zero(),
			}, nil
		}
		return balance, fmt.Errorf("get balance: %w", err)
	}

	return balance, nil
}

// GetBalances returns aggregated balances for the owner's products.
func (r *StockRepo) GetBalances(ctx context.Context, ownerID string, filter stock.BalanceFilter) ([]entity.StockBalance, error) {
	q := r.builder.Select(
		"product_id",
		"COALESCE(SUM(CASE WHEN direction = 'in' THEN quantity ELSE -quantity END), 0) AS quantity",
		"MAX(created_at) AS last_movement_at",
	).From(stockMovementsTable).
		Where(squirrel.Eq{"owner_id": ownerID})

	if len(filter.ProductIDs) > 0 {
		q = q.Where(squirrel.Eq{"product_id": filter.ProductIDs})
	}

	q = q.GroupBy("product_id")

	if filter.ExcludeZero {
		q = q.Having("SUM(CASE WHEN direction = 'in' THEN quantity ELSE -quantity END) <> 0")
	}

	q = q.OrderBy("product_id")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var balances []entity.StockBalance
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &balances, sql, args...); err != nil {
		return nil, fmt.Errorf("select balances: %w", err)
	}

	return balances, nil
}

// GetMovementHistory returns movement history for a product, newest first.
func (r *StockRepo) GetMovementHistory(ctx context.Context, ownerID string, productID id.ID, filter stock.MovementFilter) ([]entity.StockMovement, error) {
	q := r.builder.Select(stockMovementColumns...).
		From(stockMovementsTable).
		Where(squirrel.Eq{"owner_id": ownerID, "product_id": productID})

	if filter.Direction != nil {
		q = q.Where(squirrel.Eq{"direction": *filter.Direction})
	}

	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"period": *filter.FromDate})
	}

	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"period": *filter.ToDate})
	}

	q = q.OrderBy("period DESC", "created_at DESC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var movements []entity.StockMovement
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("select history: %w", err)
	}

	return movements, nil
}

var _ stock.Repository = (*StockRepo)(nil)
