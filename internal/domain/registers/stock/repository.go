// Package stock provides the stock accumulation register. Movements are
// written only by invoice propagation; this package owns reads and the
// derived balance view. Balances may go negative: stock levels are
// informational and never block a sale.
package stock

import (
	"context"
	"time"

	"faktura/internal/core/entity"
	"faktura/internal/core/id"
	"faktura/internal/core/types"
)

// Repository defines operations for the stock register.
type Repository interface {
	// CreateMovements batch inserts movements, called during invoice
	// propagation inside the document transaction.
	CreateMovements(ctx context.Context, movements []entity.StockMovement) error

	// DeleteByRecorder removes every movement recorded by a document.
	// Returns the number of movements removed.
	DeleteByRecorder(ctx context.Context, ownerID string, recorderID id.ID) (int64, error)

	// GetByRecorder retrieves all movements recorded by a document.
	GetByRecorder(ctx context.Context, ownerID string, recorderID id.ID) ([]entity.StockMovement, error)

	// GetBalance returns the current balance for a product.
	GetBalance(ctx context.Context, ownerID string, productID id.ID) (entity.StockBalance, error)

	// GetBalances returns balances for the owner's products.
	GetBalances(ctx context.Context, ownerID string, filter BalanceFilter) ([]entity.StockBalance, error)

	// GetMovementHistory returns movement history for a product.
	GetMovementHistory(ctx context.Context, ownerID string, productID id.ID, filter MovementFilter) ([]entity.StockMovement, error)
}

// BalanceFilter for filtering balance queries.
type BalanceFilter struct {
	ProductIDs  []id.ID
	ExcludeZero bool
	Limit       int
	Offset      int
}

// MovementFilter for filtering movement history.
type MovementFilter struct {
	Direction *entity.StockDirection
	FromDate  *time.Time
	ToDate    *time.Time
	Limit     int
	Offset    int
}

// Turnover represents receipt and issue totals for a product over a
// period, derived from movements.
type Turnover struct {
	ProductID id.ID          `json:"productId"`
	Received  types.Quantity `json:"received"`
	Issued    types.Quantity `json:"issued"`
	Net       types.Quantity `json:"net"`
}
