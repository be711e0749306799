package account

import (
	"context"

	"faktura/internal/core/id"
	"faktura/internal/core/types"
	"faktura/internal/domain"
)

// Repository defines the interface for Account persistence.
type Repository interface {
	domain.CatalogRepository[*Account]

	// ApplyBalanceDelta atomically moves the account balance.
	// Returns false without error when the account does not exist.
	ApplyBalanceDelta(ctx context.Context, ownerID string, accountID id.ID, delta types.Money) (bool, error)
}
