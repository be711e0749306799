package supplier

import (
	"context"

	"faktura/internal/core/id"
	"faktura/internal/core/types"
	"faktura/internal/domain"
)

// Repository defines the interface for Supplier persistence.
type Repository interface {
	domain.CatalogRepository[*Supplier]

	// ApplyBalanceDelta atomically moves the supplier balance.
	// Returns false without error when the supplier does not exist.
	ApplyBalanceDelta(ctx context.Context, ownerID string, supplierID id.ID, delta types.Money) (bool, error)
}
