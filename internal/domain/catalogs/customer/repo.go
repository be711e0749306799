package customer

import (
	"context"

	"faktura/internal/core/id"
	"faktura/internal/core/types"
	"faktura/internal/domain"
)

// Repository defines the interface for Customer persistence.
type Repository interface {
	domain.CatalogRepository[*Customer]

	// FindByTaxID retrieves a customer by tax id (unique within owner).
	FindByTaxID(ctx context.Context, ownerID, taxID string) (*Customer, error)

	// ApplyBalanceDelta atomically moves the customer balance.
	// Returns false without error when the customer does not exist.
	ApplyBalanceDelta(ctx context.Context, ownerID string, customerID id.ID, delta types.Money) (bool, error)
}
