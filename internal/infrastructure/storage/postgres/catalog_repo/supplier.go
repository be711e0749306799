package catalog_repo

import (
	"context"

	"faktura/internal/core/id"
	"faktura/internal/core/types"
	"faktura/internal/domain/catalogs/supplier"
	"faktura/internal/infrastructure/storage/postgres"
)

const supplierTable = "cat_suppliers"

// SupplierRepo implements supplier.Repository.
type SupplierRepo struct {
	*BaseCatalogRepo[*supplier.Supplier]
}

// NewSupplierRepo creates a new supplier repository.
func NewSupplierRepo(txManager *postgres.TxManager) *SupplierRepo {
	return &SupplierRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			supplierTable,
			postgres.ExtractDBColumns[supplier.Supplier](),
			func() *supplier.Supplier { return &supplier.Supplier{} },
		),
	}
}

// ApplyBalanceDelta atomically moves the supplier balance.
func (r *SupplierRepo) ApplyBalanceDelta(ctx context.Context, ownerID string, supplierID id.ID, delta types.Money) (bool, error) {
	return r.AddToColumn(ctx, ownerID, supplierID, "balance", delta)
}
