package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"faktura/internal/core/apperror"
	"faktura/internal/core/id"
	"faktura/internal/core/types"
	"faktura/internal/domain/catalogs/customer"
	"faktura/internal/infrastructure/storage/postgres"
)

const customerTable = "cat_customers"

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	*BaseCatalogRepo[*customer.Customer]
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(txManager *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			customerTable,
			postgres.ExtractDBColumns[customer.Customer](),
			func() *customer.Customer { return &customer.Customer{} },
		),
	}
}

// FindByTaxID retrieves a customer by tax id.
func (r *CustomerRepo) FindByTaxID(ctx context.Context, ownerID, taxID string) (*customer.Customer, error) {
	q := r.baseSelect(ownerID).
		Where(squirrel.Eq{"tax_id": taxID}).
		Limit(1)

	c, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("customer", taxID)
		}
		return nil, err
	}
	return c, nil
}

// ApplyBalanceDelta atomically moves the customer balance.
func (r *CustomerRepo) ApplyBalanceDelta(ctx context.Context, ownerID string, customerID id.ID, delta types.Money) (bool, error) {
	return r.AddToColumn(ctx, ownerID, customerID, "balance", delta)
}
