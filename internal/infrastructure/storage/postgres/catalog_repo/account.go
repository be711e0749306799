package catalog_repo

import (
	"context"

	"faktura/internal/core/id"
	"faktura/internal/core/types"
	"faktura/internal/domain/catalogs/account"
	"faktura/internal/infrastructure/storage/postgres"
)

const accountTable = "cat_accounts"

// AccountRepo implements account.Repository.
type AccountRepo struct {
	*BaseCatalogRepo[*account.Account]
}

// NewAccountRepo creates a new account repository.
func NewAccountRepo(txManager *postgres.TxManager) *AccountRepo {
	return &AccountRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			accountTable,
			postgres.ExtractDBColumns[account.Account](),
			func() *account.Account { return &account.Account{} },
		),
	}
}

// ApplyBalanceDelta atomically moves the account balance.
func (r *AccountRepo) ApplyBalanceDelta(ctx context.Context, ownerID string, accountID id.ID, delta types.Money) (bool, error) {
	return r.AddToColumn(ctx, ownerID, accountID, "balance", delta)
}
