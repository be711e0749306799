package account

import (
	"context"
	"fmt"
	"time"

	"faktura/internal/core/apperror"
	"faktura/internal/core/numerator"
	"faktura/internal/core/tx"
	"faktura/internal/core/types"
	"faktura/internal/domain"
)

// Service provides business logic for the Account catalog.
type Service struct {
	*domain.CatalogService[*Account]
	repo      Repository
	numerator numerator.Generator
}

// NewService creates a new Account service.
func NewService(repo Repository, gen numerator.Generator, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Account]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "account",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      gen,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)
	base.Hooks().On(domain.BeforeUpdate, svc.rejectBalanceChange)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, a *Account) error {
	if a.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, a.OwnerID, numerator.DefaultConfig("ACC"),
			&numerator.Options{Strategy: numerator.StrategyCached}, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		a.Code = code
	}
	a.Balance = types.Zero()
	return nil
}

// rejectBalanceChange fails the update when the submitted balance
// differs from the stored one.
func (s *Service) rejectBalanceChange(ctx context.Context, a *Account) error {
	stored, err := s.repo.GetByID(ctx, a.OwnerID, a.ID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if !a.Balance.Equal(stored.Balance) {
		return apperror.NewBusinessRule("balance_immutable",
			"account balance can only change through payments").
			WithDetail("accountId", a.ID)
	}
	return nil
}
