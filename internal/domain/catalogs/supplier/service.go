package supplier

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

// Service provides business logic for the Supplier catalog.
type Service struct {
	*domain.CatalogService[*Supplier]
	repo      Repository
	numerator numerator.Generator
}

// NewService creates a new Supplier service.
func NewService(repo Repository, gen numerator.Generator, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Supplier]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "supplier",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      gen,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)
	base.Hooks().On(domain.BeforeUpdate, svc.guardBalance)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, sup *Supplier) error {
	if sup.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, sup.OwnerID, numerator.DefaultConfig("SUP"),
			&numerator.Options{Strategy: numerator.StrategyCached}, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		sup.Code = code
	}
	sup.Balance = types.Zero()
	return nil
}

// guardBalance pins the balance to its stored value on update.
func (s *Service) guardBalance(ctx context.Context, sup *Supplier) error {
	stored, err := s.repo.GetByID(ctx, sup.OwnerID, sup.ID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	sup.Balance = stored.Balance
	return nil
}
