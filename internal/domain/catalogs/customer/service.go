package customer

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

// Service provides business logic for the Customer catalog.
// Common CRUD is delegated to domain.CatalogService.
type Service struct {
	*domain.CatalogService[*Customer]
	repo      Repository
	numerator numerator.Generator
}

// NewService creates a new Customer service.
func NewService(repo Repository, gen numerator.Generator, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Customer]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "customer",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      gen,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)
	base.Hooks().On(domain.BeforeUpdate, svc.guardBalance)
	base.Hooks().On(domain.BeforeUpdate, svc.checkTaxIDUnique)

	return svc
}

// prepareForCreate generates a code when none was provided, zeroes the
// balance and checks tax id uniqueness. New customers always start at a
// zero balance regardless of what the caller sent.
func (s *Service) prepareForCreate(ctx context.Context, c *Customer) error {
	if c.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, c.OwnerID, numerator.DefaultConfig("CUS"),
			&numerator.Options{Strategy: numerator.StrategyCached}, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		c.Code = code
	}
	c.Balance = types.Zero()
	return s.checkTaxIDUnique(ctx, c)
}

// guardBalance pins the balance to its stored value. The balance is a
// ledger-derived field: catalog writes must not move it.
func (s *Service) guardBalance(ctx context.Context, c *Customer) error {
	stored, err := s.repo.GetByID(ctx, c.OwnerID, c.ID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	c.Balance = stored.Balance
	return nil
}

func (s *Service) checkTaxIDUnique(ctx context.Context, c *Customer) error {
	if c.TaxID == "" {
		return nil
	}
	existing, err := s.repo.FindByTaxID(ctx, c.OwnerID, c.TaxID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != c.ID {
		return apperror.NewDuplicate("customer", "taxId", c.TaxID)
	}
	return nil
}

// FindByTaxID retrieves a customer by tax id.
func (s *Service) FindByTaxID(ctx context.Context, ownerID, taxID string) (*Customer, error) {
	return s.repo.FindByTaxID(ctx, ownerID, taxID)
}
