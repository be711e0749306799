package settings

import (
	"context"
	"fmt"
	"time"

	"faktura/internal/core/apperror"
	"faktura/internal/core/tx"
	"faktura/internal/core/types"
)

// Update is a partial settings change. Nil fields keep their stored
// value, matching PATCH-style clients that submit only what changed.
type Update struct {
	CompanyName    *string
	CompanyAddress *string
	CompanyPhone   *string
	CompanyEmail   *string
	CompanyWebsite *string
	Logo           *string

	DefaultCurrency *string
	DefaultVATRate  *types.Money

	PDFTheme   *PDFTheme
	UITheme    *UITheme
	ThemeColor *string
}

// Service provides settings read and update operations.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new settings service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Get returns the owner's settings, falling back to defaults when
// nothing has been saved yet. Defaults are not persisted on read.
func (s *Service) Get(ctx context.Context, ownerID string) (*Settings, error) {
	if ownerID == "" {
		return nil, apperror.NewValidation("owner is required").WithDetail("field", "ownerId")
	}

	stored, err := s.repo.Get(ctx, ownerID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return Default(ownerID), nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return stored, nil
}

// Apply merges an update into the owner's current settings and saves
// the result. Works on the first call too: the patch lands on the
// defaults and the upsert creates the row.
func (s *Service) Apply(ctx context.Context, ownerID string, update Update) (*Settings, error) {
	current, err := s.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	merge(current, update)
	current.UpdatedAt = time.Now().UTC()

	if err := current.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return s.repo.Upsert(txCtx, current)
	})
	if err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}

	return current, nil
}

func merge(s *Settings, u Update) {
	if u.CompanyName != nil {
		s.CompanyName = *u.CompanyName
	}
	if u.CompanyAddress != nil {
		s.CompanyAddress = *u.CompanyAddress
	}
	if u.CompanyPhone != nil {
		s.CompanyPhone = *u.CompanyPhone
	}
	if u.CompanyEmail != nil {
		s.CompanyEmail = *u.CompanyEmail
	}
	if u.CompanyWebsite != nil {
		s.CompanyWebsite = *u.CompanyWebsite
	}
	if u.Logo != nil {
		s.Logo = *u.Logo
	}
	if u.DefaultCurrency != nil {
		s.DefaultCurrency = *u.DefaultCurrency
	}
	if u.DefaultVATRate != nil {
		s.DefaultVATRate = *u.DefaultVATRate
	}
	if u.PDFTheme != nil {
		s.PDFTheme = *u.PDFTheme
	}
	if u.UITheme != nil {
		s.UITheme = *u.UITheme
	}
	if u.ThemeColor != nil {
		s.ThemeColor = *u.ThemeColor
	}
}
