// Package settings_repo provides the PostgreSQL implementation of the
// settings repository. One row per owner, keyed by owner_id.
package settings_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"faktura/internal/core/apperror"
	"faktura/internal/domain/settings"
	"faktura/internal/infrastructure/storage/postgres"
)

const settingsColumns = `owner_id, company_name, company_address, company_phone,
	company_email, company_website, logo, default_currency, default_vat_rate,
	pdf_theme, ui_theme, theme_color, updated_at`

// SettingsRepo implements settings.Repository.
type SettingsRepo struct {
	txManager *postgres.TxManager
}

// NewSettingsRepo creates a new settings repository.
func NewSettingsRepo(txManager *postgres.TxManager) *SettingsRepo {
	return &SettingsRepo{txManager: txManager}
}

// Get retrieves the owner's settings row.
func (r *SettingsRepo) Get(ctx context.Context, ownerID string) (*settings.Settings, error) {
	query := fmt.Sprintf(`SELECT %s FROM sys_settings WHERE owner_id = $1`, settingsColumns)

	var s settings.Settings
	err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &s, query, ownerID)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("settings", ownerID)
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return &s, nil
}

// Upsert inserts or replaces the owner's settings row.
func (r *SettingsRepo) Upsert(ctx context.Context, s *settings.Settings) error {
	query := `
		INSERT INTO sys_settings (
			owner_id, company_name, company_address, company_phone,
			company_email, company_website, logo, default_currency,
			default_vat_rate, pdf_theme, ui_theme, theme_color, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (owner_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			company_address = EXCLUDED.company_address,
			company_phone = EXCLUDED.company_phone,
			company_email = EXCLUDED.company_email,
			company_website = EXCLUDED.company_website,
			logo = EXCLUDED.logo,
			default_currency = EXCLUDED.default_currency,
			default_vat_rate = EXCLUDED.default_vat_rate,
			pdf_theme = EXCLUDED.pdf_theme,
			ui_theme = EXCLUDED.ui_theme,
			theme_color = EXCLUDED.theme_color,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.txManager.GetQuerier(ctx).Exec(ctx, query,
		s.OwnerID, s.CompanyName, s.CompanyAddress, s.CompanyPhone,
		s.CompanyEmail, s.CompanyWebsite, s.Logo, s.DefaultCurrency,
		s.DefaultVATRate, s.PDFTheme, s.UITheme, s.ThemeColor, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}

	return nil
}

var _ settings.Repository = (*SettingsRepo)(nil)
