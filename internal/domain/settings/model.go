// Package settings provides per-owner presentation and company
// configuration. Every owner has exactly one settings row; reads fall
// back to defaults until the first save. The resolved theme color is
// what the document rendering sink consumes alongside quote and
// invoice projections.
package settings

import (
	"context"
	"time"

	"faktura/internal/core/apperror"
	"faktura/internal/core/types"
)

// PDFTheme selects the color scheme used for rendered documents.
type PDFTheme string

const (
	PDFThemeBlue   PDFTheme = "blue"
	PDFThemeGreen  PDFTheme = "green"
	PDFThemePurple PDFTheme = "purple"
	PDFThemeOrange PDFTheme = "orange"
)

// ValidPDFTheme reports whether t is a known PDF theme.
func ValidPDFTheme(t PDFTheme) bool {
	switch t {
	case PDFThemeBlue, PDFThemeGreen, PDFThemePurple, PDFThemeOrange:
		return true
	}
	return false
}

// UITheme selects the client appearance.
type UITheme string

const (
	UIThemeLight UITheme = "light"
	UIThemeDark  UITheme = "dark"
)

// ValidUITheme reports whether t is a known UI theme.
func ValidUITheme(t UITheme) bool {
	return t == UIThemeLight || t == UIThemeDark
}

// DefaultThemeColor is the accent color used until the owner picks one.
const DefaultThemeColor = "#4F46E5"

// Settings holds one owner's company profile and theme configuration.
type Settings struct {
	OwnerID string `db:"owner_id" json:"-"`

	CompanyName    string `db:"company_name" json:"companyName"`
	CompanyAddress string `db:"company_address" json:"companyAddress,omitempty"`
	CompanyPhone   string `db:"company_phone" json:"companyPhone,omitempty"`
	CompanyEmail   string `db:"company_email" json:"companyEmail,omitempty"`
	CompanyWebsite string `db:"company_website" json:"companyWebsite,omitempty"`

	// Logo is a data URL or object key, stored opaque.
	Logo string `db:"logo" json:"logo,omitempty"`

	DefaultCurrency string      `db:"default_currency" json:"defaultCurrency"`
	DefaultVATRate  types.Money `db:"default_vat_rate" json:"defaultVatRate"`

	PDFTheme   PDFTheme `db:"pdf_theme" json:"pdfTheme"`
	UITheme    UITheme  `db:"ui_theme" json:"uiTheme"`
	ThemeColor string   `db:"theme_color" json:"themeColor"`

	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Default returns the settings an owner sees before the first save.
func Default(ownerID string) *Settings {
	return &Settings{
		OwnerID:         ownerID,
		CompanyName:     "My Company",
		DefaultCurrency: "EUR",
		DefaultVATRate:  types.NewMoney(20),
		PDFTheme:        PDFThemeBlue,
		UITheme:         UIThemeLight,
		ThemeColor:      DefaultThemeColor,
		UpdatedAt:       time.Now().UTC(),
	}
}

// Validate checks settings consistency.
func (s *Settings) Validate(ctx context.Context) error {
	if s.OwnerID == "" {
		return apperror.NewValidation("owner is required").WithDetail("field", "ownerId")
	}

	if s.CompanyName == "" {
		return apperror.NewValidation("company name is required").
			WithDetail("field", "companyName")
	}

	if s.DefaultCurrency == "" {
		return apperror.NewValidation("default currency is required").
			WithDetail("field", "defaultCurrency")
	}

	if s.DefaultVATRate.IsNegative() {
		return apperror.NewValidation("default VAT rate cannot be negative").
			WithDetail("field", "defaultVatRate")
	}

	if !ValidPDFTheme(s.PDFTheme) {
		return apperror.NewValidation("invalid PDF theme").
			WithDetail("field", "pdfTheme").
			WithDetail("value", string(s.PDFTheme))
	}

	if !ValidUITheme(s.UITheme) {
		return apperror.NewValidation("invalid UI theme").
			WithDetail("field", "uiTheme").
			WithDetail("value", string(s.UITheme))
	}

	return nil
}
