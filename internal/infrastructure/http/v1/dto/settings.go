package dto

import (
	"faktura/internal/core/types"
)

// UpdateSettingsRequest patches the owner's settings. Absent fields
// keep their stored value.
type UpdateSettingsRequest struct {
	CompanyName    *string `json:"companyName"`
	CompanyAddress *string `json:"companyAddress"`
	CompanyPhone   *string `json:"companyPhone"`
	CompanyEmail   *string `json:"companyEmail"`
	CompanyWebsite *string `json:"companyWebsite"`
	Logo           *string `json:"logo"`

	DefaultCurrency *string      `json:"defaultCurrency"`
	DefaultVATRate  *types.Money `json:"defaultVatRate"`

	PDFTheme   *string `json:"pdfTheme"`
	UITheme    *string `json:"uiTheme"`
	ThemeColor *string `json:"themeColor"`
}
