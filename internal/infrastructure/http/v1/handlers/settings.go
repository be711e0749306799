package handlers

import (
	"github.com/gin-gonic/gin"

	"faktura/internal/domain/settings"
	"faktura/internal/infrastructure/http/v1/dto"
)

// SettingsHandler exposes the owner's company and theme settings.
type SettingsHandler struct {
	*BaseHandler
	settings *settings.Service
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(base *BaseHandler, service *settings.Service) *SettingsHandler {
	return &SettingsHandler{
		BaseHandler: base,
		settings:    service,
	}
}

// Get handles GET /settings.
func (h *SettingsHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	result, err := h.settings.Get(ctx, h.GetUserID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

// Update handles PUT /settings.
func (h *SettingsHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateSettingsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	update := settings.Update{
		CompanyName:     req.CompanyName,
		CompanyAddress:  req.CompanyAddress,
		CompanyPhone:    req.CompanyPhone,
		CompanyEmail:    req.CompanyEmail,
		CompanyWebsite:  req.CompanyWebsite,
		Logo:            req.Logo,
		DefaultCurrency: req.DefaultCurrency,
		DefaultVATRate:  req.DefaultVATRate,
		ThemeColor:      req.ThemeColor,
	}
	if req.PDFTheme != nil {
		theme := settings.PDFTheme(*req.PDFTheme)
		update.PDFTheme = &theme
	}
	if req.UITheme != nil {
		theme := settings.UITheme(*req.UITheme)
		update.UITheme = &theme
	}

	result, err := h.settings.Apply(ctx, h.GetUserID(c), update)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}
