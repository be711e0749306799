package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"faktura/internal/core/apperror"
	"faktura/internal/domain/party"
	"faktura/internal/domain/reports"
	"faktura/internal/infrastructure/http/v1/dto"
)

// ReportsHandler exposes read-only aggregation reports.
type ReportsHandler struct {
	*BaseHandler
	reports *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		reports:     service,
	}
}

// Receivables handles GET /reports/receivables.
func (h *ReportsHandler) Receivables(c *gin.Context) {
	ctx := c.Request.Context()

	var q dto.ReceivablesQuery
	if !h.BindQuery(c, &q) {
		return
	}

	filter := reports.ReceivablesFilter{
		OwnerID:  h.GetUserID(c),
		AsOfDate: q.AsOfDate,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	if q.PartyKind != "" {
		kind := party.Kind(q.PartyKind)
		if !party.ValidKind(kind) {
			h.Error(c, apperror.NewValidation("invalid partyKind").WithDetail("value", q.PartyKind))
			return
		}
		filter.PartyKind = &kind
	}

	report, err := h.reports.GetReceivables(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// SalesSummary handles GET /reports/sales-summary.
func (h *ReportsHandler) SalesSummary(c *gin.Context) {
	ctx := c.Request.Context()

	var q dto.SalesSummaryQuery
	if !h.BindQuery(c, &q) {
		return
	}

	summary, err := h.reports.GetSalesSummary(ctx, reports.SalesSummaryFilter{
		OwnerID:  h.GetUserID(c),
		FromDate: q.FromDate,
		ToDate:   q.ToDate,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Journal handles GET /reports/journal.
func (h *ReportsHandler) Journal(c *gin.Context) {
	ctx := c.Request.Context()

	var q dto.JournalQuery
	if !h.BindQuery(c, &q) {
		return
	}

	journal, err := h.reports.GetJournal(ctx, reports.JournalFilter{
		OwnerID:        h.GetUserID(c),
		DocumentTypes:  q.DocumentTypes,
		FromDate:       q.FromDate,
		ToDate:         q.ToDate,
		NumberContains: q.NumberContains,
		Limit:          q.Limit,
		Offset:         q.Offset,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, journal)
}
