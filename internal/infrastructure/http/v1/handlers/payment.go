package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"faktura/internal/core/apperror"
	"faktura/internal/core/id"
	"faktura/internal/domain/catalogs/customer"
	"faktura/internal/domain/catalogs/supplier"
	"faktura/internal/domain/party"
	"faktura/internal/domain/payment"
	"faktura/internal/infrastructure/http/v1/dto"
)

// PaymentHandler handles payment document endpoints.
type PaymentHandler struct {
	*BaseHandler
	partyResolver
	payments *payment.Service
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(
	base *BaseHandler,
	payments *payment.Service,
	customers *customer.Service,
	suppliers *supplier.Service,
) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:   base,
		partyResolver: partyResolver{customers: customers, suppliers: suppliers},
		payments:      payments,
	}
}

// List handles GET /payments.
func (h *PaymentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var q dto.PaymentListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	filter := payment.ListFilter{
		ListFilter: h.listFilter(c, q.ListQuery),
		DateFrom:   q.DateFrom,
		DateTo:     q.DateTo,
	}
	if q.Direction != "" {
		direction := payment.Direction(q.Direction)
		if !payment.ValidDirection(direction) {
			h.Error(c, apperror.NewValidation("invalid direction").WithDetail("value", q.Direction))
			return
		}
		filter.Direction = &direction
	}
	if q.PartyKind != "" {
		kind := party.Kind(q.PartyKind)
		if !party.ValidKind(kind) {
			h.Error(c, apperror.NewValidation("invalid partyKind").WithDetail("value", q.PartyKind))
			return
		}
		filter.PartyKind = &kind
	}
	if q.PartyID != "" {
		partyID, err := id.Parse(q.PartyID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid partyId"))
			return
		}
		filter.PartyID = &partyID
	}
	if q.InvoiceID != "" {
		invoiceID, err := id.Parse(q.InvoiceID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid invoiceId"))
			return
		}
		filter.InvoiceID = &invoiceID
	}
	if q.AccountID != "" {
		accountID, err := id.Parse(q.AccountID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid accountId"))
			return
		}
		filter.AccountID = &accountID
	}

	result, err := h.payments.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /payments/:id.
func (h *PaymentHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.payments.GetByID(ctx, h.GetUserID(c), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// Create handles POST /payments. Creating a payment moves the account
// and counterparty balances and updates the linked invoice's payment
// tracking in one transaction.
func (h *PaymentHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	ownerID := h.GetUserID(c)

	var req dto.CreatePaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ref, err := h.resolve(ctx, ownerID, req.PartyKind, req.PartyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	doc := payment.New(ownerID, payment.Direction(req.Direction), ref, req.Amount)
	doc.Currency = req.Currency
	doc.Reference = req.Reference
	doc.Notes = req.Notes
	if req.Method != "" {
		doc.Method = payment.Method(req.Method)
	}
	if req.InvoiceID != nil && *req.InvoiceID != "" {
		invoiceID, err := id.Parse(*req.InvoiceID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid invoiceId"))
			return
		}
		doc.InvoiceID = &invoiceID
	}
	if req.AccountID != nil && *req.AccountID != "" {
		accountID, err := id.Parse(*req.AccountID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid accountId"))
			return
		}
		doc.AccountID = &accountID
	}

	if err := h.payments.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	h.CompleteIdempotency(c, http.StatusCreated, "application/json", doc)
	c.JSON(http.StatusCreated, doc)
}

// Delete handles DELETE /payments/:id. Reverses the payment's ledger
// effects inside a single transaction.
func (h *PaymentHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.payments.Delete(ctx, h.GetUserID(c), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
