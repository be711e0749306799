package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"faktura/internal/core/apperror"
	"faktura/internal/core/id"
	"faktura/internal/domain/catalogs/customer"
	"faktura/internal/domain/catalogs/product"
	"faktura/internal/domain/catalogs/supplier"
	"faktura/internal/domain/invoice"
	"faktura/internal/domain/party"
	"faktura/internal/infrastructure/http/v1/dto"
)

// InvoiceHandler handles invoice document endpoints. Party and product
// snapshots are resolved from the catalogs at creation time.
type InvoiceHandler struct {
	*BaseHandler
	partyResolver
	invoices *invoice.Service
	products *product.Service
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(
	base *BaseHandler,
	invoices *invoice.Service,
	customers *customer.Service,
	suppliers *supplier.Service,
	products *product.Service,
) *InvoiceHandler {
	return &InvoiceHandler{
		BaseHandler:   base,
		partyResolver: partyResolver{customers: customers, suppliers: suppliers},
		invoices:      invoices,
		products:      products,
	}
}

// List handles GET /invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var q dto.InvoiceListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	filter := invoice.ListFilter{
		ListFilter: h.listFilter(c, q.ListQuery),
		DateFrom:   q.DateFrom,
		DateTo:     q.DateTo,
	}
	if q.InvoiceType != "" {
		invType := invoice.Type(q.InvoiceType)
		if !invoice.ValidType(invType) {
			h.Error(c, apperror.NewValidation("invalid invoiceType").WithDetail("value", q.InvoiceType))
			return
		}
		filter.Type = &invType
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
	if q.PaymentStatus != "" {
		status := invoice.PaymentStatus(q.PaymentStatus)
		filter.PaymentStatus = &status
	}

	result, err := h.invoices.List(ctx, filter)
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

// Get handles GET /invoices/:id.
func (h *InvoiceHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.invoices.GetByID(ctx, h.GetUserID(c), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// Create handles POST /invoices. Creating an invoice moves the
// counterparty balance and records stock movements in one transaction.
func (h *InvoiceHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	ownerID := h.GetUserID(c)

	var req dto.CreateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	invType := invoice.Type(req.InvoiceType)
	if !invoice.ValidType(invType) {
		h.Error(c, apperror.NewValidation("invalid invoiceType").WithDetail("value", req.InvoiceType))
		return
	}

	ref, err := h.resolve(ctx, ownerID, req.PartyKind, req.PartyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	doc := invoice.New(ownerID, invType, ref)
	doc.Currency = req.Currency
	doc.DiscountAmount = req.DiscountAmount
	doc.WithholdingAmount = req.WithholdingAmount
	doc.DueDate = req.DueDate
	doc.Notes = req.Notes

	for i, line := range req.Lines {
		productID, err := id.Parse(line.ProductID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productId").WithDetail("line", i+1))
			return
		}

		prod, err := h.products.GetByID(ctx, ownerID, productID)
		if err != nil {
			h.Error(c, err)
			return
		}

		unitPrice := prod.Price
		if line.UnitPrice != nil {
			unitPrice = *line.UnitPrice
		}
		vatRate := prod.VATRate
		if line.VATRate != nil {
			vatRate = *line.VATRate
		}

		doc.AddLine(prod.ID, prod.Name, prod.Code, prod.Unit, line.Quantity, unitPrice, vatRate)
	}

	if err := h.invoices.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	h.CompleteIdempotency(c, http.StatusCreated, "application/json", doc)
	c.JSON(http.StatusCreated, doc)
}

// Delete handles DELETE /invoices/:id. Reverses all ledger effects of
// the invoice inside a single transaction.
func (h *InvoiceHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.invoices.Delete(ctx, h.GetUserID(c), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

