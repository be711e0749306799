package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"faktura/internal/core/apperror"
	"faktura/internal/core/id"
	"faktura/internal/domain/catalogs/customer"
	"faktura/internal/domain/catalogs/product"
	"faktura/internal/domain/quote"
	"faktura/internal/domain/totals"
	"faktura/internal/infrastructure/http/v1/dto"
)

// QuoteHandler handles quote document endpoints. The customer and
// product services supply the snapshots frozen onto new documents.
type QuoteHandler struct {
	*BaseHandler
	quotes    *quote.Service
	customers *customer.Service
	products  *product.Service
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(base *BaseHandler, quotes *quote.Service, customers *customer.Service, products *product.Service) *QuoteHandler {
	return &QuoteHandler{
		BaseHandler: base,
		quotes:      quotes,
		customers:   customers,
		products:    products,
	}
}

// List handles GET /quotes.
func (h *QuoteHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var q dto.QuoteListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	filter := quote.ListFilter{
		ListFilter: h.listFilter(c, q.ListQuery),
		DateFrom:   q.DateFrom,
		DateTo:     q.DateTo,
	}
	if q.CustomerID != "" {
		customerID, err := id.Parse(q.CustomerID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid customerId"))
			return
		}
		filter.CustomerID = &customerID
	}
	if q.Status != "" {
		status := quote.Status(q.Status)
		if !quote.ValidStatus(status) {
			h.Error(c, apperror.NewValidation("invalid status").WithDetail("value", q.Status))
			return
		}
		filter.Status = &status
	}

	result, err := h.quotes.List(ctx, filter)
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

// ListPending handles GET /quotes/pending. Admin-scoped: returns
// pending quotes across all owners for review.
func (h *QuoteHandler) ListPending(c *gin.Context) {
	ctx := c.Request.Context()

	limit := h.ParseIntQuery(c, "limit", 50)
	offset := h.ParseIntQuery(c, "offset", 0)

	result, err := h.quotes.ListPending(ctx, limit, offset)
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

// Get handles GET /quotes/:id.
func (h *QuoteHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.quotes.GetByID(ctx, h.GetUserID(c), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// Create handles POST /quotes.
func (h *QuoteHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	ownerID := h.GetUserID(c)

	var req dto.CreateQuoteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	customerID, err := id.Parse(req.CustomerID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid customerId"))
		return
	}

	cust, err := h.customers.GetByID(ctx, ownerID, customerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	doc := quote.New(ownerID, cust.ID, cust.Name)
	doc.CustomerEmail = cust.Email
	doc.CustomerPhone = cust.Phone
	doc.CustomerCompany = cust.Company
	doc.Currency = req.Currency
	doc.ValidityDate = req.ValidityDate
	doc.Notes = req.Notes
	doc.DiscountValue = req.DiscountValue
	doc.VATRate = req.VATRate
	if req.DiscountType != "" {
		doc.DiscountType = totals.DiscountType(req.DiscountType)
	}
	if req.VATMode != "" {
		doc.VATMode = totals.VATMode(req.VATMode)
	}

	if !h.addQuoteLines(c, ownerID, doc, req.Lines) {
		return
	}

	if err := h.quotes.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	h.CompleteIdempotency(c, http.StatusCreated, "application/json", doc)
	c.JSON(http.StatusCreated, doc)
}

// UpdateStatus handles PATCH /quotes/:id/status.
func (h *QuoteHandler) UpdateStatus(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateQuoteStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	status := quote.Status(req.Status)
	if !quote.ValidStatus(status) {
		h.Error(c, apperror.NewValidation("invalid status").WithDetail("value", req.Status))
		return
	}

	doc, err := h.quotes.UpdateStatus(ctx, docID, status, h.GetUserID(c), req.Reason)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, doc)
}

// Delete handles DELETE /quotes/:id.
func (h *QuoteHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.quotes.Delete(ctx, h.GetUserID(c), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// addQuoteLines resolves product snapshots for each requested line.
// Returns false after registering an error.
func (h *QuoteHandler) addQuoteLines(c *gin.Context, ownerID string, doc *quote.Quote, lines []dto.LineRequest) bool {
	ctx := c.Request.Context()

	for i, line := range lines {
		productID, err := id.Parse(line.ProductID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productId").WithDetail("line", i+1))
			return false
		}

		prod, err := h.products.GetByID(ctx, ownerID, productID)
		if err != nil {
			h.Error(c, err)
			return false
		}

		unitPrice := prod.Price
		if line.UnitPrice != nil {
			unitPrice = *line.UnitPrice
		}

		doc.AddLine(prod.ID, prod.Name, prod.Code, prod.Unit, line.Quantity, unitPrice)
	}
	return true
}
