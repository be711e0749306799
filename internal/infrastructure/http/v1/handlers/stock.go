package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"faktura/internal/core/apperror"
	"faktura/internal/core/entity"
	"faktura/internal/core/id"
	"faktura/internal/domain/registers/stock"
	"faktura/internal/infrastructure/http/v1/dto"
)

// StockHandler exposes read endpoints over the stock register.
// Movements are written only by invoice propagation.
type StockHandler struct {
	*BaseHandler
	stock *stock.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *stock.Service) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		stock:       service,
	}
}

// Balances handles GET /stock/balances.
func (h *StockHandler) Balances(c *gin.Context) {
	ctx := c.Request.Context()

	var q dto.StockBalancesQuery
	if !h.BindQuery(c, &q) {
		return
	}

	filter := stock.BalanceFilter{
		ExcludeZero: q.ExcludeZero,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}
	for _, raw := range q.ProductIDs {
		productID, err := id.Parse(raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid id in productIds filter").WithDetail("value", raw))
			return
		}
		filter.ProductIDs = append(filter.ProductIDs, productID)
	}

	balances, err := h.stock.GetBalances(ctx, h.GetUserID(c), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": balances})
}

// Balance handles GET /stock/products/:id/balance.
func (h *StockHandler) Balance(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	balance, err := h.stock.GetProductBalance(ctx, h.GetUserID(c), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, balance)
}

// Movements handles GET /stock/products/:id/movements.
func (h *StockHandler) Movements(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	filter, ok := h.movementFilter(c)
	if !ok {
		return
	}

	movements, err := h.stock.GetMovementHistory(ctx, h.GetUserID(c), productID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": movements})
}

// Turnover handles GET /stock/products/:id/turnover.
func (h *StockHandler) Turnover(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	filter, ok := h.movementFilter(c)
	if !ok {
		return
	}

	turnover, err := h.stock.Turnover(ctx, h.GetUserID(c), productID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, turnover)
}

func (h *StockHandler) movementFilter(c *gin.Context) (stock.MovementFilter, bool) {
	var q dto.StockMovementsQuery
	if !h.BindQuery(c, &q) {
		return stock.MovementFilter{}, false
	}

	filter := stock.MovementFilter{
		FromDate: q.FromDate,
		ToDate:   q.ToDate,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	if q.Direction != "" {
		direction := entity.StockDirection(q.Direction)
		if direction != entity.StockIn && direction != entity.StockOut {
			h.Error(c, apperror.NewValidation("invalid direction").WithDetail("value", q.Direction))
			return stock.MovementFilter{}, false
		}
		filter.Direction = &direction
	}
	return filter, true
}
