package stock

import (
	"context"
	"fmt"

	"faktura/internal/core/apperror"
	"faktura/internal/core/entity"
	"faktura/internal/core/id"
	"faktura/internal/core/types"
	"faktura/pkg/logger"
)

// Service provides read and maintenance operations for the stock
// register. Writes flow through the ledger propagator inside document
// transactions; the service never opens its own.
type Service struct {
	repo Repository
}

// NewService creates a new stock register service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RecordMovements validates and records movements for a document.
func (s *Service) RecordMovements(ctx context.Context, movements []entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	for i, m := range movements {
		if m.Quantity.IsNegative() {
			return apperror.NewValidation(fmt.Sprintf("movement %d: quantity must be non-negative", i))
		}
		if id.IsNil(m.RecorderID) {
			return apperror.NewValidation(fmt.Sprintf("movement %d: recorder is required", i))
		}
	}

	if err := s.repo.CreateMovements(ctx, movements); err != nil {
		return fmt.Errorf("create movements: %w", err)
	}

	logger.Info(ctx, "recorded stock movements",
		"count", len(movements), "recorder_id", movements[0].RecorderID)
	return nil
}

// ReverseMovements removes every movement recorded by a document.
func (s *Service) ReverseMovements(ctx context.Context, ownerID string, recorderID id.ID) (int64, error) {
	removed, err := s.repo.DeleteByRecorder(ctx, ownerID, recorderID)
	if err != nil {
		return 0, fmt.Errorf("delete movements: %w", err)
	}

	logger.Info(ctx, "reversed stock movements",
		"recorder_id", recorderID, "count", removed)
	return removed, nil
}

// GetProductBalance returns the current stock level for a product.
// Levels can be negative when sales outpace recorded purchases.
func (s *Service) GetProductBalance(ctx context.Context, ownerID string, productID id.ID) (entity.StockBalance, error) {
	return s.repo.GetBalance(ctx, ownerID, productID)
}

// GetBalances returns current stock levels for the owner's products.
func (s *Service) GetBalances(ctx context.Context, ownerID string, filter BalanceFilter) ([]entity.StockBalance, error) {
	return s.repo.GetBalances(ctx, ownerID, filter)
}

// GetMovementHistory returns the movement history for a product.
func (s *Service) GetMovementHistory(ctx context.Context, ownerID string, productID id.ID, filter MovementFilter) ([]entity.StockMovement, error) {
	return s.repo.GetMovementHistory(ctx, ownerID, productID, filter)
}

// Turnover aggregates a product's movement history into receipt and
// issue totals.
func (s *Service) Turnover(ctx context.Context, ownerID string, productID id.ID, filter MovementFilter) (Turnover, error) {
	history, err := s.repo.GetMovementHistory(ctx, ownerID, productID, filter)
	if err != nil {
		return Turnover{}, fmt.Errorf("get movement history: %w", err)
	}

	t := Turnover{ProductID: productID, Received: types.Zero(), Issued: types.Zero()}
	for _, m := range history {
		if m.Direction == entity.StockIn {
			t.Received = t.Received.Add(m.Quantity)
		} else {
			t.Issued = t.Issued.Add(m.Quantity)
		}
	}
	t.Net = t.Received.Sub(t.Issued)
	return t, nil
}
