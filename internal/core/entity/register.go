// Package entity provides core domain entities.
package entity

import (
	"time"

	"faktura/internal/core/id"
	"faktura/internal/core/types"
)

// StockDirection defines movement direction for the stock register.
type StockDirection string

const (
	// StockIn increases stock (purchase invoices)
	StockIn StockDirection = "in"
	// StockOut decreases stock (sales invoices)
	StockOut StockDirection = "out"
)

// StockMovement represents a movement in the stock register.
// Movements are immutable: they are created when the originating invoice
// is created and deleted en masse when that invoice is deleted, never
// updated in place.
type StockMovement struct {
	// LineID is unique identifier for this movement line (UUIDv7)
	LineID id.ID `db:"line_id" json:"lineId"`

	// OwnerID is the user who owns the originating document
	OwnerID string `db:"owner_id" json:"ownerId"`

	// RecorderID is the document that created this movement (the invoice)
	RecorderID id.ID `db:"recorder_id" json:"recorderId"`

	// RecorderType is the document type (e.g., "Invoice")
	RecorderType string `db:"recorder_type" json:"recorderType"`

	// ProductID is the moved product
	ProductID id.ID `db:"product_id" json:"productId"`

	// Direction: in (receipt) or out (issue)
	Direction StockDirection `db:"direction" json:"direction"`

	// Quantity moved (non-negative)
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// UnitPrice at movement time
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`

	// TotalValue = Quantity x UnitPrice
	TotalValue types.Money `db:"total_value" json:"totalValue"`

	// Period is the business date for the movement
	Period time.Time `db:"period" json:"period"`

	// CreatedAt is when the movement was recorded
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewStockMovement creates a new stock movement recorded by a document.
func NewStockMovement(
	ownerID string,
	recorderID id.ID,
	recorderType string,
	period time.Time,
	direction StockDirection,
	productID id.ID,
	quantity types.Quantity,
	unitPrice types.Money,
) StockMovement {
	return StockMovement{
		LineID:       id.New(),
		OwnerID:      ownerID,
		RecorderID:   recorderID,
		RecorderType: recorderType,
		ProductID:    productID,
		Direction:    direction,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		TotalValue:   quantity.Mul(unitPrice),
		Period:       period,
		CreatedAt:    time.Now().UTC(),
	}
}

// SignedQuantity returns quantity with sign based on direction.
// In = positive, Out = negative.
func (m *StockMovement) SignedQuantity() types.Quantity {
	if m.Direction == StockOut {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

// StockBalance represents current balance in the stock register.
// This is a derived view aggregated from movements.
type StockBalance struct {
	ProductID id.ID          `db:"product_id" json:"productId"`
	Quantity  types.Quantity `db:"quantity" json:"quantity"`

	LastMovementAt time.Time `db:"last_movement_at" json:"lastMovementAt"`
}
