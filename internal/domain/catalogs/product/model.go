// Package product provides the Product catalog. Products are referenced
// by quote and invoice lines through snapshots; the stock register keys
// its balances on the product id.
package product

import (
	"context"

	"faktura/internal/core/apperror"
	"faktura/internal/core/entity"
	"faktura/internal/core/types"
)

// Product represents a sellable good or service.
type Product struct {
	entity.Catalog

	Description string `db:"description" json:"description,omitempty"`

	// Unit is the unit of measure (e.g. "pcs", "kg", "h")
	Unit string `db:"unit" json:"unit"`

	// Price is the default unit price offered on new lines. Documents
	// snapshot the price at creation; editing it here never changes
	// issued documents.
	Price types.Money `db:"price" json:"price"`

	// VATRate is the default VAT percentage for this product (0-100)
	VATRate types.Money `db:"vat_rate" json:"vatRate"`

	// TrackStock controls whether invoice lines for this product should
	// appear in stock reports. Movements are recorded either way.
	TrackStock bool `db:"track_stock" json:"trackStock"`
}

// New creates a new Product owned by the given user.
func New(ownerID, code, name, unit string) *Product {
	return &Product{
		Catalog:    entity.NewCatalog(ownerID, code, name),
		Unit:       unit,
		Price:      types.Zero(),
		VATRate:    types.Zero(),
		TrackStock: true,
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.Unit == "" {
		return apperror.NewValidation("unit is required").
			WithDetail("field", "unit")
	}

	if p.Price.IsNegative() {
		return apperror.NewValidation("price must be non-negative").
			WithDetail("field", "price")
	}

	if p.VATRate.IsNegative() || p.VATRate.GreaterThan(types.NewMoney(100)) {
		return apperror.NewValidation("vat rate must be between 0 and 100").
			WithDetail("field", "vatRate")
	}

	return nil
}
