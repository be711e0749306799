// Package quote provides the Quote document: a non-binding price proposal
// sent to a prospective customer. Quotes never touch ledgers; only
// invoices carry financial side effects.
package quote

import (
	"context"
	"time"

	"faktura/internal/core/apperror"
	"faktura/internal/core/entity"
	"faktura/internal/core/id"
	"faktura/internal/core/types"
	"faktura/internal/domain/totals"
)

// Status is the quote lifecycle state.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Quote represents a quote document.
// Customer fields are a snapshot taken at creation time; editing the
// customer catalog later does not change issued quotes. Lines are
// immutable once the quote is created: the only mutation the richer
// schema supports is a status patch.
type Quote struct {
	entity.Document

	// Customer snapshot
	CustomerID      id.ID  `db:"customer_id" json:"customerId"`
	CustomerName    string `db:"customer_name" json:"customerName"`
	CustomerEmail   string `db:"customer_email" json:"customerEmail"`
	CustomerPhone   string `db:"customer_phone" json:"customerPhone,omitempty"`
	CustomerCompany string `db:"customer_company" json:"customerCompany,omitempty"`

	// Discount and VAT configuration
	DiscountType  totals.DiscountType `db:"discount_type" json:"discountType"`
	DiscountValue types.Money         `db:"discount_value" json:"discountValue"`
	VATRate       types.Money         `db:"vat_rate" json:"vatRate"`
	VATMode       totals.VATMode      `db:"vat_mode" json:"vatMode"`

	// Computed totals
	Subtotal       types.Money `db:"subtotal" json:"subtotal"`
	DiscountAmount types.Money `db:"discount_amount" json:"discountAmount"`
	VATAmount      types.Money `db:"vat_amount" json:"vatAmount"`
	Total          types.Money `db:"total" json:"total"`

	// Lifecycle
	Status          Status     `db:"status" json:"status"`
	ApprovedBy      string     `db:"approved_by" json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time `db:"approved_at" json:"approvedAt,omitempty"`
	RejectionReason string     `db:"rejection_reason" json:"rejectionReason,omitempty"`

	// ValidityDate is the date until which the quote holds
	ValidityDate time.Time `db:"validity_date" json:"validityDate"`

	// Table part: quoted items
	Lines []Line `db:"-" json:"lines"`
}

// Line represents a quoted item with a product snapshot.
// The snapshot (name/code/unit) survives later product edits.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID   id.ID  `db:"product_id" json:"productId"`
	ProductName string `db:"product_name" json:"productName"`
	ProductCode string `db:"product_code" json:"productCode,omitempty"`
	Unit        string `db:"unit" json:"unit"`

	Quantity  types.Quantity `db:"quantity" json:"quantity"`
	UnitPrice types.Money    `db:"unit_price" json:"unitPrice"`
	Subtotal  types.Money    `db:"subtotal" json:"subtotal"`
}

// New creates a new draft quote owned by the given user.
func New(ownerID string, customerID id.ID, customerName string) *Quote {
	return &Quote{
		Document:     entity.NewDocument(ownerID),
		CustomerID:   customerID,
		CustomerName: customerName,
		DiscountType: totals.DiscountPercentage,
		VATMode:      totals.VATExcluded,
		Status:       StatusDraft,
		Lines:        make([]Line, 0),
	}
}

// AddLine appends a quoted item. The line subtotal is computed once here
// and trusted afterwards.
func (q *Quote) AddLine(productID id.ID, name, code, unit string, quantity types.Quantity, unitPrice types.Money) {
	q.Lines = append(q.Lines, Line{
		LineID:      id.New(),
		LineNo:      len(q.Lines) + 1,
		ProductID:   productID,
		ProductName: name,
		ProductCode: code,
		Unit:        unit,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Subtotal:    quantity.Mul(unitPrice),
	})
}

// ApplyTotals stores computed totals on the document.
func (q *Quote) ApplyTotals(t totals.QuoteTotals) {
	q.Subtotal = t.Subtotal
	q.DiscountAmount = t.DiscountAmount
	q.VATAmount = t.VATAmount
	q.Total = t.Total
}

// LineSubtotals returns per-line subtotals in line order.
func (q *Quote) LineSubtotals() []types.Money {
	out := make([]types.Money, len(q.Lines))
	for i, l := range q.Lines {
		out[i] = l.Subtotal
	}
	return out
}

// Validate implements entity.Validatable.
func (q *Quote) Validate(ctx context.Context) error {
	if err := q.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(q.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}

	if len(q.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	if q.DiscountType != totals.DiscountPercentage && q.DiscountType != totals.DiscountAmount {
		return apperror.NewValidation("invalid discount type").
			WithDetail("field", "discountType").
			WithDetail("value", string(q.DiscountType))
	}

	if q.VATMode != totals.VATIncluded && q.VATMode != totals.VATExcluded {
		return apperror.NewValidation("invalid vat mode").
			WithDetail("field", "vatMode").
			WithDetail("value", string(q.VATMode))
	}

	if q.VATRate.IsNegative() || q.VATRate.GreaterThan(types.NewMoney(100)) {
		return apperror.NewValidation("vat rate must be between 0 and 100").
			WithDetail("field", "vatRate")
	}

	if !ValidStatus(q.Status) {
		return apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(q.Status))
	}

	for i, line := range q.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity.IsNegative() {
			return apperror.NewValidation("quantity must be non-negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}
