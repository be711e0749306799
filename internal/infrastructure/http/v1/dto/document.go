package dto

import (
	"time"

	"faktura/internal/core/types"
)

// --- Shared line payload ---

// LineRequest is one document line. Product name, code and unit are
// snapshotted server-side from the product catalog.
type LineRequest struct {
	ProductID string         `json:"productId" binding:"required"`
	Quantity  types.Quantity `json:"quantity" binding:"required"`
	UnitPrice *types.Money   `json:"unitPrice"`
	VATRate   *types.Money   `json:"vatRate"`
}

// --- Quote ---

// CreateQuoteRequest for creating quotes.
type CreateQuoteRequest struct {
	CustomerID    string        `json:"customerId" binding:"required"`
	Currency      string        `json:"currency" binding:"required"`
	ValidityDate  time.Time     `json:"validityDate" binding:"required"`
	DiscountType  string        `json:"discountType"`
	DiscountValue types.Money   `json:"discountValue"`
	VATRate       types.Money   `json:"vatRate"`
	VATMode       string        `json:"vatMode"`
	Notes         string        `json:"notes"`
	Lines         []LineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateQuoteStatusRequest patches the quote lifecycle state.
type UpdateQuoteStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// QuoteListQuery filters quote lists.
type QuoteListQuery struct {
	ListQuery
	CustomerID string     `form:"customerId"`
	Status     string     `form:"status"`
	DateFrom   *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo     *time.Time `form:"dateTo" time_format:"2006-01-02"`
}

// --- Invoice ---

// CreateInvoiceRequest for creating invoices.
type CreateInvoiceRequest struct {
	InvoiceType       string        `json:"invoiceType" binding:"required"`
	PartyKind         string        `json:"partyKind" binding:"required"`
	PartyID           string        `json:"partyId" binding:"required"`
	Currency          string        `json:"currency" binding:"required"`
	DiscountAmount    types.Money   `json:"discountAmount"`
	WithholdingAmount types.Money   `json:"withholdingAmount"`
	DueDate           *time.Time    `json:"dueDate"`
	Notes             string        `json:"notes"`
	Lines             []LineRequest `json:"lines" binding:"required,min=1,dive"`
}

// InvoiceListQuery filters invoice lists.
type InvoiceListQuery struct {
	ListQuery
	InvoiceType   string     `form:"invoiceType"`
	PartyKind     string     `form:"partyKind"`
	PartyID       string     `form:"partyId"`
	PaymentStatus string     `form:"paymentStatus"`
	DateFrom      *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo        *time.Time `form:"dateTo" time_format:"2006-01-02"`
}

// --- Payment ---

// CreatePaymentRequest for creating payments.
type CreatePaymentRequest struct {
	Direction string      `json:"direction" binding:"required"`
	Method    string      `json:"method"`
	PartyKind string      `json:"partyKind" binding:"required"`
	PartyID   string      `json:"partyId" binding:"required"`
	InvoiceID *string     `json:"invoiceId"`
	AccountID *string     `json:"accountId"`
	Amount    types.Money `json:"amount" binding:"required"`
	Currency  string      `json:"currency" binding:"required"`
	Reference string      `json:"reference"`
	Notes     string      `json:"notes"`
}

// PaymentListQuery filters payment lists.
type PaymentListQuery struct {
	ListQuery
	Direction string     `form:"direction"`
	PartyKind string     `form:"partyKind"`
	PartyID   string     `form:"partyId"`
	InvoiceID string     `form:"invoiceId"`
	AccountID string     `form:"accountId"`
	DateFrom  *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo    *time.Time `form:"dateTo" time_format:"2006-01-02"`
}
