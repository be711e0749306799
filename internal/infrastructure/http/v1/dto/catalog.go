package dto

import (
	"faktura/internal/core/types"
)

// --- Customer ---

// CreateCustomerRequest for creating customers.
type CreateCustomerRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name" binding:"required"`
	TaxID   string `json:"taxId"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// UpdateCustomerRequest for updating customers. Balance is absent on
// purpose; it moves only through ledger propagation.
type UpdateCustomerRequest struct {
	Code    *string `json:"code"`
	Name    *string `json:"name"`
	TaxID   *string `json:"taxId"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
	Version int     `json:"version" binding:"required,min=1"`
}

// --- Supplier ---

// CreateSupplierRequest for creating suppliers.
type CreateSupplierRequest struct {
	Code          string `json:"code"`
	Name          string `json:"name" binding:"required"`
	TaxID         string `json:"taxId"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	ContactPerson string `json:"contactPerson"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

// UpdateSupplierRequest for updating suppliers.
type UpdateSupplierRequest struct {
	Code          *string `json:"code"`
	Name          *string `json:"name"`
	TaxID         *string `json:"taxId"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	ContactPerson *string `json:"contactPerson"`
	Address       *string `json:"address"`
	Notes         *string `json:"notes"`
	Version       int     `json:"version" binding:"required,min=1"`
}

// --- Product ---

// CreateProductRequest for creating products.
type CreateProductRequest struct {
	Code        string       `json:"code"`
	Name        string       `json:"name" binding:"required"`
	Description string       `json:"description"`
	Unit        string       `json:"unit" binding:"required"`
	Price       types.Money  `json:"price"`
	VATRate     types.Money  `json:"vatRate"`
	TrackStock  *bool        `json:"trackStock"`
}

// UpdateProductRequest for updating products.
type UpdateProductRequest struct {
	Code        *string      `json:"code"`
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	Unit        *string      `json:"unit"`
	Price       *types.Money `json:"price"`
	VATRate     *types.Money `json:"vatRate"`
	TrackStock  *bool        `json:"trackStock"`
	Version     int          `json:"version" binding:"required,min=1"`
}

// --- Account ---

// CreateAccountRequest for creating money accounts.
type CreateAccountRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name" binding:"required"`
	AccountType string `json:"accountType" binding:"required"`
	IBAN        string `json:"iban"`
	Currency    string `json:"currency" binding:"required"`
}

// UpdateAccountRequest for updating accounts. Balance is absent on
// purpose; it moves only through payment propagation.
type UpdateAccountRequest struct {
	Code        *string `json:"code"`
	Name        *string `json:"name"`
	AccountType *string `json:"accountType"`
	IBAN        *string `json:"iban"`
	Currency    *string `json:"currency"`
	Version     int     `json:"version" binding:"required,min=1"`
}
