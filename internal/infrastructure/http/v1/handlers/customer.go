package handlers

import (
	"faktura/internal/domain/catalogs/customer"
	"faktura/internal/infrastructure/http/v1/dto"
)

// Type alias keeps handler signatures readable.
type CustomerHTTPHandler = CatalogHandler[
	*customer.Customer,
	dto.CreateCustomerRequest,
	dto.UpdateCustomerRequest,
]

// NewCustomerHandler wires the generic catalog handler for customers.
func NewCustomerHandler(base *BaseHandler, service *customer.Service) *CustomerHTTPHandler {
	config := CatalogHandlerConfig[
		*customer.Customer,
		dto.CreateCustomerRequest,
		dto.UpdateCustomerRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "customer",

		MapCreate: func(req dto.CreateCustomerRequest, ownerID string) *customer.Customer {
			c := customer.New(ownerID, req.Code, req.Name)
			c.TaxID = req.TaxID
			c.Email = req.Email
			c.Phone = req.Phone
			c.Company = req.Company
			c.Address = req.Address
			c.Notes = req.Notes
			return c
		},

		ApplyUpdate: func(req dto.UpdateCustomerRequest, existing *customer.Customer) *customer.Customer {
			if req.Code != nil {
				existing.Code = *req.Code
			}
			if req.Name != nil {
				existing.Name = *req.Name
			}
			if req.TaxID != nil {
				existing.TaxID = *req.TaxID
			}
			if req.Email != nil {
				existing.Email = *req.Email
			}
			if req.Phone != nil {
				existing.Phone = *req.Phone
			}
			if req.Company != nil {
				existing.Company = *req.Company
			}
			if req.Address != nil {
				existing.Address = *req.Address
			}
			if req.Notes != nil {
				existing.Notes = *req.Notes
			}
			existing.SetVersion(req.Version)
			return existing
		},
	}

	return NewCatalogHandler(base, config)
}
