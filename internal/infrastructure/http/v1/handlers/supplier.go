package handlers

import (
	"faktura/internal/domain/catalogs/supplier"
	"faktura/internal/infrastructure/http/v1/dto"
)

type SupplierHTTPHandler = CatalogHandler[
	*supplier.Supplier,
	dto.CreateSupplierRequest,
	dto.UpdateSupplierRequest,
]

// NewSupplierHandler wires the generic catalog handler for suppliers.
func NewSupplierHandler(base *BaseHandler, service *supplier.Service) *SupplierHTTPHandler {
	config := CatalogHandlerConfig[
		*supplier.Supplier,
		dto.CreateSupplierRequest,
		dto.UpdateSupplierRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "supplier",

		MapCreate: func(req dto.CreateSupplierRequest, ownerID string) *supplier.Supplier {
			s := supplier.New(ownerID, req.Code, req.Name)
			s.TaxID = req.TaxID
			s.Email = req.Email
			s.Phone = req.Phone
			s.ContactPerson = req.ContactPerson
			s.Address = req.Address
			s.Notes = req.Notes
			return s
		},

		ApplyUpdate: func(req dto.UpdateSupplierRequest, existing *supplier.Supplier) *supplier.Supplier {
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
			if req.ContactPerson != nil {
				existing.ContactPerson = *req.ContactPerson
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
