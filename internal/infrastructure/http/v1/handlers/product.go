package handlers

import (
	"faktura/internal/domain/catalogs/product"
	"faktura/internal/infrastructure/http/v1/dto"
)

type ProductHTTPHandler = CatalogHandler[
	*product.Product,
	dto.CreateProductRequest,
	dto.UpdateProductRequest,
]

// NewProductHandler wires the generic catalog handler for products.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHTTPHandler {
	config := CatalogHandlerConfig[
		*product.Product,
		dto.CreateProductRequest,
		dto.UpdateProductRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "product",

		MapCreate: func(req dto.CreateProductRequest, ownerID string) *product.Product {
			p := product.New(ownerID, req.Code, req.Name, req.Unit)
			p.Description = req.Description
			p.Price = req.Price
			p.VATRate = req.VATRate
			if req.TrackStock != nil {
				p.TrackStock = *req.TrackStock
			}
			return p
		},

		ApplyUpdate: func(req dto.UpdateProductRequest, existing *product.Product) *product.Product {
			if req.Code != nil {
				existing.Code = *req.Code
			}
			if req.Name != nil {
				existing.Name = *req.Name
			}
			if req.Description != nil {
				existing.Description = *req.Description
			}
			if req.Unit != nil {
				existing.Unit = *req.Unit
			}
			if req.Price != nil {
				existing.Price = *req.Price
			}
			if req.VATRate != nil {
				existing.VATRate = *req.VATRate
			}
			if req.TrackStock != nil {
				existing.TrackStock = *req.TrackStock
			}
			existing.SetVersion(req.Version)
			return existing
		},
	}

	return NewCatalogHandler(base, config)
}
