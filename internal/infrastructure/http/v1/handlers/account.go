package handlers

import (
	"faktura/internal/domain/catalogs/account"
	"faktura/internal/infrastructure/http/v1/dto"
)

type AccountHTTPHandler = CatalogHandler[
	*account.Account,
	dto.CreateAccountRequest,
	dto.UpdateAccountRequest,
]

// NewAccountHandler wires the generic catalog handler for money accounts.
func NewAccountHandler(base *BaseHandler, service *account.Service) *AccountHTTPHandler {
	config := CatalogHandlerConfig[
		*account.Account,
		dto.CreateAccountRequest,
		dto.UpdateAccountRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "account",

		MapCreate: func(req dto.CreateAccountRequest, ownerID string) *account.Account {
			a := account.New(ownerID, req.Code, req.Name, account.Type(req.AccountType), req.Currency)
			a.IBAN = req.IBAN
			return a
		},

		ApplyUpdate: func(req dto.UpdateAccountRequest, existing *account.Account) *account.Account {
			if req.Code != nil {
				existing.Code = *req.Code
			}
			if req.Name != nil {
				existing.Name = *req.Name
			}
			if req.AccountType != nil {
				existing.Type = account.Type(*req.AccountType)
			}
			if req.IBAN != nil {
				existing.IBAN = *req.IBAN
			}
			if req.Currency != nil {
				existing.Currency = *req.Currency
			}
			existing.SetVersion(req.Version)
			return existing
		},
	}

	return NewCatalogHandler(base, config)
}
