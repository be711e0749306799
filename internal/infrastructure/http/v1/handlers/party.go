package handlers

import (
	"context"

	"faktura/internal/core/apperror"
	"faktura/internal/core/id"
	"faktura/internal/domain/catalogs/customer"
	"faktura/internal/domain/catalogs/supplier"
	"faktura/internal/domain/party"
)

// partyResolver loads counterparty snapshots from the matching catalog.
// Shared by the invoice and payment handlers.
type partyResolver struct {
	customers *customer.Service
	suppliers *supplier.Service
}

func (r *partyResolver) resolve(ctx context.Context, ownerID, kindRaw, idRaw string) (party.Ref, error) {
	kind := party.Kind(kindRaw)
	if !party.ValidKind(kind) {
		return party.Ref{}, apperror.NewValidation("invalid partyKind").WithDetail("value", kindRaw)
	}

	partyID, err := id.Parse(idRaw)
	if err != nil {
		return party.Ref{}, apperror.NewValidation("invalid partyId")
	}

	ref := party.Ref{Kind: kind, ID: partyID}
	switch kind {
	case party.KindCustomer:
		cust, err := r.customers.GetByID(ctx, ownerID, partyID)
		if err != nil {
			return party.Ref{}, err
		}
		ref.Name = cust.Name
		ref.TaxID = cust.TaxID
	case party.KindSupplier:
		sup, err := r.suppliers.GetByID(ctx, ownerID, partyID)
		if err != nil {
			return party.Ref{}, err
		}
		ref.Name = sup.Name
		ref.TaxID = sup.TaxID
	}

	return ref, nil
}
