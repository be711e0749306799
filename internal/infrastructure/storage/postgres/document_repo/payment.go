package document_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"faktura/internal/domain"
	"faktura/internal/domain/payment"
	"faktura/internal/infrastructure/storage/postgres"
)

const paymentsTable = "doc_payments"

// PaymentRepo implements payment.Repository. Payments have no line
// table; the document row carries everything.
type PaymentRepo struct {
	*BaseDocumentRepo[*payment.Payment]
}

// NewPaymentRepo creates a new payment repository.
func NewPaymentRepo(txManager *postgres.TxManager) *PaymentRepo {
	return &PaymentRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			paymentsTable,
			postgres.ExtractDBColumns[payment.Payment](),
			func() *payment.Payment { return &payment.Payment{} },
		),
	}
}

// List retrieves payments with filtering.
func (r *PaymentRepo) List(ctx context.Context, filter payment.ListFilter) (domain.ListResult[*payment.Payment], error) {
	q := r.filteredSelect(filter.ListFilter)

	if filter.Direction != nil {
		q = q.Where(squirrel.Eq{"direction": *filter.Direction})
	}
	if filter.PartyKind != nil {
		q = q.Where(squirrel.Eq{"party_kind": *filter.PartyKind})
	}
	if filter.PartyID != nil {
		q = q.Where(squirrel.Eq{"party_id": *filter.PartyID})
	}
	if filter.InvoiceID != nil {
		q = q.Where(squirrel.Eq{"invoice_id": *filter.InvoiceID})
	}
	if filter.AccountID != nil {
		q = q.Where(squirrel.Eq{"account_id": *filter.AccountID})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	return r.listWithBuilder(ctx, q, filter.ListFilter)
}
