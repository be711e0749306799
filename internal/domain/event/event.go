// Package event defines the domain event contract. Events are published
// transactionally alongside the business write and delivered later by
// the outbox relay.
package event

import (
	"context"

	"faktura/internal/core/id"
)

// Event types emitted by document operations.
const (
	TypeQuoteStatusChanged = "quote.status_changed"
	TypeInvoiceCreated     = "invoice.created"
	TypeInvoiceDeleted     = "invoice.deleted"
	TypePaymentCreated     = "payment.created"
	TypePaymentDeleted     = "payment.deleted"
)

// Event is a domain event to be delivered to downstream consumers.
type Event struct {
	AggregateType string
	AggregateID   id.ID
	Type          string
	OwnerID       string
	Payload       any
}

// Publisher persists events within the current transaction.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
