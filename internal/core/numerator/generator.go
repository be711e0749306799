// Package numerator provides domain contracts for document auto-numbering.
// Implementations live in pkg/numerator.
package numerator

import (
	"context"
	"time"
)

// Generator generates sequential document numbers.
// This is the domain contract - the database-backed implementation lives
// in pkg/numerator.
//
// Numbers are scoped per owner: two users each start their own series at
// 00001 and never observe each other's counters.
type Generator interface {
	// GetNextNumber generates the next document number for the owner.
	// Pattern: PREFIX-XXXXX or PREFIX-YEAR-XXXXX (e.g., FT-00001,
	// FTR-2026-00001).
	GetNextNumber(ctx context.Context, ownerID string, cfg Config, opts *Options, period time.Time) (string, error)

	// SetNextNumber sets the next number value (for migration purposes).
	SetNextNumber(ctx context.Context, ownerID string, cfg Config, period time.Time, value int64) error
}
