package settings

import "context"

// Repository persists per-owner settings.
type Repository interface {
	// Get retrieves the owner's settings. Returns NotFound when the
	// owner has never saved any.
	Get(ctx context.Context, ownerID string) (*Settings, error)

	// Upsert inserts or replaces the owner's settings row.
	Upsert(ctx context.Context, s *Settings) error
}
