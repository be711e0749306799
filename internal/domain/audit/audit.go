// Package audit defines the audit trail contract. Document services
// record entries after their transaction commits; a failed audit write
// never rolls back the business operation.
package audit

import (
	"context"

	"faktura/internal/core/id"
)

// Action is the audited operation kind.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Recorder persists audit entries.
type Recorder interface {
	Record(ctx context.Context, ownerID, entityType string, entityID id.ID, action Action, changes map[string]any) error
}

// NopRecorder discards every entry.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, string, string, id.ID, Action, map[string]any) error {
	return nil
}
