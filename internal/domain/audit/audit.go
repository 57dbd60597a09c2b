// Package audit defines the audit trail contract for business operations.
// The persistent implementation lives in infrastructure/storage/postgres.
package audit

import (
	"context"

	"varotra/internal/core/id"
)

// Action represents the type of audited operation.
type Action string

const (
	ActionCreate       Action = "create"
	ActionUpdate       Action = "update"
	ActionDeactivate   Action = "deactivate"
	ActionStatusChange Action = "status_change"
)

// Recorder records audit entries. Called inside the same transaction
// as the change it describes, so an entry never outlives a rollback.
type Recorder interface {
	Record(ctx context.Context, entityType string, entityID id.ID, action Action, changes map[string]any) error
}

// NopRecorder discards all entries. Used in tests.
type NopRecorder struct{}

func (NopRecorder) Record(ctx context.Context, entityType string, entityID id.ID, action Action, changes map[string]any) error {
	return nil
}

var _ Recorder = NopRecorder{}
