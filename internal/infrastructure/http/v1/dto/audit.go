package dto

import (
	"encoding/json"
	"time"
)

// AuditHistoryQuery limits the number of returned audit entries.
type AuditHistoryQuery struct {
	Limit int `form:"limit,default=50" binding:"omitempty,min=1,max=500"`
}

// AuditEntryResponse is one audit log entry.
type AuditEntryResponse struct {
	ID        string          `json:"id"`
	Action    string          `json:"action"`
	Changes   json.RawMessage `json:"changes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// AuditHistoryResponse is the audit trail of one entity, newest first.
type AuditHistoryResponse struct {
	EntityType string               `json:"entityType"`
	EntityID   string               `json:"entityId"`
	Entries    []AuditEntryResponse `json:"entries"`
}
