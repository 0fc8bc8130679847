package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a dashboard push message (call progress, campaign events).
// Nothing is persisted; the hub fans these out to connected dashboard sockets.
type Notification struct {
	ID        uuid.UUID              `json:"id"`
	TypeCode  string                 `json:"type_code"` // e.g. "CALL_STATUS", "CAMPAIGN_SENT"
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
