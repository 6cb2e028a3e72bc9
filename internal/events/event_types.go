package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLeadCreated       EventType = "lead_created"
	EventUserStatusChanged EventType = "user_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   *int64      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// LeadCreatedPayload payload.
type LeadCreatedPayload struct {
	LeadID  int64   `json:"lead_id"`
	Name    string  `json:"nombre"`
	Email   string  `json:"email"`
	Phone   string  `json:"telefono"`
	Subject *string `json:"asunto,omitempty"`
}

// UserStatusChangedPayload payload.
type UserStatusChangedPayload struct {
	UserID int64 `json:"user_id"`
	Active bool  `json:"activo"`
}
