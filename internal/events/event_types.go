package events

import (
	"time"

	"github.com/spec-kit/notes-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventNoteCreated EventType = "note_created"
	EventNoteDeleted EventType = "note_deleted"
	EventPlanChanged EventType = "plan_changed"
)

// Event represents a domain event emitted by services. Actor fields come from
// the request's verified principal, never from the request body.
type Event struct {
	Type      EventType   `json:"type"`
	TenantID  string      `json:"tenant_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NoteCreatedPayload payload.
type NoteCreatedPayload struct {
	NoteID string `json:"note_id"`
	Title  string `json:"title"`
}

// NoteDeletedPayload payload.
type NoteDeletedPayload struct {
	NoteID string `json:"note_id"`
}

// PlanChangedPayload payload.
type PlanChangedPayload struct {
	OldPlan domain.Plan `json:"old_plan"`
	NewPlan domain.Plan `json:"new_plan"`
}
