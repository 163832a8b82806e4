package events

import (
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// Event represents an auditable action emitted by services. Events are
// published after the triggering action succeeds and are consumed on a
// best-effort basis.
type Event struct {
	ID          string           `json:"id"`
	Type        domain.EventType `json:"type"`
	ActorID     string           `json:"actor_id"`
	Description string           `json:"description"`
	Metadata    map[string]any   `json:"metadata,omitempty"`
	Timestamp   time.Time        `json:"timestamp"`

	// Payload carries typed in-process data for subscribers; it is not
	// persisted with the audit entry.
	Payload any `json:"-"`
}

// TicketUpdatedMeta is attached to UPDATE_TICKET events so the notifier can
// email the requester without re-reading state.
type TicketUpdatedMeta struct {
	TicketID        string              `json:"ticket_id"`
	Status          domain.TicketStatus `json:"status"`
	RequesterEmail  string              `json:"requester_email"`
	NotifyRequester bool                `json:"notify_requester"`
	UpdatedBy       string              `json:"updated_by"`
}

// AllEventTypes lists every audit event type, used by subscribers that want
// the full stream.
func AllEventTypes() []domain.EventType {
	return []domain.EventType{
		domain.EventRegistration,
		domain.EventLogin,
		domain.EventUpdateProfile,
		domain.EventCreateTicket,
		domain.EventUpdateTicket,
		domain.EventDeleteTicket,
		domain.EventAdminAddUser,
		domain.EventAdminUpdateUser,
		domain.EventAdminDeleteUser,
	}
}
