package domain

import "time"

// EventType is the closed enumeration of auditable actions.
type EventType string

const (
	EventRegistration    EventType = "REGISTRATION"
	EventLogin           EventType = "LOGIN"
	EventUpdateProfile   EventType = "UPDATE_PROFILE"
	EventCreateTicket    EventType = "CREATE_TICKET"
	EventUpdateTicket    EventType = "UPDATE_TICKET"
	EventDeleteTicket    EventType = "DELETE_TICKET"
	EventAdminAddUser    EventType = "ADMIN_ADD_USER"
	EventAdminUpdateUser EventType = "ADMIN_UPDATE_USER"
	EventAdminDeleteUser EventType = "ADMIN_DELETE_USER"
)

// EventLog is an append-only audit entry. Entries are never updated or deleted.
type EventLog struct {
	ID          string
	UserID      string
	EventType   EventType
	Description string
	Metadata    map[string]any
	CreatedAt   time.Time
}
