package dto

import (
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// CreateTicketRequest files a new ticket. Status and priority fall back to
// "Open" and "Medium" when omitted.
type CreateTicketRequest struct {
	Category        string `json:"category" validate:"required,oneof='Technical Support' 'Billing & Payment' 'General Inquiry' 'Feature Request'"`
	Description     string `json:"description" validate:"required,min=10,max=1000"`
	Priority        string `json:"priority" validate:"omitempty,oneof=Low Medium High Critical"`
	Status          string `json:"status" validate:"omitempty,oneof=Open 'In Progress' Resolved Closed"`
	ResolutionNotes string `json:"resolutionNotes" validate:"omitempty,max=4000"`
}

// UpdateTicketRequest carries optional ticket mutations.
type UpdateTicketRequest struct {
	Category        *string `json:"category" validate:"omitempty,oneof='Technical Support' 'Billing & Payment' 'General Inquiry' 'Feature Request'"`
	Description     *string `json:"description" validate:"omitempty,min=10,max=1000"`
	Status          *string `json:"status" validate:"omitempty,oneof=Open 'In Progress' Resolved Closed"`
	Priority        *string `json:"priority" validate:"omitempty,oneof=Low Medium High Critical"`
	AssigneeID      *string `json:"assignee" validate:"omitempty,uuid4"`
	ResolutionNotes *string `json:"resolutionNotes" validate:"omitempty,max=4000"`
}

// TicketResponse is the public shape of a ticket.
type TicketResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Category        string    `json:"category"`
	Status          string    `json:"status"`
	Priority        string    `json:"priority"`
	Assignee        *string   `json:"assignee,omitempty"`
	Description     string    `json:"description"`
	ResolutionNotes string    `json:"resolutionNotes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// NewTicketResponse maps a domain ticket to its API shape.
func NewTicketResponse(t *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:              t.ID,
		UserID:          t.RequesterID,
		Category:        string(t.Category),
		Status:          string(t.Status),
		Priority:        string(t.Priority),
		Assignee:        t.AssigneeID,
		Description:     t.Description,
		ResolutionNotes: t.ResolutionNotes,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// NewTicketListResponse maps a slice of tickets.
func NewTicketListResponse(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, NewTicketResponse(&tickets[i]))
	}
	return out
}
