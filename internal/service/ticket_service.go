package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicketInput describes a ticket creation payload.
type CreateTicketInput struct {
	Category        domain.TicketCategory
	Description     string
	Priority        domain.TicketPriority
	Status          domain.TicketStatus
	ResolutionNotes string
}

// UpdateTicketInput carries optional ticket mutations; nil fields are left
// untouched.
type UpdateTicketInput struct {
	Category        *domain.TicketCategory
	Description     *string
	Status          *domain.TicketStatus
	Priority        *domain.TicketPriority
	AssigneeID      *string
	ResolutionNotes *string
}

// Create files a ticket. The requester is the authenticated caller, never
// client input.
func (s *TicketService) Create(ctx context.Context, requester *domain.User, input CreateTicketInput) (*domain.Ticket, error) {
	if !domain.ValidCategory(input.Category) {
		return nil, apperrors.NewValidationError("invalid category", nil)
	}
	if input.Status == "" {
		input.Status = domain.TicketStatusOpen
	}
	if !domain.ValidStatus(input.Status) {
		return nil, apperrors.NewValidationError("invalid status", nil)
	}
	if input.Priority == "" {
		input.Priority = domain.TicketPriorityMedium
	}
	if !domain.ValidPriority(input.Priority) {
		return nil, apperrors.NewValidationError("invalid priority", nil)
	}

	ticket := &domain.Ticket{
		ID:              uuid.NewString(),
		RequesterID:     requester.ID,
		Category:        input.Category,
		Status:          input.Status,
		Priority:        input.Priority,
		Description:     strings.TrimSpace(input.Description),
		ResolutionNotes: input.ResolutionNotes,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:        domain.EventCreateTicket,
		ActorID:     requester.ID,
		Description: fmt.Sprintf("User %s created ticket %s", requester.Email, ticket.ID),
		Metadata: map[string]any{
			"ticket_id": ticket.ID,
			"category":  ticket.Category,
			"priority":  ticket.Priority,
		},
	})
	return ticket, nil
}

// List returns tickets visible to the caller: everything for roles with the
// view-all capability, otherwise tickets where the caller is requester or
// assignee.
func (s *TicketService) List(ctx context.Context, caller *domain.User) ([]domain.Ticket, error) {
	var (
		tickets []domain.Ticket
		err     error
	)
	if domain.CapabilitiesFor(caller.Role).ViewAllTickets {
		tickets, err = s.tickets.ListAll(ctx)
	} else {
		tickets, err = s.tickets.ListForUser(ctx, caller.ID)
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// ListAll returns every non-deleted ticket.
func (s *TicketService) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// Update merges the provided fields into the ticket. Any in-enum status is
// accepted, including backwards moves. An assignee must be an active staff
// user. Emits an update event so the requester can be notified.
func (s *TicketService) Update(ctx context.Context, actor *domain.User, ticketID string, input UpdateTicketInput) (*domain.Ticket, error) {
	ticket, err := s.getActive(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if input.Category != nil {
		if !domain.ValidCategory(*input.Category) {
			return nil, apperrors.NewValidationError("invalid category", nil)
		}
		ticket.Category = *input.Category
	}
	if input.Status != nil {
		if !domain.ValidStatus(*input.Status) {
			return nil, apperrors.NewValidationError("invalid status", nil)
		}
		ticket.Status = *input.Status
	}
	if input.Priority != nil {
		if !domain.ValidPriority(*input.Priority) {
			return nil, apperrors.NewValidationError("invalid priority", nil)
		}
		ticket.Priority = *input.Priority
	}
	if input.Description != nil {
		ticket.Description = strings.TrimSpace(*input.Description)
	}
	if input.ResolutionNotes != nil {
		ticket.ResolutionNotes = *input.ResolutionNotes
	}
	if input.AssigneeID != nil {
		if err := s.validateAssignee(ctx, *input.AssigneeID); err != nil {
			return nil, err
		}
		ticket.AssigneeID = input.AssigneeID
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, apperrors.MapError(err)
	}

	meta := events.TicketUpdatedMeta{
		TicketID:  ticket.ID,
		Status:    ticket.Status,
		UpdatedBy: actor.Email,
	}
	if requester, err := s.users.GetByID(ctx, ticket.RequesterID); err == nil {
		meta.RequesterEmail = requester.Email
		meta.NotifyRequester = requester.IsNotificationActive
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:        domain.EventUpdateTicket,
		ActorID:     actor.ID,
		Description: fmt.Sprintf("User %s updated ticket %s", actor.Email, ticket.ID),
		Metadata: map[string]any{
			"ticket_id": ticket.ID,
			"status":    ticket.Status,
		},
		Payload: meta,
	})
	return ticket, nil
}

// Delete soft-deletes a ticket. Re-deleting an already-deleted ticket is a
// conflict, not a silent success.
func (s *TicketService) Delete(ctx context.Context, actor *domain.User, ticketID string) error {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", nil)
		}
		return apperrors.MapError(err)
	}
	if ticket.IsDeleted {
		return apperrors.NewConflict("ticket is already deleted", nil)
	}

	if err := s.tickets.SoftDelete(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewConflict("ticket is already deleted", nil)
		}
		return apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:        domain.EventDeleteTicket,
		ActorID:     actor.ID,
		Description: fmt.Sprintf("User %s deleted ticket %s", actor.Email, ticketID),
		Metadata:    map[string]any{"ticket_id": ticketID},
	})
	return nil
}

func (s *TicketService) getActive(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if ticket.IsDeleted {
		return nil, apperrors.NewNotFound("ticket", nil)
	}
	return ticket, nil
}

func (s *TicketService) validateAssignee(ctx context.Context, assigneeID string) error {
	assignee, err := s.users.GetByID(ctx, assigneeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError("assignee does not exist", nil)
		}
		return apperrors.MapError(err)
	}
	if assignee.Role != domain.RoleStaff {
		return apperrors.NewValidationError("assignee must be a staff user", nil)
	}
	if !assignee.IsActive {
		return apperrors.NewValidationError("assignee is not active", nil)
	}
	return nil
}
