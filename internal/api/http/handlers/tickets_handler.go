package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/api/dto"
	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/service"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /ticket.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := ValidateRequest(req); err != nil {
		return err
	}

	ticket, err := h.service.Create(c.UserContext(), principal, service.CreateTicketInput{
		Category:        domain.TicketCategory(req.Category),
		Description:     req.Description,
		Priority:        domain.TicketPriority(req.Priority),
		Status:          domain.TicketStatus(req.Status),
		ResolutionNotes: req.ResolutionNotes,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"ticket":  dto.NewTicketResponse(ticket),
	})
}

// ListTickets GET /ticket.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	tickets, err := h.service.List(c.UserContext(), principal)
	if err != nil {
		return err
	}
	items := dto.NewTicketListResponse(tickets)
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(items),
		"tickets": items,
	})
}

// ListAllTickets GET /ticket/all.
func (h *TicketsHandler) ListAllTickets(c *fiber.Ctx) error {
	tickets, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	items := dto.NewTicketListResponse(tickets)
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(items),
		"tickets": items,
	})
}

// UpdateTicket PUT /ticket/:ticketId.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := ValidateRequest(req); err != nil {
		return err
	}

	input := service.UpdateTicketInput{
		Description:     req.Description,
		AssigneeID:      req.AssigneeID,
		ResolutionNotes: req.ResolutionNotes,
	}
	if req.Category != nil {
		category := domain.TicketCategory(*req.Category)
		input.Category = &category
	}
	if req.Status != nil {
		status := domain.TicketStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TicketPriority(*req.Priority)
		input.Priority = &priority
	}

	ticket, err := h.service.Update(c.UserContext(), principal, c.Params("ticketId"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"ticket":  dto.NewTicketResponse(ticket),
	})
}

// DeleteTicket DELETE /ticket/:ticketId.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	if err := h.service.Delete(c.UserContext(), principal, c.Params("ticketId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
