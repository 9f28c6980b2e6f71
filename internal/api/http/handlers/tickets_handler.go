package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-system/internal/api/dto"
	"github.com/spec-kit/ticket-system/internal/auth"
	"github.com/spec-kit/ticket-system/internal/domain"
	"github.com/spec-kit/ticket-system/internal/service"
	apperrors "github.com/spec-kit/ticket-system/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service    *service.TicketService
	identities *service.AuthService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService, identities *service.AuthService) *TicketsHandler {
	return &TicketsHandler{service: ticketService, identities: identities}
}

// ListTickets GET /api/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	caller, err := h.caller(c)
	if err != nil {
		return err
	}
	tickets, err := h.service.ListTickets(c.UserContext(), caller)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(items)
}

// CreateTicket POST /api/tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	caller, err := h.caller(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), caller, service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.TicketPriority(req.Priority),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(ticketResponse(ticket))
}

// UpdateTicket PUT /api/tickets/:id.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	caller, err := h.caller(c)
	if err != nil {
		return err
	}
	id, err := ticketID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}

	ticket, err := h.service.UpdateTicket(c.UserContext(), caller, id, ticketPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(ticketResponse(ticket))
}

// DeleteTicket DELETE /api/tickets/:id.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	caller, err := h.caller(c)
	if err != nil {
		return err
	}
	id, err := ticketID(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.DeleteTicket(c.UserContext(), caller, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.DeleteTicketResponse{
		Message: "Ticket deleted successfully",
		Ticket:  ticketResponse(ticket),
	})
}

// caller resolves the role of the token subject. A verified email that no longer
// resolves is an internal inconsistency, not a client error.
func (h *TicketsHandler) caller(c *fiber.Ctx) (domain.Caller, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return domain.Caller{}, apperrors.NewUnauthorized("authentication required")
	}
	user, err := h.identities.Resolve(c.UserContext(), principal.Email)
	if err != nil {
		return domain.Caller{}, apperrors.NewInternalError(fmt.Errorf("resolve %s: %w", principal.Email, err))
	}
	return user.Caller(), nil
}

func ticketID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewNotFound("Ticket", nil)
	}
	return id, nil
}

func ticketPatch(req dto.UpdateTicketRequest) domain.TicketPatch {
	var patch domain.TicketPatch
	if req.Status != nil {
		status := domain.TicketStatus(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TicketPriority(*req.Priority)
		patch.Priority = &priority
	}
	patch.AssignedTo = req.AssignedTo
	return patch
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      string(ticket.Status),
		Priority:    string(ticket.Priority),
		CreatedBy:   ticket.CreatedBy,
		AssignedTo:  ticket.AssignedTo,
		CreatedAt:   ticket.CreatedAt.Format(domain.TimestampLayout),
		UpdatedAt:   ticket.UpdatedAt.Format(domain.TimestampLayout),
	}
}
