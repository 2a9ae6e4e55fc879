package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// TicketsHandler manages ticket endpoints for customers and support panels.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("customer required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Message) == "" {
		return apperrors.NewValidationError("subject and message required", nil)
	}

	ticket, err := h.service.CreateTicket(c.Context(), principal.User, service.TicketCreateInput{
		Subject:   req.Subject,
		Message:   req.Message,
		IssueType: req.IssueType,
		OrderID:   req.OrderID,
		Name:      req.Name,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket, nil)})
}

// MyTickets GET /tickets.
func (h *TicketsHandler) MyTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("customer required")
	}
	tickets, err := h.service.GetMyTickets(c.Context(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketListResponse(tickets)})
}

// All GET /tickets/all.
func (h *TicketsHandler) All(c *fiber.Ctx) error {
	tickets, err := h.service.GetAllTickets(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i], nil))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	ticket, err := h.service.GetTicket(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket, nil)})
}

// UpdateStatus PATCH /tickets/:id.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Staff == nil {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.UpdateTicketStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.service.UpdateStatus(c.Context(), principal.Staff.ID, c.Params("id"), req.Status, req.Solution); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Ticket updated"})
}

// Delete DELETE /tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.DeleteTicket(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Ticket deleted"})
}

// ByUser GET /tickets/user/:userId.
func (h *TicketsHandler) ByUser(c *fiber.Ctx) error {
	kind := domain.RequesterKind(c.Query("userType"))
	tickets, err := h.service.GetTicketsByRequester(c.Context(), c.Params("userId"), kind)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketListResponse(tickets)})
}

func ticketListResponse(tickets []domain.TicketWithOrder) []dto.TicketResponse {
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i].Ticket, tickets[i].Order))
	}
	return items
}

func ticketResponse(ticket *domain.Ticket, order *domain.Order) dto.TicketResponse {
	resp := dto.TicketResponse{
		ID:            ticket.ID,
		RequesterID:   ticket.RequesterID,
		RequesterKind: ticket.RequesterKind,
		Name:          ticket.Name,
		Email:         ticket.Email,
		Phone:         ticket.Phone,
		Subject:       ticket.Subject,
		Message:       ticket.Message,
		IssueType:     ticket.IssueType,
		Status:        ticket.Status,
		Solution:      ticket.Solution,
		OrderID:       ticket.OrderID,
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
	}
	if order != nil {
		full := orderResponse(order)
		resp.Order = &full
	}
	return resp
}
