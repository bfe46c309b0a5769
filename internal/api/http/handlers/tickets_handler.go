package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-classifier/internal/api/dto"
	"github.com/spec-kit/ticket-classifier/internal/domain"
	"github.com/spec-kit/ticket-classifier/internal/service"
	apperrors "github.com/spec-kit/ticket-classifier/pkg/util"
)

// IntakeService is the workflow surface the handler depends on.
type IntakeService interface {
	ProcessTicket(ctx context.Context, rawContent string) (*service.IntakeResult, error)
}

// TicketReader serves ticket lookups.
type TicketReader interface {
	GetTicketByID(ctx context.Context, id int64) (*domain.Ticket, *domain.Customer, error)
	ListRecentTickets(ctx context.Context, limit, offset int) ([]domain.Ticket, error)
}

// TicketsHandler manages ticket intake and lookup endpoints.
type TicketsHandler struct {
	intake IntakeService
	reader TicketReader
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(intake IntakeService, reader TicketReader) *TicketsHandler {
	return &TicketsHandler{intake: intake, reader: reader}
}

// SubmitTicket POST /v1/tickets.
func (h *TicketsHandler) SubmitTicket(c *fiber.Ctx) error {
	var req dto.SubmitTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Content) == "" {
		return apperrors.NewValidationError("content required", nil)
	}

	result, err := h.intake.ProcessTicket(c.UserContext(), req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.TicketResponse{
		ID:             result.TicketID,
		CustomerID:     result.CustomerID,
		CustomerEmail:  result.Customer.Email,
		CustomerName:   result.Customer.Name,
		Summary:        result.Processed.Summary,
		Category:       result.Processed.Category,
		Priority:       result.Processed.Priority,
		SentimentScore: result.Processed.SentimentScore,
	}})
}

// GetTicket GET /v1/tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid ticket id", nil)
	}

	ticket, customer, err := h.reader.GetTicketByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	createdAt := ticket.CreatedAt
	return c.JSON(fiber.Map{"data": dto.TicketResponse{
		ID:             ticket.ID,
		CustomerID:     ticket.CustomerID,
		CustomerEmail:  customer.Email,
		CustomerName:   customer.Name,
		Summary:        ticket.Summary,
		Category:       ticket.Category,
		Priority:       ticket.Priority,
		SentimentScore: ticket.SentimentScore,
		CreatedAt:      &createdAt,
	}})
}

// ListTickets GET /v1/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	tickets, err := h.reader.ListRecentTickets(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		createdAt := tickets[i].CreatedAt
		items = append(items, dto.TicketResponse{
			ID:             tickets[i].ID,
			CustomerID:     tickets[i].CustomerID,
			Summary:        tickets[i].Summary,
			Category:       tickets[i].Category,
			Priority:       tickets[i].Priority,
			SentimentScore: tickets[i].SentimentScore,
			CreatedAt:      &createdAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
