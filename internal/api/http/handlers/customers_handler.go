package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-classifier/internal/api/dto"
	"github.com/spec-kit/ticket-classifier/internal/domain"
	apperrors "github.com/spec-kit/ticket-classifier/pkg/util"
)

// CustomerReader serves customer lookups.
type CustomerReader interface {
	GetCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error)
}

// CustomersHandler manages customer lookup endpoints.
type CustomersHandler struct {
	reader CustomerReader
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(reader CustomerReader) *CustomersHandler {
	return &CustomersHandler{reader: reader}
}

// GetByEmail GET /v1/customers?email=...
func (h *CustomersHandler) GetByEmail(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return apperrors.NewValidationError("email query parameter required", nil)
	}

	customer, err := h.reader.GetCustomerByEmail(c.UserContext(), email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CustomerResponse{
		ID:        customer.ID,
		Email:     customer.Email,
		Name:      customer.Name,
		CreatedAt: customer.CreatedAt,
	}})
}
