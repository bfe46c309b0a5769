package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-classifier/internal/api/dto"
	"github.com/spec-kit/ticket-classifier/internal/auth"
	"github.com/spec-kit/ticket-classifier/internal/config"
	apperrors "github.com/spec-kit/ticket-classifier/pkg/util"
)

// AuthHandler exchanges client credentials for access tokens.
type AuthHandler struct {
	cfg    config.AuthConfig
	tokens *auth.TokenManager
}

// NewAuthHandler constructs handler.
func NewAuthHandler(cfg config.AuthConfig, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{cfg: cfg, tokens: tokens}
}

// Token POST /auth/token.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ClientID == "" || req.ClientSecret == "" {
		return apperrors.NewValidationError("client_id and client_secret required", nil)
	}

	if req.ClientID != h.cfg.ClientID || h.cfg.ClientSecretHash == "" {
		return apperrors.NewUnauthorized("invalid client credentials")
	}
	if err := auth.CompareSecret(h.cfg.ClientSecretHash, req.ClientSecret); err != nil {
		return apperrors.NewUnauthorized("invalid client credentials")
	}

	token, expiresAt, err := h.tokens.GenerateToken(req.ClientID)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"data": dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}})
}
