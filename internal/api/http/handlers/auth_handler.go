package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/api/dto"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/service"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// AuthHandler serves registration, login, and token verification.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Register POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := ValidateRequest(req); err != nil {
		return err
	}

	result, err := h.service.Register(c.UserContext(), service.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Address:     req.Address,
		State:       req.State,
		Country:     req.Country,
		UserDetails: req.UserDetails,
		Role:        domain.Role(req.Role),
		CompanyName: req.CompanyName,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"user":      dto.NewUserResponse(result.User),
		"profile":   dto.NewProfileResponse(result.Profile),
		"company":   dto.NewCompanyResponse(result.Company),
		"token":     result.Token,
		"expiresAt": result.ExpiresAt,
	})
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := ValidateRequest(req); err != nil {
		return err
	}

	user, profile, token, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    dto.NewUserResponse(user),
		"profile": dto.NewProfileResponse(profile),
		"token":   token,
	})
}

// VerifyToken POST /auth/verify-token.
func (h *AuthHandler) VerifyToken(c *fiber.Ctx) error {
	var req struct {
		Token string `json:"token" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := ValidateRequest(req); err != nil {
		return err
	}

	user, profile, err := h.service.VerifyToken(c.UserContext(), req.Token)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    dto.NewUserResponse(user),
		"profile": dto.NewProfileResponse(profile),
		"token":   req.Token,
	})
}
