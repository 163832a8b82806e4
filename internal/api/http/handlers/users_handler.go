package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/api/dto"
	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/service"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// UsersHandler serves profile, dashboard, and user administration endpoints.
type UsersHandler struct {
	users     *service.UserService
	dashboard *service.DashboardService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService, dashboardService *service.DashboardService) *UsersHandler {
	return &UsersHandler{users: userService, dashboard: dashboardService}
}

// Dashboard GET /user.
func (h *UsersHandler) Dashboard(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	data, err := h.dashboard.Overview(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":       true,
		"dashboardData": data,
	})
}

// GetProfile GET /user/profile.
func (h *UsersHandler) GetProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	profile, err := h.users.GetProfile(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"userProfile": dto.NewProfileResponse(profile),
	})
}

// UpdateProfile PUT /user/profile.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := ValidateRequest(req); err != nil {
		return err
	}

	user, profile, err := h.users.UpdateProfile(c.UserContext(), principal, profileInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"user":        dto.NewUserResponse(user),
		"userProfile": dto.NewProfileResponse(profile),
	})
}

// ListUsers GET /user/all?userRole=...
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	role := c.Query("userRole")
	if role == "" {
		return apperrors.NewValidationError("userRole query parameter is required", nil)
	}
	listings, err := h.users.ListByRole(c.UserContext(), domain.Role(role))
	if err != nil {
		return err
	}
	items := make([]dto.UserListingResponse, 0, len(listings))
	for _, l := range listings {
		items = append(items, dto.NewUserListingResponse(l))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(items),
		"users":   items,
	})
}

// AddUser POST /user.
func (h *UsersHandler) AddUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.AddUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := ValidateRequest(req); err != nil {
		return err
	}

	user, profile, err := h.users.AddUser(c.UserContext(), principal, service.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Address:     req.Address,
		State:       req.State,
		Country:     req.Country,
		UserDetails: req.UserDetails,
		Role:        domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"user":        dto.NewUserResponse(user),
		"userProfile": dto.NewProfileResponse(profile),
	})
}

// UpdateUser PUT /user/:userId.
func (h *UsersHandler) UpdateUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := ValidateRequest(req); err != nil {
		return err
	}

	user, profile, err := h.users.UpdateUser(c.UserContext(), principal, c.Params("userId"), profileInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"user":        dto.NewUserResponse(user),
		"userProfile": dto.NewProfileResponse(profile),
	})
}

// DeleteUser DELETE /user/:userId.
func (h *UsersHandler) DeleteUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	if err := h.users.DeleteUser(c.UserContext(), principal, c.Params("userId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

func profileInput(req dto.UpdateProfileRequest) service.UpdateProfileInput {
	input := service.UpdateProfileInput{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		IsNotificationActive: req.IsNotificationActive,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		input.Role = &role
	}
	return input
}
