package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/service"
)

// StaffHandler exposes the back-office login endpoints.
type StaffHandler struct {
	auth *service.AuthService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(authService *service.AuthService) *StaffHandler {
	return &StaffHandler{auth: authService}
}

// AdminLogin handles POST /auth/admin/login.
func (h *StaffHandler) AdminLogin(c *fiber.Ctx) error {
	return h.login(c, domain.StaffRoleAdmin)
}

// CallCentreLogin handles POST /auth/callcentre/login.
func (h *StaffHandler) CallCentreLogin(c *fiber.Ctx) error {
	return h.login(c, domain.StaffRoleCallCentre)
}

func (h *StaffHandler) login(c *fiber.Ctx, role domain.StaffRole) error {
	var req dto.StaffLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and password required")
	}

	staff, token, exp, err := h.auth.LoginStaff(c.Context(), req.Email, req.Password, role)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"staff": fiber.Map{
				"id":    staff.ID,
				"email": staff.Email,
				"role":  staff.Role,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}
