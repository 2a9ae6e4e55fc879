package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// UsersHandler exposes customer auth and profile endpoints.
type UsersHandler struct {
	auth      *service.AuthService
	addresses repository.AddressRepository
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, addresses repository.AddressRepository) *UsersHandler {
	return &UsersHandler{auth: authService, addresses: addresses}
}

// Register handles POST /auth/users/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name, email, password required")
	}

	user, token, exp, err := h.auth.RegisterUser(c.Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": userResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and password required")
	}

	user, token, exp, err := h.auth.LoginUser(c.Context(), req.Email, req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": userResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Me handles GET /users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("customer required")
	}
	return c.JSON(fiber.Map{"data": userResponse(principal.User)})
}

// UpdateMe handles PUT /users/me.
func (h *UsersHandler) UpdateMe(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("customer required")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.auth.UpdateProfile(c.Context(), principal.User, req.Name, req.Phone)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// AcceptPolicies handles POST /users/accept-policies.
func (h *UsersHandler) AcceptPolicies(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("customer required")
	}
	if err := h.auth.AcceptPolicies(c.Context(), principal.User); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Policies accepted"})
}

// ListAddresses handles GET /users/addresses.
func (h *UsersHandler) ListAddresses(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("customer required")
	}
	addresses, err := h.addresses.ListByUser(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.AddressResponse, 0, len(addresses))
	for _, addr := range addresses {
		items = append(items, addressResponse(addr))
	}
	return c.JSON(fiber.Map{"data": items})
}

// SaveAddress handles POST /users/addresses.
func (h *UsersHandler) SaveAddress(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("customer required")
	}
	var req dto.SaveAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.FullAddress == "" {
		return apperrors.NewValidationError("fullAddress required", nil)
	}

	address := &domain.SavedAddress{
		UserID:      principal.User.ID,
		HouseNo:     req.HouseNo,
		Street:      req.Street,
		Landmark:    req.Landmark,
		AddressType: req.AddressType,
		FullAddress: req.FullAddress,
	}
	if err := h.addresses.Create(c.Context(), address); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": addressResponse(*address)})
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		Phone:            user.Phone,
		PoliciesAccepted: user.PoliciesAccepted,
		CreatedAt:        user.CreatedAt,
	}
}

func addressResponse(address domain.SavedAddress) dto.AddressResponse {
	return dto.AddressResponse{
		ID:          address.ID,
		HouseNo:     address.HouseNo,
		Street:      address.Street,
		Landmark:    address.Landmark,
		AddressType: address.AddressType,
		FullAddress: address.FullAddress,
		CreatedAt:   address.CreatedAt,
	}
}
