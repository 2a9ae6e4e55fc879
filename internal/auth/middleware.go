package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	SubjectType domain.SubjectType
	User        *domain.User
	Staff       *domain.StaffMember
}

// TokenSet bundles the three per-audience token managers.
type TokenSet struct {
	Customer   *TokenManager
	Admin      *TokenManager
	CallCentre *TokenManager
}

// AuthMiddleware validates bearer tokens and loads principals for the three
// token audiences.
type AuthMiddleware struct {
	tokens TokenSet
	users  repository.UserRepository
	staff  repository.StaffRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens TokenSet, users repository.UserRepository, staff repository.StaffRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, staff: staff}
}

// RequireCustomer gates a route behind the customer token.
func (m *AuthMiddleware) RequireCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := m.parseBearer(c, m.tokens.Customer)
		if err != nil {
			return err
		}
		user, err := m.users.GetByID(c.Context(), claims.SubjectID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewUnauthorized("user not found")
			}
			return apperrors.MapError(err)
		}
		c.Locals(principalKey, &Principal{SubjectType: domain.SubjectTypeCustomer, User: user})
		return c.Next()
	}
}

// RequireAdmin gates a route behind the admin token.
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return m.requireStaff(c, m.tokens.Admin, domain.StaffRoleAdmin, domain.SubjectTypeAdmin)
	}
}

// RequireCallCentre gates a route behind the call-centre token.
func (m *AuthMiddleware) RequireCallCentre() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return m.requireStaff(c, m.tokens.CallCentre, domain.StaffRoleCallCentre, domain.SubjectTypeCallCentre)
	}
}

// RequireSupport accepts either a call-centre or an admin token. The support
// endpoints are shared between the call-centre panel and the back-office.
func (m *AuthMiddleware) RequireSupport() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c)
		if err != nil {
			return err
		}
		if claims, ccErr := m.tokens.CallCentre.ParseToken(token); ccErr == nil {
			return m.loadStaff(c, claims, domain.StaffRoleCallCentre, domain.SubjectTypeCallCentre)
		}
		claims, adminErr := m.tokens.Admin.ParseToken(token)
		if adminErr != nil {
			return apperrors.NewUnauthorized("invalid token")
		}
		return m.loadStaff(c, claims, domain.StaffRoleAdmin, domain.SubjectTypeAdmin)
	}
}

func (m *AuthMiddleware) requireStaff(c *fiber.Ctx, tokens *TokenManager, role domain.StaffRole, subject domain.SubjectType) error {
	claims, err := m.parseBearer(c, tokens)
	if err != nil {
		return err
	}
	return m.loadStaff(c, claims, role, subject)
}

func (m *AuthMiddleware) loadStaff(c *fiber.Ctx, claims *Claims, role domain.StaffRole, subject domain.SubjectType) error {
	staff, err := m.staff.GetByID(c.Context(), claims.SubjectID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("staff not found")
		}
		return apperrors.MapError(err)
	}
	if staff.Role != role {
		return apperrors.NewForbidden("insufficient role")
	}
	if !staff.Active {
		return apperrors.NewForbidden("account disabled")
	}
	c.Locals(principalKey, &Principal{SubjectType: subject, Staff: staff})
	return c.Next()
}

func (m *AuthMiddleware) parseBearer(c *fiber.Ctx, tokens *TokenManager) (*Claims, error) {
	token, err := bearerToken(c)
	if err != nil {
		return nil, err
	}
	claims, err := tokens.ParseToken(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token")
	}
	return claims, nil
}

func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", apperrors.NewUnauthorized("missing authorization header")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperrors.NewUnauthorized("invalid authorization header")
	}
	return parts[1], nil
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
