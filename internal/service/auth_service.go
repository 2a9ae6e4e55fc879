package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
)

// AuthService coordinates registration and the three login flows.
type AuthService struct {
	users      repository.UserRepository
	staff      repository.StaffRepository
	tokens     auth.TokenSet
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo  repository.UserRepository
	StaffRepo repository.StaffRepository
}

// NewAuthService builds the service with one token manager per audience.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	ttl := cfg.Auth.AccessTokenTTLMinutes
	return &AuthService{
		users: deps.UserRepo,
		staff: deps.StaffRepo,
		tokens: auth.TokenSet{
			Customer:   auth.NewTokenManager(cfg.Auth.CustomerJWTSecret, ttl, domain.SubjectTypeCustomer),
			Admin:      auth.NewTokenManager(cfg.Auth.AdminJWTSecret, ttl, domain.SubjectTypeAdmin),
			CallCentre: auth.NewTokenManager(cfg.Auth.CallCentreJWTSecret, ttl, domain.SubjectTypeCallCentre),
		},
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterUser creates a new customer account.
func (s *AuthService) RegisterUser(ctx context.Context, name, email, phone, password string) (*domain.User, string, time.Time, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, errors.New("email already registered")
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokens.Customer.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// LoginUser authenticates a customer.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}
	token, exp, err := s.tokens.Customer.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// LoginStaff authenticates a back-office account and issues a token signed
// with the secret of the requested role's audience.
func (s *AuthService) LoginStaff(ctx context.Context, email, password string, role domain.StaffRole) (*domain.StaffMember, string, time.Time, error) {
	staff, err := s.staff.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}
	if staff.Role != role {
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}
	if !staff.Active {
		return nil, "", time.Time{}, errors.New("account disabled")
	}
	if err := auth.ComparePassword(staff.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}

	manager := s.tokens.Admin
	if role == domain.StaffRoleCallCentre {
		manager = s.tokens.CallCentre
	}
	token, exp, err := manager.GenerateToken(staff.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return staff, token, exp, nil
}

// UpdateProfile overwrites the caller's mutable profile fields.
func (s *AuthService) UpdateProfile(ctx context.Context, user *domain.User, name, phone string) (*domain.User, error) {
	if name != "" {
		user.Name = name
	}
	if phone != "" {
		user.Phone = phone
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AcceptPolicies flags the caller as having accepted privacy and terms.
func (s *AuthService) AcceptPolicies(ctx context.Context, user *domain.User) error {
	user.PoliciesAccepted = true
	return s.users.Update(ctx, user)
}

// EnsureBootstrapStaff creates the admin and call-centre accounts named in
// configuration when they do not exist yet. Runs at boot.
func (s *AuthService) EnsureBootstrapStaff(ctx context.Context, cfg config.AuthConfig, logger *zap.Logger) error {
	seeds := []struct {
		email    string
		password string
		role     domain.StaffRole
	}{
		{cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword, domain.StaffRoleAdmin},
		{cfg.BootstrapCallCentreEmail, cfg.BootstrapCallCentrePassword, domain.StaffRoleCallCentre},
	}

	for _, seed := range seeds {
		if seed.email == "" || seed.password == "" {
			continue
		}
		if _, err := s.staff.GetByEmail(ctx, seed.email); err == nil {
			continue
		} else if err != pgx.ErrNoRows {
			return err
		}

		hash, err := auth.HashPassword(seed.password, s.bcryptCost)
		if err != nil {
			return err
		}
		staff := &domain.StaffMember{
			Email:        seed.email,
			PasswordHash: hash,
			Role:         seed.role,
			Active:       true,
		}
		if err := s.staff.Create(ctx, staff); err != nil {
			return err
		}
		logger.Info("bootstrap staff account created",
			zap.String("email", seed.email),
			zap.String("role", string(seed.role)))
	}
	return nil
}

// Tokens exposes the per-audience token managers for middleware usage.
func (s *AuthService) Tokens() auth.TokenSet {
	return s.tokens
}
