package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/domain"
)

type memUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*domain.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.nextID++
	user.ID = "user-" + strconv.Itoa(r.nextID)
	r.byEmail[user.Email] = user
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	r.byEmail[user.Email] = user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (r *memUserRepo) Count(context.Context) (int64, error) {
	return int64(len(r.byEmail)), nil
}

type memStaffRepo struct {
	byEmail map[string]*domain.StaffMember
	nextID  int
}

func newMemStaffRepo() *memStaffRepo {
	return &memStaffRepo{byEmail: map[string]*domain.StaffMember{}}
}

func (r *memStaffRepo) Create(_ context.Context, staff *domain.StaffMember) error {
	r.nextID++
	staff.ID = "staff-" + strconv.Itoa(r.nextID)
	r.byEmail[staff.Email] = staff
	return nil
}

func (r *memStaffRepo) GetByID(_ context.Context, id string) (*domain.StaffMember, error) {
	for _, staff := range r.byEmail {
		if staff.ID == id {
			return staff, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memStaffRepo) GetByEmail(_ context.Context, email string) (*domain.StaffMember, error) {
	staff, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return staff, nil
}

func testAuthConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			CustomerJWTSecret:     "customer-secret",
			AdminJWTSecret:        "admin-secret",
			CallCentreJWTSecret:   "callcentre-secret",
			AccessTokenTTLMinutes: 15,
			BcryptCost:            4,
		},
	}
}

func TestRegisterAndLoginUser(t *testing.T) {
	users := newMemUserRepo()
	svc := NewAuthService(testAuthConfig(), AuthDependencies{UserRepo: users, StaffRepo: newMemStaffRepo()})

	user, token, _, err := svc.RegisterUser(context.Background(), "Asha", "asha@example.com", "5550100", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "hunter2", user.PasswordHash)

	_, _, _, err = svc.RegisterUser(context.Background(), "Asha Again", "asha@example.com", "", "other")
	require.Error(t, err)

	loggedIn, loginToken, _, err := svc.LoginUser(context.Background(), "asha@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := svc.Tokens().Customer.ParseToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.SubjectID)

	_, _, _, err = svc.LoginUser(context.Background(), "asha@example.com", "wrong")
	require.Error(t, err)
}

func TestLoginStaffRoleAndAudience(t *testing.T) {
	staff := newMemStaffRepo()
	svc := NewAuthService(testAuthConfig(), AuthDependencies{UserRepo: newMemUserRepo(), StaffRepo: staff})

	cfg := config.AuthConfig{
		BootstrapAdminEmail:         "admin@example.com",
		BootstrapAdminPassword:      "admin-pass",
		BootstrapCallCentreEmail:    "cc@example.com",
		BootstrapCallCentrePassword: "cc-pass",
	}
	require.NoError(t, svc.EnsureBootstrapStaff(context.Background(), cfg, zap.NewNop()))
	assert.Len(t, staff.byEmail, 2)

	// Seeding is idempotent across reboots.
	require.NoError(t, svc.EnsureBootstrapStaff(context.Background(), cfg, zap.NewNop()))
	assert.Len(t, staff.byEmail, 2)

	admin, adminToken, _, err := svc.LoginStaff(context.Background(), "admin@example.com", "admin-pass", domain.StaffRoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.StaffRoleAdmin, admin.Role)

	// Admin token parses only at the admin gate.
	_, err = svc.Tokens().Admin.ParseToken(adminToken)
	require.NoError(t, err)
	_, err = svc.Tokens().CallCentre.ParseToken(adminToken)
	require.Error(t, err)
	_, err = svc.Tokens().Customer.ParseToken(adminToken)
	require.Error(t, err)

	// The admin account cannot log in through the call-centre flow.
	_, _, _, err = svc.LoginStaff(context.Background(), "admin@example.com", "admin-pass", domain.StaffRoleCallCentre)
	require.Error(t, err)

	_, _, _, err = svc.LoginStaff(context.Background(), "cc@example.com", "cc-pass", domain.StaffRoleCallCentre)
	require.NoError(t, err)
}

func TestUpdateProfileAndPolicies(t *testing.T) {
	users := newMemUserRepo()
	svc := NewAuthService(testAuthConfig(), AuthDependencies{UserRepo: users, StaffRepo: newMemStaffRepo()})

	user, _, _, err := svc.RegisterUser(context.Background(), "Asha", "asha@example.com", "5550100", "hunter2")
	require.NoError(t, err)
	assert.False(t, user.PoliciesAccepted)

	updated, err := svc.UpdateProfile(context.Background(), user, "Asha V", "")
	require.NoError(t, err)
	assert.Equal(t, "Asha V", updated.Name)
	assert.Equal(t, "5550100", updated.Phone)

	require.NoError(t, svc.AcceptPolicies(context.Background(), user))
	assert.True(t, users.byEmail["asha@example.com"].PoliciesAccepted)
}
