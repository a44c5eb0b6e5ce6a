package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pharmacy-service/internal/auth"
	"github.com/spec-kit/pharmacy-service/internal/config"
	"github.com/spec-kit/pharmacy-service/internal/domain"
	"github.com/spec-kit/pharmacy-service/internal/repository/memory"
	apperrors "github.com/spec-kit/pharmacy-service/pkg/util"
)

func testAuthConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "0123456789abcdef0123456789abcdef",
			Issuer:                "pharmacy-service",
			Audience:              "pharmacy-api",
			AccessTokenTTLMinutes: 15,
			BcryptCost:            4,
		},
	}
}

func newTestAuthService() *AuthService {
	store := memory.NewStore()
	return NewAuthService(testAuthConfig(), store.AdminUsers(), store.DoctorUsers())
}

func TestRegisterAndLoginAdmin(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService()

	admin, err := svc.RegisterAdmin(ctx, "alice", "alice@example.com", "correct-horse")
	require.NoError(t, err)
	require.NotEmpty(t, admin.ID)
	assert.NotEqual(t, "correct-horse", admin.PasswordHash)

	logged, token, _, err := svc.LoginAdmin(ctx, "alice", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, logged.ID)

	principal, err := svc.TokenManager().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, principal.SubjectID)
	assert.Equal(t, domain.RoleAdmin, principal.Role)
}

func TestLoginAdminWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService()

	_, err := svc.RegisterAdmin(ctx, "alice", "alice@example.com", "correct-horse")
	require.NoError(t, err)

	_, _, _, err = svc.LoginAdmin(ctx, "alice", "wrong")
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	assert.Equal(t, "invalid credentials", domainErr.Message)
}

func TestLoginAdminUnknownUser(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService()

	// Unknown accounts answer the same way as bad passwords.
	_, _, _, err := svc.LoginAdmin(ctx, "ghost", "whatever")
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	assert.Equal(t, "invalid credentials", domainErr.Message)
}

func TestEnsureBootstrapAdminFirstBoot(t *testing.T) {
	ctx := context.Background()

	cfg := testAuthConfig()
	cfg.Auth.BootstrapAdminUsername = "admin"
	cfg.Auth.BootstrapAdminEmail = "admin@pharmacy.local"
	cfg.Auth.BootstrapAdminPassword = "first-boot-secret"
	store := memory.NewStore()
	svc := NewAuthService(cfg, store.AdminUsers(), store.DoctorUsers())

	// Before seeding, an empty store cannot issue any credential.
	_, _, _, err := svc.LoginAdmin(ctx, "admin", "first-boot-secret")
	require.Error(t, err)

	created, err := svc.EnsureBootstrapAdmin(ctx)
	require.NoError(t, err)
	assert.True(t, created)

	// The seeded account logs in and its token clears the admin policy,
	// which unlocks registration of further accounts.
	_, token, _, err := svc.LoginAdmin(ctx, "admin", "first-boot-secret")
	require.NoError(t, err)
	principal, err := svc.TokenManager().Verify(token)
	require.NoError(t, err)
	require.NoError(t, auth.DefaultPolicies().Authorize(principal, auth.PolicyAdmin))

	// Seeding again is a no-op.
	created, err = svc.EnsureBootstrapAdmin(ctx)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestEnsureBootstrapAdminSkippedWithoutPassword(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService()

	created, err := svc.EnsureBootstrapAdmin(ctx)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestLoginDoctorIssuesDoctorRole(t *testing.T) {
	ctx := context.Background()

	cfg := testAuthConfig()
	store := memory.NewStore()
	svc := NewAuthService(cfg, store.AdminUsers(), store.DoctorUsers())

	hash, err := auth.HashPassword("correct-horse", 4)
	require.NoError(t, err)
	doctor := &domain.DoctorUser{
		Username:      "drbob",
		Email:         "bob@example.com",
		LicenseNumber: "AB-12345",
		PasswordHash:  hash,
	}
	require.NoError(t, store.DoctorUsers().Create(ctx, doctor))

	_, token, _, err := svc.LoginDoctor(ctx, "drbob", "correct-horse")
	require.NoError(t, err)

	principal, err := svc.TokenManager().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleDoctor, principal.Role)
	assert.Equal(t, doctor.ID, principal.SubjectID)
}
