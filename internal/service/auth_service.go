package service

import (
	"context"
	"time"

	"github.com/spec-kit/pharmacy-service/internal/auth"
	"github.com/spec-kit/pharmacy-service/internal/config"
	"github.com/spec-kit/pharmacy-service/internal/domain"
	"github.com/spec-kit/pharmacy-service/internal/repository"
	apperrors "github.com/spec-kit/pharmacy-service/pkg/util"
)

// AuthService coordinates registration and login flows for both account
// types and mints their role-bearing tokens.
type AuthService struct {
	admins     repository.AdminUserRepository
	doctors    repository.DoctorUserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	bootstrap  bootstrapAdmin
}

type bootstrapAdmin struct {
	username string
	email    string
	password string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, admins repository.AdminUserRepository, doctors repository.DoctorUserRepository) *AuthService {
	return &AuthService{
		admins:     admins,
		doctors:    doctors,
		tokenMgr:   auth.NewTokenManager(cfg.Auth),
		bcryptCost: cfg.Auth.BcryptCost,
		bootstrap: bootstrapAdmin{
			username: cfg.Auth.BootstrapAdminUsername,
			email:    cfg.Auth.BootstrapAdminEmail,
			password: cfg.Auth.BootstrapAdminPassword,
		},
	}
}

// EnsureBootstrapAdmin seeds the configured admin account when it does not
// exist yet. Registration itself requires an admin token, so a fresh store
// needs this seed before any credential can be issued. Returns whether an
// account was created; a blank configured password skips seeding.
func (s *AuthService) EnsureBootstrapAdmin(ctx context.Context) (bool, error) {
	if s.bootstrap.password == "" {
		return false, nil
	}

	_, err := s.admins.GetByUsername(ctx, s.bootstrap.username)
	if err == nil {
		return false, nil
	}
	if !apperrors.IsNotFound(err) {
		return false, err
	}

	if _, err := s.RegisterAdmin(ctx, s.bootstrap.username, s.bootstrap.email, s.bootstrap.password); err != nil {
		return false, err
	}
	return true, nil
}

// TokenManager exposes the verifier for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// RegisterAdmin creates a new admin account. Duplicate usernames surface as
// Conflict from the repository.
func (s *AuthService) RegisterAdmin(ctx context.Context, username, email, password string) (*domain.AdminUser, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	admin := &domain.AdminUser{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// LoginAdmin authenticates an admin and issues an admin-role token.
func (s *AuthService) LoginAdmin(ctx context.Context, username, password string) (*domain.AdminUser, string, time.Time, error) {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.Issue(admin.ID, domain.RoleAdmin)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return admin, token, exp, nil
}

// LoginDoctor authenticates a doctor and issues a doctor-role token.
func (s *AuthService) LoginDoctor(ctx context.Context, username, password string) (*domain.DoctorUser, string, time.Time, error) {
	doctor, err := s.doctors.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(doctor.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.Issue(doctor.ID, domain.RoleDoctor)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return doctor, token, exp, nil
}
