// Package identity provides sign-in, sign-out and the bootstrap admin account.
package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/identity"
	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/moldshop/erp/internal/infrastructure/auth"
	"github.com/moldshop/erp/internal/infrastructure/config"
	"go.uber.org/zap"
)

// errInvalidCredentials is returned for both unknown users and wrong
// passwords so the response does not reveal which one failed.
var errInvalidCredentials = shared.NewDomainError(shared.CodeUnauthorized, "Invalid username or password")

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	hasher     identity.PasswordHasher
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	hasher identity.PasswordHasher,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		hasher:     hasher,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Login verifies the credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("login for unknown user", zap.String("username", req.Username))
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(user.PasswordHash, req.Password) {
		s.logger.Warn("login with wrong password", zap.String("username", user.Username))
		return nil, errInvalidCredentials
	}

	token, err := s.jwtService.Generate(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}
	s.logger.Info("user logged in", zap.String("username", user.Username), zap.String("user_id", user.ID.String()))
	return &LoginResponse{Token: token, User: ToUserResponse(user)}, nil
}

// Me returns the signed-in user
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// Logout revokes the token until it would have expired anyway
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	return s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL())
}

// EnsureDefaultAdmin creates the configured admin account when it does not
// exist yet. It reports whether an account was created.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, cfg config.AuthConfig) (bool, error) {
	_, err := s.userRepo.FindByUsername(ctx, cfg.AdminUsername)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return false, err
	}

	hash, err := s.hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return false, err
	}
	fullName := cfg.AdminFullName
	if fullName == "" {
		fullName = "System Administrator"
	}
	user, err := identity.NewUser(cfg.AdminUsername, hash, fullName, identity.RoleAdmin, cfg.AdminEmail)
	if err != nil {
		return false, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return false, nil
		}
		return false, err
	}
	s.logger.Info("default admin account created", zap.String("username", user.Username))
	return true, nil
}
