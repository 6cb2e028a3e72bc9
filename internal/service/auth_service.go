package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/huevos-organicos/backend/internal/auth"
	"github.com/huevos-organicos/backend/internal/config"
	"github.com/huevos-organicos/backend/internal/domain"
	"github.com/huevos-organicos/backend/internal/observability"
	"github.com/huevos-organicos/backend/internal/persistence"
	"github.com/huevos-organicos/backend/internal/repository"
	apperrors "github.com/huevos-organicos/backend/pkg/util"
)

var (
	// ErrInvalidCredentials covers unknown email, inactive account and wrong
	// password alike.
	ErrInvalidCredentials = apperrors.NewUnauthorized("Credenciales incorrectas")
	// ErrMissingCredentials is returned before any store access.
	ErrMissingCredentials = apperrors.NewValidationError("Email y contraseña son requeridos", nil)
)

// LoginResult is returned on successful authentication.
type LoginResult struct {
	User      domain.Identity
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates the login flow.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenManager
	metrics   *observability.Metrics
	logger    *zap.Logger
	dummyHash string
}

// AuthDependencies encapsulates collaborators of the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Tokens   *auth.TokenManager
	Metrics  *observability.Metrics
	Logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	// Compared against when the email is unknown so both failure paths pay
	// for one bcrypt comparison.
	dummyHash, _ := auth.HashPassword("not-a-real-password", cfg.BcryptCost)
	return &AuthService{
		users:     deps.UserRepo,
		tokens:    deps.Tokens,
		metrics:   deps.Metrics,
		logger:    logger,
		dummyHash: dummyHash,
	}
}

// Login authenticates an active account and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		s.metrics.RecordLogin("invalid")
		return nil, ErrMissingCredentials
	}

	user, err := s.users.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, persistence.ErrNoRows) {
			_ = auth.ComparePassword(s.dummyHash, password)
			s.metrics.RecordLogin("invalid")
			return nil, ErrInvalidCredentials
		}
		s.metrics.RecordLogin("error")
		return nil, apperrors.NewInternalError(err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.metrics.RecordLogin("invalid")
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		s.metrics.RecordLogin("error")
		return nil, apperrors.NewInternalError(err)
	}

	s.metrics.RecordLogin("success")
	s.logger.Info("login succeeded", zap.Int64("user_id", user.ID), zap.String("rol", string(user.Role)))
	return &LoginResult{User: user.Identity(), Token: token, ExpiresAt: exp}, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}
