package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/huevos-organicos/backend/internal/auth"
	"github.com/huevos-organicos/backend/internal/config"
	"github.com/huevos-organicos/backend/internal/domain"
	"github.com/huevos-organicos/backend/internal/events"
	"github.com/huevos-organicos/backend/internal/persistence"
	"github.com/huevos-organicos/backend/internal/repository"
	apperrors "github.com/huevos-organicos/backend/pkg/util"
)

var errPasswordTooLong = apperrors.NewValidationError(
	"La contraseña es demasiado larga",
	map[string]any{"password": "password excede el máximo de 72 bytes"},
)

// UserCreateInput carries a new back-office account.
type UserCreateInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// UserService provisions and (de)activates back-office accounts.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger, cfg config.AuthConfig) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{users: users, dispatcher: dispatcher, logger: logger, bcryptCost: cfg.BcryptCost}
}

// List returns every account, newest first.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// Create hashes the password and stores an active account.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	if input.Role == "" {
		input.Role = domain.RoleEmployee
	}
	if !input.Role.Valid() {
		return nil, apperrors.NewValidationError("Rol inválido", map[string]any{"rol": input.Role})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, errPasswordTooLong
		}
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, persistence.ErrDuplicate) {
			return nil, apperrors.NewConflict("El email ya está registrado")
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// SetActive flips the active flag. Tokens already issued to a deactivated
// account stop working on their next request.
func (s *UserService) SetActive(ctx context.Context, actor domain.Identity, id int64, active bool) (*domain.User, error) {
	if !active && actor.ID == id {
		return nil, apperrors.NewValidationError("No puede desactivar su propia cuenta", nil)
	}
	if err := s.users.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, persistence.ErrNoRows) {
			return nil, apperrors.NewNotFound("Usuario no encontrado")
		}
		return nil, apperrors.MapError(err)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		actorID := actor.ID
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserStatusChanged,
			ActorID:   &actorID,
			Timestamp: time.Now(),
			Payload:   events.UserStatusChangedPayload{UserID: id, Active: active},
		})
	}
	return user, nil
}

// EnsureAdmin seeds the bootstrap admin account when its email is absent.
func (s *UserService) EnsureAdmin(ctx context.Context, cfg config.BootstrapConfig) error {
	if !cfg.Enabled() {
		return nil
	}
	hash, err := auth.HashPassword(cfg.AdminPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	admin := &domain.User{
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Active:       true,
	}
	created, err := s.users.CreateIfAbsent(ctx, admin)
	if err != nil {
		return err
	}
	if created {
		s.logger.Info("bootstrap admin created", zap.Int64("user_id", admin.ID), zap.String("email", admin.Email))
	}
	return nil
}
