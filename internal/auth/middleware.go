package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/huevos-organicos/backend/internal/domain"
	"github.com/huevos-organicos/backend/internal/observability"
	"github.com/huevos-organicos/backend/internal/persistence"
	apperrors "github.com/huevos-organicos/backend/pkg/util"
)

const principalKey = "auth_principal"

// Gate rejection reasons, as logged and counted.
const (
	rejectMissingToken = "missing_token"
	rejectInactiveUser = "inactive_user"
	rejectStoreError   = "store_error"
)

// ActiveUserFinder re-reads an account, returning persistence.ErrNoRows when
// it is missing or inactive.
type ActiveUserFinder interface {
	FindActiveByID(ctx context.Context, id int64) (*domain.User, error)
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens  *TokenManager
	users   ActiveUserFinder
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users ActiveUserFinder, logger *zap.Logger, metrics *observability.Metrics) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, users: users, logger: logger, metrics: metrics}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		m.reject(c, rejectMissingToken)
		return apperrors.NewUnauthorized("Token requerido")
	}

	res := m.tokens.Verify(token)
	if !res.Valid() {
		m.reject(c, string(res.Reason))
		return apperrors.NewForbidden("Token inválido o expirado")
	}

	// The token alone does not prove the account is still active.
	user, err := m.users.FindActiveByID(c.UserContext(), res.Claims.UserID)
	if err != nil {
		if errors.Is(err, persistence.ErrNoRows) {
			m.reject(c, rejectInactiveUser, zap.Int64("user_id", res.Claims.UserID))
			return apperrors.NewUnauthorized("Usuario no válido o inactivo")
		}
		m.reject(c, rejectStoreError, zap.Error(err))
		return apperrors.NewInternalError(err)
	}

	c.Locals(principalKey, user.Identity())
	return c.Next()
}

func (m *AuthMiddleware) reject(c *fiber.Ctx, reason string, fields ...zap.Field) {
	m.metrics.RecordGateRejection(reason)
	fields = append(fields, zap.String("reason", reason), zap.String("path", c.Path()))
	m.logger.Info("authentication rejected", fields...)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// PrincipalFromContext retrieves the authenticated identity.
func PrincipalFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	principal, ok := c.Locals(principalKey).(domain.Identity)
	return principal, ok
}
