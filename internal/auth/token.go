package auth

import (
	"errors"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/huevos-organicos/backend/internal/domain"
)

// TokenTTL is the fixed lifetime of an issued token.
const TokenTTL = 24 * time.Hour

// ErrMissingSecret is returned when the signing secret is empty.
var ErrMissingSecret = errors.New("jwt signing secret is required")

// InvalidReason explains why a token failed verification.
type InvalidReason string

const (
	ReasonNone         InvalidReason = ""
	ReasonMalformed    InvalidReason = "malformed"
	ReasonBadSignature InvalidReason = "bad_signature"
	ReasonExpired      InvalidReason = "expired"
)

// Claims describes the JWT payload.
type Claims struct {
	UserID int64       `json:"userId"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"rol"`
	jwt.RegisteredClaims
}

// VerifyResult is the outcome of Verify: either valid claims or a reason.
type VerifyResult struct {
	Claims domain.SessionClaims
	Reason InvalidReason
}

// Valid reports whether the token was accepted.
func (r VerifyResult) Valid() bool {
	return r.Reason == ReasonNone
}

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a new manager. The secret is required.
func NewTokenManager(secret string) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &TokenManager{secret: []byte(secret), ttl: TokenTTL, now: time.Now}, nil
}

// WithClock replaces the time source.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	clone := *tm
	clone.now = now
	return &clone
}

// Issue builds and signs a token for the account.
func (tm *TokenManager) Issue(userID int64, email string, role domain.Role) (string, time.Time, error) {
	issuedAt := tm.now()
	expiresAt := issuedAt.Add(tm.ttl)
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, claims.ExpiresAt.Time, nil
}

// Verify checks signature then expiry. A token evaluated at exactly its
// expiry second is expired.
func (tm *TokenManager) Verify(tokenStr string) VerifyResult {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return VerifyResult{Reason: classify(err)}
	}
	if !parsed.Valid || claims.UserID <= 0 {
		return VerifyResult{Reason: ReasonMalformed}
	}

	session := domain.SessionClaims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Role:      claims.Role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	return VerifyResult{Claims: session}
}

func classify(err error) InvalidReason {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ReasonBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ReasonExpired
	default:
		return ReasonMalformed
	}
}
