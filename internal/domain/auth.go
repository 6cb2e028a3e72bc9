package domain

import "time"

// SessionClaims is the identity carried inside a signed token.
type SessionClaims struct {
	UserID    int64
	Email     string
	Role      Role
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
