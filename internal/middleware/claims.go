// AngelaMos | 2026
// claims.go

package middleware

import (
	"time"

	"github.com/google/uuid"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "ACCESS"
	TokenTypeRefresh TokenType = "REFRESH"
)

// Claims is the decoded payload of a signed token. Permissions is never nil
// on extraction; a token without the claim yields an empty list.
type Claims struct {
	UserID      uuid.UUID
	Email       string
	Role        string
	StoreID     uuid.UUID
	TokenType   TokenType
	Permissions []string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

type TokenVerifier interface {
	ExtractClaims(token string) (*Claims, error)
}
