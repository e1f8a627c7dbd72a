// AngelaMos | 2026
// jwt.go

package auth

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/somod-gif/cartwave-backend/internal/config"
	"github.com/somod-gif/cartwave-backend/internal/core"
	"github.com/somod-gif/cartwave-backend/internal/middleware"
)

// TokenService issues and validates HS256-signed tokens carrying user,
// store and role claims. It never touches the request context; binding the
// decoded store claim to a request is the middleware's job.
type TokenService struct {
	key    jwk.Key
	config config.JWTConfig
}

func NewTokenService(cfg config.JWTConfig) (*TokenService, error) {
	key, err := jwk.Import([]byte(cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("import signing key: %w", err)
	}

	if setErr := key.Set(jwk.AlgorithmKey, jwa.HS256()); setErr != nil {
		return nil, fmt.Errorf("set algorithm: %w", setErr)
	}

	return &TokenService{key: key, config: cfg}, nil
}

func (s *TokenService) IssueAccessToken(
	claims middleware.Claims,
) (string, error) {
	return s.issueToken(
		claims,
		s.config.AccessTokenExpire,
		middleware.TokenTypeAccess,
	)
}

func (s *TokenService) IssueRefreshToken(
	claims middleware.Claims,
) (string, error) {
	return s.issueToken(
		claims,
		s.config.RefreshTokenExpire,
		middleware.TokenTypeRefresh,
	)
}

func (s *TokenService) issueToken(
	claims middleware.Claims,
	lifetime time.Duration,
	tokenType middleware.TokenType,
) (string, error) {
	if claims.UserID == uuid.Nil {
		return "", fmt.Errorf("issue token: missing user id: %w", core.ErrInvalidInput)
	}

	now := time.Now()

	builder := jwt.NewBuilder().
		Subject(claims.UserID.String()).
		IssuedAt(now).
		Expiration(now.Add(lifetime)).
		Claim("userId", claims.UserID.String()).
		Claim("email", claims.Email).
		Claim("role", claims.Role).
		Claim("tokenType", string(tokenType))

	// Accounts that do not own a store yet get tokens without a store claim;
	// the request pipeline's single-store fallback may still bind one.
	if claims.StoreID != uuid.Nil {
		builder = builder.Claim("storeId", claims.StoreID.String())
	}

	if len(claims.Permissions) > 0 {
		builder = builder.Claim("permissions", claims.Permissions)
	}

	token, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), s.key))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return string(signed), nil
}

// Validate reports whether the token parses, verifies and has not expired.
// It never returns an error: each failure mode is logged for diagnostics and
// collapses to false for the caller.
func (s *TokenService) Validate(tokenString string) bool {
	_, err := s.parse(tokenString, true)
	if err != nil {
		slog.Debug("token validation failed",
			"reason", classifyTokenError(err),
			"error", err,
		)
		return false
	}
	return true
}

// ExtractClaims fully decodes a verified token. Unlike Validate, a failure
// here is a request-rejecting error.
func (s *TokenService) ExtractClaims(
	tokenString string,
) (*middleware.Claims, error) {
	token, err := s.parse(tokenString, true)
	if err != nil {
		return nil, fmt.Errorf("extract claims: %w", core.ErrUnauthorized)
	}

	return decodeClaims(token), nil
}

// IsExpired probes the expiry of a token whose signature verifies, without
// rejecting it for being expired. Callers use it to tell "expired" apart
// from "invalid".
func (s *TokenService) IsExpired(tokenString string) (bool, error) {
	token, err := s.parse(tokenString, false)
	if err != nil {
		return false, fmt.Errorf("is expired: %w", core.ErrUnauthorized)
	}

	exp, ok := token.Expiration()
	if !ok {
		return false, fmt.Errorf("is expired: missing expiry: %w", core.ErrUnauthorized)
	}

	return time.Now().After(exp), nil
}

// TokenType returns the stored type marker, including for expired tokens.
func (s *TokenService) TokenType(
	tokenString string,
) (middleware.TokenType, error) {
	token, err := s.parse(tokenString, false)
	if err != nil {
		return "", fmt.Errorf("token type: %w", core.ErrUnauthorized)
	}

	var tokenType string
	if err := token.Get("tokenType", &tokenType); err != nil {
		return "", fmt.Errorf("token type: missing claim: %w", core.ErrUnauthorized)
	}

	return middleware.TokenType(tokenType), nil
}

func (s *TokenService) parse(
	tokenString string,
	validate bool,
) (jwt.Token, error) {
	return jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), s.key),
		jwt.WithValidate(validate),
	)
}

func decodeClaims(token jwt.Token) *middleware.Claims {
	claims := &middleware.Claims{
		Permissions: make([]string, 0),
	}

	var userIDStr string
	if err := token.Get("userId", &userIDStr); err != nil {
		userIDStr, _ = token.Subject()
	}
	if id, err := uuid.Parse(userIDStr); err == nil {
		claims.UserID = id
	}

	//nolint:errcheck // optional claims default to zero values
	_ = token.Get("email", &claims.Email)
	//nolint:errcheck // optional claims default to zero values
	_ = token.Get("role", &claims.Role)

	var storeIDStr string
	if err := token.Get("storeId", &storeIDStr); err == nil {
		if id, parseErr := uuid.Parse(storeIDStr); parseErr == nil {
			claims.StoreID = id
		}
	}

	var tokenType string
	if err := token.Get("tokenType", &tokenType); err == nil {
		claims.TokenType = middleware.TokenType(tokenType)
	}

	var rawPerms []any
	if err := token.Get("permissions", &rawPerms); err == nil {
		for _, v := range rawPerms {
			if perm, ok := v.(string); ok {
				claims.Permissions = append(claims.Permissions, perm)
			}
		}
	}

	if iat, ok := token.IssuedAt(); ok {
		claims.IssuedAt = iat
	}
	if exp, ok := token.Expiration(); ok {
		claims.ExpiresAt = exp
	}

	return claims
}

func classifyTokenError(err error) string {
	errStr := err.Error()
	switch {
	case strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied"):
		return "expired"
	case strings.Contains(errStr, "verify"),
		strings.Contains(errStr, "signature"):
		return "signature_mismatch"
	case strings.Contains(errStr, "alg"):
		return "unsupported_algorithm"
	case strings.Contains(errStr, "empty"):
		return "empty_claims"
	default:
		return "malformed"
	}
}

var _ middleware.TokenVerifier = (*TokenService)(nil)
