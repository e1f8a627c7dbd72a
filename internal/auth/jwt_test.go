// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somod-gif/cartwave-backend/internal/config"
	"github.com/somod-gif/cartwave-backend/internal/core"
	"github.com/somod-gif/cartwave-backend/internal/middleware"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestTokenService(t *testing.T, cfg config.JWTConfig) *TokenService {
	t.Helper()

	if cfg.Secret == "" {
		cfg.Secret = testSecret
	}
	if cfg.AccessTokenExpire == 0 {
		cfg.AccessTokenExpire = 15 * time.Minute
	}
	if cfg.RefreshTokenExpire == 0 {
		cfg.RefreshTokenExpire = 7 * 24 * time.Hour
	}

	svc, err := NewTokenService(cfg)
	require.NoError(t, err)
	return svc
}

func TestIssueAndExtractClaims(t *testing.T) {
	svc := newTestTokenService(t, config.JWTConfig{})

	claims := middleware.Claims{
		UserID:      uuid.New(),
		Email:       "owner@example.com",
		Role:        "BUSINESS_OWNER",
		StoreID:     uuid.New(),
		Permissions: []string{"products:write", "staff:write"},
	}

	token, err := svc.IssueAccessToken(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, err := svc.ExtractClaims(token)
	require.NoError(t, err)

	assert.Equal(t, claims.UserID, decoded.UserID)
	assert.Equal(t, claims.Email, decoded.Email)
	assert.Equal(t, claims.Role, decoded.Role)
	assert.Equal(t, claims.StoreID, decoded.StoreID)
	assert.Equal(t, claims.Permissions, decoded.Permissions)
	assert.Equal(t, middleware.TokenTypeAccess, decoded.TokenType)
	assert.False(t, decoded.ExpiresAt.IsZero())
	assert.True(t, decoded.ExpiresAt.After(decoded.IssuedAt))
}

func TestRefreshTokenCarriesRefreshType(t *testing.T) {
	svc := newTestTokenService(t, config.JWTConfig{})

	token, err := svc.IssueRefreshToken(middleware.Claims{
		UserID:  uuid.New(),
		Email:   "owner@example.com",
		Role:    "BUSINESS_OWNER",
		StoreID: uuid.New(),
	})
	require.NoError(t, err)

	tokenType, err := svc.TokenType(token)
	require.NoError(t, err)
	assert.Equal(t, middleware.TokenTypeRefresh, tokenType)

	decoded, err := svc.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, middleware.TokenTypeRefresh, decoded.TokenType)
}

func TestIssueRequiresUserID(t *testing.T) {
	svc := newTestTokenService(t, config.JWTConfig{})

	_, err := svc.IssueAccessToken(middleware.Claims{
		Email:   "nobody@example.com",
		StoreID: uuid.New(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestTokenWithoutStoreClaim(t *testing.T) {
	svc := newTestTokenService(t, config.JWTConfig{})

	token, err := svc.IssueAccessToken(middleware.Claims{
		UserID: uuid.New(),
		Email:  "customer@example.com",
		Role:   "CUSTOMER",
	})
	require.NoError(t, err)

	decoded, err := svc.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, decoded.StoreID)
}

func TestPermissionsNeverNil(t *testing.T) {
	svc := newTestTokenService(t, config.JWTConfig{})

	token, err := svc.IssueAccessToken(middleware.Claims{
		UserID:  uuid.New(),
		Email:   "owner@example.com",
		StoreID: uuid.New(),
	})
	require.NoError(t, err)

	decoded, err := svc.ExtractClaims(token)
	require.NoError(t, err)
	assert.NotNil(t, decoded.Permissions)
	assert.Empty(t, decoded.Permissions)
}

func TestValidate(t *testing.T) {
	svc := newTestTokenService(t, config.JWTConfig{})

	valid, err := svc.IssueAccessToken(middleware.Claims{
		UserID:  uuid.New(),
		Email:   "owner@example.com",
		StoreID: uuid.New(),
	})
	require.NoError(t, err)

	otherSvc := newTestTokenService(t, config.JWTConfig{
		Secret: "ffffffffffffffffffffffffffffffff",
	})
	foreign, err := otherSvc.IssueAccessToken(middleware.Claims{
		UserID:  uuid.New(),
		Email:   "owner@example.com",
		StoreID: uuid.New(),
	})
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		assert.True(t, svc.Validate(valid))
	})

	t.Run("garbage", func(t *testing.T) {
		assert.False(t, svc.Validate("not.a.token"))
	})

	t.Run("empty", func(t *testing.T) {
		assert.False(t, svc.Validate(""))
	})

	t.Run("wrong signing key", func(t *testing.T) {
		assert.False(t, svc.Validate(foreign))
	})
}

func TestExpiredToken(t *testing.T) {
	// A negative lifetime mints tokens that are already expired but
	// correctly signed.
	expiredSvc := newTestTokenService(t, config.JWTConfig{
		AccessTokenExpire: -time.Minute,
	})

	token, err := expiredSvc.IssueAccessToken(middleware.Claims{
		UserID:  uuid.New(),
		Email:   "owner@example.com",
		StoreID: uuid.New(),
	})
	require.NoError(t, err)

	assert.False(t, expiredSvc.Validate(token))

	_, err = expiredSvc.ExtractClaims(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnauthorized)

	// Expiry probing is repeatable and does not consume the token.
	for range 2 {
		expired, probeErr := expiredSvc.IsExpired(token)
		require.NoError(t, probeErr)
		assert.True(t, expired)
	}

	// Type is still readable from an expired token.
	tokenType, err := expiredSvc.TokenType(token)
	require.NoError(t, err)
	assert.Equal(t, middleware.TokenTypeAccess, tokenType)
}

func TestFreshTokenIsNotExpired(t *testing.T) {
	svc := newTestTokenService(t, config.JWTConfig{})

	token, err := svc.IssueAccessToken(middleware.Claims{
		UserID:  uuid.New(),
		Email:   "owner@example.com",
		StoreID: uuid.New(),
	})
	require.NoError(t, err)

	expired, err := svc.IsExpired(token)
	require.NoError(t, err)
	assert.False(t, expired)
}

func TestIsExpiredRejectsForgedToken(t *testing.T) {
	svc := newTestTokenService(t, config.JWTConfig{})

	_, err := svc.IsExpired("not.a.token")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}
