// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/somod-gif/cartwave-backend/internal/core"
	"github.com/somod-gif/cartwave-backend/internal/middleware"
	"github.com/somod-gif/cartwave-backend/internal/store"
	"github.com/somod-gif/cartwave-backend/internal/user"
)

// StoreResolver maps an account to the store it owns, for stamping the store
// claim into issued tokens.
type StoreResolver interface {
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) (*store.Store, error)
}

type Service struct {
	users  *user.Service
	stores StoreResolver
	tokens *TokenService
}

func NewService(
	users *user.Service,
	stores StoreResolver,
	tokens *TokenService,
) *Service {
	return &Service{users: users, stores: stores, tokens: tokens}
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*AuthResponse, error) {
	role := req.Role
	if role == "" {
		role = user.RoleCustomer
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	created, err := s.users.Create(
		ctx,
		req.Email,
		passwordHash,
		req.FirstName,
		req.LastName,
		role,
	)
	if err != nil {
		return nil, err
	}

	return s.issuePair(ctx, created)
}

// Login authenticates with a constant-time password check, so a missing
// account costs the same as a wrong password.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	account, lookupErr := s.users.GetByEmail(ctx, req.Email)

	var hashPtr *string
	if lookupErr == nil {
		hashPtr = &account.PasswordHash
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(req.Password, hashPtr)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if lookupErr != nil || !valid {
		return nil, fmt.Errorf("login: invalid credentials: %w", core.ErrUnauthorized)
	}

	if !account.IsActive() {
		return nil, fmt.Errorf(
			"login: account %s is not active: %w",
			account.ID,
			core.ErrUnauthorized,
		)
	}

	if newHash != "" {
		if updateErr := s.users.UpdatePassword(
			ctx, account.ID, newHash,
		); updateErr != nil {
			slog.Warn("password rehash persist failed",
				"user_id", account.ID,
				"error", updateErr,
			)
		}
	}

	return s.issuePair(ctx, account)
}

// Refresh exchanges a valid refresh token for a fresh pair. Access tokens are
// rejected here; the type split keeps a leaked short-lived access token from
// minting long-lived credentials.
func (s *Service) Refresh(
	ctx context.Context,
	refreshToken string,
) (*AuthResponse, error) {
	tokenType, err := s.tokens.TokenType(refreshToken)
	if err != nil {
		return nil, err
	}
	if tokenType != middleware.TokenTypeRefresh {
		return nil, fmt.Errorf(
			"refresh: token is not a refresh token: %w",
			core.ErrUnauthorized,
		)
	}

	claims, err := s.tokens.ExtractClaims(refreshToken)
	if err != nil {
		return nil, err
	}

	// Re-read the account so bans and deletions since issuance take effect.
	account, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", core.ErrUnauthorized)
	}
	if !account.IsActive() {
		return nil, fmt.Errorf(
			"refresh: account %s is not active: %w",
			account.ID,
			core.ErrUnauthorized,
		)
	}

	return s.issuePair(ctx, account)
}

func (s *Service) issuePair(
	ctx context.Context,
	account *user.User,
) (*AuthResponse, error) {
	storeID := s.resolveOwnedStore(ctx, account.ID)

	claims := middleware.Claims{
		UserID:  account.ID,
		Email:   account.Email,
		Role:    account.Role,
		StoreID: storeID,
	}

	accessToken, err := s.tokens.IssueAccessToken(claims)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokens.IssueRefreshToken(claims)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		UserID:  account.ID,
		Email:   account.Email,
		Role:    account.Role,
		StoreID: storeID,
		Tokens: TokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			TokenType:    "Bearer",
			ExpiresIn:    int64(s.tokens.config.AccessTokenExpire.Seconds()),
		},
	}, nil
}

func (s *Service) resolveOwnedStore(
	ctx context.Context,
	ownerID uuid.UUID,
) uuid.UUID {
	owned, err := s.stores.FindByOwnerID(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			slog.Warn("owned store lookup failed", "error", err)
		}
		return uuid.Nil
	}
	return owned.ID
}
