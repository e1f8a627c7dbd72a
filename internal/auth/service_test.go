// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somod-gif/cartwave-backend/internal/config"
	"github.com/somod-gif/cartwave-backend/internal/core"
	"github.com/somod-gif/cartwave-backend/internal/store"
	"github.com/somod-gif/cartwave-backend/internal/user"
)

type fakeUserRepo struct {
	byEmail map[string]*user.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	if _, exists := f.byEmail[u.Email]; exists {
		return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
	}
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByID(
	_ context.Context,
	id uuid.UUID,
) (*user.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (f *fakeUserRepo) GetByEmail(
	_ context.Context,
	email string,
) (*user.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (f *fakeUserRepo) UpdatePassword(
	_ context.Context,
	id uuid.UUID,
	passwordHash string,
) error {
	for _, u := range f.byEmail {
		if u.ID == id {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return fmt.Errorf("update password: %w", core.ErrNotFound)
}

func (f *fakeUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	return fmt.Errorf("soft delete user: %w", core.ErrNotFound)
}

type fakeStoreResolver struct {
	byOwner map[uuid.UUID]*store.Store
}

func (f *fakeStoreResolver) FindByOwnerID(
	_ context.Context,
	ownerID uuid.UUID,
) (*store.Store, error) {
	if s, ok := f.byOwner[ownerID]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("find store by owner: %w", core.ErrNotFound)
}

type authServiceFixture struct {
	svc      *Service
	tokens   *TokenService
	userRepo *fakeUserRepo
	stores   *fakeStoreResolver
	account  *user.User
	password string
	storeID  uuid.UUID
}

func newServiceFixture(t *testing.T) *authServiceFixture {
	t.Helper()

	password := "correct-horse-battery-staple"
	hash, err := core.HashPassword(password)
	require.NoError(t, err)

	account := &user.User{
		ID:           uuid.New(),
		Email:        "owner@example.com",
		PasswordHash: hash,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Role:         user.RoleBusinessOwner,
		Status:       user.StatusActive,
	}

	userRepo := &fakeUserRepo{
		byEmail: map[string]*user.User{account.Email: account},
	}

	storeID := uuid.New()
	stores := &fakeStoreResolver{
		byOwner: map[uuid.UUID]*store.Store{
			account.ID: {ID: storeID, OwnerID: account.ID},
		},
	}

	tokens, err := NewTokenService(config.JWTConfig{
		Secret:             "0123456789abcdef0123456789abcdef",
		AccessTokenExpire:  15 * time.Minute,
		RefreshTokenExpire: 7 * 24 * time.Hour,
	})
	require.NoError(t, err)

	return &authServiceFixture{
		svc:      NewService(user.NewService(userRepo), stores, tokens),
		tokens:   tokens,
		userRepo: userRepo,
		stores:   stores,
		account:  account,
		password: password,
		storeID:  storeID,
	}
}

func TestLogin(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		resp, err := f.svc.Login(ctx, LoginRequest{
			Email:    f.account.Email,
			Password: f.password,
		})
		require.NoError(t, err)

		assert.Equal(t, f.account.ID, resp.UserID)
		assert.Equal(t, f.storeID, resp.StoreID)
		assert.NotEmpty(t, resp.Tokens.AccessToken)
		assert.NotEmpty(t, resp.Tokens.RefreshToken)
		assert.Equal(t, "Bearer", resp.Tokens.TokenType)

		claims, err := f.tokens.ExtractClaims(resp.Tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, f.account.ID, claims.UserID)
		assert.Equal(t, f.storeID, claims.StoreID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.svc.Login(ctx, LoginRequest{
			Email:    f.account.Email,
			Password: "nope",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.svc.Login(ctx, LoginRequest{
			Email:    "ghost@example.com",
			Password: f.password,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrUnauthorized)
	})

	t.Run("suspended account", func(t *testing.T) {
		f.account.Status = user.StatusSuspended
		defer func() { f.account.Status = user.StatusActive }()

		_, err := f.svc.Login(ctx, LoginRequest{
			Email:    f.account.Email,
			Password: f.password,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrUnauthorized)
	})
}

func TestLoginWithoutOwnedStore(t *testing.T) {
	f := newServiceFixture(t)
	delete(f.stores.byOwner, f.account.ID)

	resp, err := f.svc.Login(context.Background(), LoginRequest{
		Email:    f.account.Email,
		Password: f.password,
	})
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, resp.StoreID)

	claims, err := f.tokens.ExtractClaims(resp.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, claims.StoreID)
}

func TestRegister(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	t.Run("defaults to customer role", func(t *testing.T) {
		resp, err := f.svc.Register(ctx, RegisterRequest{
			Email:     "new@example.com",
			Password:  "another-long-password",
			FirstName: "Grace",
			LastName:  "Hopper",
		})
		require.NoError(t, err)
		assert.Equal(t, user.RoleCustomer, resp.Role)
		assert.NotEmpty(t, resp.Tokens.AccessToken)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := f.svc.Register(ctx, RegisterRequest{
			Email:     f.account.Email,
			Password:  "another-long-password",
			FirstName: "Ada",
			LastName:  "Lovelace",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrDuplicateKey)
	})
}

func TestRefresh(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	login, err := f.svc.Login(ctx, LoginRequest{
		Email:    f.account.Email,
		Password: f.password,
	})
	require.NoError(t, err)

	t.Run("exchanges refresh token for a new pair", func(t *testing.T) {
		resp, err := f.svc.Refresh(ctx, login.Tokens.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Tokens.AccessToken)
		assert.NotEmpty(t, resp.Tokens.RefreshToken)
		assert.Equal(t, f.account.ID, resp.UserID)
	})

	t.Run("rejects access token", func(t *testing.T) {
		_, err := f.svc.Refresh(ctx, login.Tokens.AccessToken)
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrUnauthorized)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := f.svc.Refresh(ctx, "not.a.token")
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrUnauthorized)
	})

	t.Run("rejects suspended account", func(t *testing.T) {
		f.account.Status = user.StatusSuspended
		defer func() { f.account.Status = user.StatusActive }()

		_, err := f.svc.Refresh(ctx, login.Tokens.RefreshToken)
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrUnauthorized)
	})
}
