// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somod-gif/cartwave-backend/internal/core"
)

type fakeRepo struct {
	byEmail map[string]*User
}

func (f *fakeRepo) Create(_ context.Context, u *User) error {
	if _, exists := f.byEmail[u.Email]; exists {
		return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
	}
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (f *fakeRepo) UpdatePassword(
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

func (f *fakeRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	for _, u := range f.byEmail {
		if u.ID == id {
			u.Status = StatusSuspended
			return nil
		}
	}
	return fmt.Errorf("soft delete user: %w", core.ErrNotFound)
}

func TestCreateNormalizesEmail(t *testing.T) {
	svc := NewService(&fakeRepo{byEmail: map[string]*User{}})

	created, err := svc.Create(
		context.Background(),
		"Owner@Example.COM",
		"hash",
		"Ada",
		"Lovelace",
		RoleBusinessOwner,
	)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", created.Email)
	assert.Equal(t, StatusActive, created.Status)
}

func TestCreateRejectsUnknownRole(t *testing.T) {
	svc := NewService(&fakeRepo{byEmail: map[string]*User{}})

	_, err := svc.Create(
		context.Background(),
		"owner@example.com",
		"hash",
		"Ada",
		"Lovelace",
		"WIZARD",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestLoadByUsername(t *testing.T) {
	account := &User{
		ID:     uuid.New(),
		Email:  "owner@example.com",
		Role:   RoleBusinessOwner,
		Status: StatusActive,
	}
	repo := &fakeRepo{byEmail: map[string]*User{account.Email: account}}
	svc := NewService(repo)

	t.Run("active account", func(t *testing.T) {
		principal, err := svc.LoadByUsername(
			context.Background(),
			strings.ToUpper(account.Email),
		)
		require.NoError(t, err)
		assert.Equal(t, account.ID, principal.ID)
		assert.Equal(t, RoleBusinessOwner, principal.Role)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := svc.LoadByUsername(context.Background(), "ghost@example.com")
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("suspended account", func(t *testing.T) {
		account.Status = StatusSuspended
		defer func() { account.Status = StatusActive }()

		_, err := svc.LoadByUsername(context.Background(), account.Email)
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrUnauthorized)
	})
}
