// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/somod-gif/cartwave-backend/internal/core"
	"github.com/somod-gif/cartwave-backend/internal/middleware"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(email))
}

func (s *Service) Create(
	ctx context.Context,
	email, passwordHash, firstName, lastName, role string,
) (*User, error) {
	if !ValidRole(role) {
		return nil, fmt.Errorf(
			"create user: invalid role %q: %w",
			role,
			core.ErrInvalidInput,
		)
	}

	u := &User{
		ID:           uuid.New(),
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
		Status:       StatusActive,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	id uuid.UUID,
	passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, id, passwordHash)
}

// LoadByUsername resolves an authenticated principal for the request
// pipeline. Suspended and soft-deleted accounts do not authenticate, which
// is what invalidates tokens minted before a ban or deletion.
func (s *Service) LoadByUsername(
	ctx context.Context,
	username string,
) (*middleware.Principal, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(username))
	if err != nil {
		return nil, err
	}

	if !u.IsActive() {
		return nil, fmt.Errorf(
			"load principal: account %s is not active: %w",
			u.ID,
			core.ErrUnauthorized,
		)
	}

	return &middleware.Principal{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
	}, nil
}

var _ middleware.UserLookup = (*Service)(nil)
