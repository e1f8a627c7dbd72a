// AngelaMos | 2026
// service.go

package staff

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/somod-gif/cartwave-backend/internal/core"
	"github.com/somod-gif/cartwave-backend/internal/subscription"
	"github.com/somod-gif/cartwave-backend/internal/tenant"
)

type Service struct {
	db   *sqlx.DB
	repo Repository
	subs *subscription.Service
}

func NewService(
	db *sqlx.DB,
	repo Repository,
	subs *subscription.Service,
) *Service {
	return &Service{db: db, repo: repo, subs: subs}
}

// AddMember enrolls a user as staff of the current store. Like product
// creation, the seat-limit check runs against the live count inside a
// serializable transaction.
func (s *Service) AddMember(
	ctx context.Context,
	req AddMemberRequest,
) (*Member, error) {
	storeID, err := tenant.ID(ctx)
	if err != nil {
		return nil, err
	}

	if !ValidRole(req.Role) {
		return nil, fmt.Errorf(
			"add staff member: invalid role %q: %w",
			req.Role,
			core.ErrInvalidInput,
		)
	}

	member := &Member{
		ID:      uuid.New(),
		StoreID: storeID,
		UserID:  req.UserID,
		Role:    req.Role,
		Status:  StatusActive,
	}

	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}
	err = core.InTxWithOptions(ctx, s.db, opts, func(tx *sqlx.Tx) error {
		txRepo := NewRepository(tx)

		current, countErr := txRepo.CountByStoreID(ctx, storeID)
		if countErr != nil {
			return countErr
		}

		if gateErr := s.subs.AssertCanAddStaff(
			ctx, storeID, current, 1,
		); gateErr != nil {
			return gateErr
		}

		return txRepo.Create(ctx, member)
	})
	if err != nil {
		return nil, err
	}

	return member, nil
}

func (s *Service) List(ctx context.Context) ([]Member, error) {
	storeID, err := tenant.ID(ctx)
	if err != nil {
		return nil, err
	}

	return s.repo.ListByStoreID(ctx, storeID)
}

func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	storeID, err := tenant.ID(ctx)
	if err != nil {
		return err
	}

	return s.repo.SoftDelete(ctx, storeID, id)
}
