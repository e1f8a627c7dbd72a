// AngelaMos | 2026
// repository.go

package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/somod-gif/cartwave-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, member *Member) error
	GetByID(ctx context.Context, storeID, id uuid.UUID) (*Member, error)
	ListByStoreID(ctx context.Context, storeID uuid.UUID) ([]Member, error)
	CountByStoreID(ctx context.Context, storeID uuid.UUID) (int64, error)
	SoftDelete(ctx context.Context, storeID, id uuid.UUID) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, member *Member) error {
	query := `
		INSERT INTO staff_members (id, store_id, user_id, role, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, member, query,
		member.ID,
		member.StoreID,
		member.UserID,
		member.Role,
		member.Status,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("create staff member: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create staff member: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	storeID, id uuid.UUID,
) (*Member, error) {
	query := `
		SELECT id, store_id, user_id, role, status,
		       created_at, updated_at, deleted_at
		FROM staff_members
		WHERE id = $1 AND store_id = $2 AND deleted_at IS NULL`

	var member Member
	err := r.db.GetContext(ctx, &member, query, id, storeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get staff member: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get staff member: %w", err)
	}

	return &member, nil
}

func (r *repository) ListByStoreID(
	ctx context.Context,
	storeID uuid.UUID,
) ([]Member, error) {
	query := `
		SELECT id, store_id, user_id, role, status,
		       created_at, updated_at, deleted_at
		FROM staff_members
		WHERE store_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC`

	members := []Member{}
	if err := r.db.SelectContext(ctx, &members, query, storeID); err != nil {
		return nil, fmt.Errorf("list staff members: %w", err)
	}

	return members, nil
}

func (r *repository) CountByStoreID(
	ctx context.Context,
	storeID uuid.UUID,
) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM staff_members
		WHERE store_id = $1 AND deleted_at IS NULL`

	var count int64
	if err := r.db.GetContext(ctx, &count, query, storeID); err != nil {
		return 0, fmt.Errorf("count staff members: %w", err)
	}

	return count, nil
}

func (r *repository) SoftDelete(
	ctx context.Context,
	storeID, id uuid.UUID,
) error {
	query := `
		UPDATE staff_members
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND store_id = $2 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, storeID)
	if err != nil {
		return fmt.Errorf("remove staff member: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove staff member: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("remove staff member: %w", core.ErrNotFound)
	}

	return nil
}
