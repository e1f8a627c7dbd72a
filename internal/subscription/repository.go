// AngelaMos | 2026
// repository.go

package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/somod-gif/cartwave-backend/internal/core"
)

type Repository interface {
	ListPlans(ctx context.Context) ([]SubscriptionPlan, error)
	GetPlanByName(ctx context.Context, name string) (*SubscriptionPlan, error)
	FindByStoreID(
		ctx context.Context,
		storeID uuid.UUID,
	) (*Subscription, error)
	Create(ctx context.Context, sub *Subscription) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) ListPlans(
	ctx context.Context,
) ([]SubscriptionPlan, error) {
	query := `
		SELECT id, name, description, product_limit, staff_limit,
		       payments_enabled, custom_domain_enabled, price_cents,
		       created_at, updated_at, deleted_at
		FROM subscription_plans
		WHERE deleted_at IS NULL
		ORDER BY price_cents ASC`

	var plans []SubscriptionPlan
	if err := r.db.SelectContext(ctx, &plans, query); err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}

	return plans, nil
}

func (r *repository) GetPlanByName(
	ctx context.Context,
	name string,
) (*SubscriptionPlan, error) {
	query := `
		SELECT id, name, description, product_limit, staff_limit,
		       payments_enabled, custom_domain_enabled, price_cents,
		       created_at, updated_at, deleted_at
		FROM subscription_plans
		WHERE name = $1 AND deleted_at IS NULL`

	var plan SubscriptionPlan
	err := r.db.GetContext(ctx, &plan, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get plan %q: %w", name, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan %q: %w", name, err)
	}

	return &plan, nil
}

func (r *repository) FindByStoreID(
	ctx context.Context,
	storeID uuid.UUID,
) (*Subscription, error) {
	query := `
		SELECT id, store_id, plan_name, status, start_date, end_date,
		       renewal_date, amount_cents, billing_cycle, auto_renewal,
		       created_at, updated_at, deleted_at
		FROM subscriptions
		WHERE store_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT 1`

	var sub Subscription
	err := r.db.GetContext(ctx, &sub, query, storeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find subscription: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find subscription: %w", err)
	}

	return &sub, nil
}

func (r *repository) Create(ctx context.Context, sub *Subscription) error {
	query := `
		INSERT INTO subscriptions (
			id, store_id, plan_name, status, amount_cents,
			billing_cycle, auto_renewal
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, sub, query,
		sub.ID,
		sub.StoreID,
		sub.PlanName,
		sub.Status,
		sub.AmountCents,
		sub.BillingCycle,
		sub.AutoRenewal,
	)
	if err != nil {
		return fmt.Errorf("create subscription: %w", err)
	}

	return nil
}
