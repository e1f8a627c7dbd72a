// AngelaMos | 2026
// service.go

package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/somod-gif/cartwave-backend/internal/core"
	"github.com/somod-gif/cartwave-backend/internal/tenant"
)

// Service resolves a store's plan and enforces the entitlements derived from
// it. The assertion methods are meant to run before the mutating repository
// write, inside the same transaction, so a limit breach never partially
// commits.
type Service struct {
	repo     Repository
	registry *PlanRegistry
}

func NewService(repo Repository, registry *PlanRegistry) *Service {
	return &Service{repo: repo, registry: registry}
}

// ResolvePlan maps a store to its active subscription's plan, falling back
// to the FREE plan for stores with no subscription row. A plan name that is
// missing from the registry is a bootstrap inconsistency.
func (s *Service) ResolvePlan(
	ctx context.Context,
	storeID uuid.UUID,
) (*SubscriptionPlan, error) {
	planName := FallbackPlanName

	sub, err := s.repo.FindByStoreID(ctx, storeID)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("resolve plan: %w", err)
	}
	if err == nil {
		planName = sub.PlanName
	}

	plan, ok := s.registry.FindByName(planName)
	if !ok {
		return nil, fmt.Errorf(
			"resolve plan: plan %q missing from registry: %w",
			planName,
			core.ErrNotFound,
		)
	}

	return plan, nil
}

// ResolvePlanName is the advisory variant used by the rate limiter: lookup
// failures degrade to the fallback plan instead of erroring.
func (s *Service) ResolvePlanName(
	ctx context.Context,
	storeID uuid.UUID,
) string {
	plan, err := s.ResolvePlan(ctx, storeID)
	if err != nil {
		return FallbackPlanName
	}
	return plan.Name
}

// IsFeatureEnabled is fail-closed: unknown feature keys are disabled rather
// than an error.
func (s *Service) IsFeatureEnabled(
	ctx context.Context,
	storeID uuid.UUID,
	featureKey string,
) (bool, error) {
	plan, err := s.ResolvePlan(ctx, storeID)
	if err != nil {
		return false, err
	}

	switch featureKey {
	case FeaturePayments:
		return plan.PaymentsEnabled, nil
	case FeatureCustomDomain:
		return plan.CustomDomainEnabled, nil
	default:
		return false, nil
	}
}

func (s *Service) ProductLimit(
	ctx context.Context,
	storeID uuid.UUID,
) (int, error) {
	plan, err := s.ResolvePlan(ctx, storeID)
	if err != nil {
		return 0, err
	}
	return plan.ProductLimit, nil
}

func (s *Service) StaffLimit(
	ctx context.Context,
	storeID uuid.UUID,
) (int, error) {
	plan, err := s.ResolvePlan(ctx, storeID)
	if err != nil {
		return 0, err
	}
	return plan.StaffLimit, nil
}

// AssertCanCreateProducts fails when creating more products would push the
// store past its plan ceiling. A limit of 0 is unlimited.
func (s *Service) AssertCanCreateProducts(
	ctx context.Context,
	storeID uuid.UUID,
	currentCount, creating int64,
) error {
	limit, err := s.ProductLimit(ctx, storeID)
	if err != nil {
		return err
	}

	return assertWithinLimit("product", limit, currentCount, creating)
}

// AssertCanAddStaff is the staff-count counterpart of
// AssertCanCreateProducts.
func (s *Service) AssertCanAddStaff(
	ctx context.Context,
	storeID uuid.UUID,
	currentCount, adding int64,
) error {
	limit, err := s.StaffLimit(ctx, storeID)
	if err != nil {
		return err
	}

	return assertWithinLimit("staff", limit, currentCount, adding)
}

func assertWithinLimit(
	resource string,
	limit int,
	currentCount, delta int64,
) error {
	if limit <= 0 {
		return nil
	}

	if currentCount+delta > int64(limit) {
		return &core.LimitExceededError{
			Resource: resource,
			Allowed:  limit,
			Current:  currentCount,
		}
	}

	return nil
}

// GetPlanByName reads a plan straight from the table, bypassing the registry
// snapshot. Used by the plan catalog endpoint so newly inserted plans are
// visible before a reload.
func (s *Service) GetPlanByName(
	ctx context.Context,
	name string,
) (*SubscriptionPlan, error) {
	return s.repo.GetPlanByName(ctx, name)
}

// GetForCurrentStore returns the raw subscription row for the request's
// bound tenant.
func (s *Service) GetForCurrentStore(
	ctx context.Context,
) (*Subscription, error) {
	storeID, err := tenant.ID(ctx)
	if err != nil {
		return nil, err
	}

	sub, err := s.repo.FindByStoreID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// ProvisionFree creates the initial FREE subscription for a new store.
func (s *Service) ProvisionFree(
	ctx context.Context,
	db core.DBTX,
	storeID uuid.UUID,
) (*Subscription, error) {
	sub := &Subscription{
		ID:          uuid.New(),
		StoreID:     storeID,
		PlanName:    FallbackPlanName,
		Status:      StatusActive,
		AmountCents: 0,
		AutoRenewal: true,
	}

	if err := NewRepository(db).Create(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}
