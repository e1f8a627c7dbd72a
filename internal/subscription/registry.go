// AngelaMos | 2026
// registry.go

package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// PlanRegistry holds an immutable snapshot of all subscription plans, loaded
// at startup. Plans change only through administrative writes, so lookups
// are plain unsynchronized reads against the current snapshot; Reload swaps
// in a fresh one.
type PlanRegistry struct {
	repo  Repository
	plans atomic.Pointer[map[string]SubscriptionPlan]
}

func NewPlanRegistry(
	ctx context.Context,
	repo Repository,
) (*PlanRegistry, error) {
	r := &PlanRegistry{repo: repo}
	if err := r.Reload(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *PlanRegistry) Reload(ctx context.Context) error {
	plans, err := r.repo.ListPlans(ctx)
	if err != nil {
		return fmt.Errorf("reload plan registry: %w", err)
	}

	snapshot := make(map[string]SubscriptionPlan, len(plans))
	for _, plan := range plans {
		snapshot[plan.Name] = plan
	}

	r.plans.Store(&snapshot)
	slog.Info("plan registry loaded", "plans", len(snapshot))

	return nil
}

func (r *PlanRegistry) FindByName(name string) (*SubscriptionPlan, bool) {
	snapshot := r.plans.Load()
	if snapshot == nil {
		return nil, false
	}

	plan, ok := (*snapshot)[name]
	if !ok {
		return nil, false
	}

	return &plan, true
}

func (r *PlanRegistry) Len() int {
	snapshot := r.plans.Load()
	if snapshot == nil {
		return 0
	}
	return len(*snapshot)
}
