// AngelaMos | 2026
// entity.go

package subscription

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionPlan is immutable reference data created at bootstrap and
// looked up by name. A limit of 0 means unlimited.
type SubscriptionPlan struct {
	ID                  uuid.UUID  `db:"id"`
	Name                string     `db:"name"`
	Description         string     `db:"description"`
	ProductLimit        int        `db:"product_limit"`
	StaffLimit          int        `db:"staff_limit"`
	PaymentsEnabled     bool       `db:"payments_enabled"`
	CustomDomainEnabled bool       `db:"custom_domain_enabled"`
	PriceCents          int64      `db:"price_cents"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
	DeletedAt           *time.Time `db:"deleted_at"`
}

const (
	StatusActive   = "ACTIVE"
	StatusPastDue  = "PAST_DUE"
	StatusCanceled = "CANCELED"
	StatusExpired  = "EXPIRED"
)

const FallbackPlanName = "FREE"

// Subscription links a store to exactly one plan at a time. Rows are never
// hard-deleted; plan changes and renewals update them in place.
type Subscription struct {
	ID           uuid.UUID  `db:"id"`
	StoreID      uuid.UUID  `db:"store_id"`
	PlanName     string     `db:"plan_name"`
	Status       string     `db:"status"`
	StartDate    *time.Time `db:"start_date"`
	EndDate      *time.Time `db:"end_date"`
	RenewalDate  *time.Time `db:"renewal_date"`
	AmountCents  int64      `db:"amount_cents"`
	BillingCycle string     `db:"billing_cycle"`
	AutoRenewal  bool       `db:"auto_renewal"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive && s.DeletedAt == nil
}

const (
	FeaturePayments     = "payments"
	FeatureCustomDomain = "custom_domain"
)
