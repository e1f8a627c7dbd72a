// AngelaMos | 2026
// dto.go

package subscription

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionResponse struct {
	ID           uuid.UUID  `json:"id"`
	StoreID      uuid.UUID  `json:"store_id"`
	PlanName     string     `json:"plan_name"`
	Status       string     `json:"status"`
	AmountCents  int64      `json:"amount_cents"`
	BillingCycle string     `json:"billing_cycle,omitempty"`
	AutoRenewal  bool       `json:"auto_renewal"`
	RenewalDate  *time.Time `json:"renewal_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type PlanResponse struct {
	Name                string `json:"name"`
	Description         string `json:"description,omitempty"`
	ProductLimit        int    `json:"product_limit"`
	StaffLimit          int    `json:"staff_limit"`
	PaymentsEnabled     bool   `json:"payments_enabled"`
	CustomDomainEnabled bool   `json:"custom_domain_enabled"`
	PriceCents          int64  `json:"price_cents"`
}

type FeatureResponse struct {
	Feature string `json:"feature"`
	Enabled bool   `json:"enabled"`
}

func ToSubscriptionResponse(s *Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:           s.ID,
		StoreID:      s.StoreID,
		PlanName:     s.PlanName,
		Status:       s.Status,
		AmountCents:  s.AmountCents,
		BillingCycle: s.BillingCycle,
		AutoRenewal:  s.AutoRenewal,
		RenewalDate:  s.RenewalDate,
		CreatedAt:    s.CreatedAt,
	}
}

func ToPlanResponse(p *SubscriptionPlan) PlanResponse {
	return PlanResponse{
		Name:                p.Name,
		Description:         p.Description,
		ProductLimit:        p.ProductLimit,
		StaffLimit:          p.StaffLimit,
		PaymentsEnabled:     p.PaymentsEnabled,
		CustomDomainEnabled: p.CustomDomainEnabled,
		PriceCents:          p.PriceCents,
	}
}
