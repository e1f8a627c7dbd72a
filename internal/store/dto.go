// AngelaMos | 2026
// dto.go

package store

import (
	"time"

	"github.com/google/uuid"
)

type CreateStoreRequest struct {
	Name        string `json:"name"        validate:"required,min=1,max=255"`
	Slug        string `json:"slug"        validate:"required,min=1,max=100,lowercase"`
	Description string `json:"description" validate:"max=2000"`
	Country     string `json:"country"     validate:"max=255"`
	Currency    string `json:"currency"    validate:"max=10"`
}

type UpdateStoreRequest struct {
	Name         *string `json:"name,omitempty"          validate:"omitempty,min=1,max=255"`
	Description  *string `json:"description,omitempty"   validate:"omitempty,max=2000"`
	Country      *string `json:"country,omitempty"       validate:"omitempty,max=255"`
	Currency     *string `json:"currency,omitempty"      validate:"omitempty,max=10"`
	CustomDomain *string `json:"custom_domain,omitempty" validate:"omitempty,fqdn"`
}

type StoreResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	Country      string    `json:"country,omitempty"`
	Currency     string    `json:"currency,omitempty"`
	CustomDomain string    `json:"custom_domain,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToStoreResponse(s *Store) StoreResponse {
	return StoreResponse{
		ID:           s.ID,
		Name:         s.Name,
		Slug:         s.Slug,
		Description:  s.Description,
		Country:      s.Country,
		Currency:     s.Currency,
		CustomDomain: s.CustomDomain,
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt,
	}
}
