// AngelaMos | 2026
// entity.go

package store

import (
	"time"

	"github.com/google/uuid"
)

// Store is the tenant root. Every tenant-scoped row carries its id, and
// every query over those rows must filter by the current tenant.
type Store struct {
	ID           uuid.UUID  `db:"id"`
	Name         string     `db:"name"`
	Slug         string     `db:"slug"`
	Description  string     `db:"description"`
	Country      string     `db:"country"`
	Currency     string     `db:"currency"`
	OwnerID      uuid.UUID  `db:"owner_id"`
	CustomDomain string     `db:"custom_domain"`
	IsActive     bool       `db:"is_active"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

func (s *Store) IsDeleted() bool {
	return s.DeletedAt != nil
}
