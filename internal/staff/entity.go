// AngelaMos | 2026
// entity.go

package staff

import (
	"time"

	"github.com/google/uuid"
)

// Member links a user account to a store in a staff capacity. The store-level
// role here is independent of the account role carried in the token.
type Member struct {
	ID        uuid.UUID  `db:"id"`
	StoreID   uuid.UUID  `db:"store_id"`
	UserID    uuid.UUID  `db:"user_id"`
	Role      string     `db:"role"`
	Status    string     `db:"status"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

const (
	RoleManager = "MANAGER"
	RoleCashier = "CASHIER"
	RoleSupport = "SUPPORT"
)

const (
	StatusActive   = "ACTIVE"
	StatusInvited  = "INVITED"
	StatusDisabled = "DISABLED"
)

func ValidRole(role string) bool {
	switch role {
	case RoleManager, RoleCashier, RoleSupport:
		return true
	default:
		return false
	}
}
