// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	Role         string     `db:"role"`
	Status       string     `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive && !u.IsDeleted()
}

const (
	RoleSuperAdmin    = "SUPER_ADMIN"
	RoleBusinessOwner = "BUSINESS_OWNER"
	RoleStaff         = "STAFF"
	RoleCustomer      = "CUSTOMER"
)

const (
	StatusActive    = "ACTIVE"
	StatusSuspended = "SUSPENDED"
)

func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleBusinessOwner, RoleStaff, RoleCustomer:
		return true
	}
	return false
}
