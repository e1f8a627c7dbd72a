// AngelaMos | 2026
// dto.go

package staff

import (
	"time"

	"github.com/google/uuid"
)

type AddMemberRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Role   string    `json:"role"    validate:"required,oneof=MANAGER CASHIER SUPPORT"`
}

type MemberResponse struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"store_id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func ToMemberResponse(m *Member) MemberResponse {
	return MemberResponse{
		ID:        m.ID,
		StoreID:   m.StoreID,
		UserID:    m.UserID,
		Role:      m.Role,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
	}
}
