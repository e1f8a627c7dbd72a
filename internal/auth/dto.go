// AngelaMos | 2026
// dto.go

package auth

import (
	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email     string `json:"email"      validate:"required,email,max=255"`
	Password  string `json:"password"   validate:"required,min=12,max=128"`
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name"  validate:"required,min=1,max=100"`
	Role      string `json:"role"       validate:"omitempty,oneof=BUSINESS_OWNER CUSTOMER"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type AuthResponse struct {
	UserID  uuid.UUID     `json:"user_id"`
	Email   string        `json:"email"`
	Role    string        `json:"role"`
	StoreID uuid.UUID     `json:"store_id"`
	Tokens  TokenResponse `json:"tokens"`
}

type MeResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions,omitempty"`
	StoreID     uuid.UUID `json:"store_id,omitempty"`
}
