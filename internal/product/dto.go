// AngelaMos | 2026
// dto.go

package product

import (
	"time"

	"github.com/google/uuid"
)

type CreateProductRequest struct {
	Name          string `json:"name"           validate:"required,min=1,max=255"`
	Description   string `json:"description"    validate:"max=5000"`
	SKU           string `json:"sku"            validate:"max=100"`
	PriceCents    int64  `json:"price_cents"    validate:"min=0"`
	StockQuantity int    `json:"stock_quantity" validate:"min=0"`
}

type UpdateProductRequest struct {
	Name          *string `json:"name,omitempty"           validate:"omitempty,min=1,max=255"`
	Description   *string `json:"description,omitempty"    validate:"omitempty,max=5000"`
	SKU           *string `json:"sku,omitempty"            validate:"omitempty,max=100"`
	PriceCents    *int64  `json:"price_cents,omitempty"    validate:"omitempty,min=0"`
	StockQuantity *int    `json:"stock_quantity,omitempty" validate:"omitempty,min=0"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

type ProductResponse struct {
	ID            uuid.UUID `json:"id"`
	StoreID       uuid.UUID `json:"store_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	SKU           string    `json:"sku,omitempty"`
	PriceCents    int64     `json:"price_cents"`
	StockQuantity int       `json:"stock_quantity"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToProductResponse(p *Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		StoreID:       p.StoreID,
		Name:          p.Name,
		Description:   p.Description,
		SKU:           p.SKU,
		PriceCents:    p.PriceCents,
		StockQuantity: p.StockQuantity,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
}
