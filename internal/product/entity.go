// AngelaMos | 2026
// entity.go

package product

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID            uuid.UUID  `db:"id"`
	StoreID       uuid.UUID  `db:"store_id"`
	Name          string     `db:"name"`
	Description   string     `db:"description"`
	SKU           string     `db:"sku"`
	PriceCents    int64      `db:"price_cents"`
	StockQuantity int        `db:"stock_quantity"`
	IsActive      bool       `db:"is_active"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

func (p *Product) IsDeleted() bool {
	return p.DeletedAt != nil
}
