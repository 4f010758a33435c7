package models

import (
	"time"

	"github.com/google/uuid"
)

// BasketLine is one product entry in a basket. UnitPriceCents is the
// price snapshotted when the product first entered the basket and never
// changes afterwards.
type BasketLine struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BasketID       uuid.UUID `gorm:"column:basket_id;type:uuid;not null;uniqueIndex:idx_basket_product"`
	ProductID      uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_basket_product"`
	Quantity       int       `gorm:"column:quantity;not null"`
	UnitPriceCents int       `gorm:"column:unit_price_cents;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
