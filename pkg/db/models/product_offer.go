package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductOffer is a promotional price tier members can buy at instead of
// the list price.
type ProductOffer struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID       uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex"`
	OfferPriceCents int       `gorm:"column:offer_price_cents;not null"`
	IsActive        bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
