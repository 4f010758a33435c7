package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/javiortega/techdepot-backend/pkg/enums"
)

// Order is a committed purchase. Exactly one order exists per closed
// basket; the unique index on BasketID enforces it.
type Order struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID     uuid.UUID            `gorm:"column:customer_id;type:uuid;not null;index"`
	BasketID       uuid.UUID            `gorm:"column:basket_id;type:uuid;not null;uniqueIndex"`
	CardID         uuid.UUID            `gorm:"column:card_id;type:uuid;not null"`
	AddressID      uuid.UUID            `gorm:"column:address_id;type:uuid;not null"`
	DeliveryStatus enums.DeliveryStatus `gorm:"column:delivery_status;not null;default:'not-delivered'"`
	TotalCents     int                  `gorm:"column:total_cents;not null"`
	PlacedAt       time.Time            `gorm:"column:placed_at;not null"`
	Card           *CreditCard          `gorm:"foreignKey:CardID"`
	Address        *ShippingAddress     `gorm:"foreignKey:AddressID"`
	Lines          []OrderLine          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
