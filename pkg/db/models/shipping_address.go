package models

import (
	"time"

	"github.com/google/uuid"
)

// ShippingAddress is a customer's saved delivery destination, addressed
// by its per-customer label.
type ShippingAddress struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID `gorm:"column:customer_id;type:uuid;not null;uniqueIndex:idx_customer_address_label"`
	Label      string    `gorm:"column:label;not null;uniqueIndex:idx_customer_address_label"`
	Recipient  string    `gorm:"column:recipient;not null"`
	Street     string    `gorm:"column:street;not null"`
	City       string    `gorm:"column:city;not null"`
	State      string    `gorm:"column:state;not null"`
	Zip        string    `gorm:"column:zip;not null"`
	Country    string    `gorm:"column:country;not null;default:'US'"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
