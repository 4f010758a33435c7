package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/javiortega/techdepot-backend/pkg/enums"
)

// Basket is a customer's working selection of products. A customer has at
// most one open basket at a time; checkout flips it to closed.
type Basket struct {
	ID         uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID          `gorm:"column:customer_id;type:uuid;not null;index"`
	Status     enums.BasketStatus `gorm:"column:status;not null;default:'open'"`
	Lines      []BasketLine       `gorm:"foreignKey:BasketID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
