package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem tracks the on-hand count per product. The quantity is
// only ever decremented through a guarded conditional update so it can
// never go negative.
type InventoryItem struct {
	ProductID    uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	AvailableQty int       `gorm:"column:available_qty;not null;default:0"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
