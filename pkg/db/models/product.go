package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/javiortega/techdepot-backend/pkg/enums"
)

// Product represents a catalog listing.
type Product struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU           string                `gorm:"column:sku;not null;uniqueIndex"`
	Name          string                `gorm:"column:name;not null"`
	Description   *string               `gorm:"column:description"`
	Category      enums.ProductCategory `gorm:"column:category;not null"`
	PriceCents    int                   `gorm:"column:price_cents;not null"`
	IsActive      bool                  `gorm:"column:is_active;not null;default:true"`
	Inventory     *InventoryItem        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Offer         *ProductOffer         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	DesktopDetail *DesktopDetail        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	LaptopDetail  *LaptopDetail         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	PrinterDetail *PrinterDetail        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
