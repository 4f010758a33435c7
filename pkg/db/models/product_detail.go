package models

import "github.com/google/uuid"

// DesktopDetail holds the desktop-specific attributes of a product.
type DesktopDetail struct {
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	CPUType   string    `gorm:"column:cpu_type;not null"`
}

// LaptopDetail holds the laptop-specific attributes of a product.
type LaptopDetail struct {
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	CPUType     string    `gorm:"column:cpu_type;not null"`
	BatteryType string    `gorm:"column:battery_type;not null"`
	WeightGrams int       `gorm:"column:weight_grams;not null"`
}

// PrinterDetail holds the printer-specific attributes of a product.
type PrinterDetail struct {
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	PrinterType string    `gorm:"column:printer_type;not null"`
	Resolution  string    `gorm:"column:resolution;not null"`
}
