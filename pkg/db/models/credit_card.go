package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/javiortega/techdepot-backend/pkg/enums"
)

// CreditCard is a payment card seen at checkout. CustomerID is nil for
// cards entered once and not saved to the customer's wallet.
type CreditCard struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID     *uuid.UUID     `gorm:"column:customer_id;type:uuid;index"`
	CardNumber     string         `gorm:"column:card_number;not null;uniqueIndex"`
	SecurityCode   string         `gorm:"column:security_code;not null"`
	HolderName     string         `gorm:"column:holder_name;not null"`
	BillingAddress string         `gorm:"column:billing_address;not null"`
	CardType       enums.CardType `gorm:"column:card_type;not null"`
	ExpiryMonth    int            `gorm:"column:expiry_month;not null"`
	ExpiryYear     int            `gorm:"column:expiry_year;not null"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// MaskedNumber renders the card number with all but the last four digits
// obscured.
func (c CreditCard) MaskedNumber() string {
	if len(c.CardNumber) <= 4 {
		return c.CardNumber
	}
	return "****" + c.CardNumber[len(c.CardNumber)-4:]
}
