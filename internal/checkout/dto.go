package checkout

import (
	"time"

	"github.com/google/uuid"

	"github.com/javiortega/techdepot-backend/internal/cards"
	"github.com/javiortega/techdepot-backend/pkg/db/models"
	"github.com/javiortega/techdepot-backend/pkg/enums"
)

// Input carries everything a customer submits to place an order.
type Input struct {
	AddressLabel string             `json:"address_label" validate:"required"`
	Payment      cards.PaymentInput `json:"payment"`
}

// ReceiptLine is one purchased product on the receipt.
type ReceiptLine struct {
	ProductID      uuid.UUID `json:"product_id"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int       `json:"unit_price_cents"`
	LineTotalCents int       `json:"line_total_cents"`
}

// Receipt summarizes a committed order for the customer.
type Receipt struct {
	OrderID          uuid.UUID            `json:"order_id"`
	PlacedAt         time.Time            `json:"placed_at"`
	DeliveryStatus   enums.DeliveryStatus `json:"delivery_status"`
	TotalCents       int                  `json:"total_cents"`
	MaskedCardNumber string               `json:"masked_card_number"`
	AddressLabel     string               `json:"address_label"`
	Lines            []ReceiptLine        `json:"lines"`
}

func receiptOf(order *models.Order, card *models.CreditCard, address *models.ShippingAddress) *Receipt {
	lines := make([]ReceiptLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, ReceiptLine{
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
			LineTotalCents: line.LineTotalCents,
		})
	}
	return &Receipt{
		OrderID:          order.ID,
		PlacedAt:         order.PlacedAt,
		DeliveryStatus:   order.DeliveryStatus,
		TotalCents:       order.TotalCents,
		MaskedCardNumber: card.MaskedNumber(),
		AddressLabel:     address.Label,
		Lines:            lines,
	}
}
