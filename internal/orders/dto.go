package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/javiortega/techdepot-backend/pkg/db/models"
	"github.com/javiortega/techdepot-backend/pkg/enums"
)

// HistoryFilters describe the inputs supported by the order history list.
type HistoryFilters struct {
	DeliveryStatus *enums.DeliveryStatus
	DateFrom       *time.Time
	DateTo         *time.Time
	// ProductName matches orders containing a product whose name
	// includes the given fragment.
	ProductName string
}

// OrderLineDTO is one purchased product in an order.
type OrderLineDTO struct {
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name,omitempty"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int       `json:"unit_price_cents"`
	LineTotalCents int       `json:"line_total_cents"`
}

// OrderDTO is the order shape exposed to clients. The payment card only
// ever appears masked.
type OrderDTO struct {
	ID               uuid.UUID            `json:"id"`
	PlacedAt         time.Time            `json:"placed_at"`
	DeliveryStatus   enums.DeliveryStatus `json:"delivery_status"`
	TotalCents       int                  `json:"total_cents"`
	MaskedCardNumber string               `json:"masked_card_number,omitempty"`
	AddressLabel     string               `json:"address_label,omitempty"`
	Lines            []OrderLineDTO       `json:"lines"`
}

// OrderList wraps a page of orders plus the next page cursor.
type OrderList struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

func toDTO(order *models.Order) OrderDTO {
	dto := OrderDTO{
		ID:             order.ID,
		PlacedAt:       order.PlacedAt,
		DeliveryStatus: order.DeliveryStatus,
		TotalCents:     order.TotalCents,
		Lines:          make([]OrderLineDTO, 0, len(order.Lines)),
	}
	if order.Card != nil {
		dto.MaskedCardNumber = order.Card.MaskedNumber()
	}
	if order.Address != nil {
		dto.AddressLabel = order.Address.Label
	}
	for _, line := range order.Lines {
		lineDTO := OrderLineDTO{
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
			LineTotalCents: line.LineTotalCents,
		}
		if line.Product != nil {
			lineDTO.ProductName = line.Product.Name
		}
		dto.Lines = append(dto.Lines, lineDTO)
	}
	return dto
}
