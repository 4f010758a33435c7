package basket

import (
	"github.com/google/uuid"

	"github.com/javiortega/techdepot-backend/pkg/db/models"
)

// LineView is one basket row as returned to clients.
type LineView struct {
	ProductID      uuid.UUID `json:"product_id"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int       `json:"unit_price_cents"`
	LineTotalCents int       `json:"line_total_cents"`
}

// View is the basket snapshot returned to clients. A customer with no
// open basket gets an empty view with a nil basket id.
type View struct {
	BasketID   *uuid.UUID `json:"basket_id,omitempty"`
	Lines      []LineView `json:"lines"`
	ItemCount  int        `json:"item_count"`
	TotalCents int        `json:"total_cents"`
}

func emptyView() *View {
	return &View{Lines: []LineView{}}
}

func viewOf(basket *models.Basket) *View {
	view := &View{
		BasketID: &basket.ID,
		Lines:    make([]LineView, 0, len(basket.Lines)),
	}
	for _, line := range basket.Lines {
		lineTotal := line.Quantity * line.UnitPriceCents
		view.Lines = append(view.Lines, LineView{
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
			LineTotalCents: lineTotal,
		})
		view.ItemCount += line.Quantity
		view.TotalCents += lineTotal
	}
	return view
}
