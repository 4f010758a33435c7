package cards

import (
	"github.com/google/uuid"

	"github.com/javiortega/techdepot-backend/pkg/db/models"
	"github.com/javiortega/techdepot-backend/pkg/enums"
)

// CardDTO is the wallet card shape exposed to clients. Only the masked
// number ever leaves the service.
type CardDTO struct {
	ID           uuid.UUID      `json:"id"`
	MaskedNumber string         `json:"masked_number"`
	HolderName   string         `json:"holder_name"`
	CardType     enums.CardType `json:"card_type"`
	ExpiryMonth  int            `json:"expiry_month"`
	ExpiryYear   int            `json:"expiry_year"`
}

func toDTO(card *models.CreditCard) CardDTO {
	return CardDTO{
		ID:           card.ID,
		MaskedNumber: card.MaskedNumber(),
		HolderName:   card.HolderName,
		CardType:     card.CardType,
		ExpiryMonth:  card.ExpiryMonth,
		ExpiryYear:   card.ExpiryYear,
	}
}
