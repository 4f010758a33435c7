package cards

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javiortega/techdepot-backend/pkg/db"
	"github.com/javiortega/techdepot-backend/pkg/db/models"
	"github.com/javiortega/techdepot-backend/pkg/enums"
	pkgerrors "github.com/javiortega/techdepot-backend/pkg/errors"
)

// NewCardInput carries raw details for a card entered at checkout or
// saved to the wallet.
type NewCardInput struct {
	CardNumber     string `json:"card_number" validate:"required"`
	SecurityCode   string `json:"security_code" validate:"required"`
	HolderName     string `json:"holder_name" validate:"required"`
	BillingAddress string `json:"billing_address" validate:"required"`
	CardType       string `json:"card_type" validate:"required"`
	ExpiryMonth    int    `json:"expiry_month" validate:"required,min=1,max=12"`
	ExpiryYear     int    `json:"expiry_year" validate:"required"`
}

// PaymentInput selects the card used for a purchase: either a saved
// card by id or fresh card details.
type PaymentInput struct {
	SavedCardID  *uuid.UUID    `json:"saved_card_id,omitempty"`
	NewCard      *NewCardInput `json:"new_card,omitempty"`
	SaveToWallet bool          `json:"save_to_wallet"`
}

// Service exposes wallet management and checkout card resolution.
type Service interface {
	Save(ctx context.Context, customerID uuid.UUID, input NewCardInput) (*CardDTO, error)
	List(ctx context.Context, customerID uuid.UUID) ([]CardDTO, error)
	Delete(ctx context.Context, customerID, cardID uuid.UUID) error
	Resolve(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, input PaymentInput) (*models.CreditCard, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds the cards service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cards repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Save(ctx context.Context, customerID uuid.UUID, input NewCardInput) (*CardDTO, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	card, err := s.buildCard(customerID, input, true)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, card)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "card already on file")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save card")
	}
	dto := toDTO(created)
	return &dto, nil
}

func (s *service) List(ctx context.Context, customerID uuid.UUID) ([]CardDTO, error) {
	cards, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cards")
	}
	dtos := make([]CardDTO, 0, len(cards))
	for i := range cards {
		dtos = append(dtos, toDTO(&cards[i]))
	}
	return dtos, nil
}

// Delete removes a card from the wallet. The underlying row is kept
// unlinked because closed orders reference it.
func (s *service) Delete(ctx context.Context, customerID, cardID uuid.UUID) error {
	rows, err := s.repo.Unlink(ctx, customerID, cardID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove card")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "card not found")
	}
	return nil
}

// Resolve returns the card a purchase is charged to. A saved selection
// must reference the customer's own card. Fresh details are persisted;
// when the number is already on file the existing row is reused so the
// same physical card never appears twice.
func (s *service) Resolve(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, input PaymentInput) (*models.CreditCard, error) {
	repo := s.repo.WithTx(tx)

	switch {
	case input.SavedCardID != nil:
		card, err := repo.FindByID(ctx, *input.SavedCardID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeInvalidPaymentMethod, "saved card not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load card")
		}
		if card.CustomerID == nil || *card.CustomerID != customerID {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidPaymentMethod, "card does not belong to customer")
		}
		return card, nil

	case input.NewCard != nil:
		card, err := s.buildCard(customerID, *input.NewCard, input.SaveToWallet)
		if err != nil {
			return nil, err
		}
		created, err := repo.Create(ctx, card)
		if err == nil {
			return created, nil
		}
		if !db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store card")
		}
		existing, findErr := repo.FindByNumber(ctx, card.CardNumber)
		if findErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "load existing card")
		}
		return existing, nil

	default:
		return nil, pkgerrors.New(pkgerrors.CodeInvalidPaymentMethod, "a saved card or new card details are required")
	}
}

func (s *service) buildCard(customerID uuid.UUID, input NewCardInput, attach bool) (*models.CreditCard, error) {
	number := strings.ReplaceAll(strings.TrimSpace(input.CardNumber), " ", "")
	if len(number) < 12 || len(number) > 19 || !allDigits(number) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "card number must be 12-19 digits")
	}

	securityCode := strings.TrimSpace(input.SecurityCode)
	if len(securityCode) < 3 || len(securityCode) > 4 || !allDigits(securityCode) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "security code must be 3-4 digits")
	}

	holderName := strings.TrimSpace(input.HolderName)
	if holderName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "holder name required")
	}

	billingAddress := strings.TrimSpace(input.BillingAddress)
	if billingAddress == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "billing address required")
	}

	cardType, err := enums.ParseCardType(strings.ToLower(strings.TrimSpace(input.CardType)))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported card type")
	}

	if input.ExpiryMonth < 1 || input.ExpiryMonth > 12 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expiry month out of range")
	}
	now := s.now().UTC()
	if input.ExpiryYear < now.Year() ||
		(input.ExpiryYear == now.Year() && time.Month(input.ExpiryMonth) < now.Month()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "card is expired")
	}

	card := &models.CreditCard{
		ID:             uuid.New(),
		CardNumber:     number,
		SecurityCode:   securityCode,
		HolderName:     holderName,
		BillingAddress: billingAddress,
		CardType:       cardType,
		ExpiryMonth:    input.ExpiryMonth,
		ExpiryYear:     input.ExpiryYear,
	}
	if attach {
		id := customerID
		card.CustomerID = &id
	}
	return card, nil
}

func allDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
