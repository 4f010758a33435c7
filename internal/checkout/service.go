package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javiortega/techdepot-backend/internal/basket"
	"github.com/javiortega/techdepot-backend/internal/cards"
	"github.com/javiortega/techdepot-backend/internal/catalog"
	"github.com/javiortega/techdepot-backend/pkg/config"
	"github.com/javiortega/techdepot-backend/pkg/db/models"
	"github.com/javiortega/techdepot-backend/pkg/enums"
	pkgerrors "github.com/javiortega/techdepot-backend/pkg/errors"
	"github.com/javiortega/techdepot-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type addressResolver interface {
	ResolveByLabel(ctx context.Context, customerID uuid.UUID, label string) (*models.ShippingAddress, error)
}

type cardResolver interface {
	Resolve(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, input cards.PaymentInput) (*models.CreditCard, error)
}

// Service turns an open basket into a committed order.
type Service interface {
	Execute(ctx context.Context, customerID uuid.UUID, input Input) (*Receipt, error)
}

type service struct {
	repo           Repository
	baskets        basket.Repository
	inventory      catalog.Repository
	tx             txRunner
	addresses      addressResolver
	cards          cardResolver
	deliveryStatus enums.DeliveryStatus
	metrics        *metrics.CheckoutMetrics
	now            func() time.Time
}

// NewService builds the checkout service.
func NewService(
	repo Repository,
	baskets basket.Repository,
	inventory catalog.Repository,
	tx txRunner,
	addresses addressResolver,
	cardResolver cardResolver,
	storeCfg config.StoreConfig,
	checkoutMetrics *metrics.CheckoutMetrics,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("checkout repository required")
	}
	if baskets == nil {
		return nil, fmt.Errorf("basket repository required")
	}
	if inventory == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if addresses == nil {
		return nil, fmt.Errorf("address resolver required")
	}
	if cardResolver == nil {
		return nil, fmt.Errorf("card resolver required")
	}
	status, err := enums.ParseDeliveryStatus(storeCfg.DefaultDeliveryStatus)
	if err != nil {
		return nil, fmt.Errorf("default delivery status: %w", err)
	}
	return &service{
		repo:           repo,
		baskets:        baskets,
		inventory:      inventory,
		tx:             tx,
		addresses:      addresses,
		cards:          cardResolver,
		deliveryStatus: status,
		metrics:        checkoutMetrics,
		now:            time.Now,
	}, nil
}

// Execute places an order from the customer's open basket. Every write,
// including inventory decrements and a card entered at checkout, happens
// in one transaction: any failure rolls the whole attempt back and
// leaves the basket untouched.
func (s *service) Execute(ctx context.Context, customerID uuid.UUID, input Input) (*Receipt, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}

	var receipt *Receipt
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		address, err := s.addresses.ResolveByLabel(ctx, customerID, input.AddressLabel)
		if err != nil {
			return err
		}

		card, err := s.cards.Resolve(ctx, tx, customerID, input.Payment)
		if err != nil {
			return err
		}

		baskets := s.baskets.WithTx(tx)
		open, err := baskets.FindOpenByCustomer(ctx, customerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeEmptyBasket, "basket is empty")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load open basket")
		}
		if len(open.Lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeEmptyBasket, "basket is empty")
		}

		inventory := s.inventory.WithTx(tx)
		orderID := uuid.New()
		total := 0
		orderLines := make([]models.OrderLine, 0, len(open.Lines))
		for _, line := range open.Lines {
			ok, err := inventory.DecrementInventory(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement inventory")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeInventoryConflict,
					fmt.Sprintf("insufficient stock for product %s", line.ProductID))
			}
			lineTotal := line.Quantity * line.UnitPriceCents
			total += lineTotal
			orderLines = append(orderLines, models.OrderLine{
				ID:             uuid.New(),
				OrderID:        orderID,
				ProductID:      line.ProductID,
				Quantity:       line.Quantity,
				UnitPriceCents: line.UnitPriceCents,
				LineTotalCents: lineTotal,
			})
		}

		order := &models.Order{
			ID:             orderID,
			CustomerID:     customerID,
			BasketID:       open.ID,
			CardID:         card.ID,
			AddressID:      address.ID,
			DeliveryStatus: s.deliveryStatus,
			TotalCents:     total,
			PlacedAt:       s.now().UTC(),
			Lines:          orderLines,
		}
		if _, err := s.repo.WithTx(tx).CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		if err := baskets.Close(ctx, open.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "close basket")
		}

		receipt = receiptOf(order, card, address)
		return nil
	})
	if err != nil {
		s.metrics.IncOutcome(outcomeLabel(err))
		return nil, err
	}
	s.metrics.IncOutcome("completed")
	return receipt, nil
}

func outcomeLabel(err error) string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return "failed"
	}
	switch typed.Code() {
	case pkgerrors.CodeEmptyBasket:
		return "empty_basket"
	case pkgerrors.CodeInventoryConflict:
		return "inventory_conflict"
	case pkgerrors.CodeInvalidAddress:
		return "invalid_address"
	case pkgerrors.CodeInvalidPaymentMethod:
		return "invalid_payment_method"
	default:
		return "failed"
	}
}
