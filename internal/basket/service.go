package basket

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javiortega/techdepot-backend/pkg/db/models"
	"github.com/javiortega/techdepot-backend/pkg/enums"
	pkgerrors "github.com/javiortega/techdepot-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type pricePolicy interface {
	EffectiveUnitPrice(product *models.Product, tier enums.CustomerTier) int
}

// Service manages the customer's open basket.
type Service interface {
	GetOrCreateOpen(ctx context.Context, customerID uuid.UUID) (*models.Basket, error)
	AddItem(ctx context.Context, customerID uuid.UUID, tier enums.CustomerTier, productID uuid.UUID, quantity int) (*View, error)
	UpdateItemQuantity(ctx context.Context, customerID, productID uuid.UUID, quantity int) (*View, error)
	RemoveItem(ctx context.Context, customerID, productID uuid.UUID) (*View, error)
	GetView(ctx context.Context, customerID uuid.UUID) (*View, error)
	Clear(ctx context.Context, customerID uuid.UUID) error
}

type service struct {
	repo     Repository
	tx       txRunner
	products productLoader
	pricing  pricePolicy
}

// NewService builds the basket service.
func NewService(repo Repository, tx txRunner, products productLoader, pricing pricePolicy) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("basket repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if pricing == nil {
		return nil, fmt.Errorf("price policy required")
	}
	return &service{repo: repo, tx: tx, products: products, pricing: pricing}, nil
}

// GetOrCreateOpen returns the customer's open basket, creating one when
// none exists.
func (s *service) GetOrCreateOpen(ctx context.Context, customerID uuid.UUID) (*models.Basket, error) {
	return s.getOrCreateOpenTx(ctx, s.repo, customerID)
}

// AddItem puts quantity units of the product into the open basket.
// Repeated adds of the same product accumulate; the unit price is
// snapshotted when the line is first created and stays fixed afterwards.
func (s *service) AddItem(ctx context.Context, customerID uuid.UUID, tier enums.CustomerTier, productID uuid.UUID, quantity int) (*View, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
	}

	var view *View
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		basket, err := s.getOrCreateOpenTx(ctx, repo, customerID)
		if err != nil {
			return err
		}

		line, err := repo.FindLine(ctx, basket.ID, productID)
		switch {
		case err == nil:
			if line.Quantity+quantity > availableStock(product) {
				return pkgerrors.New(pkgerrors.CodeInsufficientInventory, "not enough stock for requested quantity")
			}
			// the snapshotted price on the existing line wins
			if err := repo.UpdateLineQuantity(ctx, line.ID, line.Quantity+quantity); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update line quantity")
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if quantity > availableStock(product) {
				return pkgerrors.New(pkgerrors.CodeInsufficientInventory, "not enough stock for requested quantity")
			}
			newLine := &models.BasketLine{
				ID:             uuid.New(),
				BasketID:       basket.ID,
				ProductID:      productID,
				Quantity:       quantity,
				UnitPriceCents: s.pricing.EffectiveUnitPrice(product, tier),
			}
			if err := repo.CreateLine(ctx, newLine); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create basket line")
			}
		default:
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load basket line")
		}

		reloaded, err := repo.FindByID(ctx, basket.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload basket")
		}
		view = viewOf(reloaded)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// UpdateItemQuantity replaces the quantity on an existing line. The new
// quantity is checked against current stock the same way an add is.
func (s *service) UpdateItemQuantity(ctx context.Context, customerID, productID uuid.UUID, quantity int) (*View, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if quantity > availableStock(product) {
		return nil, pkgerrors.New(pkgerrors.CodeInsufficientInventory, "not enough stock for requested quantity")
	}

	var view *View
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		basket, err := repo.FindOpenByCustomer(ctx, customerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "no open basket")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load open basket")
		}

		line, err := repo.FindLine(ctx, basket.ID, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not in basket")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load basket line")
		}

		if err := repo.UpdateLineQuantity(ctx, line.ID, quantity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update line quantity")
		}

		reloaded, err := repo.FindByID(ctx, basket.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload basket")
		}
		view = viewOf(reloaded)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// RemoveItem drops the product's line. Removing the last line deletes the
// basket itself, so the next read starts from a clean slate.
func (s *service) RemoveItem(ctx context.Context, customerID, productID uuid.UUID) (*View, error) {
	var view *View
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		basket, err := repo.FindOpenByCustomer(ctx, customerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "no open basket")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load open basket")
		}

		line, err := repo.FindLine(ctx, basket.ID, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not in basket")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load basket line")
		}

		if err := repo.DeleteLine(ctx, line.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete basket line")
		}

		remaining, err := repo.CountLines(ctx, basket.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count basket lines")
		}
		if remaining == 0 {
			if err := repo.Delete(ctx, basket.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete empty basket")
			}
			view = emptyView()
			return nil
		}

		reloaded, err := repo.FindByID(ctx, basket.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload basket")
		}
		view = viewOf(reloaded)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// GetView returns the current basket contents without creating a basket.
func (s *service) GetView(ctx context.Context, customerID uuid.UUID) (*View, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}

	basket, err := s.repo.FindOpenByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return emptyView(), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load open basket")
	}
	return viewOf(basket), nil
}

// Clear removes the open basket and its lines. Clearing when no open
// basket exists is a no-op.
func (s *service) Clear(ctx context.Context, customerID uuid.UUID) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		basket, err := repo.FindOpenByCustomer(ctx, customerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load open basket")
		}

		if err := repo.DeleteLines(ctx, basket.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete basket lines")
		}
		if err := repo.Delete(ctx, basket.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete basket")
		}
		return nil
	})
}

func availableStock(product *models.Product) int {
	if product == nil || product.Inventory == nil {
		return 0
	}
	return product.Inventory.AvailableQty
}

// getOrCreateOpenTx enforces the single-open invariant. Finding more
// than one open basket means it was violated outside this service, so it
// fails loudly rather than guessing which basket to use.
func (s *service) getOrCreateOpenTx(ctx context.Context, repo Repository, customerID uuid.UUID) (*models.Basket, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}

	count, err := repo.CountOpenByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count open baskets")
	}
	if count > 1 {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "customer has multiple open baskets")
	}

	basket, err := repo.FindOpenByCustomer(ctx, customerID)
	if err == nil {
		return basket, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load open basket")
	}

	created, err := repo.Create(ctx, &models.Basket{
		ID:         uuid.New(),
		CustomerID: customerID,
		Status:     enums.BasketStatusOpen,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create basket")
	}
	return created, nil
}
