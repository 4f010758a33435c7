package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javiortega/techdepot-backend/pkg/config"
	"github.com/javiortega/techdepot-backend/pkg/db"
	"github.com/javiortega/techdepot-backend/pkg/db/models"
	"github.com/javiortega/techdepot-backend/pkg/enums"
	pkgerrors "github.com/javiortega/techdepot-backend/pkg/errors"
)

// CreateInput carries the fields for a new catalog listing.
type CreateInput struct {
	SKU         string  `json:"sku" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
	Category    string  `json:"category" validate:"required"`
	PriceCents  int     `json:"price_cents" validate:"required,gt=0"`
	InitialQty  int     `json:"initial_qty" validate:"gte=0"`
}

// UpdateInput carries the mutable listing fields. Nil fields are left
// untouched.
type UpdateInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
	PriceCents  *int    `json:"price_cents,omitempty" validate:"omitempty,gt=0"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// Service exposes catalog reads plus the price policy used by the basket.
type Service interface {
	List(ctx context.Context, filters ListFilters) ([]ProductSummary, error)
	ListOffers(ctx context.Context, filters ListFilters) ([]ProductSummary, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductDetail, error)
	Create(ctx context.Context, input CreateInput) (*ProductDetail, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*ProductDetail, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	EffectiveUnitPrice(product *models.Product, tier enums.CustomerTier) int
}

type service struct {
	repo     Repository
	storeCfg config.StoreConfig
}

// NewService builds a catalog service.
func NewService(repo Repository, storeCfg config.StoreConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo, storeCfg: storeCfg}, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]ProductSummary, error) {
	filters.OnlyActive = true
	products, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	summaries := make([]ProductSummary, 0, len(products))
	for i := range products {
		summaries = append(summaries, toSummary(&products[i]))
	}
	return summaries, nil
}

// ListOffers lists active products currently carrying an active offer.
func (s *service) ListOffers(ctx context.Context, filters ListFilters) ([]ProductSummary, error) {
	filters.OnOffer = true
	return s.List(ctx, filters)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductDetail, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return toDetail(product), nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*ProductDetail, error) {
	category, err := enums.ParseProductCategory(input.Category)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product category")
	}

	product := &models.Product{
		ID:          uuid.New(),
		SKU:         input.SKU,
		Name:        input.Name,
		Description: input.Description,
		Category:    category,
		PriceCents:  input.PriceCents,
		IsActive:    true,
	}
	if _, err := s.repo.CreateProduct(ctx, product); err != nil {
		if db.IsUniqueViolation(err, "sku") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "sku already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	if err := s.repo.UpsertInventory(ctx, &models.InventoryItem{
		ProductID:    product.ID,
		AvailableQty: input.InitialQty,
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed inventory")
	}
	return s.Get(ctx, product.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*ProductDetail, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.PriceCents != nil {
		if *input.PriceCents <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
		}
		updates["price_cents"] = *input.PriceCents
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if err := s.repo.UpdateProduct(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return s.Get(ctx, id)
}

// Deactivate retires a listing without touching order history. Rows are
// never deleted; closed orders keep their product references.
func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.UpdateProduct(ctx, id, map[string]any{"is_active": false}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate product")
	}
	return nil
}

// EffectiveUnitPrice resolves the price a customer pays right now: the
// active offer price when their tier qualifies, the list price otherwise.
func (s *service) EffectiveUnitPrice(product *models.Product, tier enums.CustomerTier) int {
	if product == nil {
		return 0
	}
	if product.Offer != nil && product.Offer.IsActive && s.storeCfg.PromoEligible(tier.String()) {
		return product.Offer.OfferPriceCents
	}
	return product.PriceCents
}
