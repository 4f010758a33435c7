package basket

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javiortega/techdepot-backend/pkg/db/models"
	"github.com/javiortega/techdepot-backend/pkg/enums"
)

// Repository defines persistence operations for baskets and their lines.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, basket *models.Basket) (*models.Basket, error)
	FindOpenByCustomer(ctx context.Context, customerID uuid.UUID) (*models.Basket, error)
	CountOpenByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Basket, error)
	FindLine(ctx context.Context, basketID, productID uuid.UUID) (*models.BasketLine, error)
	CreateLine(ctx context.Context, line *models.BasketLine) error
	UpdateLineQuantity(ctx context.Context, lineID uuid.UUID, quantity int) error
	DeleteLine(ctx context.Context, lineID uuid.UUID) error
	CountLines(ctx context.Context, basketID uuid.UUID) (int64, error)
	DeleteLines(ctx context.Context, basketID uuid.UUID) error
	Delete(ctx context.Context, basketID uuid.UUID) error
	Close(ctx context.Context, basketID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a basket repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, basket *models.Basket) (*models.Basket, error) {
	if err := r.db.WithContext(ctx).Create(basket).Error; err != nil {
		return nil, err
	}
	return basket, nil
}

func (r *repository) FindOpenByCustomer(ctx context.Context, customerID uuid.UUID) (*models.Basket, error) {
	var basket models.Basket
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("customer_id = ? AND status = ?", customerID, enums.BasketStatusOpen).
		First(&basket).Error
	if err != nil {
		return nil, err
	}
	return &basket, nil
}

func (r *repository) CountOpenByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Basket{}).
		Where("customer_id = ? AND status = ?", customerID, enums.BasketStatusOpen).
		Count(&count).Error
	return count, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Basket, error) {
	var basket models.Basket
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("id = ?", id).
		First(&basket).Error
	if err != nil {
		return nil, err
	}
	return &basket, nil
}

func (r *repository) FindLine(ctx context.Context, basketID, productID uuid.UUID) (*models.BasketLine, error) {
	var line models.BasketLine
	err := r.db.WithContext(ctx).
		Where("basket_id = ? AND product_id = ?", basketID, productID).
		First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *repository) CreateLine(ctx context.Context, line *models.BasketLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *repository) UpdateLineQuantity(ctx context.Context, lineID uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.BasketLine{}).
		Where("id = ?", lineID).
		Update("quantity", quantity).Error
}

func (r *repository) DeleteLine(ctx context.Context, lineID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", lineID).
		Delete(&models.BasketLine{}).Error
}

func (r *repository) CountLines(ctx context.Context, basketID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.BasketLine{}).
		Where("basket_id = ?", basketID).
		Count(&count).Error
	return count, err
}

func (r *repository) DeleteLines(ctx context.Context, basketID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("basket_id = ?", basketID).
		Delete(&models.BasketLine{}).Error
}

func (r *repository) Delete(ctx context.Context, basketID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", basketID).
		Delete(&models.Basket{}).Error
}

func (r *repository) Close(ctx context.Context, basketID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Basket{}).
		Where("id = ? AND status = ?", basketID, enums.BasketStatusOpen).
		Update("status", enums.BasketStatusClosed).Error
}
