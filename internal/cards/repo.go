package cards

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javiortega/techdepot-backend/pkg/db/models"
)

// Repository defines persistence operations for payment cards.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, card *models.CreditCard) (*models.CreditCard, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.CreditCard, error)
	FindByNumber(ctx context.Context, cardNumber string) (*models.CreditCard, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.CreditCard, error)
	Unlink(ctx context.Context, customerID, cardID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a cards repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, card *models.CreditCard) (*models.CreditCard, error) {
	if err := r.db.WithContext(ctx).Create(card).Error; err != nil {
		return nil, err
	}
	return card, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.CreditCard, error) {
	var card models.CreditCard
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&card).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *repository) FindByNumber(ctx context.Context, cardNumber string) (*models.CreditCard, error) {
	var card models.CreditCard
	err := r.db.WithContext(ctx).Where("card_number = ?", cardNumber).First(&card).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// Unlink detaches a card from the customer's wallet. The row survives so
// past orders keep their payment reference.
func (r *repository) Unlink(ctx context.Context, customerID, cardID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.CreditCard{}).
		Where("id = ? AND customer_id = ?", cardID, customerID).
		Update("customer_id", nil)
	return result.RowsAffected, result.Error
}

func (r *repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.CreditCard, error) {
	var cards []models.CreditCard
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}
