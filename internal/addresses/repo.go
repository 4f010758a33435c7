package addresses

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javiortega/techdepot-backend/pkg/db/models"
)

// Repository defines persistence operations for shipping addresses.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, address *models.ShippingAddress) (*models.ShippingAddress, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.ShippingAddress, error)
	FindByCustomerAndLabel(ctx context.Context, customerID uuid.UUID, label string) (*models.ShippingAddress, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.ShippingAddress, error)
	Update(ctx context.Context, customerID, addressID uuid.UUID, updates map[string]any) (int64, error)
	Delete(ctx context.Context, customerID, addressID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an addresses repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, address *models.ShippingAddress) (*models.ShippingAddress, error) {
	if err := r.db.WithContext(ctx).Create(address).Error; err != nil {
		return nil, err
	}
	return address, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ShippingAddress, error) {
	var address models.ShippingAddress
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&address).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *repository) FindByCustomerAndLabel(ctx context.Context, customerID uuid.UUID, label string) (*models.ShippingAddress, error) {
	var address models.ShippingAddress
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND label = ?", customerID, strings.TrimSpace(label)).
		First(&address).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.ShippingAddress, error) {
	var addresses []models.ShippingAddress
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&addresses).Error
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *repository) Update(ctx context.Context, customerID, addressID uuid.UUID, updates map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ShippingAddress{}).
		Where("id = ? AND customer_id = ?", addressID, customerID).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *repository) Delete(ctx context.Context, customerID, addressID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", addressID, customerID).
		Delete(&models.ShippingAddress{}).Error
}
