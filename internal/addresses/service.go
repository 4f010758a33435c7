package addresses

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javiortega/techdepot-backend/pkg/db"
	"github.com/javiortega/techdepot-backend/pkg/db/models"
	pkgerrors "github.com/javiortega/techdepot-backend/pkg/errors"
)

// CreateInput carries a new shipping address.
type CreateInput struct {
	Label     string `json:"label" validate:"required"`
	Recipient string `json:"recipient" validate:"required"`
	Street    string `json:"street" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	Zip       string `json:"zip" validate:"required"`
	Country   string `json:"country"`
}

// UpdateInput carries partial address changes. The label itself is
// immutable; orders snapshot it.
type UpdateInput struct {
	Recipient *string `json:"recipient"`
	Street    *string `json:"street"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	Zip       *string `json:"zip"`
	Country   *string `json:"country"`
}

// Service exposes the saved-address book.
type Service interface {
	Create(ctx context.Context, customerID uuid.UUID, input CreateInput) (*models.ShippingAddress, error)
	List(ctx context.Context, customerID uuid.UUID) ([]models.ShippingAddress, error)
	ResolveByLabel(ctx context.Context, customerID uuid.UUID, label string) (*models.ShippingAddress, error)
	Update(ctx context.Context, customerID, addressID uuid.UUID, input UpdateInput) (*models.ShippingAddress, error)
	Delete(ctx context.Context, customerID, addressID uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds the addresses service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("addresses repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, customerID uuid.UUID, input CreateInput) (*models.ShippingAddress, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	label := strings.TrimSpace(input.Label)
	if label == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address label required")
	}

	country := strings.TrimSpace(input.Country)
	if country == "" {
		country = "US"
	}

	address := &models.ShippingAddress{
		ID:         uuid.New(),
		CustomerID: customerID,
		Label:      label,
		Recipient:  strings.TrimSpace(input.Recipient),
		Street:     strings.TrimSpace(input.Street),
		City:       strings.TrimSpace(input.City),
		State:      strings.TrimSpace(input.State),
		Zip:        strings.TrimSpace(input.Zip),
		Country:    country,
	}

	created, err := s.repo.Create(ctx, address)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "address label already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create address")
	}
	return created, nil
}

func (s *service) List(ctx context.Context, customerID uuid.UUID) ([]models.ShippingAddress, error) {
	addresses, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list addresses")
	}
	return addresses, nil
}

// ResolveByLabel looks up a saved address by its per-customer label. A
// miss is an invalid-address condition, not a plain not-found: checkout
// relies on this distinction.
func (s *service) ResolveByLabel(ctx context.Context, customerID uuid.UUID, label string) (*models.ShippingAddress, error) {
	if strings.TrimSpace(label) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidAddress, "address label required")
	}
	address, err := s.repo.FindByCustomerAndLabel(ctx, customerID, label)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidAddress, "no saved address with that label")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load address")
	}
	return address, nil
}

func (s *service) Update(ctx context.Context, customerID, addressID uuid.UUID, input UpdateInput) (*models.ShippingAddress, error) {
	updates := map[string]any{}
	for column, value := range map[string]*string{
		"recipient": input.Recipient,
		"street":    input.Street,
		"city":      input.City,
		"state":     input.State,
		"zip":       input.Zip,
		"country":   input.Country,
	} {
		if value == nil {
			continue
		}
		trimmed := strings.TrimSpace(*value)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, column+" cannot be blank")
		}
		updates[column] = trimmed
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no address fields to update")
	}

	rows, err := s.repo.Update(ctx, customerID, addressID, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update address")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}

	address, err := s.repo.FindByID(ctx, addressID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload address")
	}
	return address, nil
}

func (s *service) Delete(ctx context.Context, customerID, addressID uuid.UUID) error {
	if err := s.repo.Delete(ctx, customerID, addressID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete address")
	}
	return nil
}
