package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javiortega/techdepot-backend/pkg/config"
	"github.com/javiortega/techdepot-backend/pkg/db/models"
	pkgerrors "github.com/javiortega/techdepot-backend/pkg/errors"
)

// UpdateInput carries the profile fields a customer may change. Nil
// fields are left untouched.
type UpdateInput struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=1"`
	Phone     *string `json:"phone,omitempty"`
}

// Profile is the account view returned to the customer. Tier is
// read-only here; only checkout and admin tooling ever change it.
type Profile struct {
	CustomerDTO
	CreditLineCents *int64 `json:"credit_line_cents,omitempty"`
}

// Service exposes customer account operations.
type Service interface {
	Get(ctx context.Context, customerID uuid.UUID) (*Profile, error)
	UpdateProfile(ctx context.Context, customerID uuid.UUID, input UpdateInput) (*Profile, error)
}

type service struct {
	repo     Repository
	storeCfg config.StoreConfig
}

// NewService builds the customers service.
func NewService(repo Repository, storeCfg config.StoreConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	return &service{repo: repo, storeCfg: storeCfg}, nil
}

func (s *service) Get(ctx context.Context, customerID uuid.UUID) (*Profile, error) {
	customer, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading customer")
	}
	return s.profileOf(customer), nil
}

func (s *service) UpdateProfile(ctx context.Context, customerID uuid.UUID, input UpdateInput) (*Profile, error) {
	updates := map[string]any{}
	if input.FirstName != nil {
		name := strings.TrimSpace(*input.FirstName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "first name cannot be blank")
		}
		updates["first_name"] = name
	}
	if input.LastName != nil {
		name := strings.TrimSpace(*input.LastName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "last name cannot be blank")
		}
		updates["last_name"] = name
	}
	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		if phone == "" {
			updates["phone"] = nil
		} else {
			updates["phone"] = phone
		}
	}

	if _, err := s.repo.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading customer")
	}
	if err := s.repo.UpdateProfile(ctx, customerID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating profile")
	}
	return s.Get(ctx, customerID)
}

func (s *service) profileOf(customer *models.Customer) *Profile {
	profile := &Profile{CustomerDTO: *ToDTO(customer)}
	if cents, ok := s.storeCfg.CreditLineCents(customer.Tier.String()); ok {
		profile.CreditLineCents = &cents
	}
	return profile
}
