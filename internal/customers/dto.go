package customers

import (
	"time"

	"github.com/google/uuid"

	"github.com/javiortega/techdepot-backend/pkg/db/models"
	"github.com/javiortega/techdepot-backend/pkg/enums"
)

// CustomerDTO is the customer shape exposed to controllers.
type CustomerDTO struct {
	ID        uuid.UUID          `json:"id"`
	Email     string             `json:"email"`
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
	Phone     *string            `json:"phone,omitempty"`
	Tier      enums.CustomerTier `json:"tier"`
	CreatedAt time.Time          `json:"created_at"`
}

// ToDTO maps the model onto the API shape.
func ToDTO(customer *models.Customer) *CustomerDTO {
	if customer == nil {
		return nil
	}
	return &CustomerDTO{
		ID:        customer.ID,
		Email:     customer.Email,
		FirstName: customer.FirstName,
		LastName:  customer.LastName,
		Phone:     customer.Phone,
		Tier:      customer.Tier,
		CreatedAt: customer.CreatedAt,
	}
}
