// Package customer provides the Customer catalog: the people and
// businesses sales are recorded against.
package customer

import (
	"context"
	"regexp"

	"varotra/internal/core/apperror"
	"varotra/internal/core/entity"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Customer represents a buyer.
type Customer struct {
	entity.Catalog

	// Email is the primary contact email
	Email *string `db:"email" json:"email,omitempty"`

	// Phone is the primary contact phone
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Address is the street address
	Address *string `db:"address" json:"address,omitempty"`

	// City is the city or locality
	City *string `db:"city" json:"city,omitempty"`

	// PostalCode is the postal code
	PostalCode *string `db:"postal_code" json:"postalCode,omitempty"`
}

// NewCustomer creates a new Customer with required fields.
func NewCustomer(code, name string) *Customer {
	return &Customer{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable interface.
func (c *Customer) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if c.Email != nil && *c.Email != "" && !emailRE.MatchString(*c.Email) {
		return apperror.NewInvalidInput("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}
