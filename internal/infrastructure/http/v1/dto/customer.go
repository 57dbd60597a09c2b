package dto

import (
	"time"

	"varotra/internal/domain/catalogs/customer"
)

// --- Request DTOs ---

// CreateCustomerRequest is the request body for creating a customer.
type CreateCustomerRequest struct {
	Code       string  `json:"code"`
	Name       string  `json:"name" binding:"required"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	PostalCode *string `json:"postalCode"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCustomerRequest) ToEntity() *customer.Customer {
	item := customer.NewCustomer(r.Code, r.Name)
	item.Email = r.Email
	item.Phone = r.Phone
	item.Address = r.Address
	item.City = r.City
	item.PostalCode = r.PostalCode
	return item
}

// UpdateCustomerRequest is the request body for updating a customer.
type UpdateCustomerRequest struct {
	Code       string  `json:"code" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	PostalCode *string `json:"postalCode"`
	Version    int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateCustomerRequest) ApplyTo(item *customer.Customer) {
	item.Code = r.Code
	item.Name = r.Name
	item.Email = r.Email
	item.Phone = r.Phone
	item.Address = r.Address
	item.City = r.City
	item.PostalCode = r.PostalCode
	item.Version = r.Version
}

// --- Response DTOs ---

// CustomerResponse is the response body for a customer.
type CustomerResponse struct {
	ID         string    `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Email      *string   `json:"email,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	Address    *string   `json:"address,omitempty"`
	City       *string   `json:"city,omitempty"`
	PostalCode *string   `json:"postalCode,omitempty"`
	Active     bool      `json:"active"`
	Version    int       `json:"version"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FromCustomer creates response DTO from domain entity.
func FromCustomer(item *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:         item.ID.String(),
		Code:       item.Code,
		Name:       item.Name,
		Email:      item.Email,
		Phone:      item.Phone,
		Address:    item.Address,
		City:       item.City,
		PostalCode: item.PostalCode,
		Active:     item.Active,
		Version:    item.Version,
		CreatedAt:  item.CreatedAt,
	}
}
