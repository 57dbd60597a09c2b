package dto

import (
	"time"

	"varotra/internal/core/types"
	"varotra/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Code         string      `json:"code"`
	Name         string      `json:"name" binding:"required"`
	Description  *string     `json:"description"`
	UnitPrice    types.Money `json:"unitPrice"`
	StockActual  int64       `json:"stockActual"`
	StockMinimum *int64      `json:"stockMinimum"`
	Category     *string     `json:"category"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	item := product.NewProduct(r.Code, r.Name, r.UnitPrice)
	item.Description = r.Description
	item.StockActual = r.StockActual
	if r.StockMinimum != nil {
		item.StockMinimum = *r.StockMinimum
	}
	item.Category = r.Category
	return item
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	Code         string      `json:"code" binding:"required"`
	Name         string      `json:"name" binding:"required"`
	Description  *string     `json:"description"`
	UnitPrice    types.Money `json:"unitPrice"`
	StockActual  int64       `json:"stockActual"`
	StockMinimum int64       `json:"stockMinimum"`
	Category     *string     `json:"category"`
	Version      int         `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(item *product.Product) {
	item.Code = r.Code
	item.Name = r.Name
	item.Description = r.Description
	item.UnitPrice = r.UnitPrice
	item.StockActual = r.StockActual
	item.StockMinimum = r.StockMinimum
	item.Category = r.Category
	item.Version = r.Version
}

// ProductListQuery extends ListQuery with category filtering.
type ProductListQuery struct {
	ListQuery
	Category *string `form:"category"`
}

// ToProductFilter converts query parameters to a product filter.
func (q *ProductListQuery) ToProductFilter() product.ListFilter {
	return product.ListFilter{
		ListFilter: q.ToFilter(),
		Category:   q.Category,
	}
}

// --- Response DTOs ---

// ProductResponse is the response body for a product.
type ProductResponse struct {
	ID           string      `json:"id"`
	Code         string      `json:"code"`
	Name         string      `json:"name"`
	Description  *string     `json:"description,omitempty"`
	UnitPrice    types.Money `json:"unitPrice"`
	StockActual  int64       `json:"stockActual"`
	StockMinimum int64       `json:"stockMinimum"`
	Category     *string     `json:"category,omitempty"`
	LowStock     bool        `json:"lowStock"`
	Active       bool        `json:"active"`
	Version      int         `json:"version"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(item *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:           item.ID.String(),
		Code:         item.Code,
		Name:         item.Name,
		Description:  item.Description,
		UnitPrice:    item.UnitPrice,
		StockActual:  item.StockActual,
		StockMinimum: item.StockMinimum,
		Category:     item.Category,
		LowStock:     item.LowStock(),
		Active:       item.Active,
		Version:      item.Version,
		CreatedAt:    item.CreatedAt,
	}
}
