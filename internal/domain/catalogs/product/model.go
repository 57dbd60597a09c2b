// Package product provides the Product catalog: items sold by the
// business, each carrying a unit price and live stock counters.
package product

import (
	"context"

	"varotra/internal/core/apperror"
	"varotra/internal/core/entity"
	"varotra/internal/core/types"
)

// DefaultStockMinimum is the reorder threshold used when none is given.
const DefaultStockMinimum = 5

// Product represents a sellable item.
type Product struct {
	entity.Catalog

	// Description is a detailed description
	Description *string `db:"description" json:"description,omitempty"`

	// UnitPrice is the current selling price in ariary
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`

	// StockActual is the quantity currently on hand
	StockActual int64 `db:"stock_actual" json:"stockActual"`

	// StockMinimum is the reorder threshold
	StockMinimum int64 `db:"stock_minimum" json:"stockMinimum"`

	// Category is an optional free-form grouping
	Category *string `db:"category" json:"category,omitempty"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(code, name string, unitPrice types.Money) *Product {
	return &Product{
		Catalog:      entity.NewCatalog(code, name),
		UnitPrice:    unitPrice,
		StockMinimum: DefaultStockMinimum,
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.UnitPrice.IsNegative() {
		return apperror.NewInvalidInput("unit price cannot be negative").
			WithDetail("field", "unitPrice")
	}

	if p.StockActual < 0 {
		return apperror.NewInvalidInput("stock cannot be negative").
			WithDetail("field", "stockActual")
	}

	if p.StockMinimum < 0 {
		return apperror.NewInvalidInput("minimum stock cannot be negative").
			WithDetail("field", "stockMinimum")
	}

	return nil
}

// LowStock returns true when the on-hand quantity has reached the
// reorder threshold.
func (p *Product) LowStock() bool {
	return p.StockActual <= p.StockMinimum
}
