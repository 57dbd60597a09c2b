package product

import (
	"context"

	"varotra/internal/core/id"
	"varotra/internal/domain"
)

// ListFilter extends the common filter with product-specific criteria.
type ListFilter struct {
	domain.ListFilter

	// Category filters by exact category match
	Category *string
}

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// GetActiveForUpdate retrieves an active product with a row lock.
	// Returns NotFound for missing or deactivated products.
	GetActiveForUpdate(ctx context.Context, id id.ID) (*Product, error)

	// DecrementStock atomically subtracts qty from stock_actual,
	// guarded by stock_actual >= qty. Returns InsufficientStock with
	// the current availability when the guard fails.
	DecrementStock(ctx context.Context, id id.ID, qty int64) error

	// ListFiltered retrieves products with product-specific filtering.
	ListFiltered(ctx context.Context, filter ListFilter) (domain.ListResult[*Product], error)

	// FindLowStock retrieves products at or below their minimum stock.
	FindLowStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error)

	// ListCategories returns the distinct non-empty categories in use.
	ListCategories(ctx context.Context) ([]string, error)
}
