package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"varotra/internal/core/apperror"
	"varotra/internal/core/id"
	"varotra/internal/domain"
	"varotra/internal/domain/catalogs/product"
	"varotra/internal/infrastructure/storage/postgres"
)

const productTable = "cat_products"

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// Compile-time check.
var _ product.Repository = (*ProductRepo)(nil)

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			productTable,
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
	}
}

// GetActiveForUpdate retrieves an active product with a row lock.
// The lock serializes concurrent sales touching the same product.
func (r *ProductRepo) GetActiveForUpdate(ctx context.Context, productID id.ID) (*product.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": productID}).
		Where(squirrel.Eq{"active": true}).
		Suffix("FOR UPDATE")

	p, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", productID.String())
		}
		return nil, err
	}
	return p, nil
}

// DecrementStock atomically subtracts qty, guarded against going
// negative. On a failed guard the current availability is re-read so
// the error names exactly what was short.
func (r *ProductRepo) DecrementStock(ctx context.Context, productID id.ID, qty int64) error {
	q := r.Builder().
		Update(productTable).
		Set("stock_actual", squirrel.Expr("stock_actual - ?", qty)).
		Where(squirrel.Eq{"id": productID}).
		Where(squirrel.GtOrEq{"stock_actual": qty})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build decrement: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}

	if result.RowsAffected() == 0 {
		available, availErr := r.currentStock(ctx, productID)
		if availErr != nil {
			return availErr
		}
		return apperror.NewInsufficientStock(productID.String(), qty, available)
	}

	return nil
}

func (r *ProductRepo) currentStock(ctx context.Context, productID id.ID) (int64, error) {
	q := r.Builder().
		Select("stock_actual").
		From(productTable).
		Where(squirrel.Eq{"id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build stock query: %w", err)
	}

	var stock int64
	err = r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&stock)
	if err == pgx.ErrNoRows {
		return 0, apperror.NewNotFound("product", productID.String())
	}
	if err != nil {
		return 0, fmt.Errorf("read stock: %w", err)
	}
	return stock, nil
}

// ListFiltered retrieves products with category filtering.
func (r *ProductRepo) ListFiltered(ctx context.Context, filter product.ListFilter) (domain.ListResult[*product.Product], error) {
	q := r.baseSelect()
	q = r.ApplyCommonFilters(q, filter.ListFilter)

	if filter.Category != nil && *filter.Category != "" {
		q = q.Where(squirrel.Eq{"category": *filter.Category})
	}

	return r.ListQuery(ctx, q, filter.ListFilter)
}

// FindLowStock retrieves active products at or below their minimum stock.
func (r *ProductRepo) FindLowStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*product.Product], error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.Expr("stock_actual <= stock_minimum"))

	return r.ListQuery(ctx, q, filter)
}

// ListCategories returns the distinct non-empty categories of active products.
func (r *ProductRepo) ListCategories(ctx context.Context) ([]string, error) {
	q := r.Builder().
		Select("DISTINCT category").
		From(productTable).
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.NotEq{"category": nil}).
		Where(squirrel.NotEq{"category": ""}).
		OrderBy("category ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build categories query: %w", err)
	}

	var categories []string
	if err := pgxscan.Select(ctx, r.Querier(ctx), &categories, sql, args...); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}
