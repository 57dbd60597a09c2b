// Package report_repo provides the PostgreSQL implementation of the
// reports repository. All aggregations run against confirmed sales.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"varotra/internal/core/types"
	"varotra/internal/domain/reports"
	"varotra/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
}

// Compile-time check.
var _ reports.Repository = (*ReportRepo)(nil)

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

// MonthlyRevenue buckets confirmed sales per month. Months without
// sales produce no row; the service zero-fills them. Bucketing is done
// in UTC regardless of the session timezone, matching the keys the
// service computes.
func (r *ReportRepo) MonthlyRevenue(ctx context.Context, from, to time.Time) ([]reports.MonthlyPoint, error) {
	query := `
		SELECT
			to_char(date AT TIME ZONE 'UTC', 'YYYY-MM') AS month,
			SUM(total_with_tax) AS total
		FROM doc_sales
		WHERE status = 'confirmed'
		  AND date >= $1 AND date < $2
		GROUP BY 1
		ORDER BY 1
	`

	var buckets []reports.MonthlyPoint
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &buckets, query, from, to); err != nil {
		return nil, fmt.Errorf("monthly revenue: %w", err)
	}

	return buckets, nil
}

// TopProducts ranks products by quantity sold across confirmed sales.
// Ties are broken by product id ascending so the ordering is stable.
func (r *ReportRepo) TopProducts(ctx context.Context, limit int) ([]reports.TopProductItem, error) {
	query := `
		SELECT
			l.product_id,
			p.name AS product_name,
			SUM(l.quantity) AS quantity_sold,
			SUM(l.subtotal) AS revenue
		FROM doc_sale_lines l
		JOIN doc_sales s ON s.id = l.document_id
		JOIN cat_products p ON p.id = l.product_id
		WHERE s.status = 'confirmed'
		GROUP BY l.product_id, p.name
		ORDER BY quantity_sold DESC, l.product_id ASC
		LIMIT $1
	`

	var items []reports.TopProductItem
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, query, limit); err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}

	return items, nil
}

// TopCustomers ranks customers by confirmed revenue (with tax).
// Ties are broken by customer id ascending.
func (r *ReportRepo) TopCustomers(ctx context.Context, limit int) ([]reports.TopCustomerItem, error) {
	query := `
		SELECT
			s.customer_id,
			c.name AS customer_name,
			COUNT(*) AS sale_count,
			SUM(s.total_with_tax) AS revenue
		FROM doc_sales s
		JOIN cat_customers c ON c.id = s.customer_id
		WHERE s.status = 'confirmed'
		GROUP BY s.customer_id, c.name
		ORDER BY revenue DESC, s.customer_id ASC
		LIMIT $1
	`

	var items []reports.TopCustomerItem
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, query, limit); err != nil {
		return nil, fmt.Errorf("top customers: %w", err)
	}

	return items, nil
}

// RevenueBetween sums confirmed sales with date in [from, to).
func (r *ReportRepo) RevenueBetween(ctx context.Context, from, to time.Time) (types.Money, int64, error) {
	query := `
		SELECT COALESCE(SUM(total_with_tax), 0), COUNT(*)
		FROM doc_sales
		WHERE status = 'confirmed'
		  AND date >= $1 AND date < $2
	`

	var total decimal.Decimal
	var count int64
	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, query, from, to).Scan(&total, &count); err != nil {
		return types.Zero(), 0, fmt.Errorf("revenue between: %w", err)
	}

	return total, count, nil
}

// CountActiveProducts counts products not soft-deleted.
func (r *ReportRepo) CountActiveProducts(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, "cat_products", "active = true")
}

// CountActiveCustomers counts customers not soft-deleted.
func (r *ReportRepo) CountActiveCustomers(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, "cat_customers", "active = true")
}

// CountLowStockProducts counts active products at or below their
// minimum stock.
func (r *ReportRepo) CountLowStockProducts(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, "cat_products", "active = true AND stock_actual <= stock_minimum")
}

func (r *ReportRepo) countWhere(ctx context.Context, table, cond string) (int64, error) {
	query := "SELECT COUNT(*) FROM " + table + " WHERE " + cond

	var count int64
	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}

	return count, nil
}
