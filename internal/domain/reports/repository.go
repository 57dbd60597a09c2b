package reports

import (
	"context"
	"time"

	"varotra/internal/core/types"
)

// Repository defines report data access. All aggregations count
// confirmed sales only; cancelled sales never contribute.
type Repository interface {
	// MonthlyRevenue returns per-month buckets for confirmed sales
	// with date in [from, to). Months without sales are absent.
	MonthlyRevenue(ctx context.Context, from, to time.Time) ([]MonthlyPoint, error)

	// TopProducts ranks products by total quantity sold, descending,
	// ties broken by product id ascending.
	TopProducts(ctx context.Context, limit int) ([]TopProductItem, error)

	// TopCustomers ranks customers by total revenue (with tax),
	// descending, ties broken by customer id ascending.
	TopCustomers(ctx context.Context, limit int) ([]TopCustomerItem, error)

	// RevenueBetween sums confirmed sales with date in [from, to).
	// Returns the total and the sale count.
	RevenueBetween(ctx context.Context, from, to time.Time) (types.Money, int64, error)

	CountActiveProducts(ctx context.Context) (int64, error)
	CountActiveCustomers(ctx context.Context) (int64, error)
	CountLowStockProducts(ctx context.Context) (int64, error)
}
