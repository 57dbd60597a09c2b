package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"varotra/internal/core/types"
)

type stubRepo struct {
	monthly []MonthlyPoint

	products  []TopProductItem
	customers []TopCustomerItem

	gotFrom, gotTo time.Time
	gotLimit       int
}

func (s *stubRepo) MonthlyRevenue(ctx context.Context, from, to time.Time) ([]MonthlyPoint, error) {
	s.gotFrom, s.gotTo = from, to
	return s.monthly, nil
}

func (s *stubRepo) TopProducts(ctx context.Context, limit int) ([]TopProductItem, error) {
	s.gotLimit = limit
	return s.products, nil
}

func (s *stubRepo) TopCustomers(ctx context.Context, limit int) ([]TopCustomerItem, error) {
	s.gotLimit = limit
	return s.customers, nil
}

func (s *stubRepo) RevenueBetween(ctx context.Context, from, to time.Time) (types.Money, int64, error) {
	return types.NewMoneyFromInt(5000), 2, nil
}

func (s *stubRepo) CountActiveProducts(ctx context.Context) (int64, error)  { return 12, nil }
func (s *stubRepo) CountActiveCustomers(ctx context.Context) (int64, error) { return 7, nil }
func (s *stubRepo) CountLowStockProducts(ctx context.Context) (int64, error) {
	return 3, nil
}

// readOnlyTx runs the body directly and counts invocations.
type readOnlyTx struct {
	calls int
}

func (m *readOnlyTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *readOnlyTx) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)
}

func TestMonthlySalesZeroFillsTrailingYear(t *testing.T) {
	repo := &stubRepo{
		monthly: []MonthlyPoint{
			{Month: "2026-01", Total: types.NewMoneyFromInt(120000)},
			{Month: "2026-03", Total: types.NewMoneyFromInt(45000)},
		},
	}
	svc := NewServiceWithClock(repo, &readOnlyTx{}, fixedNow)

	series, err := svc.MonthlySales(context.Background())
	require.NoError(t, err)
	require.Len(t, series, 12)

	// Oldest first, current month last.
	assert.Equal(t, "2025-04", series[0].Month)
	assert.Equal(t, "2026-03", series[11].Month)

	byMonth := map[string]types.Money{}
	for _, p := range series {
		byMonth[p.Month] = p.Total
	}
	assert.True(t, byMonth["2026-01"].Equal(types.NewMoneyFromInt(120000)))
	assert.True(t, byMonth["2026-03"].Equal(types.NewMoneyFromInt(45000)))
	assert.True(t, byMonth["2025-12"].IsZero())
	assert.True(t, byMonth["2025-04"].IsZero())

	// Query window covers exactly the twelve months.
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), repo.gotFrom)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), repo.gotTo)
}

func TestMonthlySalesAllEmpty(t *testing.T) {
	svc := NewServiceWithClock(&stubRepo{}, &readOnlyTx{}, fixedNow)

	series, err := svc.MonthlySales(context.Background())
	require.NoError(t, err)
	require.Len(t, series, 12)
	for _, p := range series {
		assert.True(t, p.Total.IsZero(), "month %s", p.Month)
	}
}

func TestMonthlySalesEndOfMonthClock(t *testing.T) {
	// Jan 31: naive AddDate would skip short months.
	repo := &stubRepo{}
	svc := NewServiceWithClock(repo, &readOnlyTx{}, func() time.Time {
		return time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC)
	})

	series, err := svc.MonthlySales(context.Background())
	require.NoError(t, err)
	require.Len(t, series, 12)
	assert.Equal(t, "2025-02", series[0].Month)
	assert.Equal(t, "2026-01", series[11].Month)

	seen := map[string]bool{}
	for _, p := range series {
		assert.False(t, seen[p.Month], "duplicate month %s", p.Month)
		seen[p.Month] = true
	}
}

func TestTopRankingsUseLimit(t *testing.T) {
	repo := &stubRepo{}
	svc := NewServiceWithClock(repo, &readOnlyTx{}, fixedNow)

	_, err := svc.TopProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, TopLimit, repo.gotLimit)

	_, err = svc.TopCustomers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, TopLimit, repo.gotLimit)
}

func TestDashboardStats(t *testing.T) {
	txm := &readOnlyTx{}
	svc := NewServiceWithClock(&stubRepo{}, txm, fixedNow)

	stats, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(12), stats.ActiveProducts)
	assert.Equal(t, int64(7), stats.ActiveCustomers)
	assert.Equal(t, int64(3), stats.LowStockProducts)
	assert.Equal(t, int64(2), stats.SalesToday)
	assert.True(t, stats.RevenueToday.Equal(types.NewMoneyFromInt(5000)))
	assert.True(t, stats.RevenueThisMonth.Equal(types.NewMoneyFromInt(5000)))

	// All five queries share one read-only snapshot.
	assert.Equal(t, 1, txm.calls)
}
