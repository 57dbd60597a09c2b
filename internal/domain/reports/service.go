package reports

import (
	"context"
	"fmt"
	"time"

	"varotra/internal/core/tx"
	"varotra/internal/core/types"
)

// TopLimit is the size of the product and customer rankings.
const TopLimit = 10

// TrailingMonths is the window of the monthly revenue series.
const TrailingMonths = 12

// Service provides report generation operations. All queries run in a
// read-only transaction, so multi-query reports see one consistent
// snapshot.
type Service struct {
	repo      Repository
	txManager tx.ReadOnlyManager
	now       func() time.Time
}

// NewService creates a new reports service.
func NewService(repo Repository, txManager tx.ReadOnlyManager) *Service {
	return &Service{repo: repo, txManager: txManager, now: time.Now}
}

// NewServiceWithClock creates a reports service with an injected clock.
func NewServiceWithClock(repo Repository, txManager tx.ReadOnlyManager, now func() time.Time) *Service {
	return &Service{repo: repo, txManager: txManager, now: now}
}

// MonthlySales returns the trailing 12 months of confirmed revenue,
// current month included, oldest first. Months without sales appear
// with a zero total.
func (s *Service) MonthlySales(ctx context.Context) ([]MonthlyPoint, error) {
	now := s.now().UTC()
	// First-of-month anchor keeps AddDate month arithmetic exact.
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	from := anchor.AddDate(0, -(TrailingMonths - 1), 0)
	to := anchor.AddDate(0, 1, 0)

	var buckets []MonthlyPoint
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		buckets, err = s.repo.MonthlyRevenue(ctx, from, to)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("monthly revenue: %w", err)
	}

	byMonth := make(map[string]types.Money, len(buckets))
	for _, b := range buckets {
		byMonth[b.Month] = b.Total
	}

	series := make([]MonthlyPoint, 0, TrailingMonths)
	for i := TrailingMonths - 1; i >= 0; i-- {
		key := anchor.AddDate(0, -i, 0).Format(MonthKey)
		total, ok := byMonth[key]
		if !ok {
			total = types.Zero()
		}
		series = append(series, MonthlyPoint{Month: key, Total: total})
	}

	return series, nil
}

// TopProducts returns the ten best-selling products by quantity.
func (s *Service) TopProducts(ctx context.Context) ([]TopProductItem, error) {
	var items []TopProductItem
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		items, err = s.repo.TopProducts(ctx, TopLimit)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	return items, nil
}

// TopCustomers returns the ten highest-revenue customers.
func (s *Service) TopCustomers(ctx context.Context) ([]TopCustomerItem, error) {
	var items []TopCustomerItem
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		items, err = s.repo.TopCustomers(ctx, TopLimit)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("top customers: %w", err)
	}
	return items, nil
}

// DashboardStats assembles the index page headline figures.
func (s *Service) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	now := s.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	stats := &DashboardStats{}

	// One read-only snapshot keeps the counts and revenue figures
	// mutually consistent.
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error

		if stats.ActiveProducts, err = s.repo.CountActiveProducts(ctx); err != nil {
			return fmt.Errorf("count products: %w", err)
		}
		if stats.ActiveCustomers, err = s.repo.CountActiveCustomers(ctx); err != nil {
			return fmt.Errorf("count customers: %w", err)
		}
		if stats.LowStockProducts, err = s.repo.CountLowStockProducts(ctx); err != nil {
			return fmt.Errorf("count low stock: %w", err)
		}

		if stats.RevenueToday, stats.SalesToday, err = s.repo.RevenueBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1)); err != nil {
			return fmt.Errorf("revenue today: %w", err)
		}
		if stats.RevenueThisMonth, stats.SalesThisMonth, err = s.repo.RevenueBetween(ctx, monthStart, monthStart.AddDate(0, 1, 0)); err != nil {
			return fmt.Errorf("revenue this month: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return stats, nil
}
