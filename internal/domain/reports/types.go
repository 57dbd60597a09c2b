// Package reports provides read-only aggregations over confirmed sales.
package reports

import (
	"varotra/internal/core/id"
	"varotra/internal/core/types"
)

// MonthKey is the layout for month bucket keys (YYYY-MM).
const MonthKey = "2006-01"

// MonthlyPoint is one month's revenue bucket.
type MonthlyPoint struct {
	// Month keyed YYYY-MM
	Month string `json:"month"`

	// Total is the summed total_with_tax of confirmed sales
	Total types.Money `json:"total"`
}

// TopProductItem is one row of the best-seller ranking.
type TopProductItem struct {
	ProductID    id.ID       `json:"productId"`
	ProductName  string      `json:"productName"`
	QuantitySold int64       `json:"quantitySold"`
	Revenue      types.Money `json:"revenue"`
}

// TopCustomerItem is one row of the customer revenue ranking.
type TopCustomerItem struct {
	CustomerID   id.ID       `json:"customerId"`
	CustomerName string      `json:"customerName"`
	SaleCount    int64       `json:"saleCount"`
	Revenue      types.Money `json:"revenue"`
}

// DashboardStats is the headline figures for the index page.
type DashboardStats struct {
	ActiveProducts   int64 `json:"activeProducts"`
	ActiveCustomers  int64 `json:"activeCustomers"`
	LowStockProducts int64 `json:"lowStockProducts"`

	SalesToday   int64       `json:"salesToday"`
	RevenueToday types.Money `json:"revenueToday"`

	SalesThisMonth   int64       `json:"salesThisMonth"`
	RevenueThisMonth types.Money `json:"revenueThisMonth"`
}
