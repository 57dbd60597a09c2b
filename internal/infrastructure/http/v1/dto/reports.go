package dto

import (
	"varotra/internal/core/types"
	"varotra/internal/domain/reports"
)

// --- Response DTOs ---

// MonthlyPointResponse is one month of the revenue series.
type MonthlyPointResponse struct {
	Month string      `json:"month"`
	Total types.Money `json:"total"`
}

// MonthlySalesResponse is the trailing revenue series, oldest first.
type MonthlySalesResponse struct {
	Months []MonthlyPointResponse `json:"months"`
}

// FromMonthlySeries creates the response from the report series.
func FromMonthlySeries(series []reports.MonthlyPoint) *MonthlySalesResponse {
	months := make([]MonthlyPointResponse, len(series))
	for i, p := range series {
		months[i] = MonthlyPointResponse{Month: p.Month, Total: p.Total}
	}
	return &MonthlySalesResponse{Months: months}
}

// TopProductResponse is one row of the best-seller ranking.
type TopProductResponse struct {
	ProductID    string      `json:"productId"`
	ProductName  string      `json:"productName"`
	QuantitySold int64       `json:"quantitySold"`
	Revenue      types.Money `json:"revenue"`
}

// TopProductsResponse wraps the product ranking.
type TopProductsResponse struct {
	Items []TopProductResponse `json:"items"`
}

// FromTopProducts creates the response from report items.
func FromTopProducts(items []reports.TopProductItem) *TopProductsResponse {
	resp := &TopProductsResponse{Items: make([]TopProductResponse, len(items))}
	for i, item := range items {
		resp.Items[i] = TopProductResponse{
			ProductID:    item.ProductID.String(),
			ProductName:  item.ProductName,
			QuantitySold: item.QuantitySold,
			Revenue:      item.Revenue,
		}
	}
	return resp
}

// TopCustomerResponse is one row of the customer revenue ranking.
type TopCustomerResponse struct {
	CustomerID   string      `json:"customerId"`
	CustomerName string      `json:"customerName"`
	SaleCount    int64       `json:"saleCount"`
	Revenue      types.Money `json:"revenue"`
}

// TopCustomersResponse wraps the customer ranking.
type TopCustomersResponse struct {
	Items []TopCustomerResponse `json:"items"`
}

// FromTopCustomers creates the response from report items.
func FromTopCustomers(items []reports.TopCustomerItem) *TopCustomersResponse {
	resp := &TopCustomersResponse{Items: make([]TopCustomerResponse, len(items))}
	for i, item := range items {
		resp.Items[i] = TopCustomerResponse{
			CustomerID:   item.CustomerID.String(),
			CustomerName: item.CustomerName,
			SaleCount:    item.SaleCount,
			Revenue:      item.Revenue,
		}
	}
	return resp
}

// DashboardStatsResponse is the index page headline figures.
type DashboardStatsResponse struct {
	ActiveProducts   int64       `json:"activeProducts"`
	ActiveCustomers  int64       `json:"activeCustomers"`
	LowStockProducts int64       `json:"lowStockProducts"`
	SalesToday       int64       `json:"salesToday"`
	RevenueToday     types.Money `json:"revenueToday"`
	SalesThisMonth   int64       `json:"salesThisMonth"`
	RevenueThisMonth types.Money `json:"revenueThisMonth"`
}

// FromDashboardStats creates the response from report stats.
func FromDashboardStats(stats *reports.DashboardStats) *DashboardStatsResponse {
	return &DashboardStatsResponse{
		ActiveProducts:   stats.ActiveProducts,
		ActiveCustomers:  stats.ActiveCustomers,
		LowStockProducts: stats.LowStockProducts,
		SalesToday:       stats.SalesToday,
		RevenueToday:     stats.RevenueToday,
		SalesThisMonth:   stats.SalesThisMonth,
		RevenueThisMonth: stats.RevenueThisMonth,
	}
}
