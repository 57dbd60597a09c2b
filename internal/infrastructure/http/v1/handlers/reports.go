package handlers

import (
	"github.com/gin-gonic/gin"

	"varotra/internal/domain/reports"
	"varotra/internal/infrastructure/http/v1/dto"
)

// ReportsHandler provides HTTP handlers for reporting endpoints.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// MonthlySales handles GET /reports/monthly-sales.
// Returns the trailing 12 months of confirmed revenue, oldest first.
func (h *ReportsHandler) MonthlySales(c *gin.Context) {
	series, err := h.service.MonthlySales(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromMonthlySeries(series))
}

// TopProducts handles GET /reports/top-products.
func (h *ReportsHandler) TopProducts(c *gin.Context) {
	items, err := h.service.TopProducts(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromTopProducts(items))
}

// TopCustomers handles GET /reports/top-customers.
func (h *ReportsHandler) TopCustomers(c *gin.Context) {
	items, err := h.service.TopCustomers(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromTopCustomers(items))
}

// Dashboard handles GET /reports/dashboard.
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	stats, err := h.service.DashboardStats(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromDashboardStats(stats))
}
