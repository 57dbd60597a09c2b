package dto

import (
	"time"

	"varotra/internal/domain/documents/invoice"
)

// --- Request DTOs ---

// SetInvoiceStatusRequest changes the payment status.
type SetInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// InvoiceListQuery extends ListQuery with invoice-specific filters.
type InvoiceListQuery struct {
	ListQuery
	Status    *string    `form:"status"`
	DateFrom  *time.Time `form:"dateFrom"`
	DateTo    *time.Time `form:"dateTo"`
	DueBefore *time.Time `form:"dueBefore"`
}

// ToInvoiceFilter converts query parameters to an invoice filter.
func (q *InvoiceListQuery) ToInvoiceFilter() invoice.ListFilter {
	filter := invoice.ListFilter{
		ListFilter: q.ToFilter(),
		DateFrom:   q.DateFrom,
		DateTo:     q.DateTo,
		DueBefore:  q.DueBefore,
	}
	if q.OrderBy == "" {
		filter.OrderBy = "-date"
	}

	if q.Status != nil {
		status := invoice.Status(*q.Status)
		filter.Status = &status
	}

	return filter
}

// --- Response DTOs ---

// InvoiceResponse is the response body for an invoice.
type InvoiceResponse struct {
	ID        string         `json:"id"`
	Number    string         `json:"number"`
	Date      time.Time      `json:"date"`
	SaleID    string         `json:"saleId"`
	DueDate   time.Time      `json:"dueDate"`
	Status    invoice.Status `json:"status"`
	Version   int            `json:"version"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// FromInvoice creates response DTO from domain entity.
func FromInvoice(inv *invoice.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:        inv.ID.String(),
		Number:    inv.Number,
		Date:      inv.Date,
		SaleID:    inv.SaleID.String(),
		DueDate:   inv.DueDate,
		Status:    inv.Status,
		Version:   inv.Version,
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
}

// MarkOverdueResponse reports a batch overdue sweep.
type MarkOverdueResponse struct {
	Transitioned int `json:"transitioned"`
}
