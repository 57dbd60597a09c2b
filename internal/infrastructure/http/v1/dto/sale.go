package dto

import (
	"time"

	"varotra/internal/core/id"
	"varotra/internal/core/types"
	"varotra/internal/domain/documents/sale"
)

// --- Request DTOs ---

// CreateSaleRequest is the request body for recording a sale.
type CreateSaleRequest struct {
	CustomerID string            `json:"customerId" binding:"required"`
	Items      []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	TaxRate    *types.Money      `json:"taxRate"`
	Notes      string            `json:"notes,omitempty"`
	Date       *time.Time        `json:"date,omitempty"`
}

// SaleItemRequest is one requested line.
type SaleItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
}

// ToInput converts the request to service input. Malformed IDs parse
// to nil and are rejected by service validation.
func (r *CreateSaleRequest) ToInput() sale.CreateSaleInput {
	customerID, _ := id.Parse(r.CustomerID)

	input := sale.CreateSaleInput{
		CustomerID: customerID,
		Items:      make([]sale.ItemInput, 0, len(r.Items)),
		TaxRate:    r.TaxRate,
		Notes:      r.Notes,
		Date:       r.Date,
	}

	for _, item := range r.Items {
		productID, _ := id.Parse(item.ProductID)
		input.Items = append(input.Items, sale.ItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	return input
}

// SaleListQuery extends ListQuery with sale-specific filters.
type SaleListQuery struct {
	ListQuery
	CustomerID *string    `form:"customerId"`
	Status     *string    `form:"status"`
	DateFrom   *time.Time `form:"dateFrom"`
	DateTo     *time.Time `form:"dateTo"`
}

// ToSaleFilter converts query parameters to a sale filter.
func (q *SaleListQuery) ToSaleFilter() sale.ListFilter {
	filter := sale.ListFilter{
		ListFilter: q.ToFilter(),
		DateFrom:   q.DateFrom,
		DateTo:     q.DateTo,
	}
	if q.OrderBy == "" {
		filter.OrderBy = "-date"
	}

	if q.CustomerID != nil {
		if customerID, err := id.Parse(*q.CustomerID); err == nil {
			filter.CustomerID = &customerID
		}
	}
	if q.Status != nil {
		status := sale.Status(*q.Status)
		filter.Status = &status
	}

	return filter
}

// --- Response DTOs ---

// SaleResponse is the response body for a sale.
type SaleResponse struct {
	ID             string             `json:"id"`
	Number         string             `json:"number"`
	Date           time.Time          `json:"date"`
	CustomerID     string             `json:"customerId"`
	TaxRate        types.Money        `json:"taxRate"`
	TotalBeforeTax types.Money        `json:"totalBeforeTax"`
	TotalWithTax   types.Money        `json:"totalWithTax"`
	Status         sale.Status        `json:"status"`
	Notes          string             `json:"notes,omitempty"`
	Lines          []SaleLineResponse `json:"lines,omitempty"`
	Version        int                `json:"version"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

// SaleLineResponse is one sold item.
type SaleLineResponse struct {
	LineID    string      `json:"lineId"`
	LineNo    int         `json:"lineNo"`
	ProductID string      `json:"productId"`
	Quantity  int64       `json:"quantity"`
	UnitPrice types.Money `json:"unitPrice"`
	Subtotal  types.Money `json:"subtotal"`
}

// FromSale creates response DTO from domain entity.
func FromSale(doc *sale.Sale) *SaleResponse {
	resp := &SaleResponse{
		ID:             doc.ID.String(),
		Number:         doc.Number,
		Date:           doc.Date,
		CustomerID:     doc.CustomerID.String(),
		TaxRate:        doc.TaxRate,
		TotalBeforeTax: doc.TotalBeforeTax,
		TotalWithTax:   doc.TotalWithTax,
		Status:         doc.Status,
		Notes:          doc.Notes,
		Version:        doc.Version,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}

	resp.Lines = make([]SaleLineResponse, len(doc.Lines))
	for i, line := range doc.Lines {
		resp.Lines[i] = SaleLineResponse{
			LineID:    line.LineID.String(),
			LineNo:    line.LineNo,
			ProductID: line.ProductID.String(),
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal,
		}
	}

	return resp
}

// CreateSaleResponse pairs the created sale with its invoice.
type CreateSaleResponse struct {
	Sale    *SaleResponse    `json:"sale"`
	Invoice *InvoiceResponse `json:"invoice"`
}
