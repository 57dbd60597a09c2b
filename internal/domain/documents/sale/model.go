// Package sale provides the Sale document: a multi-line sale recorded
// against a customer, with stock reserved at creation time.
package sale

import (
	"context"

	"varotra/internal/core/apperror"
	"varotra/internal/core/entity"
	"varotra/internal/core/id"
	"varotra/internal/core/types"
)

// DefaultTaxRate is the VAT percentage applied when none is given.
const DefaultTaxRate = 20

// Status defines the lifecycle state of a sale.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Sale represents a sale document.
type Sale struct {
	entity.Document

	// CustomerID references the buyer
	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// TaxRate is the VAT percentage applied to the whole document
	TaxRate types.Money `db:"tax_rate" json:"taxRate"`

	// Totals (calculated from lines)
	TotalBeforeTax types.Money `db:"total_before_tax" json:"totalBeforeTax"`
	TotalWithTax   types.Money `db:"total_with_tax" json:"totalWithTax"`

	// Status is the lifecycle state
	Status Status `db:"status" json:"status"`

	// Table part: sold items
	Lines []Line `db:"-" json:"lines"`
}

// Line represents one sold item. UnitPrice is captured from the
// product at sale time; later price changes never affect it.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID       `db:"product_id" json:"productId"`
	Quantity  int64       `db:"quantity" json:"quantity"`
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`
	Subtotal  types.Money `db:"subtotal" json:"subtotal"`
}

// NewSale creates a sale document for a customer.
func NewSale(customerID id.ID) *Sale {
	return &Sale{
		Document:   entity.NewDocument(),
		CustomerID: customerID,
		TaxRate:    types.NewMoneyFromInt(DefaultTaxRate),
		Status:     StatusConfirmed,
		Lines:      make([]Line, 0),
	}
}

// AddLine adds a line to the sale and recalculates totals.
func (s *Sale) AddLine(productID id.ID, quantity int64, unitPrice types.Money) {
	line := Line{
		LineID:    id.New(),
		LineNo:    len(s.Lines) + 1,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Subtotal:  unitPrice.Mul(types.NewMoneyFromInt(quantity)),
	}

	s.Lines = append(s.Lines, line)
	s.recalculateTotals()
}

func (s *Sale) recalculateTotals() {
	s.TotalBeforeTax = types.Zero()

	for _, line := range s.Lines {
		s.TotalBeforeTax = s.TotalBeforeTax.Add(line.Subtotal)
	}

	// withTax = beforeTax * (1 + rate/100)
	multiplier := types.NewMoneyFromInt(1).Add(s.TaxRate.Div(types.NewMoneyFromInt(100)))
	s.TotalWithTax = s.TotalBeforeTax.Mul(multiplier)
}

// SetTaxRate changes the tax rate and recalculates totals.
func (s *Sale) SetTaxRate(rate types.Money) {
	s.TaxRate = rate
	s.recalculateTotals()
}

// Validate implements entity.Validatable.
func (s *Sale) Validate(ctx context.Context) error {
	if err := s.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(s.CustomerID) {
		return apperror.NewInvalidInput("customer is required").
			WithDetail("field", "customerId")
	}

	if s.TaxRate.IsNegative() {
		return apperror.NewInvalidInput("tax rate cannot be negative").
			WithDetail("field", "taxRate")
	}

	if len(s.Lines) == 0 {
		return apperror.NewInvalidInput("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range s.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewInvalidInput("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity <= 0 {
			return apperror.NewInvalidInput("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// IsConfirmed reports whether the sale counts toward stock and revenue.
func (s *Sale) IsConfirmed() bool {
	return s.Status == StatusConfirmed
}
