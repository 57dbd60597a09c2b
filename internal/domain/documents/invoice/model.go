// Package invoice provides the Invoice document: the billing record
// issued for a confirmed sale.
package invoice

import (
	"context"
	"time"

	"varotra/internal/core/apperror"
	"varotra/internal/core/entity"
	"varotra/internal/core/id"
)

// PaymentTermDays is the standard payment term applied to every invoice.
const PaymentTermDays = 30

// Status defines the payment state of an invoice.
type Status string

const (
	StatusUnpaid  Status = "unpaid"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// ParseStatus validates and converts a raw status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusUnpaid, StatusPaid, StatusOverdue:
		return Status(s), nil
	}
	return "", apperror.NewInvalidInput("invalid invoice status").
		WithDetail("field", "status").
		WithDetail("value", s)
}

// Invoice represents a billing document. Exactly one invoice exists
// per sale; it is created in the same transaction as the sale.
type Invoice struct {
	entity.Document

	// SaleID references the sale this invoice bills
	SaleID id.ID `db:"sale_id" json:"saleId"`

	// DueDate is the payment deadline (issue date + payment term)
	DueDate time.Time `db:"due_date" json:"dueDate"`

	// Status is the payment state
	Status Status `db:"status" json:"status"`
}

// NewInvoice creates an invoice for a sale, dated issueDate with the
// standard payment term. The number is assigned by the service.
func NewInvoice(saleID id.ID, issueDate time.Time) *Invoice {
	doc := entity.NewDocument()
	doc.Date = issueDate
	return &Invoice{
		Document: doc,
		SaleID:   saleID,
		DueDate:  issueDate.AddDate(0, 0, PaymentTermDays),
		Status:   StatusUnpaid,
	}
}

// Validate implements entity.Validatable interface.
func (inv *Invoice) Validate(ctx context.Context) error {
	if err := inv.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(inv.SaleID) {
		return apperror.NewInvalidInput("sale is required").
			WithDetail("field", "saleId")
	}

	if _, err := ParseStatus(string(inv.Status)); err != nil {
		return err
	}

	if inv.DueDate.Before(inv.Date) {
		return apperror.NewInvalidInput("due date cannot precede issue date").
			WithDetail("field", "dueDate")
	}

	return nil
}
