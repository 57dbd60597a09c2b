package invoice

import (
	"context"
	"time"

	"varotra/internal/core/id"
	"varotra/internal/domain"
)

// Repository defines operations for invoice documents.
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error)
	GetByNumber(ctx context.Context, number string) (*Invoice, error)
	GetBySaleID(ctx context.Context, saleID id.ID) (*Invoice, error)
	UpdateStatus(ctx context.Context, invoiceID id.ID, status Status) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Invoice], error)
}

// ListFilter for filtering invoices.
type ListFilter struct {
	domain.ListFilter

	Status   *Status
	DateFrom *time.Time
	DateTo   *time.Time

	// DueBefore selects invoices whose due date has passed,
	// used by the overdue sweep.
	DueBefore *time.Time
}
