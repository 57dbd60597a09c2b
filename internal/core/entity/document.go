package entity

import (
	"context"
	"time"

	"varotra/internal/core/apperror"
)

// Document is the base type for business records: sales, invoices.
type Document struct {
	BaseEntity

	// Number is the document number (auto-generated, unique per document type)
	Number string `db:"number" json:"number"`

	// Date is the business date of the document
	Date time.Time `db:"date" json:"date"`

	// UpdatedAt is the last modification timestamp (UTC)
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// Notes is an optional free-form comment
	Notes string `db:"notes" json:"notes,omitempty"`
}

// NewDocument creates a new Document dated now.
func NewDocument() Document {
	now := time.Now().UTC()
	return Document{
		BaseEntity: NewBaseEntity(),
		Date:       now,
		UpdatedAt:  now,
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewInvalidInput("date is required").
			WithDetail("field", "date")
	}

	return nil
}

// Touch updates the UpdatedAt timestamp and increments version.
func (d *Document) Touch() {
	d.UpdatedAt = time.Now().UTC()
	d.BaseEntity.Touch()
}
