// Package docnum generates document numbers of the form
// PREFIX-YYYYMMDD-XXXXXXXX, where the suffix is an 8-character
// uppercase random token. Numbers need no database coordination;
// the UNIQUE constraint on the number column backstops the
// negligible collision probability of the random token.
package docnum

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// SalePrefix is the prefix for sale numbers.
	SalePrefix = "VTE"

	// InvoicePrefix is the prefix for invoice numbers.
	InvoicePrefix = "FACT"

	tokenLen = 8
	dateFmt  = "20060102"
)

// Generator produces document numbers. The zero value is not usable;
// construct with New or NewWithClock.
type Generator struct {
	now func() time.Time
}

// New creates a Generator using the system clock.
func New() *Generator {
	return &Generator{now: time.Now}
}

// NewWithClock creates a Generator with an injected clock.
// Used by tests to pin the date part.
func NewWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Next returns the next number for an arbitrary prefix.
func (g *Generator) Next(prefix string) string {
	var b strings.Builder
	b.Grow(len(prefix) + 1 + len(dateFmt) + 1 + tokenLen)
	b.WriteString(prefix)
	b.WriteByte('-')
	b.WriteString(g.now().Format(dateFmt))
	b.WriteByte('-')
	b.WriteString(token())
	return b.String()
}

// NextSaleNumber returns a sale number (VTE-YYYYMMDD-XXXXXXXX).
func (g *Generator) NextSaleNumber() string {
	return g.Next(SalePrefix)
}

// NextInvoiceNumber returns an invoice number (FACT-YYYYMMDD-XXXXXXXX).
func (g *Generator) NextInvoiceNumber() string {
	return g.Next(InvoicePrefix)
}

// token is the first 8 characters of a random UUID, uppercased.
func token() string {
	return strings.ToUpper(uuid.NewString()[:tokenLen])
}
