// Package invoicedoc assembles printable invoice documents. A Builder
// resolves an invoice into a pure view model; Renderers turn that
// model into bytes. Rendering is a pure function of the model, so the
// same invoice always produces the same output.
package invoicedoc

import (
	"time"

	"varotra/internal/core/types"
)

// NotAvailable is printed for missing optional fields.
const NotAvailable = "N/A"

// dateLayout is the display format for all dates.
const dateLayout = "02/01/2006"

// Document is the renderer-agnostic view of one invoice.
type Document struct {
	Number     string
	IssueDate  time.Time
	DueDate    time.Time
	Status     string
	SaleNumber string

	Customer CustomerBlock
	Lines    []LineView

	TaxRate        types.Money
	TotalBeforeTax types.Money
	Tax            types.Money
	TotalWithTax   types.Money

	Notes string
}

// CustomerBlock holds the billed party with fallbacks already applied.
type CustomerBlock struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// LineView is one billed line.
type LineView struct {
	ProductName string
	Quantity    int64
	UnitPrice   types.Money
	Subtotal    types.Money
}

// Renderer turns a Document into a byte stream of some format.
type Renderer interface {
	Render(doc *Document) ([]byte, error)
	ContentType() string
	FileExt() string
}
