package invoicedoc

import (
	"fmt"
	"strings"

	"varotra/internal/core/types"
)

// TextRenderer produces a fixed-layout plain text invoice. Output is
// byte-identical for the same Document, which makes it the reference
// format for tests and diffing.
type TextRenderer struct{}

// NewTextRenderer creates a text renderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

func (r *TextRenderer) ContentType() string { return "text/plain; charset=utf-8" }
func (r *TextRenderer) FileExt() string     { return "txt" }

// Render writes the invoice as fixed-width text.
func (r *TextRenderer) Render(doc *Document) ([]byte, error) {
	var b strings.Builder

	rule := strings.Repeat("=", 72)
	thin := strings.Repeat("-", 72)

	b.WriteString(rule + "\n")
	b.WriteString(center("FACTURE", 72) + "\n")
	b.WriteString(rule + "\n\n")

	fmt.Fprintf(&b, "%-18s %s\n", "Numero:", doc.Number)
	fmt.Fprintf(&b, "%-18s %s\n", "Date d'emission:", doc.IssueDate.Format(dateLayout))
	fmt.Fprintf(&b, "%-18s %s\n", "Date d'echeance:", dueDateOrNA(doc))
	fmt.Fprintf(&b, "%-18s %s\n", "Statut:", doc.Status)
	fmt.Fprintf(&b, "%-18s %s\n", "Vente:", doc.SaleNumber)

	b.WriteString("\nClient\n" + thin + "\n")
	fmt.Fprintf(&b, "%-11s %s\n", "Nom:", doc.Customer.Name)
	fmt.Fprintf(&b, "%-11s %s\n", "Email:", doc.Customer.Email)
	fmt.Fprintf(&b, "%-11s %s\n", "Telephone:", doc.Customer.Phone)
	fmt.Fprintf(&b, "%-11s %s\n", "Adresse:", doc.Customer.Address)

	b.WriteString("\n" + thin + "\n")
	fmt.Fprintf(&b, "%-28s %9s %16s %16s\n", "Produit", "Quantite", "Prix unitaire", "Sous-total")
	b.WriteString(thin + "\n")
	for _, line := range doc.Lines {
		fmt.Fprintf(&b, "%-28s %9d %16s %16s\n",
			truncate(line.ProductName, 28),
			line.Quantity,
			types.FormatMGA(line.UnitPrice),
			types.FormatMGA(line.Subtotal))
	}
	b.WriteString(thin + "\n")

	taxLabel := fmt.Sprintf("TVA (%s%%)", doc.TaxRate.String())
	fmt.Fprintf(&b, "%55s %16s\n", "Total HT", types.FormatMGA(doc.TotalBeforeTax))
	fmt.Fprintf(&b, "%55s %16s\n", taxLabel, types.FormatMGA(doc.Tax))
	fmt.Fprintf(&b, "%55s %16s\n", "Total TTC", types.FormatMGA(doc.TotalWithTax))

	if doc.Notes != "" {
		b.WriteString("\nNotes\n" + thin + "\n")
		b.WriteString(doc.Notes + "\n")
	}

	b.WriteString("\n" + rule + "\n")

	return []byte(b.String()), nil
}

func dueDateOrNA(doc *Document) string {
	if doc.DueDate.IsZero() {
		return NotAvailable
	}
	return doc.DueDate.Format(dateLayout)
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

// truncate shortens s to max runes. Cutting on runes rather than
// bytes keeps multi-byte names valid UTF-8.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
