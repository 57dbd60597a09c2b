package invoicedoc

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"varotra/internal/core/types"
)

// PDFRenderer produces an A4 PDF invoice. Both PDF dates are pinned
// to the invoice issue date and the catalog is emitted in sorted
// order, so repeated renders of the same invoice are byte-identical.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDF renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) ContentType() string { return "application/pdf" }
func (r *PDFRenderer) FileExt() string     { return "pdf" }

// Render writes the invoice as a PDF document.
func (r *PDFRenderer) Render(doc *Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Sorted catalog keeps the font resource dictionary stable across
	// renders; map iteration order would otherwise leak into the bytes.
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(doc.IssueDate)
	pdf.SetModificationDate(doc.IssueDate)
	pdf.SetTitle("Facture "+doc.Number, true)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "FACTURE", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Invoice info
	pdf.SetFont("Helvetica", "", 10)
	info := [][2]string{
		{"Numero", doc.Number},
		{"Date d'emission", doc.IssueDate.Format(dateLayout)},
		{"Date d'echeance", dueDateOrNA(doc)},
		{"Statut", doc.Status},
		{"Vente", doc.SaleNumber},
	}
	for _, row := range info {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(80, 6, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Customer block
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Client", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	client := [][2]string{
		{"Nom", doc.Customer.Name},
		{"Email", doc.Customer.Email},
		{"Telephone", doc.Customer.Phone},
		{"Adresse", doc.Customer.Address},
	}
	for _, row := range client {
		pdf.CellFormat(30, 6, row[0]+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Line table
	const (
		colProduct  = 70.0
		colQty      = 25.0
		colPrice    = 45.0
		colSubtotal = 45.0
	)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(colProduct, 7, "Produit", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colQty, 7, "Quantite", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colPrice, 7, "Prix unitaire", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colSubtotal, 7, "Sous-total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range doc.Lines {
		pdf.CellFormat(colProduct, 7, line.ProductName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, 7, fmt.Sprintf("%d", line.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colPrice, 7, types.FormatMGA(line.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colSubtotal, 7, types.FormatMGA(line.Subtotal), "1", 1, "R", false, 0, "")
	}

	// Totals
	taxLabel := fmt.Sprintf("TVA (%s%%)", doc.TaxRate.String())
	totals := [][2]string{
		{"Total HT", types.FormatMGA(doc.TotalBeforeTax)},
		{taxLabel, types.FormatMGA(doc.Tax)},
		{"Total TTC", types.FormatMGA(doc.TotalWithTax)},
	}
	pdf.SetFont("Helvetica", "B", 10)
	for _, row := range totals {
		pdf.CellFormat(colProduct+colQty, 7, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(colPrice, 7, row[0], "1", 0, "R", false, 0, "")
		pdf.CellFormat(colSubtotal, 7, row[1], "1", 1, "R", false, 0, "")
	}

	// Notes
	if doc.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 6, doc.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
