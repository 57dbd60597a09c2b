package invoicedoc

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"varotra/internal/core/apperror"
	"varotra/internal/core/id"
	"varotra/internal/core/types"
	"varotra/internal/domain/catalogs/customer"
	"varotra/internal/domain/catalogs/product"
	"varotra/internal/domain/documents/invoice"
	"varotra/internal/domain/documents/sale"
)

func sampleDocument() *Document {
	return &Document{
		Number:     "FACT-20260115-AB12CD34",
		IssueDate:  time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		DueDate:    time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC),
		Status:     "UNPAID",
		SaleNumber: "VTE-20260115-EF56AB78",
		Customer: CustomerBlock{
			Name:    "Rakoto Jean",
			Email:   "rakoto@example.mg",
			Phone:   NotAvailable,
			Address: NotAvailable,
		},
		Lines: []LineView{
			{ProductName: "Savon", Quantity: 3, UnitPrice: types.NewMoneyFromInt(1000), Subtotal: types.NewMoneyFromInt(3000)},
			{ProductName: "Riz 5kg", Quantity: 1, UnitPrice: types.NewMoneyFromInt(12500), Subtotal: types.NewMoneyFromInt(12500)},
		},
		TaxRate:        types.NewMoneyFromInt(20),
		TotalBeforeTax: types.NewMoneyFromInt(15500),
		Tax:            types.NewMoneyFromInt(3100),
		TotalWithTax:   types.NewMoneyFromInt(18600),
	}
}

func TestTextRenderDeterministic(t *testing.T) {
	r := NewTextRenderer()
	doc := sampleDocument()

	first, err := r.Render(doc)
	require.NoError(t, err)
	second, err := r.Render(doc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTextRenderContent(t *testing.T) {
	r := NewTextRenderer()
	out, err := r.Render(sampleDocument())
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "FACTURE")
	assert.Contains(t, text, "FACT-20260115-AB12CD34")
	assert.Contains(t, text, "15/01/2026")
	assert.Contains(t, text, "14/02/2026")
	assert.Contains(t, text, "UNPAID")
	assert.Contains(t, text, "Rakoto Jean")
	assert.Contains(t, text, "12 500 MGA")
	assert.Contains(t, text, "TVA (20%)")
	assert.Contains(t, text, "15 500 MGA")
	assert.Contains(t, text, "18 600 MGA")

	// No notes section when notes are empty.
	assert.NotContains(t, text, "Notes")
}

func TestTextRenderNotes(t *testing.T) {
	r := NewTextRenderer()
	doc := sampleDocument()
	doc.Notes = "Livraison avant midi"

	out, err := r.Render(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Notes")
	assert.Contains(t, string(out), "Livraison avant midi")
}

func TestTextRenderTruncatesLongNameOnRunes(t *testing.T) {
	r := NewTextRenderer()
	doc := sampleDocument()
	// 40 two-byte runes; a byte-based cut at the column boundary would
	// split one in half.
	doc.Lines[0].ProductName = strings.Repeat("é", 40)

	out, err := r.Render(doc)
	require.NoError(t, err)

	assert.True(t, utf8.Valid(out))
	assert.Contains(t, string(out), strings.Repeat("é", 25)+"...")
}

func TestPDFRenderDeterministic(t *testing.T) {
	r := NewPDFRenderer()
	doc := sampleDocument()

	first, err := r.Render(doc)
	require.NoError(t, err)
	second, err := r.Render(doc)
	require.NoError(t, err)

	require.NotEmpty(t, first)
	assert.True(t, strings.HasPrefix(string(first), "%PDF"))
	assert.Equal(t, first, second)
}

// --- builder ---

type stubInvoices struct{ inv *invoice.Invoice }

func (s stubInvoices) GetByID(ctx context.Context, invoiceID id.ID) (*invoice.Invoice, error) {
	if s.inv == nil || s.inv.ID != invoiceID {
		return nil, apperror.NewNotFound("invoice", invoiceID.String())
	}
	return s.inv, nil
}

type stubSales struct{ doc *sale.Sale }

func (s stubSales) GetByID(ctx context.Context, saleID id.ID) (*sale.Sale, error) {
	if s.doc == nil || s.doc.ID != saleID {
		return nil, apperror.NewNotFound("sale", saleID.String())
	}
	return s.doc, nil
}

type stubCustomers struct{ cust *customer.Customer }

func (s stubCustomers) GetByID(ctx context.Context, customerID id.ID) (*customer.Customer, error) {
	if s.cust == nil || s.cust.ID != customerID {
		return nil, apperror.NewNotFound("customer", customerID.String())
	}
	return s.cust, nil
}

type stubProducts struct{ byID map[id.ID]*product.Product }

func (s stubProducts) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	p, ok := s.byID[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	return p, nil
}

func TestBuilderAssemblesDocument(t *testing.T) {
	ctx := context.Background()

	cust := customer.NewCustomer("CLT-001", "Rakoto Jean")
	email := "rakoto@example.mg"
	cust.Email = &email
	// Phone and address left unset on purpose.

	soap := product.NewProduct("PRD-001", "Savon", types.NewMoneyFromInt(1000))

	sl := sale.NewSale(cust.ID)
	sl.Number = "VTE-20260115-EF56AB78"
	sl.Notes = "Payer en especes"
	sl.AddLine(soap.ID, 3, soap.UnitPrice)

	inv := invoice.NewInvoice(sl.ID, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	inv.Number = "FACT-20260115-AB12CD34"

	b := NewBuilder(
		stubInvoices{inv: inv},
		stubSales{doc: sl},
		stubCustomers{cust: cust},
		stubProducts{byID: map[id.ID]*product.Product{soap.ID: soap}},
	)

	doc, err := b.Build(ctx, inv.ID)
	require.NoError(t, err)

	assert.Equal(t, "FACT-20260115-AB12CD34", doc.Number)
	assert.Equal(t, "UNPAID", doc.Status)
	assert.Equal(t, "VTE-20260115-EF56AB78", doc.SaleNumber)

	assert.Equal(t, "Rakoto Jean", doc.Customer.Name)
	assert.Equal(t, "rakoto@example.mg", doc.Customer.Email)
	assert.Equal(t, NotAvailable, doc.Customer.Phone)
	assert.Equal(t, NotAvailable, doc.Customer.Address)

	require.Len(t, doc.Lines, 1)
	assert.Equal(t, "Savon", doc.Lines[0].ProductName)
	assert.Equal(t, int64(3), doc.Lines[0].Quantity)

	assert.True(t, doc.TotalBeforeTax.Equal(types.NewMoneyFromInt(3000)))
	assert.True(t, doc.Tax.Equal(types.NewMoneyFromInt(600)))
	assert.True(t, doc.TotalWithTax.Equal(types.NewMoneyFromInt(3600)))
	assert.Equal(t, "Payer en especes", doc.Notes)
}

func TestBuilderMissingInvoice(t *testing.T) {
	b := NewBuilder(stubInvoices{}, stubSales{}, stubCustomers{}, stubProducts{})

	_, err := b.Build(context.Background(), id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
