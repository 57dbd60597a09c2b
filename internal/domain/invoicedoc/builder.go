package invoicedoc

import (
	"context"
	"fmt"
	"strings"

	"varotra/internal/core/apperror"
	"varotra/internal/core/id"
	"varotra/internal/domain/catalogs/customer"
	"varotra/internal/domain/catalogs/product"
	"varotra/internal/domain/documents/invoice"
	"varotra/internal/domain/documents/sale"
)

// InvoiceStore resolves invoices.
type InvoiceStore interface {
	GetByID(ctx context.Context, id id.ID) (*invoice.Invoice, error)
}

// SaleStore resolves sales with their lines loaded.
type SaleStore interface {
	GetByID(ctx context.Context, id id.ID) (*sale.Sale, error)
}

// CustomerStore resolves customers, including deactivated ones so
// historical invoices keep rendering.
type CustomerStore interface {
	GetByID(ctx context.Context, id id.ID) (*customer.Customer, error)
}

// ProductStore resolves products for line display names.
type ProductStore interface {
	GetByID(ctx context.Context, id id.ID) (*product.Product, error)
}

// Builder assembles invoice documents from persisted entities.
type Builder struct {
	invoices  InvoiceStore
	sales     SaleStore
	customers CustomerStore
	products  ProductStore
}

// NewBuilder creates a document builder.
func NewBuilder(invoices InvoiceStore, sales SaleStore, customers CustomerStore, products ProductStore) *Builder {
	return &Builder{
		invoices:  invoices,
		sales:     sales,
		customers: customers,
		products:  products,
	}
}

// Build resolves the invoice and every referenced entity into a view
// model. A missing reference is a NotFound error.
func (b *Builder) Build(ctx context.Context, invoiceID id.ID) (*Document, error) {
	inv, err := b.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("invoice", invoiceID.String())
		}
		return nil, err
	}

	sl, err := b.sales.GetByID(ctx, inv.SaleID)
	if err != nil {
		return nil, fmt.Errorf("resolve sale: %w", err)
	}

	cust, err := b.customers.GetByID(ctx, sl.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("resolve customer: %w", err)
	}

	doc := &Document{
		Number:     inv.Number,
		IssueDate:  inv.Date,
		DueDate:    inv.DueDate,
		Status:     strings.ToUpper(string(inv.Status)),
		SaleNumber: sl.Number,
		Customer: CustomerBlock{
			Name:    cust.Name,
			Email:   orNA(cust.Email),
			Phone:   orNA(cust.Phone),
			Address: orNA(cust.Address),
		},
		TaxRate:        sl.TaxRate,
		TotalBeforeTax: sl.TotalBeforeTax,
		Tax:            sl.TotalWithTax.Sub(sl.TotalBeforeTax),
		TotalWithTax:   sl.TotalWithTax,
		Notes:          sl.Notes,
	}

	doc.Lines = make([]LineView, 0, len(sl.Lines))
	for _, line := range sl.Lines {
		p, err := b.products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("resolve product %s: %w", line.ProductID, err)
		}
		doc.Lines = append(doc.Lines, LineView{
			ProductName: p.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.Subtotal,
		})
	}

	return doc, nil
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return NotAvailable
	}
	return *s
}
