package sale

import (
	"context"
	"fmt"
	"time"

	"varotra/internal/core/apperror"
	"varotra/internal/core/id"
	"varotra/internal/core/tx"
	"varotra/internal/core/types"
	"varotra/internal/domain"
	"varotra/internal/domain/audit"
	"varotra/internal/domain/catalogs/customer"
	"varotra/internal/domain/catalogs/product"
	"varotra/internal/domain/documents/invoice"
	"varotra/pkg/docnum"
	"varotra/pkg/logger"
)

// ProductStore is the slice of product persistence the sale builder needs.
type ProductStore interface {
	GetActiveForUpdate(ctx context.Context, id id.ID) (*product.Product, error)
	DecrementStock(ctx context.Context, id id.ID, qty int64) error
}

// CustomerStore resolves customers.
type CustomerStore interface {
	GetByID(ctx context.Context, id id.ID) (*customer.Customer, error)
}

// InvoiceIssuer creates the invoice inside the sale transaction.
type InvoiceIssuer interface {
	Issue(ctx context.Context, saleID id.ID, issueDate time.Time) (*invoice.Invoice, error)
}

// ItemInput is one requested sale line.
type ItemInput struct {
	ProductID id.ID
	Quantity  int64
}

// CreateSaleInput carries everything needed to record a sale.
type CreateSaleInput struct {
	CustomerID id.ID
	Items      []ItemInput

	// TaxRate overrides the default VAT percentage when set
	TaxRate *types.Money

	Notes string

	// Date overrides the business date (defaults to now, UTC)
	Date *time.Time
}

// Service builds sale documents. Stock is checked and decremented,
// the sale persisted, and the invoice issued in one transaction.
type Service struct {
	repo      Repository
	products  ProductStore
	customers CustomerStore
	issuer    InvoiceIssuer
	txManager tx.Manager
	docnum    *docnum.Generator
	audit     audit.Recorder
}

// NewService creates a new sale service.
func NewService(
	repo Repository,
	products ProductStore,
	customers CustomerStore,
	issuer InvoiceIssuer,
	txManager tx.Manager,
	gen *docnum.Generator,
	recorder audit.Recorder,
) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		customers: customers,
		issuer:    issuer,
		txManager: txManager,
		docnum:    gen,
		audit:     recorder,
	}
}

// CreateSale records a sale as one unit of work: per-item stock check
// against live quantities, atomic decrement, price capture, totals,
// invoice issuance. Any failure rolls everything back; no partial
// stock movement or orphan document survives.
func (s *Service) CreateSale(ctx context.Context, input CreateSaleInput) (*Sale, *invoice.Invoice, error) {
	if err := validateInput(input); err != nil {
		return nil, nil, err
	}

	doc := NewSale(input.CustomerID)
	doc.Number = s.docnum.NextSaleNumber()
	doc.Notes = input.Notes
	if input.TaxRate != nil {
		doc.SetTaxRate(*input.TaxRate)
	}
	if input.Date != nil {
		doc.Date = input.Date.UTC()
	}

	var inv *invoice.Invoice
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		cust, err := s.customers.GetByID(ctx, input.CustomerID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("customer", input.CustomerID.String())
			}
			return err
		}
		if !cust.Active {
			return apperror.NewNotFound("customer", input.CustomerID.String())
		}

		for _, item := range input.Items {
			// Row lock serializes concurrent sales of the same product.
			p, err := s.products.GetActiveForUpdate(ctx, item.ProductID)
			if err != nil {
				if apperror.IsNotFound(err) {
					return apperror.NewNotFound("product", item.ProductID.String())
				}
				return err
			}

			if p.StockActual < item.Quantity {
				return apperror.NewInsufficientStock(item.ProductID.String(), item.Quantity, p.StockActual)
			}

			if err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}

			doc.AddLine(item.ProductID, item.Quantity, p.UnitPrice)
		}

		if err := doc.Validate(ctx); err != nil {
			return err
		}

		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create sale: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		inv, err = s.issuer.Issue(ctx, doc.ID, doc.Date)
		if err != nil {
			return fmt.Errorf("issue invoice: %w", err)
		}

		return s.audit.Record(ctx, "sale", doc.ID, audit.ActionCreate, map[string]any{
			"number":         doc.Number,
			"customer_id":    doc.CustomerID.String(),
			"lines":          len(doc.Lines),
			"total_with_tax": doc.TotalWithTax.String(),
		})
	})
	if err != nil {
		if apperror.IsAppError(err) {
			return nil, nil, err
		}
		return nil, nil, apperror.NewTransactionFailure(err)
	}

	logger.Info(ctx, "sale created",
		"id", doc.ID, "number", doc.Number, "invoice", inv.Number)
	return doc, inv, nil
}

func validateInput(input CreateSaleInput) error {
	if id.IsNil(input.CustomerID) {
		return apperror.NewInvalidInput("customer is required").
			WithDetail("field", "customerId")
	}
	if len(input.Items) == 0 {
		return apperror.NewInvalidInput("at least one item is required").
			WithDetail("field", "items")
	}
	for i, item := range input.Items {
		if id.IsNil(item.ProductID) {
			return apperror.NewInvalidInput("product is required").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		if item.Quantity <= 0 {
			return apperror.NewInvalidInput("quantity must be positive").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
	}
	if input.TaxRate != nil && input.TaxRate.IsNegative() {
		return apperror.NewInvalidInput("tax rate cannot be negative").
			WithDetail("field", "taxRate")
	}
	return nil
}

// GetByID retrieves a sale with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Sale, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("sale", docID.String())
		}
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// GetByNumber retrieves a sale by document number, with lines.
func (s *Service) GetByNumber(ctx context.Context, number string) (*Sale, error) {
	doc, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("sale", number)
		}
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// List retrieves sales with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Sale], error) {
	return s.repo.List(ctx, filter)
}
