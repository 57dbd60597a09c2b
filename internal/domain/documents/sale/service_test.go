package sale

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"varotra/internal/core/apperror"
	"varotra/internal/core/id"
	"varotra/internal/core/types"
	"varotra/internal/domain"
	"varotra/internal/domain/audit"
	"varotra/internal/domain/catalogs/customer"
	"varotra/internal/domain/catalogs/product"
	"varotra/internal/domain/documents/invoice"
	"varotra/pkg/docnum"
)

// --- in-memory fakes ---

type memProducts struct {
	byID map[id.ID]*product.Product
}

func (m *memProducts) GetActiveForUpdate(ctx context.Context, productID id.ID) (*product.Product, error) {
	p, ok := m.byID[productID]
	if !ok || !p.Active {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	return p, nil
}

func (m *memProducts) DecrementStock(ctx context.Context, productID id.ID, qty int64) error {
	p, ok := m.byID[productID]
	if !ok {
		return apperror.NewNotFound("product", productID.String())
	}
	if p.StockActual < qty {
		return apperror.NewInsufficientStock(productID.String(), qty, p.StockActual)
	}
	p.StockActual -= qty
	return nil
}

type memCustomers struct {
	byID map[id.ID]*customer.Customer
}

func (m *memCustomers) GetByID(ctx context.Context, customerID id.ID) (*customer.Customer, error) {
	c, ok := m.byID[customerID]
	if !ok {
		return nil, apperror.NewNotFound("customer", customerID.String())
	}
	return c, nil
}

type memSales struct {
	docs      map[id.ID]*Sale
	lines     map[id.ID][]Line
	createErr error
}

func (m *memSales) Create(ctx context.Context, doc *Sale) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.docs[doc.ID] = doc
	return nil
}

func (m *memSales) GetByID(ctx context.Context, docID id.ID) (*Sale, error) {
	doc, ok := m.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("sale", docID.String())
	}
	return doc, nil
}

func (m *memSales) GetByNumber(ctx context.Context, number string) (*Sale, error) {
	for _, doc := range m.docs {
		if doc.Number == number {
			return doc, nil
		}
	}
	return nil, apperror.NewNotFound("sale", number)
}

func (m *memSales) Update(ctx context.Context, doc *Sale) error {
	m.docs[doc.ID] = doc
	return nil
}

func (m *memSales) GetLines(ctx context.Context, docID id.ID) ([]Line, error) {
	return m.lines[docID], nil
}

func (m *memSales) SaveLines(ctx context.Context, docID id.ID, lines []Line) error {
	m.lines[docID] = lines
	return nil
}

func (m *memSales) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Sale], error) {
	out := make([]*Sale, 0, len(m.docs))
	for _, doc := range m.docs {
		out = append(out, doc)
	}
	return domain.ListResult[*Sale]{Items: out, TotalCount: int64(len(out))}, nil
}

type memInvoices struct {
	byID map[id.ID]*invoice.Invoice
}

func (m *memInvoices) Create(ctx context.Context, inv *invoice.Invoice) error {
	m.byID[inv.ID] = inv
	return nil
}

func (m *memInvoices) GetByID(ctx context.Context, invoiceID id.ID) (*invoice.Invoice, error) {
	inv, ok := m.byID[invoiceID]
	if !ok {
		return nil, apperror.NewNotFound("invoice", invoiceID.String())
	}
	return inv, nil
}

func (m *memInvoices) GetByNumber(ctx context.Context, number string) (*invoice.Invoice, error) {
	for _, inv := range m.byID {
		if inv.Number == number {
			return inv, nil
		}
	}
	return nil, apperror.NewNotFound("invoice", number)
}

func (m *memInvoices) GetBySaleID(ctx context.Context, saleID id.ID) (*invoice.Invoice, error) {
	for _, inv := range m.byID {
		if inv.SaleID == saleID {
			return inv, nil
		}
	}
	return nil, apperror.NewNotFound("invoice", saleID.String())
}

func (m *memInvoices) UpdateStatus(ctx context.Context, invoiceID id.ID, status invoice.Status) error {
	inv, ok := m.byID[invoiceID]
	if !ok {
		return apperror.NewNotFound("invoice", invoiceID.String())
	}
	inv.Status = status
	return nil
}

func (m *memInvoices) List(ctx context.Context, filter invoice.ListFilter) (domain.ListResult[*invoice.Invoice], error) {
	out := make([]*invoice.Invoice, 0, len(m.byID))
	for _, inv := range m.byID {
		out = append(out, inv)
	}
	return domain.ListResult[*invoice.Invoice]{Items: out, TotalCount: int64(len(out))}, nil
}

// snapshotTxManager copies the fake stores before each transaction and
// restores them when the body returns an error, mimicking a rollback.
type snapshotTxManager struct {
	products *memProducts
	sales    *memSales
	invoices *memInvoices
}

func (m *snapshotTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	stocks := make(map[id.ID]int64, len(m.products.byID))
	for pid, p := range m.products.byID {
		stocks[pid] = p.StockActual
	}
	docs := make(map[id.ID]*Sale, len(m.sales.docs))
	for did, d := range m.sales.docs {
		docs[did] = d
	}
	lines := make(map[id.ID][]Line, len(m.sales.lines))
	for did, l := range m.sales.lines {
		lines[did] = l
	}
	invoices := make(map[id.ID]*invoice.Invoice, len(m.invoices.byID))
	for iid, inv := range m.invoices.byID {
		invoices[iid] = inv
	}

	if err := fn(ctx); err != nil {
		for pid, stock := range stocks {
			m.products.byID[pid].StockActual = stock
		}
		m.sales.docs = docs
		m.sales.lines = lines
		m.invoices.byID = invoices
		return err
	}
	return nil
}

// --- fixture ---

type fixture struct {
	svc      *Service
	products *memProducts
	sales    *memSales
	invoices *memInvoices

	customerID id.ID
	soapID     id.ID
	riceID     id.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cust := customer.NewCustomer("CLT-001", "Rakoto Jean")
	soap := product.NewProduct("PRD-001", "Savon", types.NewMoneyFromInt(1000))
	soap.StockActual = 10
	rice := product.NewProduct("PRD-002", "Riz 5kg", types.NewMoneyFromInt(25000))
	rice.StockActual = 2

	products := &memProducts{byID: map[id.ID]*product.Product{
		soap.ID: soap,
		rice.ID: rice,
	}}
	customers := &memCustomers{byID: map[id.ID]*customer.Customer{
		cust.ID: cust,
	}}
	sales := &memSales{docs: map[id.ID]*Sale{}, lines: map[id.ID][]Line{}}
	invoices := &memInvoices{byID: map[id.ID]*invoice.Invoice{}}

	txm := &snapshotTxManager{products: products, sales: sales, invoices: invoices}
	gen := docnum.New()
	issuer := invoice.NewService(invoices, txm, gen, audit.NopRecorder{})

	svc := NewService(sales, products, customers, issuer, txm, gen, audit.NopRecorder{})

	return &fixture{
		svc:        svc,
		products:   products,
		sales:      sales,
		invoices:   invoices,
		customerID: cust.ID,
		soapID:     soap.ID,
		riceID:     rice.ID,
	}
}

// --- tests ---

func TestCreateSaleHappyPath(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	doc, inv, err := fx.svc.CreateSale(ctx, CreateSaleInput{
		CustomerID: fx.customerID,
		Items:      []ItemInput{{ProductID: fx.soapID, Quantity: 3}},
	})
	require.NoError(t, err)

	// 3 x 1000 at 20% VAT
	assert.True(t, doc.TotalBeforeTax.Equal(types.NewMoneyFromInt(3000)),
		"total before tax: %s", doc.TotalBeforeTax)
	assert.True(t, doc.TotalWithTax.Equal(types.NewMoneyFromInt(3600)),
		"total with tax: %s", doc.TotalWithTax)

	require.Len(t, doc.Lines, 1)
	line := doc.Lines[0]
	assert.Equal(t, 1, line.LineNo)
	assert.Equal(t, int64(3), line.Quantity)
	assert.True(t, line.UnitPrice.Equal(types.NewMoneyFromInt(1000)))
	assert.True(t, line.Subtotal.Equal(types.NewMoneyFromInt(3000)))

	assert.Equal(t, int64(7), fx.products.byID[fx.soapID].StockActual)

	assert.Regexp(t, regexp.MustCompile(`^VTE-\d{8}-[0-9A-F]{8}$`), doc.Number)

	// Invoice issued in the same operation.
	require.NotNil(t, inv)
	assert.Regexp(t, regexp.MustCompile(`^FACT-\d{8}-[0-9A-F]{8}$`), inv.Number)
	assert.Equal(t, doc.ID, inv.SaleID)
	assert.Equal(t, invoice.StatusUnpaid, inv.Status)
	assert.Equal(t, doc.Date.AddDate(0, 0, 30), inv.DueDate)

	// Persisted.
	assert.Len(t, fx.sales.docs, 1)
	assert.Len(t, fx.sales.lines[doc.ID], 1)
	assert.Len(t, fx.invoices.byID, 1)
}

func TestCreateSaleCapturesPriceAtSaleTime(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	doc, _, err := fx.svc.CreateSale(ctx, CreateSaleInput{
		CustomerID: fx.customerID,
		Items:      []ItemInput{{ProductID: fx.soapID, Quantity: 2}},
	})
	require.NoError(t, err)

	// Price change after the sale must not touch recorded lines.
	fx.products.byID[fx.soapID].UnitPrice = types.NewMoneyFromInt(9999)

	stored := fx.sales.lines[doc.ID]
	require.Len(t, stored, 1)
	assert.True(t, stored[0].UnitPrice.Equal(types.NewMoneyFromInt(1000)))
	assert.True(t, stored[0].Subtotal.Equal(types.NewMoneyFromInt(2000)))
}

func TestCreateSaleInsufficientStockRollsBackEverything(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	// First item fits, second does not. Rice has stock 2.
	_, _, err := fx.svc.CreateSale(ctx, CreateSaleInput{
		CustomerID: fx.customerID,
		Items: []ItemInput{
			{ProductID: fx.soapID, Quantity: 3},
			{ProductID: fx.riceID, Quantity: 5},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, fx.riceID.String(), appErr.Details["product_id"])
	assert.Equal(t, int64(5), appErr.Details["requested"])
	assert.Equal(t, int64(2), appErr.Details["available"])

	// Soap decrement was undone with the rest of the transaction.
	assert.Equal(t, int64(10), fx.products.byID[fx.soapID].StockActual)
	assert.Equal(t, int64(2), fx.products.byID[fx.riceID].StockActual)
	assert.Empty(t, fx.sales.docs)
	assert.Empty(t, fx.invoices.byID)
}

func TestCreateSaleExactStockSucceeds(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	_, _, err := fx.svc.CreateSale(ctx, CreateSaleInput{
		CustomerID: fx.customerID,
		Items:      []ItemInput{{ProductID: fx.riceID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), fx.products.byID[fx.riceID].StockActual)
}

func TestCreateSaleUnknownCustomer(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	_, _, err := fx.svc.CreateSale(ctx, CreateSaleInput{
		CustomerID: id.New(),
		Items:      []ItemInput{{ProductID: fx.soapID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreateSaleInactiveCustomer(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	inactive := customer.NewCustomer("CLT-002", "Ancien Client")
	inactive.Deactivate()
	fx.svc.customers.(*memCustomers).byID[inactive.ID] = inactive

	_, _, err := fx.svc.CreateSale(ctx, CreateSaleInput{
		CustomerID: inactive.ID,
		Items:      []ItemInput{{ProductID: fx.soapID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, int64(10), fx.products.byID[fx.soapID].StockActual)
}

func TestCreateSaleInactiveProduct(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	fx.products.byID[fx.soapID].Deactivate()

	_, _, err := fx.svc.CreateSale(ctx, CreateSaleInput{
		CustomerID: fx.customerID,
		Items:      []ItemInput{{ProductID: fx.soapID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreateSaleInvalidInput(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	cases := []struct {
		name  string
		input CreateSaleInput
	}{
		{"no items", CreateSaleInput{CustomerID: fx.customerID}},
		{"zero quantity", CreateSaleInput{
			CustomerID: fx.customerID,
			Items:      []ItemInput{{ProductID: fx.soapID, Quantity: 0}},
		}},
		{"negative quantity", CreateSaleInput{
			CustomerID: fx.customerID,
			Items:      []ItemInput{{ProductID: fx.soapID, Quantity: -2}},
		}},
		{"nil customer", CreateSaleInput{
			Items: []ItemInput{{ProductID: fx.soapID, Quantity: 1}},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := fx.svc.CreateSale(ctx, tc.input)
			require.Error(t, err)
			assert.True(t, apperror.IsInvalidInput(err))
		})
	}

	assert.Equal(t, int64(10), fx.products.byID[fx.soapID].StockActual)
	assert.Empty(t, fx.sales.docs)
}

func TestCreateSalePersistenceFailureWrapsAndRollsBack(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	fx.sales.createErr = errors.New("connection reset")

	_, _, err := fx.svc.CreateSale(ctx, CreateSaleInput{
		CustomerID: fx.customerID,
		Items:      []ItemInput{{ProductID: fx.soapID, Quantity: 3}},
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeTransactionFailure, appErr.Code)

	assert.Equal(t, int64(10), fx.products.byID[fx.soapID].StockActual)
	assert.Empty(t, fx.invoices.byID)
}

func TestCreateSaleCustomTaxRate(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	rate := types.NewMoneyFromInt(0)
	doc, _, err := fx.svc.CreateSale(ctx, CreateSaleInput{
		CustomerID: fx.customerID,
		Items:      []ItemInput{{ProductID: fx.soapID, Quantity: 3}},
		TaxRate:    &rate,
	})
	require.NoError(t, err)
	assert.True(t, doc.TotalWithTax.Equal(types.NewMoneyFromInt(3000)))
}

func TestGetByIDLoadsLines(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	doc, _, err := fx.svc.CreateSale(ctx, CreateSaleInput{
		CustomerID: fx.customerID,
		Items:      []ItemInput{{ProductID: fx.soapID, Quantity: 2}},
	})
	require.NoError(t, err)

	got, err := fx.svc.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.Number, got.Number)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, fx.soapID, got.Lines[0].ProductID)
}

func TestGetByIDNotFound(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	_, err := fx.svc.GetByID(ctx, id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
