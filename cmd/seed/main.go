// Package main provides a CLI tool for seeding the database with demo data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"varotra/internal/core/types"
	"varotra/internal/domain/catalogs/customer"
	"varotra/internal/domain/catalogs/product"
	"varotra/internal/domain/documents/invoice"
	"varotra/internal/domain/documents/sale"
	"varotra/internal/infrastructure/storage/postgres"
	"varotra/internal/infrastructure/storage/postgres/catalog_repo"
	"varotra/internal/infrastructure/storage/postgres/document_repo"
	"varotra/pkg/docnum"
	"varotra/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)
	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	productRepo := catalog_repo.NewProductRepo(txManager)
	customerRepo := catalog_repo.NewCustomerRepo(txManager)
	saleRepo := document_repo.NewSaleRepo(txManager)
	invoiceRepo := document_repo.NewInvoiceRepo(txManager)

	gen := docnum.New()
	productService := product.NewService(productRepo, txManager, gen)
	customerService := customer.NewService(customerRepo, txManager, gen)
	invoiceService := invoice.NewService(invoiceRepo, txManager, gen, auditService)
	saleService := sale.NewService(
		saleRepo, productRepo, customerRepo, invoiceService, txManager, gen, auditService,
	)

	products, err := seedProducts(ctx, productService, log)
	if err != nil {
		log.Fatalw("failed to seed products", "error", err)
	}

	customers, err := seedCustomers(ctx, customerService, log)
	if err != nil {
		log.Fatalw("failed to seed customers", "error", err)
	}

	if os.Getenv("SEED_DEMO_SALES") == "true" {
		if err := seedSales(ctx, saleService, products, customers, log); err != nil {
			log.Fatalw("failed to seed sales", "error", err)
		}
	}

	log.Info("seeding complete")
}

func seedProducts(ctx context.Context, svc *product.Service, log *logger.Logger) ([]*product.Product, error) {
	specs := []struct {
		name     string
		price    string
		stock    int64
		category string
	}{
		{"Savon 250g", "1500", 120, "Hygiene"},
		{"Riz blanc 1kg", "3200", 80, "Alimentation"},
		{"Huile vegetale 1L", "9500", 40, "Alimentation"},
		{"Bougie standard", "800", 200, "Maison"},
		{"Cahier 100 pages", "2500", 60, "Papeterie"},
	}

	items := make([]*product.Product, 0, len(specs))
	for _, spec := range specs {
		item := product.NewProduct("", spec.name, types.MustMoney(spec.price))
		item.StockActual = spec.stock
		category := spec.category
		item.Category = &category

		if err := svc.Create(ctx, item); err != nil {
			return nil, fmt.Errorf("create product %q: %w", spec.name, err)
		}
		log.Infow("product seeded", "code", item.Code, "name", item.Name)
		items = append(items, item)
	}

	return items, nil
}

func seedCustomers(ctx context.Context, svc *customer.Service, log *logger.Logger) ([]*customer.Customer, error) {
	specs := []struct {
		name  string
		email string
		city  string
	}{
		{"Rakoto Jean", "rakoto.jean@example.mg", "Antananarivo"},
		{"Rasoa Marie", "rasoa.marie@example.mg", "Fianarantsoa"},
		{"Epicerie Soavina", "contact@soavina.example.mg", "Antsirabe"},
	}

	items := make([]*customer.Customer, 0, len(specs))
	for _, spec := range specs {
		item := customer.NewCustomer("", spec.name)
		email := spec.email
		city := spec.city
		item.Email = &email
		item.City = &city

		if err := svc.Create(ctx, item); err != nil {
			return nil, fmt.Errorf("create customer %q: %w", spec.name, err)
		}
		log.Infow("customer seeded", "code", item.Code, "name", item.Name)
		items = append(items, item)
	}

	return items, nil
}

func seedSales(
	ctx context.Context,
	svc *sale.Service,
	products []*product.Product,
	customers []*customer.Customer,
	log *logger.Logger,
) error {
	if len(products) < 2 || len(customers) < 1 {
		return fmt.Errorf("not enough seed data for sales")
	}

	doc, inv, err := svc.CreateSale(ctx, sale.CreateSaleInput{
		CustomerID: customers[0].ID,
		Items: []sale.ItemInput{
			{ProductID: products[0].ID, Quantity: 3},
			{ProductID: products[1].ID, Quantity: 2},
		},
		Notes: "Vente de demonstration",
	})
	if err != nil {
		return fmt.Errorf("create demo sale: %w", err)
	}

	log.Infow("demo sale seeded",
		"sale", doc.Number,
		"invoice", inv.Number,
		"total", types.FormatMGA(doc.TotalWithTax),
	)
	return nil
}
