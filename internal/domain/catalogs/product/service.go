package product

import (
	"context"

	"varotra/internal/core/apperror"
	"varotra/internal/core/tx"
	"varotra/internal/domain"
	"varotra/pkg/docnum"
)

// CodePrefix is used for auto-generated product codes.
const CodePrefix = "PRD"

// Service provides business logic for the Product catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Product]
	repo   Repository
	docnum *docnum.Generator
}

// NewService creates a new Product service.
func NewService(repo Repository, txManager tx.Manager, gen *docnum.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		docnum:         gen,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

// prepareForCreate handles code generation and uniqueness checks.
func (s *Service) prepareForCreate(ctx context.Context, item *Product) error {
	if item.Code == "" {
		item.Code = s.docnum.Next(CodePrefix)
	}

	exists, err := s.repo.ExistsByCode(ctx, item.Code)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("product", "code", item.Code)
	}

	return nil
}

// --- Entity-specific methods ---

// ListFiltered retrieves products with category filtering.
func (s *Service) ListFiltered(ctx context.Context, filter ListFilter) (domain.ListResult[*Product], error) {
	return s.repo.ListFiltered(ctx, filter)
}

// FindLowStock retrieves products at or below their minimum stock.
func (s *Service) FindLowStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	return s.repo.FindLowStock(ctx, filter)
}

// ListCategories returns the distinct categories in use.
func (s *Service) ListCategories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx)
}
