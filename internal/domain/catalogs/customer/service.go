package customer

import (
	"context"

	"varotra/internal/core/apperror"
	"varotra/internal/core/tx"
	"varotra/internal/domain"
	"varotra/pkg/docnum"
)

// CodePrefix is used for auto-generated customer codes.
const CodePrefix = "CLT"

// Service provides business logic for the Customer catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Customer]
	repo   Repository
	docnum *docnum.Generator
}

// NewService creates a new Customer service.
func NewService(repo Repository, txManager tx.Manager, gen *docnum.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Customer]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "customer",
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
func (s *Service) prepareForCreate(ctx context.Context, item *Customer) error {
	if item.Code == "" {
		item.Code = s.docnum.Next(CodePrefix)
	}

	exists, err := s.repo.ExistsByCode(ctx, item.Code)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("customer", "code", item.Code)
	}

	return nil
}
