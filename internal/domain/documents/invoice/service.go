package invoice

import (
	"context"
	"fmt"
	"time"

	"varotra/internal/core/apperror"
	"varotra/internal/core/id"
	"varotra/internal/core/tx"
	"varotra/internal/domain"
	"varotra/internal/domain/audit"
	"varotra/pkg/docnum"
	"varotra/pkg/logger"
)

// Service provides business operations for invoices.
type Service struct {
	repo      Repository
	txManager tx.Manager
	docnum    *docnum.Generator
	audit     audit.Recorder
}

// NewService creates a new invoice service.
func NewService(repo Repository, txManager tx.Manager, gen *docnum.Generator, recorder audit.Recorder) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		docnum:    gen,
		audit:     recorder,
	}
}

// Issue creates the invoice for a sale. It does NOT open its own
// transaction: the caller (sale creation) already runs one, so the
// invoice commits or rolls back together with the sale.
func (s *Service) Issue(ctx context.Context, saleID id.ID, issueDate time.Time) (*Invoice, error) {
	inv := NewInvoice(saleID, issueDate)
	inv.Number = s.docnum.NextInvoiceNumber()

	if err := inv.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	if err := s.audit.Record(ctx, "invoice", inv.ID, audit.ActionCreate, map[string]any{
		"number":  inv.Number,
		"sale_id": saleID.String(),
		"status":  string(inv.Status),
	}); err != nil {
		return nil, fmt.Errorf("audit invoice: %w", err)
	}

	return inv, nil
}

// GetByID retrieves an invoice.
func (s *Service) GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, invoiceID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("invoice", invoiceID.String())
		}
		return nil, err
	}
	return inv, nil
}

// GetByNumber retrieves an invoice by document number.
func (s *Service) GetByNumber(ctx context.Context, number string) (*Invoice, error) {
	inv, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("invoice", number)
		}
		return nil, err
	}
	return inv, nil
}

// GetBySaleID retrieves the invoice issued for a sale.
func (s *Service) GetBySaleID(ctx context.Context, saleID id.ID) (*Invoice, error) {
	inv, err := s.repo.GetBySaleID(ctx, saleID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("invoice", saleID.String())
		}
		return nil, err
	}
	return inv, nil
}

// SetStatus changes the payment status of an invoice.
func (s *Service) SetStatus(ctx context.Context, invoiceID id.ID, rawStatus string) (*Invoice, error) {
	status, err := ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	inv, err := s.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if inv.Status == status {
		return inv, nil
	}

	old := inv.Status
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateStatus(ctx, invoiceID, status); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		return s.audit.Record(ctx, "invoice", invoiceID, audit.ActionStatusChange, map[string]any{
			"from": string(old),
			"to":   string(status),
		})
	})
	if err != nil {
		return nil, err
	}

	inv.Status = status
	logger.Info(ctx, "invoice status changed", "id", invoiceID, "from", old, "to", status)
	return inv, nil
}

// MarkOverdue flags unpaid invoices whose due date has passed.
// Returns the number of invoices transitioned.
func (s *Service) MarkOverdue(ctx context.Context, now time.Time) (int, error) {
	unpaid := StatusUnpaid
	result, err := s.repo.List(ctx, ListFilter{
		ListFilter: domain.ListFilter{Limit: 1000, OrderBy: "date"},
		Status:     &unpaid,
		DueBefore:  &now,
	})
	if err != nil {
		return 0, err
	}

	count := 0
	for _, inv := range result.Items {
		err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
			if err := s.repo.UpdateStatus(ctx, inv.ID, StatusOverdue); err != nil {
				return err
			}
			return s.audit.Record(ctx, "invoice", inv.ID, audit.ActionStatusChange, map[string]any{
				"from": string(StatusUnpaid),
				"to":   string(StatusOverdue),
			})
		})
		if err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

// List retrieves invoices with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Invoice], error) {
	return s.repo.List(ctx, filter)
}
