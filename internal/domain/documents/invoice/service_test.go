package invoice

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"varotra/internal/core/apperror"
	"varotra/internal/core/id"
	"varotra/internal/domain"
	"varotra/internal/domain/audit"
	"varotra/pkg/docnum"
)

type memRepo struct {
	byID map[id.ID]*Invoice
}

func newMemRepo() *memRepo {
	return &memRepo{byID: map[id.ID]*Invoice{}}
}

func (m *memRepo) Create(ctx context.Context, inv *Invoice) error {
	m.byID[inv.ID] = inv
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	inv, ok := m.byID[invoiceID]
	if !ok {
		return nil, apperror.NewNotFound("invoice", invoiceID.String())
	}
	return inv, nil
}

func (m *memRepo) GetByNumber(ctx context.Context, number string) (*Invoice, error) {
	for _, inv := range m.byID {
		if inv.Number == number {
			return inv, nil
		}
	}
	return nil, apperror.NewNotFound("invoice", number)
}

func (m *memRepo) GetBySaleID(ctx context.Context, saleID id.ID) (*Invoice, error) {
	for _, inv := range m.byID {
		if inv.SaleID == saleID {
			return inv, nil
		}
	}
	return nil, apperror.NewNotFound("invoice", saleID.String())
}

func (m *memRepo) UpdateStatus(ctx context.Context, invoiceID id.ID, status Status) error {
	inv, ok := m.byID[invoiceID]
	if !ok {
		return apperror.NewNotFound("invoice", invoiceID.String())
	}
	inv.Status = status
	return nil
}

func (m *memRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Invoice], error) {
	out := make([]*Invoice, 0, len(m.byID))
	for _, inv := range m.byID {
		if filter.Status != nil && inv.Status != *filter.Status {
			continue
		}
		if filter.DueBefore != nil && !inv.DueDate.Before(*filter.DueBefore) {
			continue
		}
		out = append(out, inv)
	}
	return domain.ListResult[*Invoice]{Items: out, TotalCount: int64(len(out))}, nil
}

type passTxManager struct{}

func (passTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newService(repo *memRepo) *Service {
	return NewService(repo, passTxManager{}, docnum.New(), audit.NopRecorder{})
}

func TestIssueSetsTermAndStatus(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newService(repo)

	saleID := id.New()
	issued := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	inv, err := svc.Issue(ctx, saleID, issued)
	require.NoError(t, err)

	assert.Equal(t, saleID, inv.SaleID)
	assert.Equal(t, issued, inv.Date)
	assert.Equal(t, time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC), inv.DueDate)
	assert.Equal(t, StatusUnpaid, inv.Status)
	assert.True(t, strings.HasPrefix(inv.Number, "FACT-"))

	stored, err := repo.GetBySaleID(ctx, saleID)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, stored.ID)
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"unpaid", "paid", "overdue"} {
		st, err := ParseStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, Status(valid), st)
	}

	_, err := ParseStatus("cancelled")
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidInput(err))

	_, err = ParseStatus("")
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidInput(err))
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newService(repo)

	inv, err := svc.Issue(ctx, id.New(), time.Now().UTC())
	require.NoError(t, err)

	updated, err := svc.SetStatus(ctx, inv.ID, "paid")
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, updated.Status)
	assert.Equal(t, StatusPaid, repo.byID[inv.ID].Status)
}

func TestSetStatusInvalid(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newService(repo)

	inv, err := svc.Issue(ctx, id.New(), time.Now().UTC())
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, inv.ID, "shredded")
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidInput(err))
	assert.Equal(t, StatusUnpaid, repo.byID[inv.ID].Status)
}

func TestSetStatusUnknownInvoice(t *testing.T) {
	ctx := context.Background()
	svc := newService(newMemRepo())

	_, err := svc.SetStatus(ctx, id.New(), "paid")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestMarkOverdue(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newService(repo)

	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	// Past due, unpaid: must flip.
	late, err := svc.Issue(ctx, id.New(), now.AddDate(0, 0, -45))
	require.NoError(t, err)

	// Past due but already paid: untouched.
	paid, err := svc.Issue(ctx, id.New(), now.AddDate(0, 0, -45))
	require.NoError(t, err)
	_, err = svc.SetStatus(ctx, paid.ID, "paid")
	require.NoError(t, err)

	// Fresh invoice: untouched.
	fresh, err := svc.Issue(ctx, id.New(), now)
	require.NoError(t, err)

	count, err := svc.MarkOverdue(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.Equal(t, StatusOverdue, repo.byID[late.ID].Status)
	assert.Equal(t, StatusPaid, repo.byID[paid.ID].Status)
	assert.Equal(t, StatusUnpaid, repo.byID[fresh.ID].Status)
}

func TestInvoiceValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		inv := NewInvoice(id.New(), time.Now().UTC())
		inv.Number = "FACT-20260101-ABCDEF01"
		require.NoError(t, inv.Validate(ctx))
	})

	t.Run("nil sale", func(t *testing.T) {
		inv := NewInvoice(id.Nil(), time.Now().UTC())
		err := inv.Validate(ctx)
		require.Error(t, err)
		assert.True(t, apperror.IsInvalidInput(err))
	})

	t.Run("due before issue", func(t *testing.T) {
		inv := NewInvoice(id.New(), time.Now().UTC())
		inv.DueDate = inv.Date.AddDate(0, 0, -1)
		err := inv.Validate(ctx)
		require.Error(t, err)
		assert.True(t, apperror.IsInvalidInput(err))
	})
}
