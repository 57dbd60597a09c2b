package sale

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"varotra/internal/core/apperror"
	"varotra/internal/core/id"
	"varotra/internal/core/types"
)

func TestSaleTotals(t *testing.T) {
	s := NewSale(id.New())
	s.AddLine(id.New(), 3, types.NewMoneyFromInt(1000))
	s.AddLine(id.New(), 2, types.NewMoneyFromInt(25000))

	assert.True(t, s.TotalBeforeTax.Equal(types.NewMoneyFromInt(53000)))
	// 53000 * 1.20
	assert.True(t, s.TotalWithTax.Equal(types.NewMoneyFromInt(63600)))

	assert.Equal(t, 1, s.Lines[0].LineNo)
	assert.Equal(t, 2, s.Lines[1].LineNo)
}

func TestSaleSetTaxRateRecalculates(t *testing.T) {
	s := NewSale(id.New())
	s.AddLine(id.New(), 1, types.NewMoneyFromInt(10000))

	s.SetTaxRate(types.MustMoney("8.5"))
	assert.True(t, s.TotalWithTax.Equal(types.MustMoney("10850")))
}

func TestSaleValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		s := NewSale(id.New())
		s.AddLine(id.New(), 1, types.NewMoneyFromInt(500))
		require.NoError(t, s.Validate(ctx))
	})

	t.Run("no lines", func(t *testing.T) {
		s := NewSale(id.New())
		err := s.Validate(ctx)
		require.Error(t, err)
		assert.True(t, apperror.IsInvalidInput(err))
	})

	t.Run("nil customer", func(t *testing.T) {
		s := NewSale(id.Nil())
		s.AddLine(id.New(), 1, types.NewMoneyFromInt(500))
		err := s.Validate(ctx)
		require.Error(t, err)
		assert.True(t, apperror.IsInvalidInput(err))
	})

	t.Run("negative tax rate", func(t *testing.T) {
		s := NewSale(id.New())
		s.AddLine(id.New(), 1, types.NewMoneyFromInt(500))
		s.TaxRate = types.NewMoneyFromInt(-5)
		err := s.Validate(ctx)
		require.Error(t, err)
		assert.True(t, apperror.IsInvalidInput(err))
	})
}

func TestNewSaleDefaults(t *testing.T) {
	s := NewSale(id.New())
	assert.Equal(t, StatusConfirmed, s.Status)
	assert.True(t, s.TaxRate.Equal(types.NewMoneyFromInt(DefaultTaxRate)))
	assert.True(t, s.IsConfirmed())
}
