package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"varotra/internal/core/apperror"
	"varotra/internal/core/id"
	"varotra/internal/core/types"
)

func TestNewProductDefaults(t *testing.T) {
	p := NewProduct("PRD-001", "Savon", types.NewMoneyFromInt(2500))

	assert.True(t, p.Active)
	assert.Equal(t, int64(0), p.StockActual)
	assert.Equal(t, int64(DefaultStockMinimum), p.StockMinimum)
	assert.False(t, id.IsNil(p.ID))
}

func TestProductValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		p := NewProduct("PRD-001", "Savon", types.NewMoneyFromInt(2500))
		require.NoError(t, p.Validate(ctx))
	})

	t.Run("missing name", func(t *testing.T) {
		p := NewProduct("PRD-001", "", types.NewMoneyFromInt(2500))
		err := p.Validate(ctx)
		require.Error(t, err)
		assert.True(t, apperror.IsInvalidInput(err))
	})

	t.Run("negative price", func(t *testing.T) {
		p := NewProduct("PRD-001", "Savon", types.NewMoneyFromInt(-1))
		err := p.Validate(ctx)
		require.Error(t, err)
		assert.True(t, apperror.IsInvalidInput(err))
	})

	t.Run("negative stock", func(t *testing.T) {
		p := NewProduct("PRD-001", "Savon", types.NewMoneyFromInt(2500))
		p.StockActual = -3
		err := p.Validate(ctx)
		require.Error(t, err)
		assert.True(t, apperror.IsInvalidInput(err))
	})

	t.Run("negative minimum stock", func(t *testing.T) {
		p := NewProduct("PRD-001", "Savon", types.NewMoneyFromInt(2500))
		p.StockMinimum = -1
		err := p.Validate(ctx)
		require.Error(t, err)
		assert.True(t, apperror.IsInvalidInput(err))
	})
}

func TestProductLowStock(t *testing.T) {
	p := NewProduct("PRD-001", "Savon", types.NewMoneyFromInt(2500))
	p.StockMinimum = 5

	p.StockActual = 10
	assert.False(t, p.LowStock())

	p.StockActual = 5
	assert.True(t, p.LowStock())

	p.StockActual = 0
	assert.True(t, p.LowStock())
}
