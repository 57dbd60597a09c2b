package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"varotra/internal/core/apperror"
)

func strPtr(s string) *string { return &s }

func TestCustomerValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid minimal", func(t *testing.T) {
		c := NewCustomer("CLT-001", "Rakoto Jean")
		require.NoError(t, c.Validate(ctx))
	})

	t.Run("valid with email", func(t *testing.T) {
		c := NewCustomer("CLT-001", "Rakoto Jean")
		c.Email = strPtr("rakoto@example.mg")
		require.NoError(t, c.Validate(ctx))
	})

	t.Run("missing name", func(t *testing.T) {
		c := NewCustomer("CLT-001", "")
		err := c.Validate(ctx)
		require.Error(t, err)
		assert.True(t, apperror.IsInvalidInput(err))
	})

	t.Run("malformed email", func(t *testing.T) {
		c := NewCustomer("CLT-001", "Rakoto Jean")
		c.Email = strPtr("not-an-email")
		err := c.Validate(ctx)
		require.Error(t, err)
		assert.True(t, apperror.IsInvalidInput(err))
	})

	t.Run("empty email allowed", func(t *testing.T) {
		c := NewCustomer("CLT-001", "Rakoto Jean")
		c.Email = strPtr("")
		require.NoError(t, c.Validate(ctx))
	})
}

func TestNewCustomerIsActive(t *testing.T) {
	c := NewCustomer("CLT-001", "Rakoto Jean")
	assert.True(t, c.Active)
	assert.Equal(t, 1, c.Version)
}
