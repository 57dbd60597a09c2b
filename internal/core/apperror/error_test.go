package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsufficientStockDetails(t *testing.T) {
	err := NewInsufficientStock("prd-1", 5, 2)

	require.True(t, IsInsufficientStock(err))
	assert.Equal(t, http.StatusUnprocessableEntity, err.HTTPStatus)
	assert.Equal(t, "prd-1", err.Details["product_id"])
	assert.Equal(t, int64(5), err.Details["requested"])
	assert.Equal(t, int64(2), err.Details["available"])
}

func TestAsAppErrorThroughWrapping(t *testing.T) {
	inner := NewNotFound("product", "42")
	wrapped := fmt.Errorf("load line: %w", inner)

	got, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, got.Code)
	assert.True(t, IsNotFound(wrapped))
}

func TestTransactionFailureKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewTransactionFailure(cause)

	assert.Equal(t, CodeTransactionFailure, err.Code)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(err))
}

func TestGetHTTPStatusForPlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("boom")))
}
