package postgres

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"varotra/internal/core/id"
	"varotra/internal/domain/audit"
)

func newTestAuditService(t *testing.T) *AuditService {
	t.Helper()

	svc, err := NewAuditService(&TxManager{})
	require.NoError(t, err)
	return svc
}

func TestAuditPrepareSmallPayloadStaysUncompressed(t *testing.T) {
	svc := newTestAuditService(t)

	changes, err := json.Marshal(map[string]any{"number": "VTE-20260115-AB12CD34"})
	require.NoError(t, err)

	entry := AuditEntry{
		EntityType: "sale",
		EntityID:   id.New(),
		Action:     audit.ActionCreate,
		Changes:    changes,
	}
	svc.prepare(&entry)

	// One of the two payload columns is set, never both.
	assert.Equal(t, json.RawMessage(changes), entry.Changes)
	assert.Nil(t, entry.ChangesCompressed)
	assert.Equal(t, CompressionNone, entry.CompressionAlgo)

	assert.False(t, id.IsNil(entry.ID))
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestAuditPrepareLargePayloadMovesToCompressedColumn(t *testing.T) {
	svc := newTestAuditService(t)

	big, err := json.Marshal(map[string]any{"blob": string(bytes.Repeat([]byte("a"), 20*1024))})
	require.NoError(t, err)

	entry := AuditEntry{
		EntityType: "sale",
		EntityID:   id.New(),
		Action:     audit.ActionUpdate,
		Changes:    big,
	}
	svc.prepare(&entry)

	assert.Nil(t, entry.Changes)
	assert.NotEmpty(t, entry.ChangesCompressed)
	assert.Equal(t, CompressionZstd, entry.CompressionAlgo)

	// Round-trips back to the original payload.
	decompressed, err := svc.decoder.DecodeAll(entry.ChangesCompressed, nil)
	require.NoError(t, err)
	assert.Equal(t, big, decompressed)
}
