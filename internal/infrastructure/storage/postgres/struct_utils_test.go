package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"varotra/internal/core/entity"
)

type mockCatalog struct {
	entity.Catalog
	Email *string `db:"email" json:"email,omitempty"`
	Notes string  `db:"-" json:"notes"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expected := []string{"id", "active", "version", "created_at", "code", "name", "email"}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}
	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "notes")
}

func TestStructToMap(t *testing.T) {
	email := "rakoto@example.mg"
	cat := mockCatalog{
		Catalog: entity.NewCatalog("CLT-001", "Rakoto Jean"),
		Email:   &email,
	}
	cat.Version = 5

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["active"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "CLT-001", m["code"])
	assert.Equal(t, "Rakoto Jean", m["name"])
	assert.Equal(t, &email, m["email"])
	assert.NotContains(t, m, "notes")
}

func TestStructToMapPointer(t *testing.T) {
	cat := &mockCatalog{Catalog: entity.NewCatalog("C1", "N1")}

	m := StructToMap(cat)
	assert.Equal(t, "C1", m["code"])
}
