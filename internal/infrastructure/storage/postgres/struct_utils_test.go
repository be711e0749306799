package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"faktura/internal/core/entity"
	"faktura/internal/core/id"
)

type testCatalog struct {
	entity.Catalog
	Email string `db:"email" json:"email"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[testCatalog]()

	expected := []string{"id", "owner_id", "version", "code", "name", "email"}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}
}

func TestStructToMap(t *testing.T) {
	cat := testCatalog{
		Catalog: entity.NewCatalog("owner-1", "CUS-00001", "Acme"),
		Email:   "acme@example.com",
	}
	cat.ID = id.New()
	cat.Version = 3

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, "owner-1", m["owner_id"])
	assert.Equal(t, 3, m["version"])
	assert.Equal(t, "CUS-00001", m["code"])
	assert.Equal(t, "Acme", m["name"])
	assert.Equal(t, "acme@example.com", m["email"])
}
