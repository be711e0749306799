package catalog_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faktura/internal/core/id"
)

func newTestRepo() *BaseCatalogRepo[any] {
	return NewBaseCatalogRepo[any](nil, "test_table",
		[]string{"id", "owner_id", "version", "code", "name", "email"},
		func() any { return nil })
}

func TestBaseCatalogRepo_DeleteSQL(t *testing.T) {
	repo := newTestRepo()
	entityID := id.New()

	sql, args, err := repo.Builder().
		Delete(repo.tableName).
		Where("owner_id = ? AND id = ?", "owner-1", entityID).
		ToSql()
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM test_table WHERE owner_id = $1 AND id = $2", sql)
	assert.Equal(t, []any{"owner-1", entityID}, args)
}

func TestBaseCatalogRepo_BaseSelectScopesOwner(t *testing.T) {
	repo := newTestRepo()

	sql, args, err := repo.baseSelect("owner-1").ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM test_table")
	assert.Contains(t, sql, "owner_id = $1")
	assert.Equal(t, []any{"owner-1"}, args)
}

func TestBaseCatalogRepo_ParseOrderBy(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		name    string
		orderBy string
		want    string
		wantErr bool
	}{
		{"empty defaults to name", "", "name ASC", false},
		{"plain field", "code", "code ASC", false},
		{"descending", "-code", "code DESC", false},
		{"explicit ascending", "+email", "email ASC", false},
		{"unknown field rejected", "password_hash", "", true},
		{"injection rejected", "name; DROP TABLE users", "", true},
		{"bare dash rejected", "-", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.parseOrderBy(tt.orderBy)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
