package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Цель ON CONFLICT должна повторять частичный индекс из миграции,
// иначе Postgres отвергает upsert материализации с ошибкой 42P10
func TestUpsertConflictClauseMatchesMigrationIndex(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)
	migration := string(data)

	require.Contains(t, migration, "uq_sessions_template_date")
	require.Contains(t, migration, "WHERE source_template_id IS NOT NULL")

	assert.Contains(t, upsertConflictClause, "(source_template_id, session_date)")
	assert.Contains(t, upsertConflictClause, "WHERE source_template_id IS NOT NULL")
}
