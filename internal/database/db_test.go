package database

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "grocery.db")

	db, err := NewDB(path, zap.NewNop())
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"meal_plans", "execution_metrics"} {
		var name string
		err := db.SQL.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}

	t.Run("Pragmas", func(t *testing.T) {
		var journalMode string
		require.NoError(t, db.SQL.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
		assert.Equal(t, "wal", strings.ToLower(journalMode))

		var busyTimeout int
		require.NoError(t, db.SQL.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout))
		assert.Equal(t, 5000, busyTimeout)
	})

	t.Run("MigrationsIdempotent", func(t *testing.T) {
		version, err := RunMigrations(path)
		require.NoError(t, err)
		assert.Equal(t, uint(2), version)
	})
}

func TestDSN(t *testing.T) {
	got := dsn("data/grocery.db")
	assert.True(t, strings.HasPrefix(got, "data/grocery.db?"))
	assert.Contains(t, got, "_pragma=busy_timeout%285000%29")
	assert.Contains(t, got, "_pragma=journal_mode%28WAL%29")
}
