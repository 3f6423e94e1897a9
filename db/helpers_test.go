package db

import (
	"path/filepath"
	"testing"

	"bookseed/config"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an empty file-backed SQLite database with foreign keys
// enforced. A file is used instead of :memory: so every pooled connection
// sees the same database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := config.Config{
		Driver: config.DriverSQLite,
		Name:   filepath.Join(t.TempDir(), "library.db"),
	}
	db, err := Connect(cfg, zap.NewNop().Sugar(), logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return db
}

// setupSeededDB returns a database after Bootstrap and Seed.
func setupSeededDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := setupTestDB(t)
	require.NoError(t, Bootstrap(db))
	_, err := Seed(db)
	require.NoError(t, err)
	return db
}

func count(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table(table).Count(&n).Error)
	return n
}
