package testutil

import (
	"path/filepath"
	"testing"

	"klinika.admin/configs"
	"klinika.admin/configs/configsdatabase"
	"klinika.admin/configs/configslog"
	"klinika.admin/database"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

// NewTestDB opens a migrated SQLite database in a temp dir and closes it when
// the test ends. It also routes the package loggers to t.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	configslog.SetLogger(zaptest.NewLogger(t))
	t.Cleanup(func() { configslog.SetLogger(nil) })

	cfg := &configs.Config{
		DBDriver: configs.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "test.db"),
		LogLevel: "warn",
	}
	db, err := configsdatabase.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, database.RunMigrationsInOrder(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
