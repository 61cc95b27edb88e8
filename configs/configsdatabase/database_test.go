package configsdatabase

import (
	"path/filepath"
	"testing"

	"klinika.admin/configs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "database.db?_foreign_keys=on", SQLiteDSN("database.db"))
	assert.Equal(t, "file.db?cache=shared&_foreign_keys=on", SQLiteDSN("file.db?cache=shared"))
}

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresDSN(&configs.Config{
		DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "clinic", DBSSLMode: "disable",
	})
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=clinic sslmode=disable TimeZone=UTC", dsn)
}

func TestDialector_UnknownDriver(t *testing.T) {
	_, err := Dialector(&configs.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestInitAndCloseDB(t *testing.T) {
	cfg := &configs.Config{DBDriver: configs.DriverSQLite, DBPath: filepath.Join(t.TempDir(), "init.db")}
	db, err := InitDB(cfg)
	require.NoError(t, err)
	assert.Same(t, db, GetDB())

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	require.NoError(t, sqlDB.Ping())

	CloseDB()
	assert.Error(t, sqlDB.Ping())
}
