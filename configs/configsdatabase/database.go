package configsdatabase

import (
	"fmt"
	"strings"
	"time"

	"klinika.admin/configs"
	"klinika.admin/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB opens the database selected by cfg and keeps it as the global connection.
func InitDB(cfg *configs.Config) (*gorm.DB, error) {
	conn, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	db = conn
	return db, nil
}

// Open opens a new connection without touching the global one.
func Open(cfg *configs.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if strings.EqualFold(cfg.LogLevel, "debug") {
		logLevel = logger.Info
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		configslog.Log.Error("Failed to open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DBDriver == configs.DriverSQLite {
		// SQLite allows a single writer; one connection serialises requests.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	configslog.SLog.Infof("Database connection established (driver: %s)", cfg.DBDriver)
	return conn, nil
}

// Dialector returns the gorm dialector for the configured driver.
func Dialector(cfg *configs.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case configs.DriverSQLite:
		return sqlite.Open(SQLiteDSN(cfg.DBPath)), nil
	case configs.DriverPostgres:
		return postgres.Open(PostgresDSN(cfg)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// SQLiteDSN turns a file path into a DSN with foreign key enforcement on.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

// PostgresDSN builds a key/value DSN for the pgx driver.
func PostgresDSN(cfg *configs.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
}

// GetDB returns the global connection. InitDB must have been called.
func GetDB() *gorm.DB {
	return db
}

// CloseDB closes the global connection if it is open.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("Failed to get sql.DB for close", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Failed to close database", zap.Error(err))
		return
	}
	configslog.SLog.Info("Database connection closed")
}
