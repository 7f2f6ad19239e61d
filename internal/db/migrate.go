package db

import (
	"fmt"

	"ledger_system/internal/config" // Configuration
	"ledger_system/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql"  // MySQL driver for GORM
	"gorm.io/driver/sqlite" // SQLite driver for GORM
	"gorm.io/gorm"          // GORM ORM library
)

// Models lists every table owned by the service
var Models = []any{&domain.User{}, &domain.RoleGrant{}, &domain.RegistryBootstrap{}, &domain.LedgerState{}, &domain.Event{}}

// Open connects to the database selected by cfg.DBDriver
func Open(cfg *config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{TranslateError: true} // Map driver errors to gorm.ErrDuplicatedKey etc.
	switch cfg.DBDriver {
	case config.DriverMySQL:
		return gorm.Open(mysql.Open(cfg.DSN()), gcfg)
	case config.DriverSQLite:
		return gorm.Open(sqlite.Open(cfg.SQLitePath), gcfg)
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

// Migrate creates or updates the schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(Models...); err != nil {
		return err
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
