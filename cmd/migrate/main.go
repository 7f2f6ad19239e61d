package main

import (
	"ledger_system/internal/config" // Custom import path (Config)
	"ledger_system/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus"
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	if cfg.DBDriver == config.DriverMemory {
		logrus.Fatal("DB_DRIVER is memory; nothing to migrate")
	}
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
}
