package database

import (
	"fmt"
	"time"

	"github.com/Lais666/API-Biblioteca-Pytest/internal/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Init opens a database connection with basic tuning.
// The original deployment runs on MySQL; sqlite is kept for local use and tests.
func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormLogger := logger.Default
	if !cfg.LogMode {
		gormLogger = gormLogger.LogMode(logger.Silent)
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	// connection pool
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if cfg.Driver != "mysql" {
		// SQLite performance and reliability tuning
		_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
		_, _ = sqlDB.Exec("PRAGMA synchronous = NORMAL;")
		_, _ = sqlDB.Exec("PRAGMA foreign_keys = ON;")
	}

	return db, nil
}
