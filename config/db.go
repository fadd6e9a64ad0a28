package config

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

// InitDB opens the configured database and applies the pool limits.
func InitDB(cfg Database) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Driver == "sqlite" {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	utils.InfoLogger.WithField("driver", cfg.Driver).Info("Database connection established")
	return db, nil
}

func dialectorFor(cfg Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
				cfg.Host, cfg.User, cfg.Password, cfg.Name, portOr(cfg.Port, 5432), cfg.SSLMode)
		}
		return postgres.Open(dsn), nil
	case "mysql":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
				cfg.User, cfg.Password, cfg.Host, portOr(cfg.Port, 3306), cfg.Name)
		}
		return mysql.Open(dsn), nil
	case "sqlite":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "pizzaria.db"
		}
		return sqlite.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

func portOr(port, fallback int) int {
	if port == 0 {
		return fallback
	}
	return port
}
