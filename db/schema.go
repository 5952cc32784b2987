// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/danielhkuo/polls/cliparse"
	"github.com/danielhkuo/polls/models"
)

// Open connects to the configured database and verifies the connection.
func Open(cfg cliparse.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseType {
	case cliparse.DatabasePostgres:
		// lib/pq registers itself as "postgres"
		dialector = postgres.New(postgres.Config{
			DriverName: "postgres",
			DSN:        cfg.DatabaseURL,
		})
	case cliparse.DatabaseSQLite, "":
		dialector = sqlite.Open(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewLogger(slog.Default()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DatabaseType, err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sql handle: %w", err)
	}

	// SQLite allows a single writer; one connection keeps increments serialized
	// and keeps in-memory databases alive for the pool's lifetime.
	if cfg.DatabaseType != cliparse.DatabasePostgres {
		sqlDB.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return conn, nil
}

// Migrate creates or updates the questions and choices tables.
// Safe to call multiple times.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(&models.Question{}, &models.Choice{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(conn *gorm.DB) error {
	if conn == nil {
		return nil
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewLogger routes GORM's warnings (slow queries, failed statements) through
// slog. Missing rows are expected on 404 paths and are not logged.
func NewLogger(l *slog.Logger) logger.Interface {
	return logger.New(slogWriter{l}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

type slogWriter struct {
	l *slog.Logger
}

func (w slogWriter) Printf(format string, args ...interface{}) {
	w.l.Warn("gorm", "detail", fmt.Sprintf(format, args...))
}
