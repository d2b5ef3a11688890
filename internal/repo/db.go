// Package repo implements the persistence layer for the interaction log,
// backed by GORM on a pure-Go SQLite driver. This file contains database
// bootstrapping helpers: opening the file with PRAGMAs and pool tuning, and
// idempotent schema setup.
package repo

import (
	"context"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

// interactionsDDL is the exact schema of the interaction log. IF NOT EXISTS
// makes repeated startups a no-op that keeps existing rows.
const interactionsDDL = `CREATE TABLE IF NOT EXISTS interactions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT,
	user_input TEXT,
	bot_response TEXT
)`

// Options tunes OpenSQLite.
type Options struct {
	// Tracing registers the GORM OpenTelemetry plugin so every query becomes
	// a child span of the request.
	Tracing bool
	// LogLevel is the GORM logger level; zero means logger.Warn.
	LogLevel logger.LogLevel
}

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
// One pooled handle is shared by all requests; SQLite serializes writers and
// busy_timeout absorbs short lock contention.
func OpenSQLite(path string, opts Options) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	lvl := opts.LogLevel
	if lvl == 0 {
		lvl = logger.Warn
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(lvl),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}

	if opts.Tracing {
		if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
			return nil, errors.Wrap(err, "register gorm tracing")
		}
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// EnsureSchema creates the interactions table when it is absent. Running it
// any number of times never drops or duplicates the table.
func EnsureSchema(ctx context.Context, db *gorm.DB) error {
	return errors.Wrap(db.WithContext(ctx).Exec(interactionsDDL).Error, "ensure interactions schema")
}

// Ping verifies the underlying connection is usable.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "sql handle")
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the pooled connections.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
