package repo

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-support-chat/internal/domain"
)

func TestOpenSQLite_ErrorOnBadPath(t *testing.T) {
	base := t.TempDir()
	bad := filepath.Join(base, "does-not-exist", "interactions.db")

	db, err := OpenSQLite(bad, Options{})
	if err == nil || db != nil {
		t.Fatalf("expected error opening %q, got db=%v err=%v", bad, db, err)
	}

	// Be tolerant across platforms/drivers.
	lower := strings.ToLower(err.Error())
	if !(os.IsNotExist(err) ||
		strings.Contains(lower, "unable to open database file") ||
		strings.Contains(lower, "no such file or directory") ||
		strings.Contains(lower, "out of memory")) {
		t.Fatalf("unexpected error opening %q: %v", bad, err)
	}
}

func TestOpenSQLite_SetsPragmas_Pool_AndSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interactions.db")

	db, err := OpenSQLite(path, Options{LogLevel: logger.Silent})
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })

	var (
		journalMode string
		syncVal     int
		busyMS      int
	)
	if err := db.Raw("PRAGMA journal_mode;").Row().Scan(&journalMode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if strings.ToLower(journalMode) != "wal" {
		t.Fatalf("expected journal_mode=wal, got %q", journalMode)
	}
	if err := db.Raw("PRAGMA synchronous;").Row().Scan(&syncVal); err != nil {
		t.Fatalf("PRAGMA synchronous: %v", err)
	}
	// NORMAL == 1
	if syncVal != 1 {
		t.Fatalf("expected synchronous=1 (NORMAL), got %d", syncVal)
	}
	if err := db.Raw("PRAGMA busy_timeout;").Row().Scan(&busyMS); err != nil {
		t.Fatalf("PRAGMA busy_timeout: %v", err)
	}
	if busyMS != 5000 {
		t.Fatalf("expected busy_timeout=5000, got %d", busyMS)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	if stats := sqlDB.Stats(); stats.MaxOpenConnections != 10 {
		t.Fatalf("expected MaxOpenConnections=10, got %d", stats.MaxOpenConnections)
	}

	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if !db.Migrator().HasTable(&domain.Interaction{}) {
		t.Fatalf("expected interactions table to exist")
	}
	if err := Ping(context.Background(), db); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestOpenSQLite_WithTracingPlugin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traced.db")
	db, err := OpenSQLite(path, Options{Tracing: true, LogLevel: logger.Silent})
	if err != nil {
		t.Fatalf("OpenSQLite(tracing): %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })

	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if _, err := CreateInteraction(context.Background(), db, "ts", "in", "out"); err != nil {
		t.Fatalf("CreateInteraction through traced db: %v", err)
	}
}

func TestEnsureSchema_IdempotentAndKeepsRows(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	if err := EnsureSchema(ctx, db); err != nil {
		t.Fatalf("EnsureSchema #1: %v", err)
	}
	if _, err := CreateInteraction(ctx, db, "2024-01-01 00:00:00", "hi", "hello"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		t.Fatalf("EnsureSchema #2: %v", err)
	}

	n, err := CountInteractions(ctx, db)
	if err != nil {
		t.Fatalf("CountInteractions: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected existing row to survive, count=%d", n)
	}

	// Exactly one interactions table in the catalog.
	var tables int64
	if err := db.Raw("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='interactions'").Scan(&tables).Error; err != nil {
		t.Fatalf("sqlite_master: %v", err)
	}
	if tables != 1 {
		t.Fatalf("expected 1 interactions table, got %d", tables)
	}
}

func TestEnsureSchema_ColumnLayout(t *testing.T) {
	db := newRepoDB(t)
	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}

	type col struct {
		Name string
		Type string
		PK   int
	}
	rows, err := db.Raw("PRAGMA table_info(interactions);").Rows()
	if err != nil {
		t.Fatalf("table_info: %v", err)
	}
	defer rows.Close()

	var cols []col
	for rows.Next() {
		var (
			cid     int
			c       col
			notnull int
			dflt    *string
		)
		if err := rows.Scan(&cid, &c.Name, &c.Type, &notnull, &dflt, &c.PK); err != nil {
			t.Fatalf("scan: %v", err)
		}
		cols = append(cols, c)
	}

	want := []col{
		{"id", "INTEGER", 1},
		{"timestamp", "TEXT", 0},
		{"user_input", "TEXT", 0},
		{"bot_response", "TEXT", 0},
	}
	if len(cols) != len(want) {
		t.Fatalf("columns = %+v", cols)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Fatalf("column %d = %+v; want %+v", i, cols[i], want[i])
		}
	}
}

func TestPing_ClosedDB(t *testing.T) {
	db := newRepoDB(t)
	if err := Close(db); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := Ping(context.Background(), db); err == nil {
		t.Fatalf("expected ping error on closed db")
	}
}

// Compile-time guard to ensure signature stability.
var _ func(string, Options) (*gorm.DB, error) = OpenSQLite
