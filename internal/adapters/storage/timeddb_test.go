package storage

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func openTimedTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := openTestDB(t)
	if _, err := db.Exec("CREATE TABLE test (id TEXT PRIMARY KEY, val TEXT)"); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

// captureLogs routes slog output to a buffer for the duration of the test.
func captureLogs(t *testing.T) *syncBuffer {
	t.Helper()
	buf := &syncBuffer{}
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return buf
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// TestTimedDB_SlowQueryLogged verifies queries over the threshold emit slow_query.
func TestTimedDB_SlowQueryLogged(t *testing.T) {
	logs := captureLogs(t)
	tdb := NewTimedDB(openTimedTestDB(t), time.Nanosecond)

	if _, err := tdb.ExecContext(context.Background(), "INSERT INTO test (id, val) VALUES (?, ?)", "1", "hello"); err != nil {
		t.Fatalf("ExecContext: %v", err)
	}
	out := logs.String()
	if !strings.Contains(out, "slow_query") || !strings.Contains(out, "op=ExecContext") {
		t.Errorf("expected slow_query event, got %q", out)
	}
}

// TestTimedDB_FastQueryNotWarned verifies fast queries stay at debug level.
func TestTimedDB_FastQueryNotWarned(t *testing.T) {
	logs := captureLogs(t)
	tdb := NewTimedDB(openTimedTestDB(t), time.Hour)

	var n int
	if err := tdb.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM test").Scan(&n); err != nil {
		t.Fatalf("QueryRowContext: %v", err)
	}
	out := logs.String()
	if strings.Contains(out, "slow_query") {
		t.Errorf("fast query should not be logged as slow: %q", out)
	}
	if !strings.Contains(out, "op=QueryRowContext") {
		t.Errorf("expected debug query event, got %q", out)
	}
}

// TestTimedDB_DefaultThreshold verifies a non-positive threshold falls back.
func TestTimedDB_DefaultThreshold(t *testing.T) {
	tdb := NewTimedDB(openTimedTestDB(t), 0)
	if tdb.threshold != DefaultSlowQuery {
		t.Errorf("threshold = %v, want %v", tdb.threshold, DefaultSlowQuery)
	}
}

// TestTimedDB_Passthrough verifies results and errors are returned unchanged.
func TestTimedDB_Passthrough(t *testing.T) {
	db := openTimedTestDB(t)
	tdb := NewTimedDB(db, time.Hour)
	ctx := context.Background()

	result, err := tdb.ExecContext(ctx, "INSERT INTO test (id, val) VALUES (?, ?)", "r1", "result")
	if err != nil {
		t.Fatalf("ExecContext: %v", err)
	}
	if n, _ := result.RowsAffected(); n != 1 {
		t.Errorf("RowsAffected = %d, want 1", n)
	}

	rows, err := tdb.QueryContext(ctx, "SELECT id, val FROM test")
	if err != nil {
		t.Fatalf("QueryContext: %v", err)
	}
	count := 0
	for rows.Next() {
		count++
	}
	rows.Close()
	if count != 1 {
		t.Errorf("rows = %d, want 1", count)
	}

	if _, err := tdb.ExecContext(ctx, "INSERT INTO missing (id) VALUES (1)"); err == nil {
		t.Error("expected error for missing table")
	}
	if _, err := tdb.QueryContext(ctx, "SELECT * FROM missing"); err == nil {
		t.Error("expected error for missing table")
	}
	if err := tdb.QueryRowContext(ctx, "SELECT val FROM test WHERE id = ?", "nope").Scan(new(string)); err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

// TestTimedDB_BeginTx verifies transactions work through the wrapper.
func TestTimedDB_BeginTx(t *testing.T) {
	tdb := NewTimedDB(openTimedTestDB(t), time.Hour)
	ctx := context.Background()

	tx, err := tdb.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO test (id, val) VALUES (?, ?)", "tx1", "v"); err != nil {
		t.Fatalf("tx exec: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	var val string
	if err := tdb.QueryRowContext(ctx, "SELECT val FROM test WHERE id = ?", "tx1").Scan(&val); err != nil {
		t.Fatalf("committed row missing: %v", err)
	}
}

// TestTimedDB_CancelledContext verifies cancelled contexts surface an error.
func TestTimedDB_CancelledContext(t *testing.T) {
	tdb := NewTimedDB(openTimedTestDB(t), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := tdb.ExecContext(ctx, "INSERT INTO test (id, val) VALUES (?, ?)", "1", "hello"); err == nil {
		t.Fatal("expected error from cancelled context, got nil")
	}
}
