package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// MaxOpenConns is the connection pool size used for file databases in WAL mode.
const MaxOpenConns = 25

// DSN returns the connection string for the database file at path.
// Every connection gets WAL journaling, a 5s busy timeout and enforced foreign keys.
// Transactions begin IMMEDIATE so a read-then-write transaction waits for the
// write lock at BEGIN instead of failing with a stale snapshot at its first write.
func DSN(path string) string {
	return path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)&_txlock=immediate"
}

// Open opens and pings the database file at path with DSN settings and the pool sized for WAL.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(MaxOpenConns)
	db.SetMaxIdleConns(MaxOpenConns)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// migration is one forward-only schema step.
type migration struct {
	version     int
	description string
	statements  []string
}

// migrations lists every schema step in order. Append only; never edit an applied step.
var migrations = []migration{
	{
		version:     1,
		description: "core tables",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS users (
				id TEXT PRIMARY KEY,
				email TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				role TEXT NOT NULL CHECK (role IN ('user', 'trainer')),
				name TEXT NOT NULL DEFAULT '',
				created_at TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS workout (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				date TEXT NOT NULL,
				type TEXT NOT NULL,
				duration INTEGER NOT NULL CHECK (duration > 0),
				notes TEXT,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL,
				FOREIGN KEY (user_id) REFERENCES users(id)
			)`,
			`CREATE TABLE IF NOT EXISTS trainer_program (
				id TEXT PRIMARY KEY,
				trainer_id TEXT NOT NULL,
				title TEXT NOT NULL,
				description TEXT NOT NULL,
				is_free INTEGER NOT NULL DEFAULT 0,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL,
				FOREIGN KEY (trainer_id) REFERENCES users(id)
			)`,
			`CREATE TABLE IF NOT EXISTS user_program (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				program_id TEXT NOT NULL,
				start_date TEXT NOT NULL,
				is_active INTEGER NOT NULL DEFAULT 1,
				UNIQUE (user_id, program_id),
				FOREIGN KEY (user_id) REFERENCES users(id),
				FOREIGN KEY (program_id) REFERENCES trainer_program(id)
			)`,
			`CREATE TABLE IF NOT EXISTS trainer_cv (
				id TEXT PRIMARY KEY,
				trainer_id TEXT NOT NULL UNIQUE,
				bio TEXT,
				experience TEXT NOT NULL,
				skills TEXT NOT NULL,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL,
				FOREIGN KEY (trainer_id) REFERENCES users(id)
			)`,
		},
	},
	{
		version:     2,
		description: "lookup indexes",
		statements: []string{
			`CREATE INDEX IF NOT EXISTS idx_workout_user_date ON workout (user_id, date DESC, created_at DESC)`,
			`CREATE INDEX IF NOT EXISTS idx_trainer_program_trainer ON trainer_program (trainer_id, created_at DESC)`,
			`CREATE INDEX IF NOT EXISTS idx_user_program_program ON user_program (program_id)`,
			`CREATE INDEX IF NOT EXISTS idx_trainer_cv_updated ON trainer_cv (updated_at DESC)`,
		},
	},
}

// LatestSchemaVersion returns the version the newest migration brings the schema to.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// SchemaVersion returns the highest applied migration version, or 0 for an empty database.
// PRE: db is a valid database connection
// POST: no side effects beyond creating schema_version if missing
func SchemaVersion(db *sql.DB) (int, error) {
	if err := ensureVersionTable(db); err != nil {
		return 0, err
	}
	var v sql.NullInt64
	if err := db.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return int(v.Int64), nil
}

// MigrateDB applies every pending migration, each in its own transaction.
// PRE: db is a valid database connection; path names the database for logging
// POST: SchemaVersion(db) == LatestSchemaVersion()
// INVARIANT: applied migrations are never re-run
func MigrateDB(db *sql.DB, path string) error {
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}
	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := apply(db, m); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.description, err)
		}
		slog.Info("schema_migrated", "db", path, "version", m.version, "description", m.description)
	}
	return nil
}

func ensureVersionTable(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}
	return nil
}

func apply(db *sql.DB, m migration) error {
	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range m.statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_version (version, applied_at) VALUES (?, ?)",
		m.version, FormatTime(time.Now()),
	); err != nil {
		return err
	}
	return tx.Commit()
}

// IsUniqueViolation reports whether err came from a UNIQUE constraint.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint")
}
