package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the database handle and provides access to repositories.
type Store struct {
	db *sql.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Skills returns a SkillRepo backed by this store.
func (s *Store) Skills() SkillRepo {
	return &skillRepo{db: s.db}
}

// Characters returns a CharacterRepo backed by this store.
func (s *Store) Characters() CharacterRepo {
	return &characterRepo{db: s.db}
}

// Plans returns a PlanRepo backed by this store.
func (s *Store) Plans() PlanRepo {
	return &planRepo{db: s.db}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// migrate creates the schema. Statements are idempotent so opening an
// existing database is a no-op.
func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS skills (
			id         INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			group_name TEXT NOT NULL,
			rank       INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS skill_prereqs (
			skill_id  INTEGER NOT NULL REFERENCES skills(id) ON DELETE CASCADE,
			prereq_id INTEGER NOT NULL,
			level     INTEGER NOT NULL,
			PRIMARY KEY (skill_id, prereq_id)
		)`,
		`CREATE TABLE IF NOT EXISTS character_skills (
			character TEXT NOT NULL,
			skill_id  INTEGER NOT NULL,
			level     INTEGER NOT NULL,
			PRIMARY KEY (character, skill_id)
		)`,
		`CREATE TABLE IF NOT EXISTS plans (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			character  TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS plan_steps (
			plan_id  TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			skill_id INTEGER NOT NULL,
			level    INTEGER NOT NULL,
			PRIMARY KEY (plan_id, position)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// inTx runs fn inside a transaction, committing on success.
func inTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// DefaultDBPath resolves the database file path in priority order:
// 1. SKILLQ_DB environment variable
// 2. $XDG_DATA_HOME/skillq/skillq.db
// 3. ~/.local/share/skillq/skillq.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("SKILLQ_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "skillq", "skillq.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
