package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sadopc/streakr/internal/dates"
	_ "modernc.org/sqlite"
)

const currentVersion = 1

// SQLiteStore keeps the set in a SQLite database, one row per entry.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLite opens (or creates) the SQLite database at dbPath and runs migrations.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db, path: dbPath}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*SQLiteStore, error) {
	return NewSQLite(":memory:")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *SQLiteStore) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS events (
		position INTEGER PRIMARY KEY,
		year     INTEGER NOT NULL CHECK (year >= 0),
		month    INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
		day      INTEGER NOT NULL CHECK (day BETWEEN 1 AND 31)
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

func (s *SQLiteStore) Load() (*dates.DateSet, error) {
	rows, err := s.db.Query(`SELECT position, year, month, day FROM events ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	set := dates.NewDateSet()
	for rows.Next() {
		var pos int
		var d dates.CalendarDate
		if err := rows.Scan(&pos, &d.Year, &d.Month, &d.Day); err != nil {
			return nil, err
		}
		if err := set.Add(d); err != nil {
			return nil, &RowError{Path: s.path, Position: pos, Err: err}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return set, nil
}

// Save replaces every stored row with the set in its current order.
func (s *SQLiteStore) Save(set *dates.DateSet) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM events`); err != nil {
		return fmt.Errorf("clear events: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO events (position, year, month, day) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, d := range set.Dates() {
		if _, err := stmt.Exec(i, d.Year, d.Month, d.Day); err != nil {
			return fmt.Errorf("insert event %s: %w", d, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}
