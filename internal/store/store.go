package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sadopc/streakr/internal/dates"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

const (
	recordFileName = "dates.dat"
	dbFileName     = "streakr.db"
)

// Store persists a DateSet between sessions.
type Store interface {
	Load() (*dates.DateSet, error)
	Save(set *dates.DateSet) error
	Close() error
}

// ParseError reports a malformed line in a persisted record.
type ParseError struct {
	Path string
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: malformed record %q: %v", e.Path, e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RowError reports an invalid row in the SQLite backend.
type RowError struct {
	Path     string
	Position int
	Err      error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s: invalid event at position %d: %v", e.Path, e.Position, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Open returns the store for backend rooted at dir.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFile(dir), nil
	case BackendSQLite:
		return NewSQLite(filepath.Join(dir, dbFileName))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// DefaultDir returns ~/.config/streakr
func DefaultDir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "streakr"), nil
}
