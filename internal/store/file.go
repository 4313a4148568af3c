package store

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sadopc/streakr/internal/dates"
)

// FileStore keeps the set in a plain text record file, one
// "<year> <month> <day>" line per entry.
type FileStore struct {
	dir  string
	path string
}

func NewFile(dir string) *FileStore {
	return &FileStore{dir: dir, path: filepath.Join(dir, recordFileName)}
}

// Path is the record file location.
func (s *FileStore) Path() string { return s.path }

// Load reads the record file. A missing file yields an empty set and blank
// lines are skipped; any other malformed line aborts the load.
func (s *FileStore) Load() (*dates.DateSet, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return dates.NewDateSet(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open record file: %w", err)
	}
	defer f.Close()

	set := dates.NewDateSet()
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		d, err := dates.ParseRecord(text)
		if err == nil {
			err = set.Add(d)
		}
		if err != nil {
			return nil, &ParseError{Path: s.path, Line: line, Text: text, Err: err}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read record file: %w", err)
	}
	return set, nil
}

// Save replaces the record file with the set in its current order. The new
// contents are written beside the file and renamed over it.
func (s *FileStore) Save(set *dates.DateSet) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create storage directory: %w", err)
	}

	var b strings.Builder
	for _, d := range set.Dates() {
		b.WriteString(d.Record())
		b.WriteByte('\n')
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write record file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace record file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
