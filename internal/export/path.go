package export

import (
	"fmt"
	"path/filepath"
	"time"
)

// Supported export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// DefaultPath names an export file in dir after the format and the day.
func DefaultPath(dir, format string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("streakr-export-%s.%s", now.Format("2006-01-02"), format))
}
