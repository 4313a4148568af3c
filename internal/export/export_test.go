package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/streakr/internal/dates"
	"github.com/sadopc/streakr/internal/streak"
)

func sampleData() []dates.CalendarDate {
	return []dates.CalendarDate{
		{Year: 2022, Month: 12, Day: 5},
		{Year: 2023, Month: 1, Day: 2},
		{Year: 2023, Month: 1, Day: 2},
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(sampleData(), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 3 data rows
	if len(records) != 4 {
		t.Fatalf("expected 4 rows (1 header + 3 data), got %d", len(records))
	}

	expectedHeader := []string{"Year", "Month", "Day", "Date"}
	for i, h := range expectedHeader {
		if records[0][i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}

	row := records[1]
	if row[0] != "2022" || row[1] != "12" || row[2] != "5" {
		t.Fatalf("unexpected first row: %v", row)
	}
	if row[3] != "2022-12-05" {
		t.Fatalf("Date = %q, want 2022-12-05", row[3])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := ToCSV(nil, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, _ := csv.NewReader(f).ReadAll()
	if len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(nil, "/nonexistent/dir/file.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")
	stats := streak.Stats{ConsecutiveMonths: 2, EventsLastYear: 3}

	if err := ToJSON(sampleData(), stats, path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.Count != 3 || len(result.Dates) != 3 {
		t.Fatalf("count = %d, dates = %d, want 3", result.Count, len(result.Dates))
	}
	if result.ConsecutiveMonths != 2 || result.EventsLastYear != 3 {
		t.Fatalf("stats not exported: %+v", result)
	}
	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}

	e := result.Dates[1]
	if e.Year != 2023 || e.Month != 1 || e.Day != 2 || e.Date != "2023-01-02" {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	if err := ToJSON(nil, streak.Stats{}, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"dates": []`) {
		t.Fatalf("empty export should have an empty dates array: %s", data)
	}
	// Pretty-printed JSON should contain newlines and indentation
	if !strings.Contains(string(data), "\n  ") {
		t.Fatal("JSON should be indented")
	}
}

func TestToJSONBadPath(t *testing.T) {
	if err := ToJSON(nil, streak.Stats{}, "/nonexistent/dir/file.json"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestDefaultPath(t *testing.T) {
	now := time.Date(2023, time.March, 5, 10, 0, 0, 0, time.UTC)
	got := DefaultPath("/tmp", FormatCSV, now)
	if got != filepath.Join("/tmp", "streakr-export-2023-03-05.csv") {
		t.Fatalf("DefaultPath = %q", got)
	}
}
