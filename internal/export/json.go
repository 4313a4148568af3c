package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/streakr/internal/dates"
	"github.com/sadopc/streakr/internal/streak"
)

type jsonExport struct {
	ExportedAt        string      `json:"exported_at"`
	Count             int         `json:"count"`
	ConsecutiveMonths int         `json:"consecutive_months"`
	EventsLastYear    int         `json:"events_last_year"`
	Dates             []jsonEntry `json:"dates"`
}

type jsonEntry struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Day   int    `json:"day"`
	Date  string `json:"date"`
}

func ToJSON(ds []dates.CalendarDate, stats streak.Stats, path string) error {
	export := jsonExport{
		ExportedAt:        time.Now().UTC().Format(time.RFC3339),
		Count:             len(ds),
		ConsecutiveMonths: stats.ConsecutiveMonths,
		EventsLastYear:    stats.EventsLastYear,
		Dates:             []jsonEntry{},
	}

	for _, d := range ds {
		export.Dates = append(export.Dates, jsonEntry{
			Year:  d.Year,
			Month: d.Month,
			Day:   d.Day,
			Date:  isoDate(d),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
