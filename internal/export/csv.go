package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sadopc/streakr/internal/dates"
)

// ToCSV writes one row per logged date, in the given order.
func ToCSV(ds []dates.CalendarDate, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	// Header
	if err := w.Write([]string{"Year", "Month", "Day", "Date"}); err != nil {
		return err
	}

	for _, d := range ds {
		row := []string{
			strconv.Itoa(d.Year),
			strconv.Itoa(d.Month),
			strconv.Itoa(d.Day),
			isoDate(d),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// isoDate zero-pads for spreadsheet friendliness; the app itself never pads.
func isoDate(d dates.CalendarDate) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
