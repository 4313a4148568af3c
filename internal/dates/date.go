package dates

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CalendarDate is a proleptic Gregorian calendar day. Day-in-month is not
// checked, so 2023-4-31 is a valid CalendarDate.
type CalendarDate struct {
	Year  int
	Month int
	Day   int
}

// New builds a CalendarDate, rejecting out-of-range components.
func New(year, month, day int) (CalendarDate, error) {
	d := CalendarDate{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return CalendarDate{}, err
	}
	return d, nil
}

// FromTime returns the local calendar day of t.
func FromTime(t time.Time) CalendarDate {
	t = t.Local()
	return CalendarDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// Parse reads a dash separated "YYYY-MM-DD" date. Zero padding is optional.
func Parse(text string) (CalendarDate, error) {
	return parseTokens(text, strings.Split(strings.TrimSpace(text), "-"))
}

// ParseRecord reads the "year month day" form used by the record file.
func ParseRecord(line string) (CalendarDate, error) {
	return parseTokens(line, strings.Fields(line))
}

func parseTokens(input string, tokens []string) (CalendarDate, error) {
	if len(tokens) != 3 {
		return CalendarDate{}, &ValidationError{Input: input, Reason: fmt.Sprintf("expected 3 components, got %d", len(tokens))}
	}
	var parts [3]int
	for i, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return CalendarDate{}, &ValidationError{Input: input, Reason: fmt.Sprintf("%q is not an integer", tok)}
		}
		parts[i] = n
	}
	d := CalendarDate{Year: parts[0], Month: parts[1], Day: parts[2]}
	if err := d.Validate(); err != nil {
		return CalendarDate{}, &ValidationError{Input: input, Reason: err.(*ValidationError).Reason}
	}
	return d, nil
}

// Validate checks the range invariants: year >= 0, month in [1,12], day in [1,31].
func (d CalendarDate) Validate() error {
	switch {
	case d.Year < 0:
		return &ValidationError{Input: d.String(), Reason: "year must not be negative"}
	case d.Month < 1 || d.Month > 12:
		return &ValidationError{Input: d.String(), Reason: "month must be between 1 and 12"}
	case d.Day < 1 || d.Day > 31:
		return &ValidationError{Input: d.String(), Reason: "day must be between 1 and 31"}
	}
	return nil
}

func (d CalendarDate) String() string {
	return fmt.Sprintf("%d-%d-%d", d.Year, d.Month, d.Day)
}

// Record returns the record file form, without a trailing newline.
func (d CalendarDate) Record() string {
	return fmt.Sprintf("%d %d %d", d.Year, d.Month, d.Day)
}

// Before reports whether d sorts strictly before o.
func (d CalendarDate) Before(o CalendarDate) bool {
	return Compare(d, o) < 0
}

// Compare orders by year, then month, then day.
func Compare(a, b CalendarDate) int {
	if c := cmp.Compare(a.Year, b.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Month, b.Month); c != 0 {
		return c
	}
	return cmp.Compare(a.Day, b.Day)
}

// MonthIndex counts months since year 0, so adjacent calendar months
// (including December to January) differ by exactly one.
func (d CalendarDate) MonthIndex() int {
	return d.Year*12 + d.Month - 1
}
