// Package streak derives the habit statistics from a set of event dates.
// All functions work on a sorted copy and never reorder the caller's set.
package streak

import "github.com/sadopc/streakr/internal/dates"

// Stats is the pair of figures shown to the user.
type Stats struct {
	ConsecutiveMonths int
	EventsLastYear    int
}

// MonthCount is the number of events logged in one calendar month.
type MonthCount struct {
	Year  int
	Month int
	Count int
}

func Compute(set *dates.DateSet, now dates.CalendarDate) Stats {
	return Stats{
		ConsecutiveMonths: ConsecutiveMonths(set, now),
		EventsLastYear:    EventsLastYear(set, now),
	}
}

// monthsApart is the number of calendar month boundaries between earlier
// and later. December to January is 1, the same month is 0.
func monthsApart(later, earlier dates.CalendarDate) int {
	return later.MonthIndex() - earlier.MonthIndex()
}

// ConsecutiveMonths returns how many contiguous calendar months, ending in
// now's month or the month before it, contain at least one event.
func ConsecutiveMonths(set *dates.DateSet, now dates.CalendarDate) int {
	if set == nil || set.Len() == 0 {
		return 0
	}
	sorted := set.Sorted()

	last := sorted[len(sorted)-1]
	switch monthsApart(now, last) {
	case 0, 1:
	default:
		// The most recent event is too old (or dated after now's month).
		return 0
	}

	streak := 1
	for i := len(sorted) - 1; i > 0; i-- {
		switch monthsApart(sorted[i], sorted[i-1]) {
		case 0:
			continue
		case 1:
			streak++
		default:
			return streak
		}
	}
	return streak
}

// EventsLastYear counts events in the trailing twelve months, approximated
// at month granularity: anything in now's calendar year, plus events in the
// previous year whose month is later than now's month.
func EventsLastYear(set *dates.DateSet, now dates.CalendarDate) int {
	if set == nil || set.Len() == 0 {
		return 0
	}
	sorted := set.Sorted()

	count := 0
	for i := len(sorted) - 1; i >= 0; i-- {
		d := sorted[i]
		yearDiff := now.Year - d.Year
		monthDiff := now.Month - d.Month
		if yearDiff == 0 || (yearDiff == 1 && monthDiff < 0) {
			count++
			continue
		}
		// Older entries can only be further outside the window.
		break
	}
	return count
}

// MonthlyCounts returns one bucket per calendar month for the months ending
// at now's month, oldest first. Events outside the range are ignored. The
// range never reaches before January of year 0.
func MonthlyCounts(set *dates.DateSet, now dates.CalendarDate, months int) []MonthCount {
	months = min(months, now.MonthIndex()+1)
	if months <= 0 {
		return nil
	}
	out := make([]MonthCount, months)
	first := now.MonthIndex() - months + 1
	for i := range out {
		idx := first + i
		out[i] = MonthCount{Year: idx / 12, Month: idx%12 + 1}
	}
	if set == nil {
		return out
	}
	for _, d := range set.Dates() {
		i := d.MonthIndex() - first
		if i >= 0 && i < months {
			out[i].Count++
		}
	}
	return out
}
