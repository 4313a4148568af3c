package streak

import (
	"testing"

	"github.com/sadopc/streakr/internal/dates"
)

func set(t *testing.T, in ...string) *dates.DateSet {
	t.Helper()
	s := dates.NewDateSet()
	for _, v := range in {
		d, err := dates.Parse(v)
		if err != nil {
			t.Fatalf("parse %q: %v", v, err)
		}
		s.Add(d)
	}
	return s
}

func day(t *testing.T, v string) dates.CalendarDate {
	t.Helper()
	d, err := dates.Parse(v)
	if err != nil {
		t.Fatalf("parse %q: %v", v, err)
	}
	return d
}

// ============================================================
// ConsecutiveMonths
// ============================================================

func TestConsecutiveMonths(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		now   string
		want  int
	}{
		{"empty", nil, "2023-3-20", 0},
		{"single in current month", []string{"2023-3-1"}, "2023-3-20", 1},
		{"single in previous month", []string{"2023-2-28"}, "2023-3-1", 1},
		{"single two months back", []string{"2023-1-31"}, "2023-3-1", 0},
		{"three months", []string{"2023-1-15", "2023-2-1", "2023-3-10"}, "2023-3-20", 3},
		{"december to january", []string{"2022-12-5", "2023-1-2"}, "2023-1-10", 2},
		{"gap breaks chain", []string{"2023-1-1", "2023-5-1"}, "2023-5-15", 1},
		{"last event in december, now january", []string{"2022-11-3", "2022-12-20"}, "2023-1-2", 2},
		{"same year different month not wraparound", []string{"2023-12-1"}, "2023-1-5", 0},
		{"a year ago same month", []string{"2022-3-1"}, "2023-3-20", 0},
		{
			"duplicates do not inflate",
			[]string{"2023-1-15", "2023-1-15", "2023-2-1", "2023-2-1", "2023-2-9", "2023-3-10"},
			"2023-3-20", 3,
		},
		{
			"unsorted input",
			[]string{"2023-3-10", "2023-1-15", "2023-2-1"},
			"2023-3-20", 3,
		},
		{
			"chain across two year boundaries",
			[]string{"2021-11-1", "2021-12-1", "2022-1-1", "2022-2-1", "2022-3-1", "2022-4-1",
				"2022-5-1", "2022-6-1", "2022-7-1", "2022-8-1", "2022-9-1", "2022-10-1",
				"2022-11-1", "2022-12-1", "2023-1-1"},
			"2023-2-14", 15,
		},
		{"future month breaks", []string{"2023-4-1"}, "2023-3-20", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConsecutiveMonths(set(t, tt.dates...), day(t, tt.now))
			if got != tt.want {
				t.Fatalf("ConsecutiveMonths = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConsecutiveMonthsNilSet(t *testing.T) {
	if got := ConsecutiveMonths(nil, dates.CalendarDate{Year: 2023, Month: 1, Day: 1}); got != 0 {
		t.Fatalf("nil set should give 0, got %d", got)
	}
}

func TestEngineDoesNotReorderSet(t *testing.T) {
	s := set(t, "2023-3-10", "2023-1-15")
	Compute(s, day(t, "2023-3-20"))
	if s.At(0) != (dates.CalendarDate{Year: 2023, Month: 3, Day: 10}) {
		t.Fatal("Compute should not mutate the caller's set")
	}
}

// ============================================================
// EventsLastYear
// ============================================================

func TestEventsLastYear(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		now   string
		want  int
	}{
		{"empty", nil, "2023-6-15", 0},
		// 2022-6 has monthDiff 0 relative to June, so it falls outside.
		{"boundary month excluded", []string{"2022-6-1", "2023-1-1", "2023-6-1"}, "2023-6-15", 2},
		{"previous year after boundary", []string{"2022-7-1", "2023-1-1", "2023-6-1"}, "2023-6-15", 3},
		{"previous year before boundary", []string{"2022-5-31"}, "2023-6-15", 0},
		{"two years ago", []string{"2021-12-31", "2023-2-1"}, "2023-6-15", 1},
		{"january keeps all of last year after january", []string{"2022-1-5", "2022-2-1", "2022-12-31"}, "2023-1-10", 2},
		{"duplicates counted", []string{"2023-6-1", "2023-6-1"}, "2023-6-15", 2},
		{"stops at first miss", []string{"2022-9-1", "2022-3-1", "2023-1-1"}, "2023-6-15", 2},
		{"later in same year still counted", []string{"2023-11-1"}, "2023-6-15", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EventsLastYear(set(t, tt.dates...), day(t, tt.now))
			if got != tt.want {
				t.Fatalf("EventsLastYear = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompute(t *testing.T) {
	s := set(t, "2023-1-15", "2023-2-1", "2023-3-10")
	got := Compute(s, day(t, "2023-3-20"))
	if got != (Stats{ConsecutiveMonths: 3, EventsLastYear: 3}) {
		t.Fatalf("Compute = %+v", got)
	}
	if Compute(dates.NewDateSet(), day(t, "2023-3-20")) != (Stats{}) {
		t.Fatal("empty set should give zero stats")
	}
}

// ============================================================
// MonthlyCounts
// ============================================================

func TestMonthlyCounts(t *testing.T) {
	s := set(t, "2022-11-3", "2022-12-1", "2022-12-24", "2023-2-1", "2021-1-1")
	got := MonthlyCounts(s, day(t, "2023-2-10"), 4)

	want := []MonthCount{
		{Year: 2022, Month: 11, Count: 1},
		{Year: 2022, Month: 12, Count: 2},
		{Year: 2023, Month: 1, Count: 0},
		{Year: 2023, Month: 2, Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bucket %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestMonthlyCountsNoMonths(t *testing.T) {
	if got := MonthlyCounts(set(t, "2023-1-1"), day(t, "2023-1-1"), 0); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestMonthlyCountsNearYearZero(t *testing.T) {
	got := MonthlyCounts(set(t, "0-1-15"), dates.CalendarDate{Year: 0, Month: 2, Day: 1}, 4)
	want := []MonthCount{
		{Year: 0, Month: 1, Count: 1},
		{Year: 0, Month: 2, Count: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d buckets, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bucket %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}
