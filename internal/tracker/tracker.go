// Package tracker owns the logged dates for a session. Every mutation is
// persisted immediately and the statistics are recomputed from scratch.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/sadopc/streakr/internal/dates"
	"github.com/sadopc/streakr/internal/log"
	"github.com/sadopc/streakr/internal/store"
	"github.com/sadopc/streakr/internal/streak"
)

var ErrDuplicate = errors.New("date already logged")

type Tracker struct {
	store  store.Store
	logger *log.Logger
	now    func() time.Time

	rejectDuplicates bool

	set   *dates.DateSet
	stats streak.Stats
}

type Option func(*Tracker)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func WithLogger(l *log.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// WithRejectDuplicates makes Add fail with ErrDuplicate for a date that is
// already in the set.
func WithRejectDuplicates(reject bool) Option {
	return func(t *Tracker) { t.rejectDuplicates = reject }
}

// New loads the persisted set from s. A malformed record aborts construction.
func New(s store.Store, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		store:  s,
		logger: log.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}

	set, err := s.Load()
	if err != nil {
		t.logger.Error("load dates", "error", err)
		return nil, fmt.Errorf("load dates: %w", err)
	}
	set.Sort()
	t.set = set
	t.recompute()
	t.logger.Info("loaded dates", "count", set.Len(),
		"consecutive_months", t.stats.ConsecutiveMonths,
		"events_last_year", t.stats.EventsLastYear)
	return t, nil
}

// Today is the clock's local calendar day.
func (t *Tracker) Today() dates.CalendarDate {
	return dates.FromTime(t.now())
}

// Add logs d, persists the set and returns the refreshed statistics.
func (t *Tracker) Add(d dates.CalendarDate) (streak.Stats, error) {
	if t.rejectDuplicates && t.set.Contains(d) {
		return t.stats, fmt.Errorf("add %s: %w", d, ErrDuplicate)
	}
	next := t.set.Clone()
	if err := next.Add(d); err != nil {
		return t.stats, err
	}
	if err := t.commit(next); err != nil {
		return t.stats, err
	}
	t.logger.Debug("added date", "date", d.String(), "count", t.set.Len())
	return t.stats, nil
}

// AddText parses a "YYYY-MM-DD" string and adds it.
func (t *Tracker) AddText(text string) (streak.Stats, error) {
	d, err := dates.Parse(text)
	if err != nil {
		return t.stats, err
	}
	return t.Add(d)
}

// RemoveAt removes the entry at index i of Dates().
func (t *Tracker) RemoveAt(i int) (streak.Stats, error) {
	next := t.set.Clone()
	d, err := next.RemoveAt(i)
	if err != nil {
		return t.stats, err
	}
	if err := t.commit(next); err != nil {
		return t.stats, err
	}
	t.logger.Debug("removed date", "date", d.String(), "count", t.set.Len())
	return t.stats, nil
}

// commit sorts and persists next. The in-memory set only changes once the
// save succeeded.
func (t *Tracker) commit(next *dates.DateSet) error {
	next.Sort()
	if err := t.store.Save(next); err != nil {
		t.logger.Error("save dates", "error", err)
		return fmt.Errorf("save dates: %w", err)
	}
	t.set = next
	t.recompute()
	return nil
}

func (t *Tracker) recompute() {
	t.stats = streak.Compute(t.set, t.Today())
}

// Refresh recomputes the statistics against the current clock, for when the
// day rolls over without a mutation.
func (t *Tracker) Refresh() streak.Stats {
	t.recompute()
	return t.stats
}

func (t *Tracker) Stats() streak.Stats { return t.stats }

// SetRejectDuplicates changes the duplicate policy for later calls to Add.
func (t *Tracker) SetRejectDuplicates(reject bool) { t.rejectDuplicates = reject }

// Dates returns the sorted entries.
func (t *Tracker) Dates() []dates.CalendarDate { return t.set.Dates() }

func (t *Tracker) Len() int { return t.set.Len() }

// Monthly returns per-month event counts for the last n months.
func (t *Tracker) Monthly(n int) []streak.MonthCount {
	return streak.MonthlyCounts(t.set, t.Today(), n)
}

func (t *Tracker) Close() error {
	return t.store.Close()
}
