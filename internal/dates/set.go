package dates

import "slices"

// DateSet is an ordered collection of dates. Duplicates are allowed.
// Add does not keep the set sorted; call Sort before relying on order.
type DateSet struct {
	dates []CalendarDate
}

// NewDateSet returns an empty set.
func NewDateSet() *DateSet {
	return &DateSet{}
}

// FromDates builds a set from ds, validating every entry. Order is preserved.
func FromDates(ds []CalendarDate) (*DateSet, error) {
	s := &DateSet{dates: make([]CalendarDate, 0, len(ds))}
	for _, d := range ds {
		if err := s.Add(d); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *DateSet) Add(d CalendarDate) error {
	if err := d.Validate(); err != nil {
		return err
	}
	s.dates = append(s.dates, d)
	return nil
}

// RemoveAt removes the entry at index i and shifts the rest down.
func (s *DateSet) RemoveAt(i int) (CalendarDate, error) {
	if i < 0 || i >= len(s.dates) {
		return CalendarDate{}, &IndexError{Index: i, Len: len(s.dates)}
	}
	d := s.dates[i]
	s.dates = slices.Delete(s.dates, i, i+1)
	return d, nil
}

// Sort orders the set ascending by (year, month, day). Equal dates keep
// their relative order.
func (s *DateSet) Sort() {
	slices.SortStableFunc(s.dates, Compare)
}

func (s *DateSet) Len() int { return len(s.dates) }

func (s *DateSet) At(i int) CalendarDate { return s.dates[i] }

// Dates returns a copy of the entries in current order.
func (s *DateSet) Dates() []CalendarDate {
	return slices.Clone(s.dates)
}

// Sorted returns a sorted copy, leaving the set untouched.
func (s *DateSet) Sorted() []CalendarDate {
	out := slices.Clone(s.dates)
	slices.SortStableFunc(out, Compare)
	return out
}

func (s *DateSet) Contains(d CalendarDate) bool {
	return slices.Contains(s.dates, d)
}

func (s *DateSet) Clone() *DateSet {
	return &DateSet{dates: slices.Clone(s.dates)}
}
