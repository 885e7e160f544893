package model

import (
	"fmt"
	"time"
)

// MonthKey identifies a calendar month as "YYYY-MM". The zero-padded form
// makes lexicographic comparison match chronological order.
type MonthKey string

// MonthOf returns the month key for a date.
func MonthOf(t time.Time) MonthKey {
	return MonthKey(t.UTC().Format("2006-01"))
}

// ParseMonthKey parses "YYYY-MM".
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return "", fmt.Errorf("invalid month key %q: %w", s, err)
	}
	return MonthOf(t), nil
}

// Start returns the first day of the month at UTC midnight.
func (m MonthKey) Start() time.Time {
	t, err := time.Parse("2006-01", string(m))
	if err != nil {
		return time.Time{}
	}
	return Day(t.Year(), t.Month(), 1)
}

// LastDay returns the last day of the month at UTC midnight.
func (m MonthKey) LastDay() time.Time {
	return m.Start().AddDate(0, 1, -1)
}

// Bounds returns the first and last day of the month, both inclusive.
func (m MonthKey) Bounds() (start, end time.Time) {
	start = m.Start()
	return start, start.AddDate(0, 1, -1)
}

// Next returns the following month.
func (m MonthKey) Next() MonthKey {
	return MonthOf(m.Start().AddDate(0, 1, 0))
}

// Before reports whether m is chronologically before other.
func (m MonthKey) Before(other MonthKey) bool {
	return m < other
}
