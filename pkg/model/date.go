package model

import "time"

// Date is a calendar day with no time-of-day or location component. All
// engine arithmetic (linked days, consecutive runs, month boundaries)
// operates on Date, never on time.Time with a wall clock attached.
type Date struct {
	t time.Time
}

// NewDate builds a Date from a year/month/day triple.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateFromTime truncates a time.Time down to its calendar day.
func DateFromTime(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses a "2006-01-02" string, the format the rest of the
// engine uses whenever a date needs to cross a serialization boundary.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return DateFromTime(t), nil
}

// String renders the date as "2006-01-02".
func (d Date) String() string { return d.t.Format("2006-01-02") }

// Weekday returns the day of week.
func (d Date) Weekday() Weekday { return d.t.Weekday() }

// AddDays returns the date n days away (n may be negative).
func (d Date) AddDays(n int) Date { return Date{d.t.AddDate(0, 0, n)} }

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// Equal reports whether d and other denote the same calendar day.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// Month returns the first-of-month key ("2006-01") this date falls in,
// used to scope monthly caps.
func (d Date) Month() string { return d.t.Format("2006-01") }

// MonthStart returns the first day of d's month.
func (d Date) MonthStart() Date { return NewDate(d.t.Year(), d.t.Month(), 1) }

// MonthEnd returns the last day of d's month.
func (d Date) MonthEnd() Date {
	firstNext := NewDate(d.t.Year(), d.t.Month(), 1).t.AddDate(0, 1, 0)
	return Date{firstNext.AddDate(0, 0, -1)}
}

// MonthOf extracts the "2006-01" month key from a "2006-01-02" date
// string without a full round trip through ParseDate, for callers
// indexing placements by raw date keys.
func MonthOf(dateStr string) string {
	if len(dateStr) < 7 {
		return dateStr
	}
	return dateStr[:7]
}
