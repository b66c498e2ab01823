// Package calendar supplies the one calendar fact the engine needs:
// whether a date is a holiday. Holiday lookup itself is explicitly out of
// scope (it is an external collaborator per the engine's non-goals); this
// package only defines the pluggable seam a caller fills in.
package calendar

import "github.com/dienstplan/dutyplan/pkg/model"

// Source answers whether a date is a holiday. Production callers back
// this with a real holiday calendar; tests back it with a fixed set.
type Source interface {
	IsHoliday(d model.Date) bool
}

// Fixed is a Source backed by an explicit set of dates, useful for tests
// and for small deployments that maintain a static holiday list.
type Fixed struct {
	dates map[string]bool
}

// NewFixed builds a Fixed source from a list of holiday dates.
func NewFixed(dates ...model.Date) *Fixed {
	f := &Fixed{dates: make(map[string]bool, len(dates))}
	for _, d := range dates {
		f.dates[d.String()] = true
	}
	return f
}

// IsHoliday reports whether d is in the fixed set.
func (f *Fixed) IsHoliday(d model.Date) bool {
	return f.dates[d.String()]
}

// None is a Source that never reports a holiday, the default when no
// holiday calendar is wired in.
type None struct{}

// IsHoliday always returns false.
func (None) IsHoliday(model.Date) bool { return false }

// Schedulable reports whether duty may be staffed at all on d: either
// d's weekday matches the duty form's weekday, or d is a holiday and
// duty is the Sunday-weekday form of a holiday-eligible group. Shared
// by the scheduler's eligibility checks and the plan package's
// consecutive-run scan, so both agree on which day a duty form's next
// occurrence actually falls on.
func Schedulable(d model.Date, duty *model.DutyForm, src Source) bool {
	if src.IsHoliday(d) {
		return duty.IsHolidayVariant()
	}
	return d.Weekday() == duty.Weekday
}
