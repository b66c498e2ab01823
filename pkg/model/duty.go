package model

import "github.com/dienstplan/dutyplan/pkg/apperr"

// DutyGroup is an equivalence class of duty forms across weekdays; it
// carries the one flag that matters for holiday scheduling.
type DutyGroup struct {
	ID ID

	Name string

	// AppliesOnHolidays marks groups whose Sunday-weekday duty form is
	// also the one staffed on a holiday.
	AppliesOnHolidays bool
}

// NewDutyGroup creates a duty group.
func NewDutyGroup(name string, appliesOnHolidays bool) *DutyGroup {
	return &DutyGroup{ID: NewID(), Name: name, AppliesOnHolidays: appliesOnHolidays}
}

// DutyForm is a concrete shift type tied to a weekday.
type DutyForm struct {
	ID ID

	Name string

	// Weekday this duty form is applicable to. Holiday scheduling only
	// ever plans the Sunday-weekday form of a holiday-eligible group
	// (see calendar.Schedulable).
	Weekday Weekday

	Group *DutyGroup

	// FollowUpFree bars the holder from any duty the following day.
	FollowUpFree bool

	// MaxInARow bounds the number of consecutive occurrences the same
	// person may hold this duty form. Must be >= 1.
	MaxInARow int

	// MaxPerMonth bounds how many times a person may hold this duty
	// form within one calendar month.
	MaxPerMonth int

	// Weight is this duty form's contribution to a person's weighted
	// monthly duty total.
	Weight float64

	// LinkedForms are duty forms that may be staffed concurrently with
	// this one, on the same day, by different people; checked when
	// selecting a candidate so two people with a forbidden pairing
	// never end up on linked forms on the same day.
	LinkedForms []*DutyForm
}

// NewDutyForm creates a duty form with the given weekday and group.
// Returns an error if maxInARow < 1.
func NewDutyForm(name string, weekday Weekday, group *DutyGroup, maxInARow, maxPerMonth int, weight float64, followUpFree bool) (*DutyForm, error) {
	if maxInARow < 1 {
		return nil, &apperr.InvalidInputError{Field: "MaxInARow", Reason: "must be >= 1"}
	}
	return &DutyForm{
		ID:           NewID(),
		Name:         name,
		Weekday:      weekday,
		Group:        group,
		FollowUpFree: followUpFree,
		MaxInARow:    maxInARow,
		MaxPerMonth:  maxPerMonth,
		Weight:       weight,
	}, nil
}

// IsHolidayVariant reports whether this duty form is the Sunday form of
// a holiday-eligible group — the only form schedulable on a holiday.
func (f *DutyForm) IsHolidayVariant() bool {
	return f.Group != nil && f.Group.AppliesOnHolidays && f.Weekday == Weekday(0)
}

// LinkTo records a mutual linked-duty relationship (concurrent duties
// that may be staffed on the same day by different people).
func (f *DutyForm) LinkTo(other *DutyForm) {
	f.LinkedForms = append(f.LinkedForms, other)
	other.LinkedForms = append(other.LinkedForms, f)
}
