// Package rule models the rule network: a tagged-union Rule type plus an
// indexed store queryable by participant, weight and kind. A single Go
// type with an exhaustive switch on Subtype stands in for what an OOP
// rule hierarchy would otherwise need a concrete subclass per relation
// kind for.
package rule

import (
	"github.com/dienstplan/dutyplan/pkg/model"
)

// Weight is a rule's enforcement strength. Only Must is enforced during
// placement; Should and May are recorded but never block a placement.
type Weight int

const (
	Must Weight = iota
	Should
	May
)

func (w Weight) String() string {
	switch w {
	case Must:
		return "MUST"
	case Should:
		return "SHOULD"
	case May:
		return "MAY"
	default:
		return "UNKNOWN"
	}
}

// Kind distinguishes a required joint assignment from a prohibited one.
type Kind int

const (
	Combination Kind = iota
	Forbidden
)

func (k Kind) String() string {
	if k == Combination {
		return "COMBINATION"
	}
	return "FORBIDDEN"
}

// Subtype tags which pair of entity kinds a Rule relates.
type Subtype int

const (
	// SubtypeDutyDuty relates two duty forms (e.g. Friday-night MUST
	// combine with Sunday-day).
	SubtypeDutyDuty Subtype = iota
	// SubtypePersonPerson relates two people (e.g. MUST NOT work
	// concurrent duties together).
	SubtypePersonPerson
	// SubtypePersonDuty relates a person and a duty form directly
	// (e.g. MUST NOT ever hold this duty).
	SubtypePersonDuty
	// SubtypeRotationDuty relates a rotation template and a duty form.
	SubtypeRotationDuty
)

// Rule is a tagged variant: only the fields matching Subtype are
// populated. Callers dispatch on Subtype with an exhaustive switch
// rather than relying on dynamic type assertions.
type Rule struct {
	ID model.ID

	Weight  Weight
	Kind    Kind
	Subtype Subtype

	// Populated when Subtype == SubtypeDutyDuty. DutyA is the
	// chronologically earlier participant in the pair — linked-day
	// computation depends on this ordering.
	DutyA, DutyB *model.DutyForm

	// Populated when Subtype == SubtypePersonPerson.
	PersonA, PersonB *model.Person

	// Populated when Subtype == SubtypePersonDuty.
	Person *model.Person
	Duty   *model.DutyForm

	// Populated when Subtype == SubtypeRotationDuty.
	Rotation    *model.RotationTemplate
	RotationDuty *model.DutyForm
}

// OtherDuty returns the DutyDuty rule's other participant, given one of
// the two.
func (r *Rule) OtherDuty(given *model.DutyForm) *model.DutyForm {
	if given == r.DutyA {
		return r.DutyB
	}
	return r.DutyA
}

// LinkedDay computes the second date implied by a DutyDuty rule, within
// a ±7-day window, matching the other duty's weekday. direction is +1 to
// search forward from d (d is the earlier participant's date) or -1 to
// search backward (d is the later participant's date). Returns ok=false
// if no matching day exists in the window, which cannot happen for a
// well-formed rule but is guarded anyway rather than assumed.
func (r *Rule) LinkedDay(d model.Date, direction int) (model.Date, bool) {
	if direction > 0 {
		target := r.DutyB.Weekday
		for i := 0; i <= 7; i++ {
			candidate := d.AddDays(i)
			if candidate.Weekday() == target {
				return candidate, true
			}
		}
	} else {
		target := r.DutyA.Weekday
		for i := 0; i <= 7; i++ {
			candidate := d.AddDays(-i)
			if candidate.Weekday() == target {
				return candidate, true
			}
		}
	}
	return model.Date{}, false
}

// LinkedDayFor computes the linked day for whichever of the rule's two
// duties is "current": the other duty form, the date it falls on, and
// whether a match was found.
func (r *Rule) LinkedDayFor(d model.Date, current *model.DutyForm) (other *model.DutyForm, linkedDate model.Date, ok bool) {
	if current == r.DutyA {
		linkedDate, ok = r.LinkedDay(d, 1)
		return r.DutyB, linkedDate, ok
	}
	linkedDate, ok = r.LinkedDay(d, -1)
	return r.DutyA, linkedDate, ok
}
