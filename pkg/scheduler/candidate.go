// Package scheduler is the placement engine: it builds the set of
// statically eligible people per (date, duty form), maintains a
// dynamically re-sorted planning queue, and runs the greedy placement
// loop with its combination and cascade-removal logic.
package scheduler

import (
	"github.com/dienstplan/dutyplan/pkg/calendar"
	"github.com/dienstplan/dutyplan/pkg/model"
	"github.com/dienstplan/dutyplan/pkg/plan"
	"github.com/dienstplan/dutyplan/pkg/rule"
	"github.com/dienstplan/dutyplan/pkg/wish"
)

// StaticEligible reports whether p may ever hold duty on d, ignoring
// dynamic monthly caps and the current plan state — the conditions a
// person must satisfy regardless of what else has been placed so far:
//
//  1. duty-fit
//  2. not absent on d
//  3. no free-wish submitted for d
//  4. no MUST-FORBIDDEN PersonDuty rule names this duty form
//  5. active rotation (if duty is rotation-scoped) permits it via a
//     MUST-COMBINATION RotationDuty rule, or no such rule constrains it
//  6. no active rotation forbids it via a MUST-FORBIDDEN RotationDuty rule
//  7. the duty form is schedulable on d at all (weekday match, or the
//     holiday variant on a holiday)
//  8. the person is not already excluded by a prior cascade removal for
//     this exact (date, duty) pair — enforced by the caller via the
//     queue, not by this predicate
func StaticEligible(p *model.Person, d model.Date, duty *model.DutyForm, net *rule.Network, cal calendar.Source, w *wish.Registry) bool {
	if !p.DutyFit {
		return false
	}
	if p.IsAbsent(d) {
		return false
	}
	if w.HasFreeWish(p, d) {
		return false
	}
	if net.Exists(p, duty, rule.Must, rule.Forbidden) {
		return false
	}

	if rot := p.ActiveRotation(d); rot != nil {
		if net.Exists(rot.Template, duty, rule.Must, rule.Forbidden) {
			return false
		}
	}

	for _, r := range net.OfSubtype(rule.SubtypeRotationDuty) {
		if r.RotationDuty != duty || r.Weight != rule.Must || r.Kind != rule.Combination {
			continue
		}
		rot := p.ActiveRotation(d)
		if rot == nil || rot.Template != r.Rotation {
			return false
		}
	}

	return IsSchedulable(d, duty, cal)
}

// IsSchedulable reports whether duty may be staffed at all on d: either
// d's weekday matches the duty form's weekday, or d is a holiday and
// duty is the Sunday-weekday form of a holiday-eligible group.
func IsSchedulable(d model.Date, duty *model.DutyForm, cal calendar.Source) bool {
	return calendar.Schedulable(d, duty, cal)
}

// DynamicEligible narrows a statically eligible person further against
// the plan built so far: the monthly cap for this duty form, the
// consecutive-run cap, the follow-up-free constraint in both directions,
// and same-day double-booking. Same-day double-booking is relaxed when a
// MUST-COMBINATION DutyDuty rule links duty to whatever p already holds
// that day — the two are meant to be held together. bypass skips the
// follow-up-free and in-a-row checks for joint/combination placement,
// which the driver may need to push through out of chronological order;
// it does not affect the same-day check, which is not an ordering
// artifact.
func DynamicEligible(p *model.Person, d model.Date, duty *model.DutyForm, st *plan.State, net *rule.Network, cal calendar.Source, bypass bool) bool {
	if heldDuty, ok := st.GetDutyOfPerson(p, d); ok {
		if !net.Exists(duty, heldDuty, rule.Must, rule.Combination) {
			return false
		}
	}
	if duty.MaxPerMonth > 0 && st.DutyFormMonthlyCount(p, duty, d.Month()) >= duty.MaxPerMonth {
		return false
	}
	if bypass {
		return true
	}
	if st.ConsecutiveRun(p, duty, d, cal) >= duty.MaxInARow {
		return false
	}
	if yesterdayHeld, ok := st.GetDutyOfPerson(p, d.AddDays(-1)); ok && yesterdayHeld.FollowUpFree {
		return false
	}
	if duty.FollowUpFree {
		if _, ok := st.GetDutyOfPerson(p, d.AddDays(1)); ok {
			return false
		}
	}
	return true
}
