// Package checker runs the post-hoc rule audit over a finished plan:
// for every MUST-weight rule, does the plan actually honor it. The
// driver package only ever fails to fill a slot; it is this package's
// job to notice a combination that never came together or a forbidden
// pairing that slipped through (both can happen, since the driver's
// cascade guards are best-effort, not a proof of correctness).
package checker

import (
	"github.com/dienstplan/dutyplan/pkg/apperr"
	"github.com/dienstplan/dutyplan/pkg/model"
	"github.com/dienstplan/dutyplan/pkg/plan"
	"github.com/dienstplan/dutyplan/pkg/rule"
)

// Check walks every date in [from, to] against every MUST rule in net
// and returns the CombinationMissing / ForbiddenViolated outcomes the
// finished plan exhibits.
func Check(from, to model.Date, st *plan.State, net *rule.Network) []apperr.Outcome {
	var outcomes []apperr.Outcome
	for d := from; d.Before(to.AddDays(1)); d = d.AddDays(1) {
		outcomes = append(outcomes, checkDutyDuty(d, st, net)...)
		outcomes = append(outcomes, checkPersonPerson(d, st, net)...)
		outcomes = append(outcomes, checkPersonDuty(d, st, net)...)
		outcomes = append(outcomes, checkRotationDuty(d, st, net)...)
	}
	return outcomes
}

func checkDutyDuty(d model.Date, st *plan.State, net *rule.Network) []apperr.Outcome {
	var outcomes []apperr.Outcome
	for _, r := range net.OfSubtype(rule.SubtypeDutyDuty) {
		if r.Weight != rule.Must {
			continue
		}
		personA, heldA := st.GetPersonOn(d, r.DutyA)
		if !heldA {
			continue
		}
		linkedDate, ok := r.LinkedDay(d, 1)
		if !ok {
			continue
		}
		personB, heldB := st.GetPersonOn(linkedDate, r.DutyB)

		switch r.Kind {
		case rule.Combination:
			if !heldB || personB != personA {
				outcomes = append(outcomes, apperr.Outcome{
					Code:   apperr.CombinationMissing,
					Date:   d.String(),
					Detail: r.DutyA.Name + " + " + r.DutyB.Name,
				})
			}
		case rule.Forbidden:
			if heldB && personB == personA {
				outcomes = append(outcomes, apperr.Outcome{
					Code:   apperr.ForbiddenViolated,
					Date:   d.String(),
					Detail: r.DutyA.Name + " + " + r.DutyB.Name + " both held by " + personA.Name,
				})
			}
		}
	}
	return outcomes
}

func checkPersonPerson(d model.Date, st *plan.State, net *rule.Network) []apperr.Outcome {
	var outcomes []apperr.Outcome
	duties := st.GetDutiesOnDate(d)
	for _, r := range net.OfSubtype(rule.SubtypePersonPerson) {
		if r.Weight != rule.Must || r.Kind != rule.Forbidden {
			continue
		}
		aOn, bOn := false, false
		for _, occupant := range duties {
			if occupant == r.PersonA {
				aOn = true
			}
			if occupant == r.PersonB {
				bOn = true
			}
		}
		if aOn && bOn {
			outcomes = append(outcomes, apperr.Outcome{
				Code:   apperr.ForbiddenViolated,
				Date:   d.String(),
				Detail: r.PersonA.Name + " + " + r.PersonB.Name + " on duty together",
			})
		}
	}
	return outcomes
}

// checkPersonDuty reports a MUST-FORBIDDEN PersonDuty rule whose named
// person nonetheless holds the named duty form on d — this can only
// happen if something bypassed StaticEligible's own check, e.g. a
// direct Place call from a repair strategy.
func checkPersonDuty(d model.Date, st *plan.State, net *rule.Network) []apperr.Outcome {
	var outcomes []apperr.Outcome
	for _, r := range net.OfSubtype(rule.SubtypePersonDuty) {
		if r.Weight != rule.Must || r.Kind != rule.Forbidden {
			continue
		}
		held, ok := st.GetPersonOn(d, r.Duty)
		if ok && held == r.Person {
			outcomes = append(outcomes, apperr.Outcome{
				Code:   apperr.ForbiddenViolated,
				Date:   d.String(),
				Detail: r.Person.Name + " holding forbidden duty " + r.Duty.Name,
			})
		}
	}
	return outcomes
}

// checkRotationDuty reports a MUST-FORBIDDEN RotationDuty rule whose
// named rotation nonetheless has an active member holding the named
// duty form on d.
func checkRotationDuty(d model.Date, st *plan.State, net *rule.Network) []apperr.Outcome {
	var outcomes []apperr.Outcome
	for _, r := range net.OfSubtype(rule.SubtypeRotationDuty) {
		if r.Weight != rule.Must || r.Kind != rule.Forbidden {
			continue
		}
		held, ok := st.GetPersonOn(d, r.RotationDuty)
		if !ok {
			continue
		}
		rot := held.ActiveRotation(d)
		if rot != nil && rot.Template == r.Rotation {
			outcomes = append(outcomes, apperr.Outcome{
				Code:   apperr.ForbiddenViolated,
				Date:   d.String(),
				Detail: held.Name + " holding rotation-forbidden duty " + r.RotationDuty.Name,
			})
		}
	}
	return outcomes
}
