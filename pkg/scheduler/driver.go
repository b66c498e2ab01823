package scheduler

import (
	"time"

	"github.com/dienstplan/dutyplan/pkg/apperr"
	"github.com/dienstplan/dutyplan/pkg/calendar"
	"github.com/dienstplan/dutyplan/pkg/checker"
	"github.com/dienstplan/dutyplan/pkg/logger"
	"github.com/dienstplan/dutyplan/pkg/model"
	"github.com/dienstplan/dutyplan/pkg/plan"
	"github.com/dienstplan/dutyplan/pkg/rule"
	"github.com/dienstplan/dutyplan/pkg/wish"
)

// Driver runs the greedy placement loop over a fixed set of people and
// duty forms, within a date range, against a rule network and wish
// registry assembled by the caller.
type Driver struct {
	People []*model.Person
	Duties []*model.DutyForm
	Net    *rule.Network
	Cal    calendar.Source
	Wishes *wish.Registry
	Plan   *plan.State

	// Budget is the full-time monthly duty budget (a person working
	// full time may hold this many duties a month; part-time people are
	// scaled by work capacity). Selection rejects a candidate once their
	// weighted monthly total has reached their scaled budget minus one,
	// leaving a one-duty safety margin.
	Budget int

	queue *Queue
	log   *logger.EngineLogger
}

// NewDriver assembles a driver. The caller owns Net and Wishes and may
// keep referring to them after Run returns — nothing here mutates them
// except MarkFulfilled on a successful placement. Budget defaults to 10;
// set Driver.Budget directly after construction to override it.
func NewDriver(people []*model.Person, duties []*model.DutyForm, net *rule.Network, cal calendar.Source, wishes *wish.Registry) *Driver {
	return &Driver{
		People: people,
		Duties: duties,
		Net:    net,
		Cal:    cal,
		Wishes: wishes,
		Plan:   plan.New(),
		Budget: 10,
		log:    logger.NewEngineLogger("scheduler"),
	}
}

type cascadeKey struct {
	ruleID model.ID
	date   string
}

// Run places duties across [from, to] and returns every Unfilled
// outcome encountered. CombinationMissing and ForbiddenViolated outcomes
// are the checker package's job to find in the finished plan, not the
// driver's — the driver only ever fails to fill a slot, it never
// violates a rule it could have avoided.
func (d *Driver) Run(from, to model.Date) []apperr.Outcome {
	started := time.Now()
	d.queue = NewQueue(from, to, d.Duties, d.Net, d.Cal)
	d.log.RunStarted(from.String(), to.String(), len(d.People), len(d.Duties))

	// Placements already in the plan (e.g. seed entries committed through
	// Place before this queue existed) get their MUST-FORBIDDEN DutyDuty
	// exclusions applied to the new queue. A linked day lies at most 7
	// days away, so placements up to 7 days outside [from, to] are included.
	for day := from.AddDays(-7); day.Before(to.AddDays(8)); day = day.AddDays(1) {
		for duty, person := range d.Plan.GetDutiesOnDate(day) {
			d.cascadeForbidden(person, day, duty, make(map[cascadeKey]bool))
		}
	}

	var outcomes []apperr.Outcome
	placed := 0

	for {
		d.queue.Rebuild(d.People, d.Plan, d.Wishes)
		slot := d.queue.Front()
		if slot == nil {
			break
		}
		if len(slot.Candidates) == 0 {
			outcomes = append(outcomes, apperr.Outcome{
				Code:   apperr.Unfilled,
				Date:   slot.Date.String(),
				Detail: slot.Duty.Name,
			})
			d.log.Unfilled(slot.Date.String(), slot.Duty.Name)
			d.queue.Drop(slot.Date, slot.Duty)
			continue
		}

		combos := d.Net.DutyDutyRulesOf(slot.Duty, rule.Must, rule.Combination)
		if len(combos) > 0 {
			d.placeJoint(slot, combos)
		} else {
			d.placeSingle(slot)
		}
		if _, filled := d.Plan.GetPersonOn(slot.Date, slot.Duty); !filled {
			// Selection rejected every candidate; the slot has been dropped.
			outcomes = append(outcomes, apperr.Outcome{
				Code:   apperr.Unfilled,
				Date:   slot.Date.String(),
				Detail: slot.Duty.Name,
			})
			d.log.Unfilled(slot.Date.String(), slot.Duty.Name)
			continue
		}
		placed++
	}

	d.log.RunComplete(time.Since(started), placed, len(outcomes))
	return outcomes
}

// legLink describes one duty leg of a joint (combination) placement.
type legLink struct {
	date model.Date
	duty *model.DutyForm
}

// placeJoint handles a slot bound by one or more MUST-COMBINATION
// DutyDuty rules: every linked leg must receive the same person. If no
// single candidate satisfies every leg, it falls back to placing the
// primary slot alone — the missing combination is then a
// CombinationMissing finding for the checker, not a placement failure.
func (d *Driver) placeJoint(slot *Slot, combos []*rule.Rule) {
	legs := []legLink{{date: slot.Date, duty: slot.Duty}}
	for _, r := range combos {
		other, linkedDate, ok := r.LinkedDayFor(slot.Date, slot.Duty)
		if !ok || !IsSchedulable(linkedDate, other, d.Cal) {
			continue
		}
		legs = append(legs, legLink{date: linkedDate, duty: other})
	}

	if len(legs) == 1 {
		d.placeSingle(slot)
		return
	}

	candidates := d.eligibleFor(slot.Date, slot.Duty, true)
	for _, leg := range legs[1:] {
		// A leg already filled (by an earlier joint placement through a
		// different combination rule) cannot be overwritten: the only
		// acceptable candidate for this round is whoever already holds it.
		if occupant, filled := d.Plan.GetPersonOn(leg.date, leg.duty); filled {
			candidates = intersect(candidates, []*model.Person{occupant})
		} else {
			candidates = intersect(candidates, d.eligibleFor(leg.date, leg.duty, true))
		}
		if len(candidates) == 0 {
			break
		}
	}

	pseudo := &Slot{Date: slot.Date, Duty: slot.Duty, Candidates: candidates}
	person := SelectBestWish(pseudo, d.Plan, d.queue, d.Net, d.Wishes, d.Budget)
	if person == nil {
		person = SelectBest(pseudo, d.Plan, d.queue, d.Net, d.Budget)
	}
	if person == nil {
		d.placeSingle(slot)
		return
	}

	for _, leg := range legs {
		if _, filled := d.Plan.GetPersonOn(leg.date, leg.duty); filled {
			continue
		}
		d.place(person, leg.date, leg.duty)
	}
}

// placeSingle handles a slot with no combination constraint: pick one
// candidate and place them.
func (d *Driver) placeSingle(slot *Slot) {
	person := SelectBestWish(slot, d.Plan, d.queue, d.Net, d.Wishes, d.Budget)
	if person == nil {
		person = SelectBest(slot, d.Plan, d.queue, d.Net, d.Budget)
	}
	if person == nil {
		d.queue.Drop(slot.Date, slot.Duty)
		return
	}
	d.place(person, slot.Date, slot.Duty)
}

// place commits one (date, duty, person) placement, marks any matching
// wish fulfilled, and propagates MUST-FORBIDDEN DutyDuty consequences.
func (d *Driver) place(person *model.Person, date model.Date, duty *model.DutyForm) {
	d.Plan.Place(date, duty, person)
	if d.Wishes.IsRequested(person, date, duty) {
		d.Wishes.MarkFulfilled(person)
	}
	d.log.Placed(date.String(), duty.Name, person.Name)
	d.cascadeForbidden(person, date, duty, make(map[cascadeKey]bool))
}

// cascadeForbidden excludes person from the linked day of every
// MUST-FORBIDDEN DutyDuty rule touching duty, recursing through any
// chain of such rules. visited guards against revisiting the same
// (rule, date) pair, which would otherwise cycle on a rule set that
// links back on itself.
func (d *Driver) cascadeForbidden(person *model.Person, date model.Date, duty *model.DutyForm, visited map[cascadeKey]bool) {
	for _, r := range d.Net.DutyDutyRulesOf(duty, rule.Must, rule.Forbidden) {
		k := cascadeKey{ruleID: r.ID, date: date.String()}
		if visited[k] {
			continue
		}
		visited[k] = true

		other, linkedDate, ok := r.LinkedDayFor(date, duty)
		if !ok {
			continue
		}
		// Place (and with it, a seed-plan entry placed before Run builds
		// the queue) may run before d.queue exists; Run then applies the
		// exclusion when it builds its queue, from the placements already
		// in the plan.
		if d.queue != nil {
			d.queue.Exclude(person, linkedDate, other)
		}
		d.log.Cascade(linkedDate.String(), other.Name, person.Name, "forbidden-with-"+duty.Name)
		d.cascadeForbidden(person, linkedDate, other, visited)
	}
}

// eligibleFor computes, from scratch against the current plan, every
// person both statically and dynamically eligible for (date, duty) —
// used when a combination leg is not already represented in the queue.
// bypass is forwarded to DynamicEligible: joint placement may plan a
// leg out of chronological order, so it bypasses the follow-up-free and
// in-a-row checks that assume earlier days are already settled.
func (d *Driver) eligibleFor(date model.Date, duty *model.DutyForm, bypass bool) []*model.Person {
	var out []*model.Person
	for _, p := range d.People {
		if d.queue.isExcluded(p, date, duty) {
			continue
		}
		if !StaticEligible(p, date, duty, d.Net, d.Cal, d.Wishes) {
			continue
		}
		if !DynamicEligible(p, date, duty, d.Plan, d.Net, d.Cal, bypass) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Place commits person onto (date, duty) directly, bypassing the queue —
// the repair-interface entry point a future repair strategy uses to
// patch a finished plan rather than re-running the whole placement loop.
func (d *Driver) Place(person *model.Person, date model.Date, duty *model.DutyForm) {
	d.place(person, date, duty)
}

// Unplace clears whoever holds duty on date, if anyone.
func (d *Driver) Unplace(date model.Date, duty *model.DutyForm) {
	d.Plan.Unplace(date, duty)
}

// Candidates returns every person currently eligible for (date, duty)
// against the plan as it stands right now, applying the same static and
// dynamic checks the placement loop itself uses (no bypass).
func (d *Driver) Candidates(date model.Date, duty *model.DutyForm) []*model.Person {
	if d.queue == nil {
		d.queue = NewQueue(date, date, d.Duties, d.Net, d.Cal)
	}
	return d.eligibleFor(date, duty, false)
}

// Violations runs the post-hoc rule checker over [from, to] against the
// plan as it stands right now.
func (d *Driver) Violations(from, to model.Date) []apperr.Outcome {
	return checker.Check(from, to, d.Plan, d.Net)
}

func intersect(a, b []*model.Person) []*model.Person {
	set := make(map[*model.Person]bool, len(b))
	for _, p := range b {
		set[p] = true
	}
	var out []*model.Person
	for _, p := range a {
		if set[p] {
			out = append(out, p)
		}
	}
	return out
}
