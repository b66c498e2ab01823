package scheduler

import (
	"sort"

	"github.com/dienstplan/dutyplan/pkg/calendar"
	"github.com/dienstplan/dutyplan/pkg/model"
	"github.com/dienstplan/dutyplan/pkg/plan"
	"github.com/dienstplan/dutyplan/pkg/rule"
	"github.com/dienstplan/dutyplan/pkg/wish"
)

// Slot is one (date, duty form) still waiting for a placement, together
// with its currently eligible candidates.
type Slot struct {
	Date       model.Date
	Duty       *model.DutyForm
	Candidates []*model.Person
}

// HasWish reports whether any current candidate submitted a wish for
// this slot.
func (s *Slot) HasWish(w *wish.Registry) bool {
	for _, p := range s.Candidates {
		if w.IsRequested(p, s.Date, s.Duty) {
			return true
		}
	}
	return false
}

// WishCount counts how many current candidates submitted a wish for
// this slot.
func (s *Slot) WishCount(w *wish.Registry) int {
	n := 0
	for _, p := range s.Candidates {
		if w.IsRequested(p, s.Date, s.Duty) {
			n++
		}
	}
	return n
}

// Queue is the dynamically re-sorted set of unfilled slots. It rebuilds
// from scratch after every placement rather than patching in place,
// matching the planning algorithm it is grounded on — simple at the cost
// of the occasional redundant re-scan, which is cheap relative to the
// sizes this engine plans for.
type Queue struct {
	slots []*Slot

	allSlots []slotSpec
	net      *rule.Network
	cal      calendar.Source

	excluded map[*model.Person]map[excludeKey]bool
}

type slotSpec struct {
	date model.Date
	duty *model.DutyForm
}

type excludeKey struct {
	date string
	duty *model.DutyForm
}

// NewQueue builds a queue seeded with every (date, duty) slot that is
// schedulable within [from, to], holiday policy applied.
func NewQueue(from, to model.Date, duties []*model.DutyForm, net *rule.Network, cal calendar.Source) *Queue {
	q := &Queue{net: net, cal: cal, excluded: make(map[*model.Person]map[excludeKey]bool)}
	for d := from; d.Before(to.AddDays(1)); d = d.AddDays(1) {
		for _, duty := range duties {
			if IsSchedulable(d, duty, cal) {
				q.allSlots = append(q.allSlots, slotSpec{date: d, duty: duty})
			}
		}
	}
	return q
}

// Rebuild recomputes every slot's candidate set against the current plan
// and drops slots that are already filled. A slot with no remaining
// candidates stays in the queue with an empty candidate set; the caller
// (driver) reports it as unfilled and drops it once it reaches the front.
func (q *Queue) Rebuild(people []*model.Person, st *plan.State, w *wish.Registry) {
	q.slots = q.slots[:0]
	for _, spec := range q.allSlots {
		if _, filled := st.GetPersonOn(spec.date, spec.duty); filled {
			continue
		}
		var candidates []*model.Person
		for _, p := range people {
			if q.isExcluded(p, spec.date, spec.duty) {
				continue
			}
			if !StaticEligible(p, spec.date, spec.duty, q.net, q.cal, w) {
				continue
			}
			if !DynamicEligible(p, spec.date, spec.duty, st, q.net, q.cal, false) {
				continue
			}
			candidates = append(candidates, p)
		}
		q.slots = append(q.slots, &Slot{Date: spec.date, Duty: spec.duty, Candidates: candidates})
	}
	q.sort(w)
}

// sort orders slots by the four-key comparator: slots with a submitted
// wish come first, then fewer wishers, then fewer candidates (more
// constrained slots are scheduled before they become infeasible), then
// higher fine-priority (duty forms entangled in more rules go first).
func (q *Queue) sort(w *wish.Registry) {
	sort.SliceStable(q.slots, func(i, j int) bool {
		a, b := q.slots[i], q.slots[j]

		aWish, bWish := a.HasWish(w), b.HasWish(w)
		if aWish != bWish {
			return aWish
		}

		aCount, bCount := a.WishCount(w), b.WishCount(w)
		if aCount != bCount {
			return aCount < bCount
		}

		if len(a.Candidates) != len(b.Candidates) {
			return len(a.Candidates) < len(b.Candidates)
		}

		return q.net.FinePriority(a.Duty) > q.net.FinePriority(b.Duty)
	})
}

// Front returns the highest-priority slot, or nil if the queue is empty.
func (q *Queue) Front() *Slot {
	if len(q.slots) == 0 {
		return nil
	}
	return q.slots[0]
}

// Slots exposes the current ordered slot list, read-only, for the
// driver's main loop and for tests.
func (q *Queue) Slots() []*Slot {
	return q.slots
}

// Remaining reports how many unfilled slots remain.
func (q *Queue) Remaining() int {
	return len(q.slots)
}

// Exclude bars person from ever becoming a candidate for (d, duty)
// again, used to propagate a MUST-FORBIDDEN DutyDuty rule's consequence
// once one of its two duties has been placed.
func (q *Queue) Exclude(person *model.Person, d model.Date, duty *model.DutyForm) {
	if q.excluded[person] == nil {
		q.excluded[person] = make(map[excludeKey]bool)
	}
	q.excluded[person][excludeKey{date: d.String(), duty: duty}] = true
}

func (q *Queue) isExcluded(person *model.Person, d model.Date, duty *model.DutyForm) bool {
	return q.excluded[person][excludeKey{date: d.String(), duty: duty}]
}

// Drop permanently removes (d, duty) from consideration, used once a
// slot has been determined unfillable so it does not resurface on every
// rebuild.
func (q *Queue) Drop(d model.Date, duty *model.DutyForm) {
	for i, spec := range q.allSlots {
		if spec.duty == duty && spec.date.Equal(d) {
			q.allSlots = append(q.allSlots[:i], q.allSlots[i+1:]...)
			return
		}
	}
}
