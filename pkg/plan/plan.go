// Package plan holds the mutable placement state the scheduler builds
// up and the checker later inspects: who holds which duty form on which
// date. It is the one source of truth both the placement loop and the
// post-hoc rule checker read and write.
package plan

import (
	"github.com/dienstplan/dutyplan/pkg/calendar"
	"github.com/dienstplan/dutyplan/pkg/model"
)

// State is the plan under construction (or already built).
type State struct {
	byDateDuty   map[string]map[*model.DutyForm]*model.Person
	byPersonDate map[*model.Person]map[string]*model.DutyForm
}

// New creates an empty plan.
func New() *State {
	return &State{
		byDateDuty:   make(map[string]map[*model.DutyForm]*model.Person),
		byPersonDate: make(map[*model.Person]map[string]*model.DutyForm),
	}
}

// Place assigns person to duty on d, overwriting any prior occupant.
func (s *State) Place(d model.Date, duty *model.DutyForm, person *model.Person) {
	key := d.String()
	if prior, ok := s.byDateDuty[key][duty]; ok && prior != person && s.byPersonDate[prior][key] == duty {
		delete(s.byPersonDate[prior], key)
	}
	if s.byDateDuty[key] == nil {
		s.byDateDuty[key] = make(map[*model.DutyForm]*model.Person)
	}
	s.byDateDuty[key][duty] = person

	if s.byPersonDate[person] == nil {
		s.byPersonDate[person] = make(map[string]*model.DutyForm)
	}
	s.byPersonDate[person][key] = duty
}

// Unplace removes whoever holds duty on d, if anyone.
func (s *State) Unplace(d model.Date, duty *model.DutyForm) {
	key := d.String()
	occupants := s.byDateDuty[key]
	person, ok := occupants[duty]
	if !ok {
		return
	}
	delete(occupants, duty)
	if pd := s.byPersonDate[person]; pd != nil {
		delete(pd, key)
	}
}

// GetDutiesOnDate returns the duty->person map for d. Callers must treat
// the returned map as read-only.
func (s *State) GetDutiesOnDate(d model.Date) map[*model.DutyForm]*model.Person {
	return s.byDateDuty[d.String()]
}

// GetPersonOn returns who holds duty on d, if anyone.
func (s *State) GetPersonOn(d model.Date, duty *model.DutyForm) (*model.Person, bool) {
	p, ok := s.byDateDuty[d.String()][duty]
	return p, ok
}

// GetDutyOfPerson returns the duty form p holds on d, if any.
func (s *State) GetDutyOfPerson(p *model.Person, d model.Date) (*model.DutyForm, bool) {
	duty, ok := s.byPersonDate[p][d.String()]
	return duty, ok
}

// IsPersonPlanned reports whether p holds any duty on d.
func (s *State) IsPersonPlanned(p *model.Person, d model.Date) bool {
	_, ok := s.GetDutyOfPerson(p, d)
	return ok
}

// ConsecutiveRun counts how many consecutive occurrences immediately
// before d person already holds duty — d itself is the day about to
// receive (or already holding) the duty form, so the run counted here
// does not include d. A duty form normally recurs only on its own
// weekday, so successive occurrences are 7 days apart — but the
// holiday policy can place the same Sunday-variant duty form on two
// calendar-adjacent holiday dates, so this walks back one calendar day
// at a time to the duty's actual previous schedulable date rather than
// assuming a fixed 7-day step. Used to enforce a duty form's MaxInARow
// cap.
func (s *State) ConsecutiveRun(p *model.Person, duty *model.DutyForm, d model.Date, cal calendar.Source) int {
	run := 0
	cursor := previousOccurrence(d, duty, cal)
	for {
		held, ok := s.GetDutyOfPerson(p, cursor)
		if !ok || held != duty {
			break
		}
		run++
		cursor = previousOccurrence(cursor, duty, cal)
	}
	return run
}

// previousOccurrence finds the closest earlier date, within a 7-day
// window, on which duty is schedulable at all — its natural previous
// occurrence, whether that is d−1 (holiday adjacency) or d−7 (ordinary
// weekly recurrence).
func previousOccurrence(d model.Date, duty *model.DutyForm, cal calendar.Source) model.Date {
	for i := 1; i <= 7; i++ {
		candidate := d.AddDays(-i)
		if calendar.Schedulable(candidate, duty, cal) {
			return candidate
		}
	}
	return d.AddDays(-7)
}

// WeightedMonthlyTotal sums duty.Weight over every placement p holds
// within month.
func (s *State) WeightedMonthlyTotal(p *model.Person, month string) float64 {
	var total float64
	for dateKey, duty := range s.byPersonDate[p] {
		if model.MonthOf(dateKey) == month {
			total += duty.Weight
		}
	}
	return total
}

// DutyFormMonthlyCount counts how many times p holds the given duty form
// within month.
func (s *State) DutyFormMonthlyCount(p *model.Person, duty *model.DutyForm, month string) int {
	count := 0
	for dateKey, held := range s.byPersonDate[p] {
		if held == duty && model.MonthOf(dateKey) == month {
			count++
		}
	}
	return count
}
