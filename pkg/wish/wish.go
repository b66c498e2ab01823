// Package wish tracks person-submitted duty preferences: requests to
// hold a specific duty on a specific date, and requests for a date to
// stay free of any duty. A duty request never forces a placement: it
// moves the wished slot forward in the planning queue and makes the
// requester the preferred pick for that slot. A free-day request keeps
// the person off every duty on that date.
package wish

import "github.com/dienstplan/dutyplan/pkg/model"

type slotKey struct {
	date string
	duty *model.DutyForm
}

// Registry holds every submitted wish for one planning run.
type Registry struct {
	requested map[slotKey]map[*model.Person]bool
	freeDay   map[string]map[*model.Person]bool

	submittedCount map[*model.Person]int
	fulfilledCount map[*model.Person]int
}

// NewRegistry creates an empty wish registry.
func NewRegistry() *Registry {
	return &Registry{
		requested:      make(map[slotKey]map[*model.Person]bool),
		freeDay:        make(map[string]map[*model.Person]bool),
		submittedCount: make(map[*model.Person]int),
		fulfilledCount: make(map[*model.Person]int),
	}
}

// RequestDuty records that p wishes to hold duty on d.
func (r *Registry) RequestDuty(p *model.Person, d model.Date, duty *model.DutyForm) {
	k := slotKey{date: d.String(), duty: duty}
	if r.requested[k] == nil {
		r.requested[k] = make(map[*model.Person]bool)
	}
	r.requested[k][p] = true
	r.submittedCount[p]++
}

// RequestFreeDay records that p wishes to hold no duty at all on d.
func (r *Registry) RequestFreeDay(p *model.Person, d model.Date) {
	if r.freeDay[d.String()] == nil {
		r.freeDay[d.String()] = make(map[*model.Person]bool)
	}
	r.freeDay[d.String()][p] = true
	r.submittedCount[p]++
}

// IsRequested reports whether p asked for duty on d.
func (r *Registry) IsRequested(p *model.Person, d model.Date, duty *model.DutyForm) bool {
	k := slotKey{date: d.String(), duty: duty}
	return r.requested[k][p]
}

// PersonsFor returns everyone who requested duty on d.
func (r *Registry) PersonsFor(d model.Date, duty *model.DutyForm) []*model.Person {
	k := slotKey{date: d.String(), duty: duty}
	out := make([]*model.Person, 0, len(r.requested[k]))
	for p := range r.requested[k] {
		out = append(out, p)
	}
	return out
}

// HasFreeWish reports whether p asked to be kept off duty on d.
func (r *Registry) HasFreeWish(p *model.Person, d model.Date) bool {
	return r.freeDay[d.String()][p]
}

// SubmittedWishCount is the total number of wishes p has submitted this
// run, across both duty requests and free-day requests.
func (r *Registry) SubmittedWishCount(p *model.Person) int {
	return r.submittedCount[p]
}

// FulfilledWishCount is the number of p's wishes honored so far.
func (r *Registry) FulfilledWishCount(p *model.Person) int {
	return r.fulfilledCount[p]
}

// MarkFulfilled increments p's fulfilled-wish count. Called once a
// requested duty is actually placed onto p.
func (r *Registry) MarkFulfilled(p *model.Person) {
	r.fulfilledCount[p]++
}
