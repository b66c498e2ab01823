package scheduler

import (
	"math"
	"sort"

	"github.com/dienstplan/dutyplan/pkg/model"
	"github.com/dienstplan/dutyplan/pkg/plan"
	"github.com/dienstplan/dutyplan/pkg/rule"
	"github.com/dienstplan/dutyplan/pkg/wish"
)

// monthlyBudget is the number of duties p may hold in a month, scaled
// from fullTimeBudget by work capacity and rounded to the nearest whole
// duty.
func monthlyBudget(p *model.Person, fullTimeBudget int) int {
	return int(math.Round(float64(fullTimeBudget) * p.WorkCapacity))
}

// budgetFiltered drops candidates whose weighted monthly total has
// already reached their capped monthly budget — the cap is their budget
// minus one, a safety margin applied at selection time so the last unit
// of a person's capacity is never claimed by a non-wish placement.
func budgetFiltered(candidates []*model.Person, month string, st *plan.State, fullTimeBudget int) []*model.Person {
	out := make([]*model.Person, 0, len(candidates))
	for _, p := range candidates {
		limit := float64(monthlyBudget(p, fullTimeBudget) - 1)
		if st.WeightedMonthlyTotal(p, month) < limit {
			out = append(out, p)
		}
	}
	return out
}

// forbiddenNeighborFiltered drops candidates who would sit, on the same
// day, alongside a person they hold a MUST-FORBIDDEN PersonPerson rule
// with, on one of slot's linked duty forms.
func forbiddenNeighborFiltered(candidates []*model.Person, s *Slot, st *plan.State, net *rule.Network) []*model.Person {
	if len(s.Duty.LinkedForms) == 0 {
		return candidates
	}
	out := make([]*model.Person, 0, len(candidates))
	for _, p := range candidates {
		ok := true
		for _, other := range s.Duty.LinkedForms {
			neighbor, has := st.GetPersonOn(s.Date, other)
			if has && net.Exists(p, neighbor, rule.Must, rule.Forbidden) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, p)
		}
	}
	return out
}

// queueAvailability counts how many other slots in q still list p as a
// candidate — a proxy for how many future opportunities p has left.
func queueAvailability(p *model.Person, q *Queue) int {
	n := 0
	for _, s := range q.Slots() {
		for _, c := range s.Candidates {
			if c == p {
				n++
				break
			}
		}
	}
	return n
}

// SelectBest picks one candidate for s when no candidate submitted a
// wish for it: by ascending weighted monthly total (spread load evenly),
// then by ascending queue availability (place the scarcer person while
// they are still placeable), then again by monthly total as a final
// tie-break. A slot with exactly one candidate returns that candidate
// at once, before the forbidden-neighbor and budget filters run.
func SelectBest(s *Slot, st *plan.State, q *Queue, net *rule.Network, fullTimeBudget int) *model.Person {
	if len(s.Candidates) == 1 {
		return s.Candidates[0]
	}

	month := s.Date.Month()
	candidates := forbiddenNeighborFiltered(s.Candidates, s, st, net)
	candidates = budgetFiltered(candidates, month, st, fullTimeBudget)
	if len(candidates) == 0 {
		return nil
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		at, bt := st.WeightedMonthlyTotal(a, month), st.WeightedMonthlyTotal(b, month)
		if at != bt {
			return at < bt
		}
		aq, bq := queueAvailability(a, q), queueAvailability(b, q)
		if aq != bq {
			return aq < bq
		}
		return st.WeightedMonthlyTotal(a, month)*0.5 < st.WeightedMonthlyTotal(b, month)*0.5
	})
	return candidates[0]
}

// SelectBestWish picks one candidate for s among those who submitted a
// wish for it: by ascending fulfilled-wish count (give priority to
// people whose wishes have gone unfulfilled so far), then descending
// submitted-wish count, then ascending queue availability, then
// ascending weighted monthly total. A slot with exactly one candidate
// returns that candidate at once, whether or not they submitted a wish
// and before the forbidden-neighbor and budget filters run.
func SelectBestWish(s *Slot, st *plan.State, q *Queue, net *rule.Network, w *wish.Registry, fullTimeBudget int) *model.Person {
	if len(s.Candidates) == 1 {
		return s.Candidates[0]
	}

	month := s.Date.Month()
	candidates := forbiddenNeighborFiltered(s.Candidates, s, st, net)
	candidates = budgetFiltered(candidates, month, st, fullTimeBudget)
	var wishers []*model.Person
	for _, p := range candidates {
		if w.IsRequested(p, s.Date, s.Duty) {
			wishers = append(wishers, p)
		}
	}
	if len(wishers) == 0 {
		return nil
	}
	if len(wishers) == 1 {
		return wishers[0]
	}

	sort.SliceStable(wishers, func(i, j int) bool {
		a, b := wishers[i], wishers[j]
		if w.FulfilledWishCount(a) != w.FulfilledWishCount(b) {
			return w.FulfilledWishCount(a) < w.FulfilledWishCount(b)
		}
		if w.SubmittedWishCount(a) != w.SubmittedWishCount(b) {
			return w.SubmittedWishCount(a) > w.SubmittedWishCount(b)
		}
		aq, bq := queueAvailability(a, q), queueAvailability(b, q)
		if aq != bq {
			return aq < bq
		}
		return st.WeightedMonthlyTotal(a, month) < st.WeightedMonthlyTotal(b, month)
	})
	return wishers[0]
}
