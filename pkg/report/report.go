// Package report computes diagnostic statistics over a finished plan:
// per-person load and wish fulfillment, and an overall fairness score.
// Nothing here feeds back into planning — it is read-only, for humans
// reviewing a run after the fact.
package report

import (
	"math"
	"sort"

	"github.com/dienstplan/dutyplan/pkg/model"
	"github.com/dienstplan/dutyplan/pkg/plan"
	"github.com/dienstplan/dutyplan/pkg/wish"
)

// PersonStat summarizes one person's outcome for a planning run.
type PersonStat struct {
	Person          *model.Person
	WeightedTotal   float64
	SubmittedWishes int
	FulfilledWishes int
}

// Summary is the full report for a planning run.
type Summary struct {
	People []PersonStat
	// Gini is the Gini coefficient of weighted monthly totals across
	// People, in [0, 1]. 0 means perfectly even load, closer to 1 means
	// load is concentrated on few people.
	Gini float64
}

// Build computes a Summary for people over the single calendar month
// identified by month (e.g. "2026-03", see model.Date.Month).
func Build(people []*model.Person, st *plan.State, w *wish.Registry, month string) Summary {
	stats := make([]PersonStat, 0, len(people))
	totals := make([]float64, 0, len(people))

	for _, p := range people {
		total := st.WeightedMonthlyTotal(p, month)
		stats = append(stats, PersonStat{
			Person:          p,
			WeightedTotal:   total,
			SubmittedWishes: w.SubmittedWishCount(p),
			FulfilledWishes: w.FulfilledWishCount(p),
		})
		totals = append(totals, total)
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Person.Name < stats[j].Person.Name
	})

	return Summary{People: stats, Gini: gini(totals)}
}

// gini computes the Gini coefficient of a set of non-negative values.
func gini(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var sumOfDiffs, sum float64
	for i, v := range sorted {
		sum += v
		sumOfDiffs += float64(2*(i+1)-n-1) * v
	}
	if sum == 0 {
		return 0
	}
	return sumOfDiffs / (float64(n) * sum)
}

// WishFulfillmentRate returns the fraction of submitted wishes that were
// fulfilled, or 1 if nobody submitted any.
func (s PersonStat) WishFulfillmentRate() float64 {
	if s.SubmittedWishes == 0 {
		return 1
	}
	return float64(s.FulfilledWishes) / float64(s.SubmittedWishes)
}

// AbsDeviationFromMean is a simple per-person fairness signal: how far
// this person's weighted total sits from the group's average.
func AbsDeviationFromMean(stats []PersonStat) map[*model.Person]float64 {
	if len(stats) == 0 {
		return nil
	}
	var sum float64
	for _, s := range stats {
		sum += s.WeightedTotal
	}
	mean := sum / float64(len(stats))

	out := make(map[*model.Person]float64, len(stats))
	for _, s := range stats {
		out[s.Person] = math.Abs(s.WeightedTotal - mean)
	}
	return out
}
