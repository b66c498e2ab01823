package scheduler

import (
	"testing"
	"time"

	"github.com/dienstplan/dutyplan/pkg/calendar"
	"github.com/dienstplan/dutyplan/pkg/model"
	"github.com/dienstplan/dutyplan/pkg/rule"
	"github.com/dienstplan/dutyplan/pkg/wish"
)

func mustDuty(t *testing.T, name string, weekday time.Weekday, group *model.DutyGroup, maxInARow, maxPerMonth int, followUpFree bool) *model.DutyForm {
	t.Helper()
	duty, err := model.NewDutyForm(name, weekday, group, maxInARow, maxPerMonth, 1.0, followUpFree)
	if err != nil {
		t.Fatalf("NewDutyForm(%s): %v", name, err)
	}
	return duty
}

// A single person and a single weekly slot: the only candidate gets
// placed and no outcome is reported.
func TestSingleSlotSinglePerson(t *testing.T) {
	group := model.NewDutyGroup("g", false)
	duty := mustDuty(t, "Friday", time.Friday, group, 3, 6, false)
	alice := model.NewPerson("Alice", 1.0, true)

	net := rule.NewNetwork()
	drv := NewDriver([]*model.Person{alice}, []*model.DutyForm{duty}, net, calendar.None{}, wish.NewRegistry())

	from := model.NewDate(2026, time.March, 6)
	outcomes := drv.Run(from, from)

	if len(outcomes) != 0 {
		t.Fatalf("expected no outcomes, got %v", outcomes)
	}
	person, ok := drv.Plan.GetPersonOn(from, duty)
	if !ok || person != alice {
		t.Errorf("GetPersonOn = (%v, %v), want (alice, true)", person, ok)
	}
}

// A follow-up-free duty on Friday bars the holder from the Saturday
// duty, leaving the Saturday slot unfilled when Alice is the only
// candidate for both.
func TestFollowUpFreeCascade(t *testing.T) {
	group := model.NewDutyGroup("g", false)
	friday := mustDuty(t, "Friday", time.Friday, group, 3, 6, true)
	saturday := mustDuty(t, "Saturday", time.Saturday, group, 3, 6, false)
	alice := model.NewPerson("Alice", 1.0, true)

	net := rule.NewNetwork()
	drv := NewDriver([]*model.Person{alice}, []*model.DutyForm{friday, saturday}, net, calendar.None{}, wish.NewRegistry())

	from := model.NewDate(2026, time.March, 6) // Friday
	to := from.AddDays(1)                      // Saturday
	outcomes := drv.Run(from, to)

	if _, ok := drv.Plan.GetPersonOn(from, friday); !ok {
		t.Error("expected Friday to be filled")
	}
	if _, ok := drv.Plan.GetPersonOn(to, saturday); ok {
		t.Error("expected Saturday to remain unfilled due to the follow-up-free cascade")
	}

	foundUnfilled := false
	for _, o := range outcomes {
		if o.Date == to.String() && o.Detail == saturday.Name {
			foundUnfilled = true
		}
	}
	if !foundUnfilled {
		t.Errorf("expected an Unfilled outcome for Saturday, got %v", outcomes)
	}
}

// A MUST-COMBINATION rule between a Friday and a Sunday duty forces the
// same person onto both.
func TestMandatoryCombination(t *testing.T) {
	group := model.NewDutyGroup("g", false)
	friday := mustDuty(t, "Friday", time.Friday, group, 3, 6, false)
	sunday := mustDuty(t, "Sunday", time.Sunday, group, 3, 6, false)
	alice := model.NewPerson("Alice", 1.0, true)
	bob := model.NewPerson("Bob", 1.0, true)

	net := rule.NewNetwork()
	net.Register(&rule.Rule{Subtype: rule.SubtypeDutyDuty, Weight: rule.Must, Kind: rule.Combination, DutyA: friday, DutyB: sunday})

	drv := NewDriver([]*model.Person{alice, bob}, []*model.DutyForm{friday, sunday}, net, calendar.None{}, wish.NewRegistry())

	from := model.NewDate(2026, time.March, 6) // Friday
	to := from.AddDays(2)                      // Sunday
	drv.Run(from, to)

	fridayPerson, ok1 := drv.Plan.GetPersonOn(from, friday)
	sundayPerson, ok2 := drv.Plan.GetPersonOn(to, sunday)
	if !ok1 || !ok2 {
		t.Fatalf("expected both legs filled, got friday=%v sunday=%v", ok1, ok2)
	}
	if fridayPerson != sundayPerson {
		t.Errorf("expected the same person on both legs, got %v and %v", fridayPerson.Name, sundayPerson.Name)
	}
}

// MaxInARow caps how many consecutive weekly occurrences the same
// person may hold.
func TestMaxInARowLimit(t *testing.T) {
	group := model.NewDutyGroup("g", false)
	duty := mustDuty(t, "Friday", time.Friday, group, 2, 10, false)
	alice := model.NewPerson("Alice", 1.0, true)

	st := NewDriver([]*model.Person{alice}, []*model.DutyForm{duty}, rule.NewNetwork(), calendar.None{}, wish.NewRegistry()).Plan

	week1 := model.NewDate(2026, time.March, 6)
	week2 := week1.AddDays(7)
	week3 := week2.AddDays(7)

	st.Place(week1, duty, alice)
	st.Place(week2, duty, alice)

	if DynamicEligible(alice, week3, duty, st, rule.NewNetwork(), calendar.None{}, false) {
		t.Error("expected Alice to be excluded from a third consecutive week by MaxInARow")
	}
}

// A MUST-FORBIDDEN PersonPerson rule keeps two people off linked duty
// forms on the same day.
func TestForbiddenPairExcludesNeighbor(t *testing.T) {
	group := model.NewDutyGroup("g", false)
	day := mustDuty(t, "Day", time.Friday, group, 3, 6, false)
	night := mustDuty(t, "Night", time.Friday, group, 3, 6, false)
	day.LinkTo(night)

	alice := model.NewPerson("Alice", 1.0, true)
	bob := model.NewPerson("Bob", 1.0, true)

	net := rule.NewNetwork()
	net.Register(&rule.Rule{Subtype: rule.SubtypePersonPerson, Weight: rule.Must, Kind: rule.Forbidden, PersonA: alice, PersonB: bob})

	st := NewDriver(nil, nil, net, calendar.None{}, wish.NewRegistry()).Plan
	d := model.NewDate(2026, time.March, 6)
	st.Place(d, night, bob)

	slot := &Slot{Date: d, Duty: day, Candidates: []*model.Person{alice, bob}}
	filtered := forbiddenNeighborFiltered(slot.Candidates, slot, st, net)

	for _, p := range filtered {
		if p == alice {
			t.Error("expected Alice to be excluded as Bob's forbidden neighbor")
		}
	}
}

// Among otherwise-equal candidates, the one who submitted a wish for
// the slot wins the tie-break.
func TestWishTieBreak(t *testing.T) {
	group := model.NewDutyGroup("g", false)
	duty := mustDuty(t, "Friday", time.Friday, group, 3, 6, false)
	alice := model.NewPerson("Alice", 1.0, true)
	bob := model.NewPerson("Bob", 1.0, true)

	net := rule.NewNetwork()
	w := wish.NewRegistry()
	d := model.NewDate(2026, time.March, 6)
	w.RequestDuty(bob, d, duty)

	drv := NewDriver([]*model.Person{alice, bob}, []*model.DutyForm{duty}, net, calendar.None{}, w)
	drv.Run(d, d)

	person, ok := drv.Plan.GetPersonOn(d, duty)
	if !ok || person != bob {
		t.Errorf("GetPersonOn = (%v, %v), want (bob, true)", person, ok)
	}
	if w.FulfilledWishCount(bob) != 1 {
		t.Errorf("FulfilledWishCount(bob) = %d, want 1", w.FulfilledWishCount(bob))
	}
}
