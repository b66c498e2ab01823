package report

import (
	"testing"
	"time"

	"github.com/dienstplan/dutyplan/pkg/model"
	"github.com/dienstplan/dutyplan/pkg/plan"
	"github.com/dienstplan/dutyplan/pkg/wish"
)

func newDuty(t *testing.T, name string, weekday time.Weekday, weight float64) *model.DutyForm {
	t.Helper()
	group := model.NewDutyGroup("g", false)
	duty, err := model.NewDutyForm(name, weekday, group, 3, 6, weight, false)
	if err != nil {
		t.Fatalf("NewDutyForm: %v", err)
	}
	return duty
}

func TestBuildEvenLoadHasLowGini(t *testing.T) {
	alice := model.NewPerson("Alice", 1.0, true)
	bob := model.NewPerson("Bob", 1.0, true)
	duty := newDuty(t, "Friday", time.Friday, 1.0)

	st := plan.New()
	d1 := model.NewDate(2026, time.March, 6)
	d2 := d1.AddDays(7)
	st.Place(d1, duty, alice)
	st.Place(d2, duty, bob)

	summary := Build([]*model.Person{alice, bob}, st, wish.NewRegistry(), "2026-03")
	if summary.Gini > 0.01 {
		t.Errorf("expected near-zero Gini for even load, got %v", summary.Gini)
	}
}

func TestBuildUnevenLoadHasHigherGini(t *testing.T) {
	alice := model.NewPerson("Alice", 1.0, true)
	bob := model.NewPerson("Bob", 1.0, true)
	duty := newDuty(t, "Friday", time.Friday, 1.0)

	st := plan.New()
	d1 := model.NewDate(2026, time.March, 6)
	d2 := d1.AddDays(7)
	st.Place(d1, duty, alice)
	st.Place(d2, duty, alice)

	summary := Build([]*model.Person{alice, bob}, st, wish.NewRegistry(), "2026-03")
	if summary.Gini <= 0 {
		t.Errorf("expected a positive Gini when only one person carries load, got %v", summary.Gini)
	}
}

func TestWishFulfillmentRate(t *testing.T) {
	alice := model.NewPerson("Alice", 1.0, true)
	w := wish.NewRegistry()
	duty := newDuty(t, "Friday", time.Friday, 1.0)
	d := model.NewDate(2026, time.March, 6)
	w.RequestDuty(alice, d, duty)
	w.MarkFulfilled(alice)

	st := plan.New()
	summary := Build([]*model.Person{alice}, st, w, "2026-03")
	if len(summary.People) != 1 {
		t.Fatalf("expected one person stat, got %d", len(summary.People))
	}
	if rate := summary.People[0].WishFulfillmentRate(); rate != 1.0 {
		t.Errorf("WishFulfillmentRate = %v, want 1.0", rate)
	}
}
