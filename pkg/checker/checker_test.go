package checker

import (
	"testing"
	"time"

	"github.com/dienstplan/dutyplan/pkg/apperr"
	"github.com/dienstplan/dutyplan/pkg/model"
	"github.com/dienstplan/dutyplan/pkg/plan"
	"github.com/dienstplan/dutyplan/pkg/rule"
)

func newDuty(t *testing.T, name string, weekday time.Weekday) *model.DutyForm {
	t.Helper()
	group := model.NewDutyGroup("g", false)
	duty, err := model.NewDutyForm(name, weekday, group, 3, 6, 1.0, false)
	if err != nil {
		t.Fatalf("NewDutyForm: %v", err)
	}
	return duty
}

func TestCheckFindsMissingCombination(t *testing.T) {
	friday := newDuty(t, "Friday", time.Friday)
	sunday := newDuty(t, "Sunday", time.Sunday)
	alice := model.NewPerson("Alice", 1.0, true)

	net := rule.NewNetwork()
	net.Register(&rule.Rule{Subtype: rule.SubtypeDutyDuty, Weight: rule.Must, Kind: rule.Combination, DutyA: friday, DutyB: sunday})

	st := plan.New()
	from := model.NewDate(2026, time.March, 6)
	st.Place(from, friday, alice) // Sunday leg never placed

	outcomes := Check(from, from.AddDays(2), st, net)
	if !hasCode(outcomes, apperr.CombinationMissing) {
		t.Errorf("expected a CombinationMissing outcome, got %v", outcomes)
	}
}

func TestCheckPassesWhenCombinationHonored(t *testing.T) {
	friday := newDuty(t, "Friday", time.Friday)
	sunday := newDuty(t, "Sunday", time.Sunday)
	alice := model.NewPerson("Alice", 1.0, true)

	net := rule.NewNetwork()
	net.Register(&rule.Rule{Subtype: rule.SubtypeDutyDuty, Weight: rule.Must, Kind: rule.Combination, DutyA: friday, DutyB: sunday})

	st := plan.New()
	from := model.NewDate(2026, time.March, 6)
	to := from.AddDays(2)
	st.Place(from, friday, alice)
	st.Place(to, sunday, alice)

	outcomes := Check(from, to, st, net)
	if hasCode(outcomes, apperr.CombinationMissing) {
		t.Errorf("did not expect a CombinationMissing outcome, got %v", outcomes)
	}
}

func TestCheckFindsForbiddenDutyDutyViolation(t *testing.T) {
	friday := newDuty(t, "Friday", time.Friday)
	sunday := newDuty(t, "Sunday", time.Sunday)
	alice := model.NewPerson("Alice", 1.0, true)

	net := rule.NewNetwork()
	net.Register(&rule.Rule{Subtype: rule.SubtypeDutyDuty, Weight: rule.Must, Kind: rule.Forbidden, DutyA: friday, DutyB: sunday})

	st := plan.New()
	from := model.NewDate(2026, time.March, 6)
	to := from.AddDays(2)
	st.Place(from, friday, alice)
	st.Place(to, sunday, alice)

	outcomes := Check(from, to, st, net)
	if !hasCode(outcomes, apperr.ForbiddenViolated) {
		t.Errorf("expected a ForbiddenViolated outcome, got %v", outcomes)
	}
}

func TestCheckFindsForbiddenPersonPairViolation(t *testing.T) {
	day := newDuty(t, "Day", time.Friday)
	night := newDuty(t, "Night", time.Friday)
	alice := model.NewPerson("Alice", 1.0, true)
	bob := model.NewPerson("Bob", 1.0, true)

	net := rule.NewNetwork()
	net.Register(&rule.Rule{Subtype: rule.SubtypePersonPerson, Weight: rule.Must, Kind: rule.Forbidden, PersonA: alice, PersonB: bob})

	st := plan.New()
	d := model.NewDate(2026, time.March, 6)
	st.Place(d, day, alice)
	st.Place(d, night, bob)

	outcomes := Check(d, d, st, net)
	if !hasCode(outcomes, apperr.ForbiddenViolated) {
		t.Errorf("expected a ForbiddenViolated outcome, got %v", outcomes)
	}
}

func hasCode(outcomes []apperr.Outcome, code apperr.OutcomeCode) bool {
	for _, o := range outcomes {
		if o.Code == code {
			return true
		}
	}
	return false
}
