// Command dutyplan is a thin CLI wrapper around the planning engine: it
// reads a JSON input document describing people, duty forms, rules and
// wishes, runs one planning pass, and prints the resulting plan,
// unfilled slots and rule violations as JSON. It carries no scheduling
// logic of its own.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dienstplan/dutyplan/internal/config"
	"github.com/dienstplan/dutyplan/pkg/apperr"
	"github.com/dienstplan/dutyplan/pkg/calendar"
	"github.com/dienstplan/dutyplan/pkg/checker"
	"github.com/dienstplan/dutyplan/pkg/logger"
	"github.com/dienstplan/dutyplan/pkg/model"
	"github.com/dienstplan/dutyplan/pkg/report"
	"github.com/dienstplan/dutyplan/pkg/rule"
	"github.com/dienstplan/dutyplan/pkg/scheduler"
	"github.com/dienstplan/dutyplan/pkg/wish"
)

type inputDoc struct {
	From string `json:"from"`
	To   string `json:"to"`

	People     []personDoc    `json:"people"`
	DutyGroups []dutyGroupDoc `json:"duty_groups"`
	DutyForms  []dutyFormDoc  `json:"duty_forms"`
	Rotations  []rotationDoc  `json:"rotations"`
	Rules      []ruleDoc      `json:"rules"`
	Wishes     []wishDoc      `json:"wishes"`
	FreeWishes []freeWishDoc  `json:"free_wishes"`
	Holidays   []string       `json:"holidays"`

	// SeedPlan pre-seeds the plan with placements already decided outside
	// this run (e.g. a manually adjusted prior month carried forward).
	// Seeded entries are placed before the driver runs, so they count
	// toward monthly totals and trigger cascade removal exactly as if
	// the driver had placed them itself.
	SeedPlan []seedEntryDoc `json:"seed_plan"`
}

type seedEntryDoc struct {
	Date   string `json:"date"`
	Duty   string `json:"duty"`
	Person string `json:"person"`
}

type personDoc struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	WorkCapacity float64         `json:"work_capacity"`
	DutyFit      bool            `json:"duty_fit"`
	Absences     []string        `json:"absences"`
	Rotations    []assignmentDoc `json:"rotations"`
}

type rotationDoc struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type assignmentDoc struct {
	Template string `json:"template"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

type dutyGroupDoc struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	AppliesOnHolidays bool   `json:"applies_on_holidays"`
}

type dutyFormDoc struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Weekday      int      `json:"weekday"`
	Group        string   `json:"group"`
	FollowUpFree bool     `json:"follow_up_free"`
	MaxInARow    int      `json:"max_in_a_row"`
	MaxPerMonth  int      `json:"max_per_month"`
	Weight       float64  `json:"weight"`
	LinkedForms  []string `json:"linked_forms"`
}

type ruleDoc struct {
	Subtype string `json:"subtype"` // duty_duty | person_person | person_duty | rotation_duty
	Weight  string `json:"weight"`  // must | should | may
	Kind    string `json:"kind"`    // combination | forbidden
	A       string `json:"a"`       // rotation id, for rotation_duty rules
	B       string `json:"b"`       // duty form id, for rotation_duty rules
}

type wishDoc struct {
	Person string `json:"person"`
	Date   string `json:"date"`
	Duty   string `json:"duty"`
}

type freeWishDoc struct {
	Person string `json:"person"`
	Date   string `json:"date"`
}

type outputDoc struct {
	Placements []placementDoc `json:"placements"`
	Outcomes   []string       `json:"outcomes"`
	Fairness   float64        `json:"fairness_gini"`
}

type placementDoc struct {
	Date   string `json:"date"`
	Duty   string `json:"duty"`
	Person string `json:"person"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Init(logger.Config{Level: cfg.App.LogLevel, Format: "console", Output: "stderr", TimeFormat: time.RFC3339})

	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		fail(err)
	}
	var doc inputDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		fail(err)
	}

	out, err := run(doc, cfg)
	if err != nil {
		fail(err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func run(doc inputDoc, cfg *config.Config) (*outputDoc, error) {
	from, err := model.ParseDate(doc.From)
	if err != nil {
		return nil, apperr.InvalidInput("from", err.Error())
	}
	to, err := model.ParseDate(doc.To)
	if err != nil {
		return nil, apperr.InvalidInput("to", err.Error())
	}

	groups := make(map[string]*model.DutyGroup, len(doc.DutyGroups))
	for _, g := range doc.DutyGroups {
		groups[g.ID] = model.NewDutyGroup(g.Name, g.AppliesOnHolidays)
	}

	duties := make(map[string]*model.DutyForm, len(doc.DutyForms))
	var dutyList []*model.DutyForm
	for _, f := range doc.DutyForms {
		duty, err := model.NewDutyForm(f.Name, model.Weekday(f.Weekday), groups[f.Group], f.MaxInARow, f.MaxPerMonth, f.Weight, f.FollowUpFree)
		if err != nil {
			return nil, err
		}
		duties[f.ID] = duty
		dutyList = append(dutyList, duty)
	}
	for _, f := range doc.DutyForms {
		for _, otherID := range f.LinkedForms {
			duties[f.ID].LinkTo(duties[otherID])
		}
	}

	rotations := make(map[string]*model.RotationTemplate, len(doc.Rotations))
	for _, r := range doc.Rotations {
		rotations[r.ID] = model.NewRotationTemplate(r.Name)
	}

	people := make(map[string]*model.Person, len(doc.People))
	var peopleList []*model.Person
	for _, p := range doc.People {
		person := model.NewPerson(p.Name, p.WorkCapacity, p.DutyFit)
		for _, a := range p.Absences {
			d, err := model.ParseDate(a)
			if err != nil {
				return nil, apperr.InvalidInput("absences", err.Error())
			}
			person.MarkAbsent(d)
		}
		for _, a := range p.Rotations {
			start, err := model.ParseDate(a.Start)
			if err != nil {
				return nil, apperr.InvalidInput("rotations.start", err.Error())
			}
			end, err := model.ParseDate(a.End)
			if err != nil {
				return nil, apperr.InvalidInput("rotations.end", err.Error())
			}
			template, ok := rotations[a.Template]
			if !ok {
				return nil, apperr.InvalidInput("rotations.template", "unknown rotation "+a.Template)
			}
			person.AddRotation(model.RotationAssignment{Template: template, Start: start, End: end})
		}
		people[p.ID] = person
		peopleList = append(peopleList, person)
	}

	net := rule.NewNetwork()
	for _, r := range doc.Rules {
		built, err := buildRule(r, duties, people, rotations)
		if err != nil {
			return nil, err
		}
		net.Register(built)
	}

	wishes := wish.NewRegistry()
	for _, w := range doc.Wishes {
		d, err := model.ParseDate(w.Date)
		if err != nil {
			return nil, apperr.InvalidInput("wishes.date", err.Error())
		}
		wishes.RequestDuty(people[w.Person], d, duties[w.Duty])
	}
	for _, w := range doc.FreeWishes {
		d, err := model.ParseDate(w.Date)
		if err != nil {
			return nil, apperr.InvalidInput("free_wishes.date", err.Error())
		}
		wishes.RequestFreeDay(people[w.Person], d)
	}

	var holidays []model.Date
	for _, h := range doc.Holidays {
		d, err := model.ParseDate(h)
		if err != nil {
			return nil, apperr.InvalidInput("holidays", err.Error())
		}
		holidays = append(holidays, d)
	}
	cal := calendar.NewFixed(holidays...)

	drv := scheduler.NewDriver(peopleList, dutyList, net, cal, wishes)
	drv.Budget = cfg.Scheduler.FullTimeDutyBudget

	for _, s := range doc.SeedPlan {
		d, err := model.ParseDate(s.Date)
		if err != nil {
			return nil, apperr.InvalidInput("seed_plan.date", err.Error())
		}
		duty, ok := duties[s.Duty]
		if !ok {
			return nil, apperr.InvalidInput("seed_plan.duty", "unknown duty "+s.Duty)
		}
		person, ok := people[s.Person]
		if !ok {
			return nil, apperr.InvalidInput("seed_plan.person", "unknown person "+s.Person)
		}
		drv.Place(person, d, duty)
	}

	outcomes := drv.Run(from, to)
	outcomes = append(outcomes, checker.Check(from, to, drv.Plan, net)...)

	out := &outputDoc{}
	for d := from; d.Before(to.AddDays(1)); d = d.AddDays(1) {
		for duty, person := range drv.Plan.GetDutiesOnDate(d) {
			out.Placements = append(out.Placements, placementDoc{Date: d.String(), Duty: duty.Name, Person: person.Name})
		}
	}
	for _, o := range outcomes {
		out.Outcomes = append(out.Outcomes, o.String())
	}
	out.Fairness = report.Build(peopleList, drv.Plan, wishes, from.Month()).Gini

	return out, nil
}

func buildRule(r ruleDoc, duties map[string]*model.DutyForm, people map[string]*model.Person, rotations map[string]*model.RotationTemplate) (*rule.Rule, error) {
	weight, err := parseWeight(r.Weight)
	if err != nil {
		return nil, err
	}
	kind, err := parseKind(r.Kind)
	if err != nil {
		return nil, err
	}

	built := &rule.Rule{Weight: weight, Kind: kind}
	switch r.Subtype {
	case "duty_duty":
		built.Subtype = rule.SubtypeDutyDuty
		built.DutyA, built.DutyB = duties[r.A], duties[r.B]
	case "person_person":
		built.Subtype = rule.SubtypePersonPerson
		built.PersonA, built.PersonB = people[r.A], people[r.B]
	case "person_duty":
		built.Subtype = rule.SubtypePersonDuty
		built.Person, built.Duty = people[r.A], duties[r.B]
	case "rotation_duty":
		built.Subtype = rule.SubtypeRotationDuty
		built.Rotation, built.RotationDuty = rotations[r.A], duties[r.B]
	default:
		return nil, apperr.InvalidInput("rules.subtype", "unknown subtype "+r.Subtype)
	}
	return built, nil
}

func parseWeight(s string) (rule.Weight, error) {
	switch s {
	case "must":
		return rule.Must, nil
	case "should":
		return rule.Should, nil
	case "may":
		return rule.May, nil
	default:
		return 0, apperr.InvalidInput("rules.weight", "unknown weight "+s)
	}
}

func parseKind(s string) (rule.Kind, error) {
	switch s {
	case "combination":
		return rule.Combination, nil
	case "forbidden":
		return rule.Forbidden, nil
	default:
		return 0, apperr.InvalidInput("rules.kind", "unknown kind "+s)
	}
}
