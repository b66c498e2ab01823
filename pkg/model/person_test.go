package model

import (
	"testing"
	"time"
)

func TestPersonAbsence(t *testing.T) {
	p := NewPerson("Alice", 1.0, true)
	d := NewDate(2026, time.March, 5)

	if p.IsAbsent(d) {
		t.Error("did not expect Alice to be absent before MarkAbsent")
	}
	p.MarkAbsent(d)
	if !p.IsAbsent(d) {
		t.Error("expected Alice to be absent after MarkAbsent")
	}
}

func TestActiveRotation(t *testing.T) {
	p := NewPerson("Bob", 1.0, true)
	template := NewRotationTemplate("senior on-call")
	start := NewDate(2026, time.March, 1)
	end := NewDate(2026, time.March, 15)
	p.AddRotation(RotationAssignment{Template: template, Start: start, End: end})

	inside := NewDate(2026, time.March, 10)
	if got := p.ActiveRotation(inside); got == nil || got.Template != template {
		t.Errorf("expected active rotation on %v, got %v", inside, got)
	}

	outside := NewDate(2026, time.March, 20)
	if got := p.ActiveRotation(outside); got != nil {
		t.Errorf("expected no active rotation on %v, got %v", outside, got)
	}
}
