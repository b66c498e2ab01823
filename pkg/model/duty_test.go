package model

import (
	"testing"
	"time"
)

func TestNewDutyFormRejectsZeroMaxInARow(t *testing.T) {
	group := NewDutyGroup("weekend", false)
	_, err := NewDutyForm("Saturday", time.Saturday, group, 0, 4, 1.0, false)
	if err == nil {
		t.Fatal("expected error for MaxInARow < 1, got nil")
	}
}

func TestIsHolidayVariant(t *testing.T) {
	holidayGroup := NewDutyGroup("holiday-eligible", true)
	sunday, err := NewDutyForm("Sunday duty", time.Sunday, holidayGroup, 2, 5, 1.0, false)
	if err != nil {
		t.Fatalf("NewDutyForm: %v", err)
	}
	if !sunday.IsHolidayVariant() {
		t.Error("expected Sunday form of holiday-eligible group to be a holiday variant")
	}

	plainGroup := NewDutyGroup("weekday", false)
	monday, err := NewDutyForm("Monday duty", time.Monday, plainGroup, 2, 5, 1.0, false)
	if err != nil {
		t.Fatalf("NewDutyForm: %v", err)
	}
	if monday.IsHolidayVariant() {
		t.Error("did not expect Monday form to be a holiday variant")
	}
}

func TestLinkTo(t *testing.T) {
	group := NewDutyGroup("g", false)
	a, _ := NewDutyForm("A", time.Friday, group, 1, 4, 1.0, false)
	b, _ := NewDutyForm("B", time.Friday, group, 1, 4, 1.0, false)

	a.LinkTo(b)

	if len(a.LinkedForms) != 1 || a.LinkedForms[0] != b {
		t.Errorf("expected A linked to B, got %v", a.LinkedForms)
	}
	if len(b.LinkedForms) != 1 || b.LinkedForms[0] != a {
		t.Errorf("expected B linked to A, got %v", b.LinkedForms)
	}
}
