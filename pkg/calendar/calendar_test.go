package calendar

import (
	"testing"
	"time"

	"github.com/dienstplan/dutyplan/pkg/model"
)

func TestFixedIsHoliday(t *testing.T) {
	holiday := model.NewDate(2026, time.March, 8)
	cal := NewFixed(holiday)

	if !cal.IsHoliday(holiday) {
		t.Error("expected the registered date to be a holiday")
	}
	other := model.NewDate(2026, time.March, 9)
	if cal.IsHoliday(other) {
		t.Error("did not expect an unregistered date to be a holiday")
	}
}

func TestNoneNeverHoliday(t *testing.T) {
	var cal None
	d := model.NewDate(2026, time.March, 8)
	if cal.IsHoliday(d) {
		t.Error("None source should never report a holiday")
	}
}
