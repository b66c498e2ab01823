package scheduler

import (
	"sync"

	"github.com/dienstplan/dutyplan/pkg/apperr"
	"github.com/dienstplan/dutyplan/pkg/calendar"
	"github.com/dienstplan/dutyplan/pkg/model"
	"github.com/dienstplan/dutyplan/pkg/plan"
	"github.com/dienstplan/dutyplan/pkg/rule"
	"github.com/dienstplan/dutyplan/pkg/wish"
)

// SafeDriver wraps a Driver with a mutex so a concurrent host (an HTTP
// handler pool, a worker queue) can run the engine and read its result
// from multiple goroutines without racing. The engine itself stays
// single-threaded and lock-free; this is purely a boundary adapter.
type SafeDriver struct {
	mu       sync.RWMutex
	driver   *Driver
	outcomes []apperr.Outcome
	ran      bool
}

// NewSafeDriver assembles a mutex-guarded driver around the same
// inputs NewDriver takes.
func NewSafeDriver(people []*model.Person, duties []*model.DutyForm, net *rule.Network, cal calendar.Source, wishes *wish.Registry) *SafeDriver {
	return &SafeDriver{driver: NewDriver(people, duties, net, cal, wishes)}
}

// Run executes the placement loop under an exclusive lock. Calling Run
// a second time on the same SafeDriver re-runs the underlying driver
// against its already-mutated plan state — callers wanting a fresh run
// should build a new SafeDriver.
func (s *SafeDriver) Run(from, to model.Date) []apperr.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes = s.driver.Run(from, to)
	s.ran = true
	return s.outcomes
}

// Outcomes returns the last run's outcomes under a read lock. Returns
// nil if Run has not completed yet.
func (s *SafeDriver) Outcomes() []apperr.Outcome {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ran {
		return nil
	}
	out := make([]apperr.Outcome, len(s.outcomes))
	copy(out, s.outcomes)
	return out
}

// Plan returns the driver's plan state under a read lock. The returned
// *plan.State is safe to query concurrently with further reads, but a
// caller must not hold onto it across a subsequent Run.
func (s *SafeDriver) Plan() *plan.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.driver.Plan
}

// GetPersonOn reports who holds duty on date, under a read lock.
func (s *SafeDriver) GetPersonOn(date model.Date, duty *model.DutyForm) (*model.Person, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.driver.Plan.GetPersonOn(date, duty)
}
