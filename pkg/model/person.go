package model

// Person is a staff member available for duty placement.
type Person struct {
	ID ID

	Name string

	// WorkCapacity is the person's work-time fraction, in (0, 1]. A
	// full-time person's monthly duty budget is scaled by this value.
	WorkCapacity float64

	// DutyFit is false for people who are formally listed but currently
	// unable to hold any duty (e.g. on long-term leave); such a person
	// is never statically eligible, regardless of absences.
	DutyFit bool

	// Absences is the set of dates on which the person cannot be
	// placed, keyed by Date.String().
	Absences map[string]bool

	// rotations holds this person's concrete rotation assignments,
	// sorted is not required; lookups scan the (usually short) slice.
	rotations []RotationAssignment
}

// NewPerson creates a person with empty absence/rotation sets.
func NewPerson(name string, workCapacity float64, dutyFit bool) *Person {
	return &Person{
		ID:           NewID(),
		Name:         name,
		WorkCapacity: workCapacity,
		DutyFit:      dutyFit,
		Absences:     make(map[string]bool),
	}
}

// IsAbsent reports whether the person is marked absent on d.
func (p *Person) IsAbsent(d Date) bool {
	return p.Absences[d.String()]
}

// MarkAbsent records an absence on d.
func (p *Person) MarkAbsent(d Date) {
	p.Absences[d.String()] = true
}

// AddRotation attaches a concrete rotation assignment to the person.
func (p *Person) AddRotation(r RotationAssignment) {
	p.rotations = append(p.rotations, r)
}

// ActiveRotation returns the rotation assignment active on d, if any.
func (p *Person) ActiveRotation(d Date) *RotationAssignment {
	for i := range p.rotations {
		r := &p.rotations[i]
		if !d.Before(r.Start) && !r.End.Before(d) {
			return r
		}
	}
	return nil
}
