package model

// RotationTemplate is a reusable work-context definition (e.g. "senior
// on-call rotation"). Combination-subtype rules bind against the
// template, not against any one concrete assignment of it.
type RotationTemplate struct {
	ID   ID
	Name string
}

// NewRotationTemplate creates a rotation template.
func NewRotationTemplate(name string) *RotationTemplate {
	return &RotationTemplate{ID: NewID(), Name: name}
}

// RotationAssignment is a concrete, dated binding of a person to a
// rotation template. Identity is (Person, interval); it has no ID of
// its own since nothing ever references one by id.
type RotationAssignment struct {
	Template *RotationTemplate
	Start    Date
	End      Date
}
