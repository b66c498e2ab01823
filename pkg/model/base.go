// Package model defines the core entities of the duty-scheduling engine:
// people, duty forms, duty groups and rotations. Rules, wishes and the plan
// itself live in their own packages since they are queried and mutated by
// different collaborators (the rule network, the wish registry, the plan
// state).
package model

import (
	"time"

	"github.com/google/uuid"
)

// ID is the stable identity shared by every entity in the engine.
type ID = uuid.UUID

// NewID allocates a fresh stable identity.
func NewID() ID { return uuid.New() }

// Weekday is re-exported for readability at call sites; duty-form
// applicability is a plain weekday, not a recurrence rule.
type Weekday = time.Weekday
