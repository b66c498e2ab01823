package rule

import (
	"github.com/dienstplan/dutyplan/pkg/logger"
	"github.com/dienstplan/dutyplan/pkg/model"
)

// Network is a bidirectional index of rules keyed by participating
// entity. There is no package-level singleton: constructors never
// self-register, the caller assembles the network explicitly and passes
// it by reference to the scheduler and the checker.
//
// Lookups never fail; an entity absent from the index simply has no
// rules.
type Network struct {
	rules    map[model.ID]*Rule
	byEntity map[any]map[model.ID]*Rule
	log      *logger.EngineLogger
}

// NewNetwork creates an empty rule network.
func NewNetwork() *Network {
	return &Network{
		rules:    make(map[model.ID]*Rule),
		byEntity: make(map[any]map[model.ID]*Rule),
		log:      logger.NewEngineLogger("rule_network"),
	}
}

// entitiesOf returns the (up to two) participant entities of r as
// comparable keys, dispatched by an exhaustive switch on Subtype.
func entitiesOf(r *Rule) []any {
	switch r.Subtype {
	case SubtypeDutyDuty:
		return []any{r.DutyA, r.DutyB}
	case SubtypePersonPerson:
		return []any{r.PersonA, r.PersonB}
	case SubtypePersonDuty:
		return []any{r.Person, r.Duty}
	case SubtypeRotationDuty:
		return []any{r.Rotation, r.RotationDuty}
	default:
		return nil
	}
}

// Register adds a rule to the network, indexing it under every
// participant entity. A rule registered with a zero ID is given a fresh
// one.
func (n *Network) Register(r *Rule) {
	if r.ID == (model.ID{}) {
		r.ID = model.NewID()
	}
	n.rules[r.ID] = r
	for _, e := range entitiesOf(r) {
		if n.byEntity[e] == nil {
			n.byEntity[e] = make(map[model.ID]*Rule)
		}
		n.byEntity[e][r.ID] = r
	}
	n.log.Debug().Str("rule_id", r.ID.String()).Str("weight", r.Weight.String()).Str("kind", r.Kind.String()).Msg("rule registered")
}

// RulesOf returns every rule touching entity.
func (n *Network) RulesOf(entity any) []*Rule {
	m := n.byEntity[entity]
	out := make([]*Rule, 0, len(m))
	for _, r := range m {
		out = append(out, r)
	}
	return out
}

// RulesBetween returns every rule with both a and b as participants.
func (n *Network) RulesBetween(a, b any) []*Rule {
	ma := n.byEntity[a]
	var out []*Rule
	for id, r := range ma {
		if _, ok := n.byEntity[b][id]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Filter narrows a rule slice down to the given weight and kind.
func Filter(rules []*Rule, weight Weight, kind Kind) []*Rule {
	var out []*Rule
	for _, r := range rules {
		if r.Weight == weight && r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

// ExistsMustForbidden reports whether a MUST-FORBIDDEN rule (of any
// subtype) exists between a and b.
func (n *Network) ExistsMustForbidden(a, b any) bool {
	return n.Exists(a, b, Must, Forbidden)
}

// Exists reports whether a rule with the given weight and kind exists
// between a and b.
func (n *Network) Exists(a, b any, weight Weight, kind Kind) bool {
	for _, r := range n.RulesBetween(a, b) {
		if r.Weight == weight && r.Kind == kind {
			return true
		}
	}
	return false
}

// DutyDutyRulesOf returns the DutyDuty-subtype rules touching duty,
// filtered to weight/kind.
func (n *Network) DutyDutyRulesOf(duty *model.DutyForm, weight Weight, kind Kind) []*Rule {
	var out []*Rule
	for _, r := range Filter(n.RulesOf(duty), weight, kind) {
		if r.Subtype == SubtypeDutyDuty {
			out = append(out, r)
		}
	}
	return out
}

// FinePriority is the rule-network tie-breaker used by the planning
// queue comparator: the count of rules touching duty. More entangled
// duties are considered harder to plan and are ranked earlier.
func (n *Network) FinePriority(duty *model.DutyForm) int {
	return len(n.byEntity[duty])
}

// All returns every registered rule.
func (n *Network) All() []*Rule {
	out := make([]*Rule, 0, len(n.rules))
	for _, r := range n.rules {
		out = append(out, r)
	}
	return out
}

// OfSubtype returns every registered rule of the given subtype.
func (n *Network) OfSubtype(st Subtype) []*Rule {
	var out []*Rule
	for _, r := range n.rules {
		if r.Subtype == st {
			out = append(out, r)
		}
	}
	return out
}
