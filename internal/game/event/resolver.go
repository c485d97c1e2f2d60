package event

import "github.com/udisondev/rptrunk/internal/model"

// Resolver turns an intended stat delta against target into the actual
// outcome. Implementations must be deterministic and must not mutate
// entities: applying the outcome is the event's job.
type Resolver interface {
	Resolve(e *Event, target *model.Entity, delta model.Stats) ConflictResult
}

// ResolverFunc adapts a plain function to Resolver.
type ResolverFunc func(e *Event, target *model.Entity, delta model.Stats) ConflictResult

// Resolve calls f.
func (f ResolverFunc) Resolve(e *Event, target *model.Entity, delta model.Stats) ConflictResult {
	return f(e, target, delta)
}

// Direct applies every delta unchanged to the entity it was aimed at.
var Direct Resolver = ResolverFunc(func(_ *Event, target *model.Entity, delta model.Stats) ConflictResult {
	return ConflictResult{Entity: target, Change: delta.Clone()}
})

// Mitigation reduces incoming damage on Stat by the target's Armor stat.
// Damage never turns into healing. Deltas aimed at the initiator itself
// (costs, self-targeted abilities) pass through unchanged.
type Mitigation struct {
	Stat  string // damaged stat, model.StatHP by default
	Armor string // mitigating stat, model.StatDefense by default
}

// Resolve implements Resolver.
func (m Mitigation) Resolve(e *Event, target *model.Entity, delta model.Stats) ConflictResult {
	out := delta.Clone()
	if target == nil || (e != nil && target.ID() == e.InitiatorID()) {
		return ConflictResult{Entity: target, Change: out}
	}

	stat := m.Stat
	if stat == "" {
		stat = model.StatHP
	}
	armor := m.Armor
	if armor == "" {
		armor = model.StatDefense
	}

	dmg := out.Get(stat)
	if dmg >= 0 {
		return ConflictResult{Entity: target, Change: out}
	}
	def := target.CurrentStats().Get(armor)
	if def > 0 {
		out[stat] = min(dmg+def, 0)
	}
	return ConflictResult{Entity: target, Change: out}
}

// ParseResolver maps a config name to a stock resolver.
// Unknown names fall back to Direct.
func ParseResolver(name string) Resolver {
	switch name {
	case "mitigation":
		return Mitigation{}
	default:
		return Direct
	}
}
