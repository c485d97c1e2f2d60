package event

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/udisondev/rptrunk/internal/model"
)

// Event — одно применение способности одним инициатором.
// Создаётся заново на каждое применение и не переиспользуется.
//
// Lifecycle: created → resolved → applied. Only Execute is exposed so
// an event can never be left partially applied.
type Event struct {
	initiator model.EntityID
	ability   *model.Ability
	space     model.Space
	resolver  Resolver
}

// New creates an event for initiator using ability. Entities are
// resolved through space at use time; resolver decides the actual
// outcome of every stat delta. A nil resolver means Direct.
func New(initiator model.EntityID, ability *model.Ability, space model.Space, resolver Resolver) *Event {
	if resolver == nil {
		resolver = Direct
	}
	return &Event{
		initiator: initiator,
		ability:   ability,
		space:     space,
		resolver:  resolver,
	}
}

// InitiatorID returns the handle of the acting entity.
func (e *Event) InitiatorID() model.EntityID {
	return e.initiator
}

// Initiator resolves the acting entity through the space.
func (e *Event) Initiator() (*model.Entity, bool) {
	if e.space == nil {
		return nil, false
	}
	return e.space.EntityByID(e.initiator)
}

// Ability returns the ability being used.
func (e *Event) Ability() *model.Ability {
	return e.ability
}

// Targets computes the target set from the ability's target type and the
// initiator's current relationships. Handles that no longer resolve are
// skipped; order follows the initiator's tracking order.
func (e *Event) Targets() []*model.Entity {
	initiator, ok := e.Initiator()
	if !ok || e.ability == nil {
		return nil
	}

	switch e.ability.TargetType {
	case model.TargetOneself:
		return []*model.Entity{initiator}

	case model.TargetSingleEnemy:
		id, ok := initiator.Target()
		if !ok {
			return nil
		}
		target, ok := e.space.EntityByID(id)
		if !ok {
			return nil
		}
		return []*model.Entity{target}

	case model.TargetAll:
		ids := initiator.Targets()
		targets := make([]*model.Entity, 0, len(ids))
		for _, id := range ids {
			if target, ok := e.space.EntityByID(id); ok {
				targets = append(targets, target)
			}
		}
		return targets

	case model.TargetOther:
		// Area and chain targeting are not resolved yet.
		return nil

	default:
		return nil
	}
}

// Stats returns the gross effect delta applied to each target.
func (e *Event) Stats() model.Stats {
	if e.ability == nil {
		return model.Stats{}
	}
	return e.ability.Stats.Clone()
}

// Cost returns the negated ability cost applied to the initiator.
func (e *Event) Cost() model.Stats {
	if e.ability == nil {
		return model.Stats{}
	}
	return e.ability.Cost.Negate()
}

// Execute resolves every conflict and applies the outcome.
// Returns the audit record of everything that was applied.
func (e *Event) Execute() EventResult {
	results := e.results()
	e.applyResults(results)

	r := EventResult{
		ID:      uuid.New(),
		Event:   e,
		Effects: results,
	}

	slog.Debug("event executed",
		"event", r.ID,
		"initiator", e.initiator,
		"ability", e.abilityName(),
		"effects", len(results))

	return r
}

// results resolves one conflict per target (in target order) followed by
// the cost conflict against the initiator. Returns nil if the initiator
// cannot be resolved.
func (e *Event) results() []ConflictResult {
	initiator, ok := e.Initiator()
	if !ok || e.ability == nil {
		return nil
	}

	gross := e.Stats()
	targets := e.Targets()
	results := make([]ConflictResult, 0, len(targets)+1)
	for _, target := range targets {
		results = append(results, e.resolver.Resolve(e, target, gross.Clone()))
	}
	results = append(results, e.resolver.Resolve(e, initiator, e.Cost()))
	return results
}

// applyResults overwrites each affected entity's stats with stats+change,
// then applies status effect changes to the current target set.
func (e *Event) applyResults(results []ConflictResult) {
	for _, r := range results {
		if r.Entity == nil {
			continue
		}
		r.Entity.SetCurrentStats(r.Entity.CurrentStats().Add(r.Change))
	}
	if len(results) > 0 {
		e.applyStatusEffectChanges()
	}
}

// applyStatusEffectChanges discharges first, then applies.
// The target set is recomputed here, after stats were already changed.
func (e *Event) applyStatusEffectChanges() {
	if e.ability == nil {
		return
	}
	targets := e.Targets()

	for _, name := range e.ability.DischargedStatusEffects {
		for _, t := range targets {
			t.DischargeStatusEffect(name)
		}
	}
	for _, name := range e.ability.StatusEffects {
		for _, t := range targets {
			t.ApplyStatusEffect(name)
		}
	}
}

func (e *Event) abilityName() string {
	if e.ability == nil {
		return ""
	}
	return e.ability.Name
}
