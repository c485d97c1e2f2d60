package model

import (
	"slices"
	"sync"
)

// StatusEffect — активный именованный модификатор на сущности.
// Повторное наложение того же имени увеличивает Stacks.
type StatusEffect struct {
	Name   string
	Stacks int32
}

// Entity — участник симуляции: текущие статы, цель, список целей
// и активные статус-эффекты. Ссылки на другие сущности хранятся
// как EntityID и не продлевают их жизнь.
//
// Thread-safe: all accessors are protected by sync.RWMutex.
type Entity struct {
	mu sync.RWMutex

	id    EntityID
	name  string
	stats Stats

	target    EntityID
	hasTarget bool
	targets   []EntityID

	statusEffects []StatusEffect
}

// NewEntity creates an entity with a private copy of the initial stats.
func NewEntity(id EntityID, name string, stats Stats) *Entity {
	return &Entity{
		id:    id,
		name:  name,
		stats: stats.Clone(),
	}
}

// ID returns the entity handle.
func (e *Entity) ID() EntityID {
	return e.id
}

// Name returns the display name.
func (e *Entity) Name() string {
	return e.name
}

// CurrentStats returns a copy of the current stats vector.
func (e *Entity) CurrentStats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stats.Clone()
}

// SetCurrentStats replaces the stats vector. No clamping is performed.
func (e *Entity) SetCurrentStats(s Stats) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats = s.Clone()
}

// Target returns the currently assigned single target.
func (e *Entity) Target() (EntityID, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.target, e.hasTarget
}

// SetTarget assigns the single target.
func (e *Entity) SetTarget(id EntityID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.target = id
	e.hasTarget = true
}

// ClearTarget drops the single target.
func (e *Entity) ClearTarget() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.target = InvalidEntityID
	e.hasTarget = false
}

// Targets returns a copy of the tracked target list in insertion order.
func (e *Entity) Targets() []EntityID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.targets)
}

// SetTargets replaces the tracked target list.
func (e *Entity) SetTargets(ids []EntityID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.targets = slices.Clone(ids)
}

// AddTarget appends id to the target list unless already tracked.
func (e *Entity) AddTarget(id EntityID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if slices.Contains(e.targets, id) {
		return
	}
	e.targets = append(e.targets, id)
}

// RemoveTarget removes id from the target list and clears the single
// target if it pointed at id.
func (e *Entity) RemoveTarget(id EntityID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.targets = slices.DeleteFunc(e.targets, func(t EntityID) bool { return t == id })
	if e.hasTarget && e.target == id {
		e.target = InvalidEntityID
		e.hasTarget = false
	}
}

// ApplyStatusEffect adds a stack of the named status effect.
func (e *Entity) ApplyStatusEffect(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.statusEffects {
		if e.statusEffects[i].Name == name {
			e.statusEffects[i].Stacks++
			return
		}
	}
	e.statusEffects = append(e.statusEffects, StatusEffect{Name: name, Stacks: 1})
}

// DischargeStatusEffect removes the named status effect with all stacks.
// Returns true if the effect was active.
func (e *Entity) DischargeStatusEffect(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := len(e.statusEffects)
	e.statusEffects = slices.DeleteFunc(e.statusEffects, func(se StatusEffect) bool {
		return se.Name == name
	})
	return len(e.statusEffects) != n
}

// HasStatusEffect reports whether the named effect is active.
func (e *Entity) HasStatusEffect(name string) bool {
	return e.StatusEffectStacks(name) > 0
}

// StatusEffectStacks returns the stack count of the named effect (0 if inactive).
func (e *Entity) StatusEffectStacks(name string) int32 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, se := range e.statusEffects {
		if se.Name == name {
			return se.Stacks
		}
	}
	return 0
}

// StatusEffects returns a copy of the active effects in application order.
func (e *Entity) StatusEffects() []StatusEffect {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.statusEffects)
}
