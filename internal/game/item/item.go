package item

import (
	"log/slog"

	"github.com/udisondev/rptrunk/internal/game/event"
	"github.com/udisondev/rptrunk/internal/logic"
	"github.com/udisondev/rptrunk/internal/model"
)

// DefaultName is used for items created without a display name.
const DefaultName = "Untitled Item"

// Component is an opaque extension attached to an item.
type Component interface {
	ComponentName() string
}

// Item — повторяемое действие: способность за кулдауном и условием.
// Шаблон создаётся из данных, затем CopyForEntity привязывает копию
// к конкретной сущности с собственным состоянием кулдауна.
//
// Cooldown: the item is cooling down while currentTick < MaximumTick.
// A use resets currentTick to 0; Tick advances it only while cooling
// down and may overshoot MaximumTick.
//
// Not thread-safe: items are driven by a single simulation loop.
type Item struct {
	Name   string
	Amount int

	currentTick model.Tick

	entity    model.EntityID
	hasEntity bool

	ability     *model.Ability
	Conditional logic.Conditional

	components []Component
}

// New creates an unbound item. The ability may be nil.
func New(name string, ability *model.Ability, conditional logic.Conditional) *Item {
	if name == "" {
		name = DefaultName
	}
	return &Item{
		Name:        name,
		Amount:      1,
		ability:     ability,
		Conditional: conditional,
	}
}

// Ability returns the bound ability, or nil.
func (it *Item) Ability() *model.Ability {
	return it.ability
}

// Entity returns the owning entity handle, if bound.
func (it *Item) Entity() (model.EntityID, bool) {
	return it.entity, it.hasEntity
}

// CurrentTick returns the cooldown counter.
func (it *Item) CurrentTick() model.Tick {
	return it.currentTick
}

// MaximumTick is the ability cooldown, 0 without an ability.
func (it *Item) MaximumTick() model.Tick {
	if it.ability == nil {
		return 0
	}
	return it.ability.Cooldown
}

// IsCoolingDown reports whether the cooldown timer has not yet reached
// its maximum.
func (it *Item) IsCoolingDown() bool {
	return it.currentTick < it.MaximumTick()
}

// CanExecute reports whether the item may fire this tick: not cooling
// down, owner and ability present, owner stats strictly above the cost,
// and the conditional holds. A conditional error closes the gate.
func (it *Item) CanExecute(space model.Space) bool {
	if it.IsCoolingDown() {
		return false
	}

	e, ok := it.owner(space)
	if !ok || it.ability == nil {
		return false
	}
	if !e.CurrentStats().Greater(it.ability.Cost) {
		return false
	}

	ok, err := it.Conditional.Exec(e, space)
	if err != nil {
		slog.Debug("item conditional failed",
			"item", it.Name,
			"entity", e.ID(),
			"conditional", it.Conditional.String(),
			"error", err)
		return false
	}
	return ok
}

// PendingEvents returns Ability.Repeats fresh events unless the item is
// cooling down. The conditional is not re-checked: call CanExecute first.
func (it *Item) PendingEvents(space model.Space, resolver event.Resolver) []*event.Event {
	if it.IsCoolingDown() {
		return nil
	}
	return it.createEvents(space, resolver)
}

func (it *Item) createEvents(space model.Space, resolver event.Resolver) []*event.Event {
	if it.ability == nil {
		return nil
	}
	e, ok := it.owner(space)
	if !ok {
		return nil
	}

	events := make([]*event.Event, 0, max(it.ability.Repeats, 0))
	for range it.ability.Repeats {
		events = append(events, event.New(e.ID(), it.ability, space, resolver))
	}
	return events
}

// Tick advances the cooldown by the step delta while cooling down.
func (it *Item) Tick(m model.Moment) {
	if it.IsCoolingDown() {
		it.currentTick += m.Delta
	}
}

// ResetCooldown sets the cooldown counter to zero.
func (it *Item) ResetCooldown() {
	it.currentTick = 0
}

// CopyForEntity returns a new item sharing ability and conditional,
// bound to e, with an independent cooldown starting at zero.
// Amount and components come from the template, so stock set in
// items.yaml reaches every spawned copy.
func (it *Item) CopyForEntity(e *model.Entity) *Item {
	cp := New(it.Name, it.ability, it.Conditional)
	cp.Amount = it.Amount
	cp.components = append([]Component(nil), it.components...)
	if e != nil {
		cp.entity = e.ID()
		cp.hasEntity = true
	}
	return cp
}

// Components returns the attached components.
func (it *Item) Components() []Component {
	return it.components
}

// AddComponent attaches c to the item.
func (it *Item) AddComponent(c Component) {
	it.components = append(it.components, c)
}

func (it *Item) owner(space model.Space) (*model.Entity, bool) {
	if !it.hasEntity || space == nil {
		return nil, false
	}
	return space.EntityByID(it.entity)
}
