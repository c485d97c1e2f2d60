package item

import (
	"github.com/udisondev/rptrunk/internal/logic"
	"github.com/udisondev/rptrunk/internal/model"
)

// Record is the persisted form of an Item. The owning entity binding
// and components are not part of it and are rebound on load.
type Record struct {
	Name        string            `yaml:"name" json:"name"`
	Amount      int               `yaml:"amount" json:"amount"`
	CurrentTick model.Tick        `yaml:"current_tick" json:"current_tick"`
	Ability     *model.Ability    `yaml:"ability,omitempty" json:"ability,omitempty"`
	Conditional logic.Conditional `yaml:"conditional" json:"conditional"`
}

// Record returns the persisted form of the item.
func (it *Item) Record() Record {
	return Record{
		Name:        it.Name,
		Amount:      it.Amount,
		CurrentTick: it.currentTick,
		Ability:     it.ability,
		Conditional: it.Conditional,
	}
}

// FromRecord restores an unbound item. Use Bind to attach an owner.
func FromRecord(r Record) *Item {
	it := New(r.Name, r.Ability, r.Conditional)
	it.Amount = r.Amount
	it.currentTick = r.CurrentTick
	return it
}

// Bind attaches the item to its owning entity after loading.
func (it *Item) Bind(id model.EntityID) {
	it.entity = id
	it.hasEntity = id != model.InvalidEntityID
}
