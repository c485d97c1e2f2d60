package world

import (
	"sync/atomic"

	"github.com/udisondev/rptrunk/internal/model"
)

// EntityIDGenerator hands out unique entity IDs.
// 0 is reserved as model.InvalidEntityID and is never returned.
type EntityIDGenerator struct {
	last atomic.Uint32
}

// NewEntityIDGenerator creates a generator starting after 0.
func NewEntityIDGenerator() *EntityIDGenerator {
	return &EntityIDGenerator{}
}

// Next generates the next unique ID.
// Thread-safe via atomic increment.
func (g *EntityIDGenerator) Next() model.EntityID {
	return model.EntityID(g.last.Add(1))
}

// Observe bumps the generator past an externally assigned ID so later
// Next calls never collide with it.
func (g *EntityIDGenerator) Observe(id model.EntityID) {
	for {
		cur := g.last.Load()
		if uint32(id) <= cur {
			return
		}
		if g.last.CompareAndSwap(cur, uint32(id)) {
			return
		}
	}
}
