package world

import (
	"fmt"
	"slices"
	"sync"

	"github.com/udisondev/rptrunk/internal/model"
)

// World — реестр живых сущностей симуляции.
// Владеет сущностями; события и предметы держат только EntityID
// и разрешают их через EntityByID.
//
// Thread-safe: all methods are protected by sync.RWMutex.
type World struct {
	mu       sync.RWMutex
	entities map[model.EntityID]*model.Entity
	byName   map[string]model.EntityID
	order    []model.EntityID
	ids      *EntityIDGenerator
}

// New creates an empty world with its own ID generator.
func New() *World {
	return &World{
		entities: make(map[model.EntityID]*model.Entity),
		byName:   make(map[string]model.EntityID),
		ids:      NewEntityIDGenerator(),
	}
}

// Spawn creates and registers a new entity with a generated ID.
func (w *World) Spawn(name string, stats model.Stats) (*model.Entity, error) {
	e := model.NewEntity(w.ids.Next(), name, stats)
	if err := w.Add(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Add registers an existing entity.
// Returns error if the ID is invalid or already taken.
func (w *World) Add(e *model.Entity) error {
	if e == nil {
		return fmt.Errorf("entity cannot be nil")
	}
	if e.ID() == model.InvalidEntityID {
		return fmt.Errorf("entity %q has invalid id", e.Name())
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.entities[e.ID()]; exists {
		return fmt.Errorf("entity %d already registered", e.ID())
	}
	w.entities[e.ID()] = e
	w.order = append(w.order, e.ID())
	if e.Name() != "" {
		w.byName[e.Name()] = e.ID()
	}
	w.ids.Observe(e.ID())
	return nil
}

// Remove unregisters an entity and drops it from every other entity's
// targeting. Returns false if the entity was not registered.
func (w *World) Remove(id model.EntityID) bool {
	w.mu.Lock()
	e, ok := w.entities[id]
	if !ok {
		w.mu.Unlock()
		return false
	}
	delete(w.entities, id)
	if w.byName[e.Name()] == id {
		delete(w.byName, e.Name())
	}
	w.order = slices.DeleteFunc(w.order, func(o model.EntityID) bool { return o == id })
	rest := make([]*model.Entity, 0, len(w.order))
	for _, o := range w.order {
		rest = append(rest, w.entities[o])
	}
	w.mu.Unlock()

	for _, other := range rest {
		other.RemoveTarget(id)
	}
	return true
}

// EntityByID implements model.Space.
func (w *World) EntityByID(id model.EntityID) (*model.Entity, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	e, ok := w.entities[id]
	return e, ok
}

// EntityByName resolves an entity by its display name.
func (w *World) EntityByName(name string) (*model.Entity, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	id, ok := w.byName[name]
	if !ok {
		return nil, false
	}
	return w.entities[id], true
}

// Entities returns all registered entities in registration order.
func (w *World) Entities() []*model.Entity {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*model.Entity, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.entities[id])
	}
	return out
}

// Len returns the number of registered entities.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.entities)
}
