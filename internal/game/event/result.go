package event

import (
	"github.com/google/uuid"

	"github.com/udisondev/rptrunk/internal/model"
)

// ConflictResult is the resolved outcome of one delta against one entity.
// Entity is the entity actually affected, which may differ from the
// entity the delta was aimed at.
type ConflictResult struct {
	Entity *model.Entity
	Change model.Stats
}

// EntityID returns the affected entity handle or InvalidEntityID.
func (r ConflictResult) EntityID() model.EntityID {
	if r.Entity == nil {
		return model.InvalidEntityID
	}
	return r.Entity.ID()
}

// EventResult pairs an executed event with every conflict it applied.
// The final effect is always the cost applied to the initiator.
type EventResult struct {
	ID      uuid.UUID
	Event   *Event
	Effects []ConflictResult
}

// CostEffect returns the trailing cost result.
func (r EventResult) CostEffect() (ConflictResult, bool) {
	if len(r.Effects) == 0 {
		return ConflictResult{}, false
	}
	return r.Effects[len(r.Effects)-1], true
}

// TargetEffects returns every effect except the trailing cost result.
func (r EventResult) TargetEffects() []ConflictResult {
	if len(r.Effects) == 0 {
		return nil
	}
	return r.Effects[:len(r.Effects)-1]
}

// Replay applies the recorded effects and status changes again.
// Not idempotent: every call adds the deltas once more.
func (r EventResult) Replay() {
	if r.Event == nil {
		return
	}
	r.Event.applyResults(r.Effects)
}
