package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/rptrunk/internal/model"
)

func TestWorld_SpawnAndLookup(t *testing.T) {
	w := New()

	hero, err := w.Spawn("hero", model.Stats{model.StatHP: 10})
	require.NoError(t, err)
	goblin, err := w.Spawn("goblin", nil)
	require.NoError(t, err)

	assert.NotEqual(t, model.InvalidEntityID, hero.ID())
	assert.NotEqual(t, hero.ID(), goblin.ID())
	assert.Equal(t, 2, w.Len())

	got, ok := w.EntityByID(hero.ID())
	require.True(t, ok)
	assert.Same(t, hero, got)

	byName, ok := w.EntityByName("goblin")
	require.True(t, ok)
	assert.Same(t, goblin, byName)

	_, ok = w.EntityByID(999)
	assert.False(t, ok)

	assert.Equal(t, []*model.Entity{hero, goblin}, w.Entities())
}

func TestWorld_Add(t *testing.T) {
	w := New()

	require.NoError(t, w.Add(model.NewEntity(10, "boss", nil)))
	assert.Error(t, w.Add(model.NewEntity(10, "twin", nil)), "duplicate id")
	assert.Error(t, w.Add(model.NewEntity(model.InvalidEntityID, "ghost", nil)))
	assert.Error(t, w.Add(nil))

	// Generated IDs never collide with explicitly added ones.
	e, err := w.Spawn("minion", nil)
	require.NoError(t, err)
	assert.Greater(t, e.ID(), model.EntityID(10))
}

func TestWorld_RemoveClearsTargeting(t *testing.T) {
	w := New()
	hero, _ := w.Spawn("hero", nil)
	goblin, _ := w.Spawn("goblin", nil)
	wolf, _ := w.Spawn("wolf", nil)

	hero.SetTarget(goblin.ID())
	hero.SetTargets([]model.EntityID{goblin.ID(), wolf.ID()})

	assert.True(t, w.Remove(goblin.ID()))
	assert.False(t, w.Remove(goblin.ID()))

	_, ok := w.EntityByID(goblin.ID())
	assert.False(t, ok)
	_, ok = w.EntityByName("goblin")
	assert.False(t, ok)

	_, ok = hero.Target()
	assert.False(t, ok)
	assert.Equal(t, []model.EntityID{wolf.ID()}, hero.Targets())
	assert.Equal(t, 2, w.Len())
}

func TestWorld_ImplementsSpace(t *testing.T) {
	var _ model.Space = New()
}
