package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/rptrunk/internal/model"
	"github.com/udisondev/rptrunk/internal/world"
)

// Spawn registers a new entity in w and fails the test on error.
func Spawn(tb testing.TB, w *world.World, name string, stats model.Stats) *model.Entity {
	tb.Helper()
	e, err := w.Spawn(name, stats)
	require.NoError(tb, err, "Spawn(%s)", name)
	return e
}

// Duel returns a world with a hero targeting a goblin, the classic
// two-entity setup used across tests.
func Duel(tb testing.TB) (w *world.World, hero, goblin *model.Entity) {
	tb.Helper()
	w = world.New()
	hero = Spawn(tb, w, "hero", model.Stats{model.StatHP: 50, model.StatMP: 20})
	goblin = Spawn(tb, w, "goblin", model.Stats{model.StatHP: 30, model.StatMP: 0, model.StatDefense: 2})
	hero.SetTarget(goblin.ID())
	hero.AddTarget(goblin.ID())
	return w, hero, goblin
}
