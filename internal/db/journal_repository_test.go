package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/rptrunk/internal/db"
	"github.com/udisondev/rptrunk/internal/game/event"
	"github.com/udisondev/rptrunk/internal/model"
	"github.com/udisondev/rptrunk/internal/testutil"
	"github.com/udisondev/rptrunk/internal/testutil/dbtest"
)

func TestJournalRepository_AppendList(t *testing.T) {
	pool := dbtest.SetupTestDB(t)
	repo := db.NewJournalRepository(pool)
	ctx := context.Background()

	w, hero, goblin := testutil.Duel(t)
	first := event.New(hero.ID(), testutil.Fireball(), w, nil).Execute()
	second := event.New(hero.ID(), testutil.Heal(), w, nil).Execute()
	other := event.New(goblin.ID(), testutil.Heal(), w, nil).Execute()

	require.NoError(t, repo.Append(ctx, 3, first))
	require.NoError(t, repo.Append(ctx, 5, second))
	require.NoError(t, repo.Append(ctx, 5, other))

	rows, err := repo.ListByInitiator(ctx, hero.ID(), 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, first.ID, rows[0].ID)
	assert.Equal(t, int64(3), rows[0].Tick)
	assert.Equal(t, hero.ID(), rows[0].InitiatorID)
	assert.Equal(t, "fireball", rows[0].Ability)
	require.Len(t, rows[0].Effects, 2)
	assert.Equal(t, goblin.ID(), rows[0].Effects[0].EntityID)
	assert.Equal(t, int32(-5), rows[0].Effects[0].Change.Get(model.StatHP))
	assert.Equal(t, hero.ID(), rows[0].Effects[1].EntityID)
	assert.False(t, rows[0].CreatedAt.IsZero())

	assert.Equal(t, "heal", rows[1].Ability)

	rows, err = repo.ListByInitiator(ctx, hero.ID(), 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestJournalRepository_EmptyResult(t *testing.T) {
	pool := dbtest.SetupTestDB(t)
	repo := db.NewJournalRepository(pool)
	ctx := context.Background()

	w, _, _ := testutil.Duel(t)
	res := event.New(99, testutil.Fireball(), w, nil).Execute()
	require.Empty(t, res.Effects)

	require.NoError(t, repo.Append(ctx, 1, res))
	rows, err := repo.ListByInitiator(ctx, 99, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].Effects)
}
