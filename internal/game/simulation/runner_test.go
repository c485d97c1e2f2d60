package simulation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/rptrunk/internal/game/event"
	"github.com/udisondev/rptrunk/internal/game/item"
	"github.com/udisondev/rptrunk/internal/logic"
	"github.com/udisondev/rptrunk/internal/model"
	"github.com/udisondev/rptrunk/internal/testutil"
)

type recordingSink struct {
	mu    sync.Mutex
	ticks []int64
	err   error
}

func (s *recordingSink) Append(_ context.Context, tick int64, _ event.EventResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticks = append(s.ticks, tick)
	return s.err
}

func TestStep_FiresWhenCooldownElapses(t *testing.T) {
	w, hero, goblin := testutil.Duel(t)
	r := NewRunner(w, nil, nil, Config{Delta: 1})
	r.AddItems(item.New("staff", testutil.Fireball(), logic.Conditional{}).CopyForEntity(hero))

	ctx := context.Background()
	assert.Empty(t, r.Step(ctx))
	assert.Empty(t, r.Step(ctx))

	results := r.Step(ctx)
	require.Len(t, results, 1)
	assert.Equal(t, int32(25), goblin.CurrentStats().Get(model.StatHP))
	assert.Equal(t, int32(10), hero.CurrentStats().Get(model.StatMP))
	assert.Equal(t, model.Tick(0), r.Items()[0].CurrentTick(), "cooldown reset after use")

	// 10 mp is no longer strictly above the 10 mp cost.
	for range 5 {
		assert.Empty(t, r.Step(ctx))
	}
	assert.Equal(t, int32(25), goblin.CurrentStats().Get(model.StatHP))
	assert.Equal(t, int64(8), r.StepCount())
}

func TestStep_RegistrationOrder(t *testing.T) {
	w, hero, goblin := testutil.Duel(t)
	goblin.SetTarget(hero.ID())

	bite := &model.Ability{
		Name:       "bite",
		TargetType: model.TargetSingleEnemy,
		Stats:      model.Stats{model.StatHP: -4},
		Repeats:    1,
	}
	heal := testutil.Heal()

	r := NewRunner(w, nil, nil, Config{})
	r.AddItems(
		item.New("fangs", bite, logic.Conditional{}).CopyForEntity(goblin),
		item.New("charm", heal, logic.Conditional{}).CopyForEntity(hero),
	)

	results := r.Step(context.Background())
	require.Len(t, results, 2)
	assert.Equal(t, goblin.ID(), results[0].Event.InitiatorID())
	assert.Equal(t, hero.ID(), results[1].Event.InitiatorID())
	assert.Equal(t, int32(56), hero.CurrentStats().Get(model.StatHP))
}

func TestStep_Repeats(t *testing.T) {
	w, hero, goblin := testutil.Duel(t)
	flurry := &model.Ability{
		Name:       "flurry",
		TargetType: model.TargetSingleEnemy,
		Cost:       model.Stats{model.StatMP: 1},
		Stats:      model.Stats{model.StatHP: -2},
		Repeats:    3,
	}
	r := NewRunner(w, nil, nil, Config{})
	r.AddItems(item.New("daggers", flurry, logic.Conditional{}).CopyForEntity(hero))

	results := r.Step(context.Background())
	require.Len(t, results, 3)
	assert.Equal(t, int32(24), goblin.CurrentStats().Get(model.StatHP))
	assert.Equal(t, int32(17), hero.CurrentStats().Get(model.StatMP))
}

func TestStep_ConditionalGate(t *testing.T) {
	w, hero, _ := testutil.Duel(t)
	cond := logic.Compare(logic.SubjectSelf, model.StatHP, logic.LessThan, 50)
	r := NewRunner(w, nil, nil, Config{})
	r.AddItems(item.New("charm", testutil.Heal(), cond).CopyForEntity(hero))

	assert.Empty(t, r.Step(context.Background()), "full hp, no heal")

	hero.SetCurrentStats(model.Stats{model.StatHP: 40, model.StatMP: 20})
	require.Len(t, r.Step(context.Background()), 1)
	assert.Equal(t, int32(50), hero.CurrentStats().Get(model.StatHP))
}

func TestStep_UsesResolver(t *testing.T) {
	w, hero, goblin := testutil.Duel(t)
	r := NewRunner(w, event.Mitigation{}, nil, Config{Delta: 3})
	r.AddItems(item.New("staff", testutil.Fireball(), logic.Conditional{}).CopyForEntity(hero))

	require.Len(t, r.Step(context.Background()), 1)
	assert.Equal(t, int32(27), goblin.CurrentStats().Get(model.StatHP), "5 damage minus 2 defense")
}

func TestStep_JournalAndSink(t *testing.T) {
	w, hero, _ := testutil.Duel(t)
	sink := &recordingSink{err: errors.New("db down")}
	r := NewRunner(w, nil, NewJournal(4), Config{})
	r.SetSink(sink)
	r.AddItems(item.New("charm", testutil.Heal(), logic.Conditional{}).CopyForEntity(hero))

	ctx := context.Background()
	r.Step(ctx)
	r.Step(ctx)

	entries := r.Journal().Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, []int64{1, 2}, []int64{entries[0].Tick, entries[1].Tick})
	assert.Equal(t, []int64{1, 2}, sink.ticks, "sink errors do not stop the step")
	assert.Len(t, r.Journal().ByInitiator(hero.ID()), 2)
}

func TestItemsOf(t *testing.T) {
	w, hero, goblin := testutil.Duel(t)
	r := NewRunner(w, nil, nil, Config{})
	staff := item.New("staff", testutil.Fireball(), logic.Conditional{})
	r.AddItems(staff.CopyForEntity(hero), staff.CopyForEntity(goblin), staff.CopyForEntity(hero))

	assert.Len(t, r.ItemsOf(hero.ID()), 2)
	assert.Len(t, r.ItemsOf(goblin.ID()), 1)
	assert.Empty(t, r.ItemsOf(99))
}

func TestRun_MaxTicks(t *testing.T) {
	w, hero, _ := testutil.Duel(t)
	r := NewRunner(w, nil, nil, Config{Interval: time.Millisecond, MaxTicks: 3})
	r.AddItems(item.New("charm", testutil.Heal(), logic.Conditional{}).CopyForEntity(hero))

	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, int64(3), r.StepCount())
	assert.Equal(t, int64(3), r.Journal().Total())
}

func TestRun_Cancel(t *testing.T) {
	w, _, _ := testutil.Duel(t)
	r := NewRunner(w, nil, nil, Config{Interval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, r.Run(ctx), context.Canceled)
	assert.Zero(t, r.StepCount())
}
