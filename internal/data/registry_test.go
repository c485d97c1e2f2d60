package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/rptrunk/internal/logic"
	"github.com/udisondev/rptrunk/internal/model"
	"github.com/udisondev/rptrunk/internal/world"
)

const testAbilities = `
abilities:
  - name: zap
    target: single_enemy
    cost: {mp: 2}
    stats: {hp: -1}
    cooldown: 1
  - name: rest
    target: self
    stats: {mp: 1}
    repeats: 0
`

const testItems = `
items:
  - name: wand
    ability: zap
    amount: 3
    conditional: {subject: self, stat: mp, op: gt, value: 2}
  - name: pillow
    ability: rest
  - name: pebble
`

const testEntities = `
entities:
  - name: mage
    stats: {hp: 10, mp: 5}
    target: imp
    targets: [imp]
    items: [wand, pillow]
  - name: imp
    stats: {hp: 4}
    status_effects: [cursed, cursed]
`

// TestLoad_Bundled loads the data files shipped with the simulator.
func TestLoad_Bundled(t *testing.T) {
	reg, err := Load(filepath.Join("..", "..", "data"))
	require.NoError(t, err)

	assert.Equal(t, 6, reg.AbilityCount())
	assert.Equal(t, []string{"oak staff", "healing charm", "war drum", "twin daggers", "fangs", "prayer beads"}, reg.ItemNames())

	flurry, ok := reg.Ability("flurry")
	require.True(t, ok)
	assert.Equal(t, 3, flurry.Repeats)
	assert.Equal(t, model.TargetSingleEnemy, flurry.TargetType)

	daggers, ok := reg.ItemTemplate("twin daggers")
	require.True(t, ok)
	assert.Equal(t, 2, daggers.Amount)
	assert.Same(t, flurry, daggers.Ability())

	w := world.New()
	items, err := reg.Populate(w)
	require.NoError(t, err)
	assert.Equal(t, 4, w.Len())
	assert.Len(t, items, 7)

	goblin, ok := w.EntityByName("goblin")
	require.True(t, ok)
	assert.True(t, goblin.HasStatusEffect("shielded"))
}

func TestParse(t *testing.T) {
	reg, err := Parse([]byte(testAbilities), []byte(testItems), []byte(testEntities))
	require.NoError(t, err)

	rest, ok := reg.Ability("rest")
	require.True(t, ok)
	assert.Equal(t, 1, rest.Repeats, "repeats default to one")
	assert.Equal(t, model.TargetOneself, rest.TargetType)

	wand, ok := reg.ItemTemplate("wand")
	require.True(t, ok)
	assert.Equal(t, 3, wand.Amount)
	assert.Equal(t, logic.GreaterThan, wand.Conditional.Op)

	pebble, ok := reg.ItemTemplate("pebble")
	require.True(t, ok)
	assert.Nil(t, pebble.Ability())
	assert.Equal(t, 1, pebble.Amount)

	_, bound := wand.Entity()
	assert.False(t, bound, "templates stay unbound")
	require.Len(t, reg.Roster(), 2)
}

func TestParse_NoEntities(t *testing.T) {
	reg, err := Parse([]byte(testAbilities), []byte(testItems), nil)
	require.NoError(t, err)
	assert.Empty(t, reg.Roster())

	items, err := reg.Populate(world.New())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name      string
		abilities string
		items     string
		entities  string
		wantErr   error
	}{
		{
			name:      "unknown ability",
			abilities: testAbilities,
			items:     "items: [{name: broom, ability: sweep}]",
			wantErr:   ErrAbilityNotFound,
		},
		{
			name:      "unknown item",
			abilities: testAbilities,
			items:     testItems,
			entities:  "entities: [{name: bob, items: [hammer]}]",
			wantErr:   ErrItemNotFound,
		},
		{
			name:      "unknown operator",
			abilities: testAbilities,
			items:     "items: [{name: broom, conditional: {stat: hp, op: '>=', value: 1}}]",
			wantErr:   logic.ErrUnknownOperator,
		},
		{
			name:      "missing operator",
			abilities: testAbilities,
			items:     "items: [{name: broom, conditional: {subject: self, stat: hp, value: 10}}]",
			wantErr:   logic.ErrUnknownOperator,
		},
		{
			name:      "unknown subject",
			abilities: testAbilities,
			items:     "items: [{name: broom, conditional: {subject: ally, stat: hp, op: '>', value: 1}}]",
			wantErr:   logic.ErrUnknownSubject,
		},
		{
			name:      "duplicate ability",
			abilities: "abilities: [{name: a}, {name: a}]",
		},
		{
			name:      "duplicate item",
			abilities: testAbilities,
			items:     "items: [{name: a}, {name: a}]",
		},
		{
			name:      "negative cooldown",
			abilities: "abilities: [{name: a, cooldown: -1}]",
		},
		{
			name:      "nameless ability",
			abilities: "abilities: [{target: self}]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.abilities), []byte(tt.items), []byte(tt.entities))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestPopulate_WiresTargets(t *testing.T) {
	reg, err := Parse([]byte(testAbilities), []byte(testItems), []byte(testEntities))
	require.NoError(t, err)

	w := world.New()
	items, err := reg.Populate(w)
	require.NoError(t, err)
	require.Len(t, items, 2)

	mage, ok := w.EntityByName("mage")
	require.True(t, ok)
	imp, ok := w.EntityByName("imp")
	require.True(t, ok)

	target, ok := mage.Target()
	require.True(t, ok)
	assert.Equal(t, imp.ID(), target)
	assert.Equal(t, []model.EntityID{imp.ID()}, mage.Targets())
	assert.Equal(t, int32(2), imp.StatusEffectStacks("cursed"))

	for _, it := range items {
		owner, bound := it.Entity()
		require.True(t, bound)
		assert.Equal(t, mage.ID(), owner)
	}
	assert.Equal(t, "wand", items[0].Name)
}

func TestPopulate_UnknownTarget(t *testing.T) {
	reg, err := Parse([]byte(testAbilities), []byte(testItems),
		[]byte("entities: [{name: mage, target: ghost}]"))
	require.NoError(t, err)

	_, err = reg.Populate(world.New())
	assert.Error(t, err)
}

func TestLoad_MissingEntitiesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, AbilitiesFile), []byte(testAbilities), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ItemsFile), []byte(testItems), 0o644))

	reg, err := Load(dir)
	require.NoError(t, err)
	assert.Empty(t, reg.Roster())

	_, err = Load(t.TempDir())
	assert.Error(t, err, "abilities file is required")
}
