package testutil

import "github.com/udisondev/rptrunk/internal/model"

// Fireball: single-enemy hit for 5 hp, costs 10 mp, cooldown 3.
func Fireball() *model.Ability {
	return &model.Ability{
		Name:       "fireball",
		TargetType: model.TargetSingleEnemy,
		Cost:       model.Stats{model.StatHP: 0, model.StatMP: 10},
		Stats:      model.Stats{model.StatHP: -5},
		Cooldown:   3,
		Repeats:    1,
	}
}

// Heal: self-target +10 hp for 4 mp, no cooldown.
func Heal() *model.Ability {
	return &model.Ability{
		Name:       "heal",
		TargetType: model.TargetOneself,
		Cost:       model.Stats{model.StatMP: 4},
		Stats:      model.Stats{model.StatHP: 10},
		Repeats:    1,
	}
}

// Quake: hits every tracked target for 3 hp and knocks them down.
func Quake() *model.Ability {
	return &model.Ability{
		Name:                    "quake",
		TargetType:              model.TargetAll,
		Cost:                    model.Stats{model.StatMP: 6},
		Stats:                   model.Stats{model.StatHP: -3},
		Cooldown:                2,
		Repeats:                 1,
		StatusEffects:           []string{"knocked_down"},
		DischargedStatusEffects: []string{"shielded"},
	}
}
