package model

import "fmt"

// TargetType определяет, на кого действует способность.
type TargetType int8

const (
	TargetOneself     TargetType = iota // only the initiator
	TargetSingleEnemy                   // initiator's assigned target
	TargetAll                           // initiator's full target list
	TargetOther                         // no resolution yet (area, chain)
)

func (t TargetType) String() string {
	switch t {
	case TargetOneself:
		return "self"
	case TargetSingleEnemy:
		return "single_enemy"
	case TargetAll:
		return "all"
	case TargetOther:
		return "other"
	default:
		return fmt.Sprintf("TargetType(%d)", int8(t))
	}
}

// ParseTargetType converts the data-file spelling to TargetType.
// Unrecognised names map to TargetOther.
func ParseTargetType(s string) TargetType {
	switch s {
	case "self", "SELF", "oneself":
		return TargetOneself
	case "single_enemy", "SINGLE_ENEMY", "one", "ONE":
		return TargetSingleEnemy
	case "all", "ALL":
		return TargetAll
	default:
		return TargetOther
	}
}

// MarshalText encodes the target type by name.
func (t TargetType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes names accepted by ParseTargetType.
func (t *TargetType) UnmarshalText(text []byte) error {
	*t = ParseTargetType(string(text))
	return nil
}

// Ability — неизменяемое описание действия: выбор целей, стоимость,
// эффект, кулдаун, число повторов и побочные статус-эффекты.
// Shared across items; do not modify after loading.
type Ability struct {
	Name       string     `yaml:"name" json:"name"`
	TargetType TargetType `yaml:"target" json:"target"`
	Cost       Stats      `yaml:"cost,omitempty" json:"cost,omitempty"`
	Stats      Stats      `yaml:"stats,omitempty" json:"stats,omitempty"`
	Cooldown   Tick       `yaml:"cooldown,omitempty" json:"cooldown,omitempty"`
	Repeats    int        `yaml:"repeats,omitempty" json:"repeats,omitempty"`

	StatusEffects           []string `yaml:"status_effects,omitempty" json:"status_effects,omitempty"`
	DischargedStatusEffects []string `yaml:"discharged_status_effects,omitempty" json:"discharged_status_effects,omitempty"`
}
