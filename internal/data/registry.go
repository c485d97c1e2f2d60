package data

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/rptrunk/internal/game/item"
	"github.com/udisondev/rptrunk/internal/logic"
	"github.com/udisondev/rptrunk/internal/model"
	"github.com/udisondev/rptrunk/internal/world"
)

// Имена файлов данных внутри каталога data_path.
const (
	AbilitiesFile = "abilities.yaml"
	ItemsFile     = "items.yaml"
	EntitiesFile  = "entities.yaml"
)

var (
	// ErrAbilityNotFound is returned when an item references an unknown ability.
	ErrAbilityNotFound = errors.New("ability not found")

	// ErrItemNotFound is returned when an entity references an unknown item template.
	ErrItemNotFound = errors.New("item template not found")
)

type abilitiesDoc struct {
	Abilities []model.Ability `yaml:"abilities"`
}

// itemDef — шаблон предмета в items.yaml. Способность указывается по имени.
type itemDef struct {
	Name        string            `yaml:"name"`
	Ability     string            `yaml:"ability"`
	Amount      *int              `yaml:"amount"`
	Conditional logic.Conditional `yaml:"conditional"`
}

type itemsDoc struct {
	Items []itemDef `yaml:"items"`
}

// EntityDef describes one entity of the starting roster.
type EntityDef struct {
	Name          string      `yaml:"name"`
	Stats         model.Stats `yaml:"stats"`
	Target        string      `yaml:"target"`
	Targets       []string    `yaml:"targets"`
	Items         []string    `yaml:"items"`
	StatusEffects []string    `yaml:"status_effects"`
}

type entitiesDoc struct {
	Entities []EntityDef `yaml:"entities"`
}

// Registry — загруженные способности, шаблоны предметов и ростер.
// Immutable after Load/Parse.
type Registry struct {
	abilities map[string]*model.Ability
	items     map[string]*item.Item
	itemOrder []string
	roster    []EntityDef
}

// Load reads abilities.yaml, items.yaml and entities.yaml from dir.
// entities.yaml is optional.
func Load(dir string) (*Registry, error) {
	abilities, err := os.ReadFile(filepath.Join(dir, AbilitiesFile))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", AbilitiesFile, err)
	}
	items, err := os.ReadFile(filepath.Join(dir, ItemsFile))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ItemsFile, err)
	}
	entities, err := os.ReadFile(filepath.Join(dir, EntitiesFile))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", EntitiesFile, err)
	}
	return Parse(abilities, items, entities)
}

// Parse builds a registry from raw YAML documents.
func Parse(abilitiesYAML, itemsYAML, entitiesYAML []byte) (*Registry, error) {
	r := &Registry{
		abilities: make(map[string]*model.Ability),
		items:     make(map[string]*item.Item),
	}

	var ad abilitiesDoc
	if err := yaml.Unmarshal(abilitiesYAML, &ad); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", AbilitiesFile, err)
	}
	for i := range ad.Abilities {
		a := ad.Abilities[i]
		if a.Name == "" {
			return nil, fmt.Errorf("ability #%d has no name", i)
		}
		if _, dup := r.abilities[a.Name]; dup {
			return nil, fmt.Errorf("duplicate ability %q", a.Name)
		}
		if a.Repeats <= 0 {
			a.Repeats = 1
		}
		if a.Cooldown < 0 {
			return nil, fmt.Errorf("ability %q: negative cooldown %d", a.Name, a.Cooldown)
		}
		r.abilities[a.Name] = &a
	}

	var id itemsDoc
	if err := yaml.Unmarshal(itemsYAML, &id); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ItemsFile, err)
	}
	for _, def := range id.Items {
		if def.Name == "" {
			return nil, fmt.Errorf("item with ability %q has no name", def.Ability)
		}
		if _, dup := r.items[def.Name]; dup {
			return nil, fmt.Errorf("duplicate item %q", def.Name)
		}
		if err := def.Conditional.Validate(); err != nil {
			return nil, fmt.Errorf("item %q conditional: %w", def.Name, err)
		}

		var ability *model.Ability
		if def.Ability != "" {
			a, ok := r.abilities[def.Ability]
			if !ok {
				return nil, fmt.Errorf("item %q: %w: %q", def.Name, ErrAbilityNotFound, def.Ability)
			}
			ability = a
		}

		tmpl := item.New(def.Name, ability, def.Conditional)
		if def.Amount != nil {
			tmpl.Amount = *def.Amount
		}
		r.items[def.Name] = tmpl
		r.itemOrder = append(r.itemOrder, def.Name)
	}

	if len(entitiesYAML) > 0 {
		var ed entitiesDoc
		if err := yaml.Unmarshal(entitiesYAML, &ed); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", EntitiesFile, err)
		}
		for _, def := range ed.Entities {
			for _, name := range def.Items {
				if _, ok := r.items[name]; !ok {
					return nil, fmt.Errorf("entity %q: %w: %q", def.Name, ErrItemNotFound, name)
				}
			}
		}
		r.roster = ed.Entities
	}

	return r, nil
}

// Ability returns the ability with the given name.
func (r *Registry) Ability(name string) (*model.Ability, bool) {
	a, ok := r.abilities[name]
	return a, ok
}

// AbilityCount returns the number of loaded abilities.
func (r *Registry) AbilityCount() int {
	return len(r.abilities)
}

// ItemTemplate returns the unbound item template with the given name.
func (r *Registry) ItemTemplate(name string) (*item.Item, bool) {
	it, ok := r.items[name]
	return it, ok
}

// ItemNames returns template names in file order.
func (r *Registry) ItemNames() []string {
	return slices.Clone(r.itemOrder)
}

// Roster returns the starting entity definitions.
func (r *Registry) Roster() []EntityDef {
	return slices.Clone(r.roster)
}

// Populate spawns the roster into w, wires targets by name and returns
// the per-entity item copies in roster order.
func (r *Registry) Populate(w *world.World) ([]*item.Item, error) {
	spawned := make([]*model.Entity, 0, len(r.roster))
	for _, def := range r.roster {
		e, err := w.Spawn(def.Name, def.Stats)
		if err != nil {
			return nil, fmt.Errorf("spawning %q: %w", def.Name, err)
		}
		for _, se := range def.StatusEffects {
			e.ApplyStatusEffect(se)
		}
		spawned = append(spawned, e)
	}

	items := make([]*item.Item, 0, len(r.roster))
	for i, def := range r.roster {
		e := spawned[i]

		if def.Target != "" {
			t, ok := w.EntityByName(def.Target)
			if !ok {
				return nil, fmt.Errorf("entity %q: unknown target %q", def.Name, def.Target)
			}
			e.SetTarget(t.ID())
		}
		for _, name := range def.Targets {
			t, ok := w.EntityByName(name)
			if !ok {
				return nil, fmt.Errorf("entity %q: unknown target %q", def.Name, name)
			}
			e.AddTarget(t.ID())
		}

		for _, name := range def.Items {
			items = append(items, r.items[name].CopyForEntity(e))
		}
	}
	return items, nil
}
