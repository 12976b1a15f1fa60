package gamedata

import (
	"errors"
	"math/rand"
	"slices"
)

// Weighted is implemented by definitions that can be spawned at random.
type Weighted interface {
	GetID() string
	Weight() int
}

// Registry holds loaded definitions and provides spawning utilities.
type Registry[T any, P interface {
	*T
	Weighted
}] struct {
	defs        []T
	totalWeight int
}

// MonsterRegistry holds monster definitions.
type MonsterRegistry = Registry[MonsterDef, *MonsterDef]

// ItemRegistry holds item definitions.
type ItemRegistry = Registry[ItemDef, *ItemDef]

// NewRegistry creates a registry from loaded definitions.
func NewRegistry[T any, P interface {
	*T
	Weighted
}](defs []T) *Registry[T, P] {
	totalWeight := 0
	for i := range defs {
		totalWeight += max(P(&defs[i]).Weight(), 0)
	}
	return &Registry[T, P]{
		defs:        defs,
		totalWeight: totalWeight,
	}
}

// SpawnRandom selects a random definition using weighted probability.
// Definitions with higher spawnWeight are more likely to be selected.
func (r *Registry[T, P]) SpawnRandom(rng *rand.Rand) *T {
	if r.totalWeight <= 0 || len(r.defs) == 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)

	cumulative := 0
	for i := range r.defs {
		cumulative += max(P(&r.defs[i]).Weight(), 0)
		if roll < cumulative {
			return &r.defs[i]
		}
	}

	return &r.defs[0]
}

// GetByID returns the definition with the given ID, or nil if not found.
func (r *Registry[T, P]) GetByID(id string) *T {
	for i := range r.defs {
		if P(&r.defs[i]).GetID() == id {
			return &r.defs[i]
		}
	}
	return nil
}

// Count returns the number of definitions in the registry.
func (r *Registry[T, P]) Count() int {
	return len(r.defs)
}

// All returns a copy of every definition in load order.
func (r *Registry[T, P]) All() []T {
	return slices.Clone(r.defs)
}

// Catalog bundles every piece of embedded content the game needs.
type Catalog struct {
	Player   *PlayerDef
	Monsters *MonsterRegistry
	Items    *ItemRegistry
}

// LoadCatalog loads all embedded definitions.
func LoadCatalog() (*Catalog, error) {
	player, err := LoadPlayer()
	if err != nil {
		return nil, err
	}

	monsters, err := LoadMonsters()
	if err != nil {
		return nil, err
	}
	if len(monsters) == 0 {
		return nil, errors.New("no monsters loaded from monsters.json")
	}

	items, err := LoadItems()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("no items loaded from items.json")
	}

	return &Catalog{
		Player:   player,
		Monsters: NewRegistry(monsters),
		Items:    NewRegistry(items),
	}, nil
}
