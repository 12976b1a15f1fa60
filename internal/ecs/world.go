// Package ecs provides a small entity-component store.
//
// Entities are plain identifiers. Components are ordinary structs kept in one
// storage per component type. Iteration always walks entities in ascending
// order so a seeded game plays out the same way every time.
package ecs

import (
	"reflect"
	"slices"
)

// Entity identifies a game object. Identifiers are never reused.
type Entity uint32

// store is the type-erased view of a Storage used by World for cleanup.
type store interface {
	remove(e Entity)
}

// World owns every entity and component storage.
type World struct {
	next   Entity
	alive  map[Entity]struct{}
	stores map[reflect.Type]store
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		next:   1,
		alive:  make(map[Entity]struct{}),
		stores: make(map[reflect.Type]store),
	}
}

// Spawn allocates a new entity.
func (w *World) Spawn() Entity {
	e := w.next
	w.next++
	w.alive[e] = struct{}{}
	return e
}

// Restore re-creates an entity with a known identifier, used when loading
// saved games. Later calls to Spawn never hand out the restored id.
func (w *World) Restore(e Entity) {
	w.alive[e] = struct{}{}
	if e >= w.next {
		w.next = e + 1
	}
}

// Next returns the identifier the next Spawn will hand out.
func (w *World) Next() Entity {
	return w.next
}

// Reserve makes Spawn skip every identifier below next, even ones that were
// despawned before a save and so were never restored.
func (w *World) Reserve(next Entity) {
	if next > w.next {
		w.next = next
	}
}

// Despawn removes an entity and all of its components.
func (w *World) Despawn(e Entity) {
	if _, ok := w.alive[e]; !ok {
		return
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	delete(w.alive, e)
}

// Alive reports whether the entity exists.
func (w *World) Alive(e Entity) bool {
	_, ok := w.alive[e]
	return ok
}

// Entities returns every live entity in ascending order.
func (w *World) Entities() []Entity {
	out := make([]Entity, 0, len(w.alive))
	for e := range w.alive {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.alive)
}
