package ecs

import (
	"reflect"
	"slices"
)

// Storage holds every component of type T, keyed by entity.
type Storage[T any] struct {
	items map[Entity]*T
}

func (s *Storage[T]) remove(e Entity) {
	delete(s.items, e)
}

// Len returns how many entities carry the component.
func (s *Storage[T]) Len() int {
	return len(s.items)
}

// Entities returns the entities carrying the component in ascending order.
func (s *Storage[T]) Entities() []Entity {
	out := make([]Entity, 0, len(s.items))
	for e := range s.items {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

// StorageOf returns the storage for T, creating it on first use.
func StorageOf[T any](w *World) *Storage[T] {
	key := reflect.TypeFor[T]()
	if s, ok := w.stores[key]; ok {
		return s.(*Storage[T])
	}
	s := &Storage[T]{items: make(map[Entity]*T)}
	w.stores[key] = s
	return s
}

// Insert attaches c to e, replacing any existing T. Inserting on a dead
// entity is a no-op.
func Insert[T any](w *World, e Entity, c T) {
	if !w.Alive(e) {
		return
	}
	StorageOf[T](w).items[e] = &c
}

// Get returns a pointer to e's T so callers can mutate it in place.
func Get[T any](w *World, e Entity) (*T, bool) {
	c, ok := StorageOf[T](w).items[e]
	return c, ok
}

// Has reports whether e carries a T.
func Has[T any](w *World, e Entity) bool {
	_, ok := StorageOf[T](w).items[e]
	return ok
}

// Remove detaches T from e.
func Remove[T any](w *World, e Entity) {
	StorageOf[T](w).remove(e)
}

// Clear removes every T in the world. Systems use it to drop one-shot
// intents once they have been processed.
func Clear[T any](w *World) {
	s := StorageOf[T](w)
	clear(s.items)
}

// Each calls fn for every entity carrying a T, in ascending entity order.
// Components added to other entities during the walk are not visited;
// components removed before their turn are skipped.
func Each[T any](w *World, fn func(e Entity, c *T)) {
	s := StorageOf[T](w)
	for _, e := range s.Entities() {
		if c, ok := s.items[e]; ok {
			fn(e, c)
		}
	}
}
