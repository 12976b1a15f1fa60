package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type position struct{ X, Y int }
type name struct{ Value string }

func TestSpawnNeverReusesIDs(t *testing.T) {
	w := NewWorld()
	a := w.Spawn()
	b := w.Spawn()
	w.Despawn(a)
	c := w.Spawn()

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.False(t, w.Alive(a))
	assert.True(t, w.Alive(c))
	assert.Equal(t, 2, w.Len())
}

func TestInsertGetRemove(t *testing.T) {
	w := NewWorld()
	e := w.Spawn()

	Insert(w, e, position{X: 3, Y: 4})
	p, ok := Get[position](w, e)
	require.True(t, ok)
	assert.Equal(t, 3, p.X)

	// Mutations through the pointer stick.
	p.X = 10
	p, _ = Get[position](w, e)
	assert.Equal(t, 10, p.X)

	Remove[position](w, e)
	assert.False(t, Has[position](w, e))
}

func TestDespawnRemovesAllComponents(t *testing.T) {
	w := NewWorld()
	e := w.Spawn()
	Insert(w, e, position{})
	Insert(w, e, name{Value: "orc"})

	w.Despawn(e)

	assert.False(t, Has[position](w, e))
	assert.False(t, Has[name](w, e))

	// Inserting on a dead entity is ignored.
	Insert(w, e, position{X: 1})
	assert.False(t, Has[position](w, e))
}

func TestEachIsOrderedAndSkipsRemoved(t *testing.T) {
	w := NewWorld()
	var ids []Entity
	for i := 0; i < 5; i++ {
		e := w.Spawn()
		ids = append(ids, e)
		Insert(w, e, position{X: i})
	}

	var seen []Entity
	Each(w, func(e Entity, p *position) {
		seen = append(seen, e)
		if e == ids[1] {
			Remove[position](w, ids[3])
		}
	})

	assert.Equal(t, []Entity{ids[0], ids[1], ids[2], ids[4]}, seen)
}

func TestRestoreAdvancesAllocator(t *testing.T) {
	w := NewWorld()
	w.Restore(Entity(41))

	assert.True(t, w.Alive(41))
	assert.Equal(t, Entity(42), w.Spawn())
}

func TestReserveOnlyMovesForward(t *testing.T) {
	w := NewWorld()
	w.Restore(Entity(3))

	w.Reserve(Entity(10))
	assert.Equal(t, Entity(10), w.Next())
	w.Reserve(Entity(2))
	assert.Equal(t, Entity(10), w.Next())
	assert.Equal(t, Entity(10), w.Spawn())
}

func TestClear(t *testing.T) {
	w := NewWorld()
	a, b := w.Spawn(), w.Spawn()
	Insert(w, a, name{Value: "a"})
	Insert(w, b, name{Value: "b"})

	Clear[name](w)

	assert.Equal(t, 0, StorageOf[name](w).Len())
	assert.True(t, w.Alive(a))
}
