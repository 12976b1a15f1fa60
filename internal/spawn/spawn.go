// Package spawn builds the player, monsters and items from their
// definitions.
package spawn

import (
	"math/rand"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/roguelike/internal/dice"
	"github.com/samdwyer/roguelike/internal/ecs"
	"github.com/samdwyer/roguelike/internal/entity"
	"github.com/samdwyer/roguelike/internal/gamedata"
	"github.com/samdwyer/roguelike/internal/world"
)

const (
	maxMonsters = 4
	maxItems    = 2
)

// Player creates the player entity at the given position.
func Player(w *ecs.World, def *gamedata.PlayerDef, x, y int) ecs.Entity {
	e := w.Spawn()
	ecs.Insert(w, e, entity.Position{X: x, Y: y})
	ecs.Insert(w, e, entity.Renderable{
		Glyph:       def.GlyphRune(),
		FG:          def.TCellColor(),
		BG:          def.TCellBackground(),
		RenderOrder: entity.RenderOrderPlayer,
	})
	ecs.Insert(w, e, entity.Player{})
	ecs.Insert(w, e, entity.Viewshed{Range: def.VisionRange, Dirty: true})
	ecs.Insert(w, e, entity.Name{Name: def.Name})
	ecs.Insert(w, e, entity.NewCombatStats(def.HP, def.Defense, def.Power))
	return e
}

// Monster creates a monster from its definition.
func Monster(w *ecs.World, def *gamedata.MonsterDef, x, y int) ecs.Entity {
	e := w.Spawn()
	ecs.Insert(w, e, entity.Position{X: x, Y: y})
	ecs.Insert(w, e, entity.Renderable{
		Glyph:       def.GlyphRune(),
		FG:          def.TCellColor(),
		BG:          tcell.ColorBlack,
		RenderOrder: entity.RenderOrderMonster,
	})
	ecs.Insert(w, e, entity.Viewshed{Range: def.VisionRange, Dirty: true})
	ecs.Insert(w, e, entity.Monster{})
	ecs.Insert(w, e, entity.Name{Name: def.Name})
	ecs.Insert(w, e, entity.BlocksTile{})
	ecs.Insert(w, e, entity.NewCombatStats(def.HP, def.Defense, def.Power))
	return e
}

// Item creates a floor item from its definition. Items that heal become
// potions.
func Item(w *ecs.World, def *gamedata.ItemDef, x, y int) ecs.Entity {
	e := w.Spawn()
	ecs.Insert(w, e, entity.Position{X: x, Y: y})
	ecs.Insert(w, e, entity.Renderable{
		Glyph:       def.GlyphRune(),
		FG:          def.TCellColor(),
		BG:          tcell.ColorBlack,
		RenderOrder: entity.RenderOrderItem,
	})
	ecs.Insert(w, e, entity.Name{Name: def.Name})
	ecs.Insert(w, e, entity.Item{})
	if def.HealAmount > 0 {
		ecs.Insert(w, e, entity.Potion{HealAmount: def.HealAmount})
	}
	return e
}

// Result counts what Room created.
type Result struct {
	Monsters int
	Items    int
}

// Room fills a room with a random number of monsters and items.
func Room(w *ecs.World, rng *rand.Rand, m *world.Map, room world.Rect, catalog *gamedata.Catalog) Result {
	numMonsters := dice.Roll(rng, 1, maxMonsters+2) - 3
	numItems := dice.Roll(rng, 1, maxItems+2) - 3

	monsterSpots := pickSpots(rng, m, room, numMonsters)
	itemSpots := pickSpots(rng, m, room, numItems)

	var res Result
	for _, idx := range monsterSpots {
		def := catalog.Monsters.SpawnRandom(rng)
		if def == nil {
			break
		}
		p := m.Pos(idx)
		Monster(w, def, p.X, p.Y)
		res.Monsters++
	}
	for _, idx := range itemSpots {
		def := catalog.Items.SpawnRandom(rng)
		if def == nil {
			break
		}
		p := m.Pos(idx)
		Item(w, def, p.X, p.Y)
		res.Items++
	}
	return res
}

// pickSpots chooses up to n distinct tiles inside the room.
func pickSpots(rng *rand.Rand, m *world.Map, room world.Rect, n int) []int {
	width, height := room.X2-room.X1, room.Y2-room.Y1
	n = min(n, width*height)
	if n <= 0 {
		return nil
	}

	spots := make([]int, 0, n)
	taken := make(map[int]bool, n)
	for len(spots) < n {
		x := room.X1 + dice.Roll(rng, 1, width)
		y := room.Y1 + dice.Roll(rng, 1, height)
		idx := m.Idx(x, y)
		if taken[idx] {
			continue
		}
		taken[idx] = true
		spots = append(spots, idx)
	}
	return spots
}
