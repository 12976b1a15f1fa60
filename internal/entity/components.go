// Package entity defines the components attached to game entities.
package entity

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/roguelike/internal/ecs"
	"github.com/samdwyer/roguelike/internal/world"
)

// Draw order for Renderable.RenderOrder. Lower values draw on top.
const (
	RenderOrderPlayer  = 0
	RenderOrderMonster = 1
	RenderOrderItem    = 2
)

// Position places an entity on the map.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Point converts the position into a map point.
func (p Position) Point() world.Point {
	return world.Point{X: p.X, Y: p.Y}
}

// Renderable describes how an entity is drawn.
type Renderable struct {
	Glyph       rune        `json:"glyph"`
	FG          tcell.Color `json:"fg"`
	BG          tcell.Color `json:"bg"`
	RenderOrder int         `json:"renderOrder"`
}

// Player marks the player-controlled entity.
type Player struct{}

// Monster marks an entity driven by the monster AI.
type Monster struct{}

// Name is an entity's display name.
type Name struct {
	Name string `json:"name"`
}

// BlocksTile marks an entity that occupies its tile (blocks movement).
type BlocksTile struct{}

// Viewshed is what an entity can currently see.
type Viewshed struct {
	VisibleTiles []world.Point `json:"visibleTiles"`
	Range        int           `json:"range"`
	Dirty        bool          `json:"dirty"`
}

// CanSee reports whether p is among the visible tiles.
func (v *Viewshed) CanSee(p world.Point) bool {
	for _, t := range v.VisibleTiles {
		if t == p {
			return true
		}
	}
	return false
}

// Item marks something that can be picked up.
type Item struct{}

// Potion heals whoever drinks it.
type Potion struct {
	HealAmount int `json:"healAmount"`
}

// InBackpack marks an item carried by Owner. Carried items have no Position.
type InBackpack struct {
	Owner ecs.Entity `json:"owner"`
}

// =============================================================================
// Intents: one-shot components consumed by systems within the same turn.
// =============================================================================

// WantsToMelee asks the melee system to attack Target.
type WantsToMelee struct {
	Target ecs.Entity
}

// SufferDamage accumulates hits taken this turn.
type SufferDamage struct {
	Amounts []int
}

// Total returns the sum of all queued damage.
func (s *SufferDamage) Total() int {
	total := 0
	for _, a := range s.Amounts {
		total += a
	}
	return total
}

// AddDamage queues amount against victim, merging with earlier hits.
func AddDamage(w *ecs.World, victim ecs.Entity, amount int) {
	if d, ok := ecs.Get[SufferDamage](w, victim); ok {
		d.Amounts = append(d.Amounts, amount)
		return
	}
	ecs.Insert(w, victim, SufferDamage{Amounts: []int{amount}})
}

// WantsToPickupItem asks the collection system to move Item into
// CollectedBy's backpack.
type WantsToPickupItem struct {
	CollectedBy ecs.Entity
	Item        ecs.Entity
}

// WantsToDrinkPotion asks the potion system to consume Potion.
type WantsToDrinkPotion struct {
	Potion ecs.Entity
}

// WantsToDropItem asks the drop system to put Item on the floor.
type WantsToDropItem struct {
	Item ecs.Entity
}
