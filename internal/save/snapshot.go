// Package save persists a game in progress so it can be resumed later.
package save

import (
	"errors"
	"fmt"
	"time"

	"github.com/samdwyer/roguelike/internal/ecs"
	"github.com/samdwyer/roguelike/internal/entity"
	"github.com/samdwyer/roguelike/internal/world"
)

// Version is bumped whenever the snapshot layout changes incompatibly.
const Version = 1

// ErrVersion is returned for snapshots written by an incompatible build.
var ErrVersion = errors.New("unsupported save version")

// ErrCorrupt is returned for save files that cannot be decoded or describe
// an impossible game.
var ErrCorrupt = errors.New("corrupt save file")

// Snapshot is everything needed to resume a run.
type Snapshot struct {
	Version   int            `json:"version"`
	RunID     string         `json:"runId"`
	Seed      int64          `json:"seed"`
	Turns     int            `json:"turns"`
	Kills     int            `json:"kills"`
	StartedAt time.Time      `json:"startedAt"`
	SavedAt   time.Time      `json:"savedAt"`
	Map       *world.Map     `json:"map"`
	Log       []string       `json:"log"`
	Player    ecs.Entity     `json:"player"`
	NextID    ecs.Entity     `json:"nextId,omitempty"`
	Entities  []EntityRecord `json:"entities"`
}

// EntityRecord holds one entity's persistent components. Intents live for a
// single turn and are never saved.
type EntityRecord struct {
	ID          ecs.Entity          `json:"id"`
	Position    *entity.Position    `json:"position,omitempty"`
	Renderable  *entity.Renderable  `json:"renderable,omitempty"`
	Player      *entity.Player      `json:"player,omitempty"`
	Monster     *entity.Monster     `json:"monster,omitempty"`
	Name        *entity.Name        `json:"name,omitempty"`
	BlocksTile  *entity.BlocksTile  `json:"blocksTile,omitempty"`
	CombatStats *entity.CombatStats `json:"combatStats,omitempty"`
	Viewshed    *entity.Viewshed    `json:"viewshed,omitempty"`
	Item        *entity.Item        `json:"item,omitempty"`
	Potion      *entity.Potion      `json:"potion,omitempty"`
	InBackpack  *entity.InBackpack  `json:"inBackpack,omitempty"`
}

// CaptureEntities records every live entity in ascending id order.
func CaptureEntities(w *ecs.World) []EntityRecord {
	entities := w.Entities()
	records := make([]EntityRecord, 0, len(entities))
	for _, e := range entities {
		records = append(records, EntityRecord{
			ID:          e,
			Position:    capture[entity.Position](w, e),
			Renderable:  capture[entity.Renderable](w, e),
			Player:      capture[entity.Player](w, e),
			Monster:     capture[entity.Monster](w, e),
			Name:        capture[entity.Name](w, e),
			BlocksTile:  capture[entity.BlocksTile](w, e),
			CombatStats: capture[entity.CombatStats](w, e),
			Viewshed:    capture[entity.Viewshed](w, e),
			Item:        capture[entity.Item](w, e),
			Potion:      capture[entity.Potion](w, e),
			InBackpack:  capture[entity.InBackpack](w, e),
		})
	}
	return records
}

// capture copies e's T so later mutations do not leak into the snapshot.
func capture[T any](w *ecs.World, e ecs.Entity) *T {
	c, ok := ecs.Get[T](w, e)
	if !ok {
		return nil
	}
	cp := *c
	return &cp
}

// restore inserts c into the world when the record carried it.
func restore[T any](w *ecs.World, e ecs.Entity, c *T) {
	if c != nil {
		ecs.Insert(w, e, *c)
	}
}

// Restore rebuilds the world and map described by the snapshot.
func (s *Snapshot) Restore() (*ecs.World, *world.Map, error) {
	if s.Version != Version {
		return nil, nil, fmt.Errorf("%w: %d", ErrVersion, s.Version)
	}
	if s.Map == nil || len(s.Map.Tiles) != s.Map.Width*s.Map.Height {
		return nil, nil, fmt.Errorf("%w: no valid map", ErrCorrupt)
	}

	w := ecs.NewWorld()
	for _, r := range s.Entities {
		w.Restore(r.ID)
		restore(w, r.ID, r.Position)
		restore(w, r.ID, r.Renderable)
		restore(w, r.ID, r.Player)
		restore(w, r.ID, r.Monster)
		restore(w, r.ID, r.Name)
		restore(w, r.ID, r.BlocksTile)
		restore(w, r.ID, r.CombatStats)
		if r.Viewshed != nil {
			vs := *r.Viewshed
			vs.Dirty = true
			ecs.Insert(w, r.ID, vs)
		}
		restore(w, r.ID, r.Item)
		restore(w, r.ID, r.Potion)
		restore(w, r.ID, r.InBackpack)
	}
	w.Reserve(s.NextID)

	if !ecs.Has[entity.Player](w, s.Player) {
		return nil, nil, fmt.Errorf("%w: no player entity", ErrCorrupt)
	}

	s.Map.Rebuild()
	return w, s.Map, nil
}
