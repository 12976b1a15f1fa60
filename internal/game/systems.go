package game

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/roguelike/internal/combat"
	"github.com/samdwyer/roguelike/internal/ecs"
	"github.com/samdwyer/roguelike/internal/entity"
	"github.com/samdwyer/roguelike/internal/records"
	"github.com/samdwyer/roguelike/internal/telemetry"
	"github.com/samdwyer/roguelike/internal/world"
)

// monsterReach is how close a monster must be to attack.
const monsterReach = 1.5

type system struct {
	name string
	run  func()
}

// runSystems executes the turn pipeline in its fixed order.
func (e *Engine) runSystems(ctx context.Context) {
	tracer := telemetry.Tracer("game")
	for _, sys := range []system{
		{"visibility", e.visibilitySystem},
		{"monster_ai", e.monsterAISystem},
		{"map_indexing", e.mapIndexingSystem},
		{"melee_combat", e.meleeCombatSystem},
		{"damage", e.damageSystem},
		{"item_collection", e.itemCollectionSystem},
		{"potion_use", e.potionUseSystem},
		{"item_drop", e.itemDropSystem},
	} {
		_, span := tracer.Start(ctx, "system."+sys.name)
		sys.run()
		span.End()
	}
}

// =============================================================================
// Visibility
// =============================================================================

// visibilitySystem recomputes dirty viewsheds. The player's view also
// updates the map's visible and revealed tiles.
func (e *Engine) visibilitySystem() {
	ecs.Each(e.World, func(ent ecs.Entity, vs *entity.Viewshed) {
		if !vs.Dirty {
			return
		}
		pos, ok := ecs.Get[entity.Position](e.World, ent)
		if !ok {
			return
		}
		vs.Dirty = false
		vs.VisibleTiles = world.FieldOfView(pos.Point(), vs.Range, e.Map)

		if ent != e.Player {
			return
		}
		e.Map.ClearVisible()
		for _, t := range vs.VisibleTiles {
			idx := e.Map.Idx(t.X, t.Y)
			e.Map.Revealed[idx] = true
			e.Map.Visible[idx] = true
		}
	})
}

// =============================================================================
// Monster AI
// =============================================================================

// monsterAISystem attacks an adjacent player or walks toward a visible one.
func (e *Engine) monsterAISystem() {
	if e.state != StateMonsterTurn {
		return
	}
	playerPos := e.PlayerPos()
	playerIdx := e.Map.Idx(playerPos.X, playerPos.Y)

	ecs.Each(e.World, func(ent ecs.Entity, _ *entity.Monster) {
		pos, ok := ecs.Get[entity.Position](e.World, ent)
		if !ok {
			return
		}
		vs, ok := ecs.Get[entity.Viewshed](e.World, ent)
		if !ok {
			return
		}

		if world.DistancePythagoras(pos.Point(), playerPos) < monsterReach {
			ecs.Insert(e.World, ent, entity.WantsToMelee{Target: e.Player})
			return
		}
		if !vs.CanSee(playerPos) {
			return
		}

		path := world.AStar(e.Map.Idx(pos.X, pos.Y), playerIdx, e.Map)
		if !path.Success || len(path.Steps) < 2 {
			return
		}
		e.Map.Blocked[e.Map.Idx(pos.X, pos.Y)] = false
		next := e.Map.Pos(path.Steps[1])
		pos.X, pos.Y = next.X, next.Y
		e.Map.Blocked[path.Steps[1]] = true
		vs.Dirty = true
	})
}

// =============================================================================
// Map indexing
// =============================================================================

// mapIndexingSystem rebuilds the blocked flags and the per-tile entity lists.
func (e *Engine) mapIndexingSystem() {
	e.Map.PopulateBlocked()
	e.Map.ClearContent()

	ecs.Each(e.World, func(ent ecs.Entity, pos *entity.Position) {
		if !e.Map.InBounds(pos.X, pos.Y) {
			return
		}
		idx := e.Map.Idx(pos.X, pos.Y)
		if ecs.Has[entity.BlocksTile](e.World, ent) {
			e.Map.Blocked[idx] = true
		}
		e.Map.TileContent[idx] = append(e.Map.TileContent[idx], ent)
	})
}

// =============================================================================
// Combat
// =============================================================================

// meleeCombatSystem resolves every queued attack and clears the intents.
func (e *Engine) meleeCombatSystem() {
	ecs.Each(e.World, func(ent ecs.Entity, wants *entity.WantsToMelee) {
		attacker, ok := e.fighter(ent)
		if !ok {
			return
		}
		target, ok := e.fighter(wants.Target)
		if !ok {
			return
		}

		outcome := combat.ResolveMelee(attacker, target)
		if !outcome.Attacked {
			return
		}
		e.Log.Add(outcome.Message)
		if outcome.Damage > 0 {
			entity.AddDamage(e.World, wants.Target, outcome.Damage)
		}
	})
	ecs.Clear[entity.WantsToMelee](e.World)
}

// fighter pairs an entity's name with its stats.
func (e *Engine) fighter(ent ecs.Entity) (combat.Fighter, bool) {
	stats, ok := ecs.Get[entity.CombatStats](e.World, ent)
	if !ok {
		return combat.Fighter{}, false
	}
	return combat.Fighter{Name: e.nameOf(ent), Stats: stats}, true
}

// damageSystem applies and clears all queued damage.
func (e *Engine) damageSystem() {
	ecs.Each(e.World, func(ent ecs.Entity, dmg *entity.SufferDamage) {
		if stats, ok := ecs.Get[entity.CombatStats](e.World, ent); ok {
			stats.TakeDamage(dmg.Total())
		}
	})
	ecs.Clear[entity.SufferDamage](e.World)
}

// deleteTheDead removes slain entities. The player's death ends the run.
func (e *Engine) deleteTheDead(ctx context.Context) {
	var dead []ecs.Entity
	playerDead := false
	ecs.Each(e.World, func(ent ecs.Entity, stats *entity.CombatStats) {
		if stats.HP >= 1 {
			return
		}
		if ent == e.Player {
			if e.state != StateGameOver {
				e.Log.Add("You are dead")
				playerDead = true
			}
			return
		}
		e.Log.Addf("%s is dead", e.nameOf(ent))
		dead = append(dead, ent)
	})

	for _, ent := range dead {
		if ecs.Has[entity.Monster](e.World, ent) {
			e.kills++
		}
		e.World.Despawn(ent)
	}

	if playerDead {
		e.state = StateGameOver
		e.playerDied(ctx)
	}
}

// playerDied records the run without stopping the session, so the game
// over screen can still be shown.
func (e *Engine) playerDied(ctx context.Context) {
	_, span := telemetry.Tracer("game").Start(ctx, "game.over")
	span.SetAttributes(
		attribute.Int("game.turns", e.turns),
		attribute.Int("game.kills", e.kills),
	)
	defer span.End()

	running := e.running
	e.finish(ctx, records.OutcomeDied)
	e.running = running
}

// nameOf returns the entity's display name, or a placeholder.
func (e *Engine) nameOf(ent ecs.Entity) string {
	if n, ok := ecs.Get[entity.Name](e.World, ent); ok {
		return n.Name
	}
	return "something"
}
