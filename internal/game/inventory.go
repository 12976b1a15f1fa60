package game

import (
	"github.com/samdwyer/roguelike/internal/ecs"
	"github.com/samdwyer/roguelike/internal/entity"
)

// Backpack lists the items carried by owner in entity order.
func (e *Engine) Backpack(owner ecs.Entity) []ecs.Entity {
	var items []ecs.Entity
	ecs.Each(e.World, func(item ecs.Entity, pack *entity.InBackpack) {
		if pack.Owner == owner {
			items = append(items, item)
		}
	})
	return items
}

// BackpackNames returns the display names of Backpack's items.
func (e *Engine) BackpackNames(owner ecs.Entity) []string {
	items := e.Backpack(owner)
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = e.nameOf(item)
	}
	return names
}

// getItem queues a pickup of the last item lying under the player.
func (e *Engine) getItem() {
	playerPos := e.PlayerPos()

	target, found := ecs.Entity(0), false
	ecs.Each(e.World, func(item ecs.Entity, _ *entity.Item) {
		if pos, ok := ecs.Get[entity.Position](e.World, item); ok && pos.Point() == playerPos {
			target, found = item, true
		}
	})

	if !found {
		e.Log.Add("There is nothing here to pick up.")
		return
	}
	ecs.Insert(e.World, e.Player, entity.WantsToPickupItem{CollectedBy: e.Player, Item: target})
}

// itemCollectionSystem moves picked-up items into backpacks.
func (e *Engine) itemCollectionSystem() {
	ecs.Each(e.World, func(ent ecs.Entity, pickup *entity.WantsToPickupItem) {
		if !e.World.Alive(pickup.Item) {
			return
		}
		ecs.Remove[entity.Position](e.World, pickup.Item)
		ecs.Insert(e.World, pickup.Item, entity.InBackpack{Owner: pickup.CollectedBy})

		if pickup.CollectedBy == e.Player {
			e.Log.Addf("You pick up the %s.", e.nameOf(pickup.Item))
		}
	})
	ecs.Clear[entity.WantsToPickupItem](e.World)
}

// potionUseSystem heals drinkers and consumes the potion.
func (e *Engine) potionUseSystem() {
	ecs.Each(e.World, func(ent ecs.Entity, drink *entity.WantsToDrinkPotion) {
		potion, ok := ecs.Get[entity.Potion](e.World, drink.Potion)
		if !ok {
			return
		}
		stats, ok := ecs.Get[entity.CombatStats](e.World, ent)
		if !ok {
			return
		}

		stats.Heal(potion.HealAmount)
		if ent == e.Player {
			e.Log.Addf("You drink the %s, healing %d hp.", e.nameOf(drink.Potion), potion.HealAmount)
		}
		e.World.Despawn(drink.Potion)
	})
	ecs.Clear[entity.WantsToDrinkPotion](e.World)
}

// itemDropSystem puts dropped items at the dropper's feet.
func (e *Engine) itemDropSystem() {
	ecs.Each(e.World, func(ent ecs.Entity, drop *entity.WantsToDropItem) {
		pos, ok := ecs.Get[entity.Position](e.World, ent)
		if !ok || !e.World.Alive(drop.Item) {
			return
		}
		ecs.Insert(e.World, drop.Item, entity.Position{X: pos.X, Y: pos.Y})
		ecs.Remove[entity.InBackpack](e.World, drop.Item)

		if ent == e.Player {
			e.Log.Addf("You drop the %s.", e.nameOf(drop.Item))
		}
	})
	ecs.Clear[entity.WantsToDropItem](e.World)
}
