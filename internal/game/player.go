package game

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/roguelike/internal/ecs"
	"github.com/samdwyer/roguelike/internal/entity"
	"github.com/samdwyer/roguelike/internal/ui"
)

// playerInput turns a key into the player's action and the next state.
func (e *Engine) playerInput(key *Key) RunState {
	if key == nil {
		return StateAwaitingInput
	}

	if dx, dy, ok := key.direction(); ok {
		e.tryMove(dx, dy)
		return StatePlayerTurn
	}

	switch key.Code {
	case tcell.KeyEscape:
		return StateSaveGame
	case tcell.KeyRune:
		switch key.Rune {
		case 'g', 'G':
			e.getItem()
			return StatePlayerTurn
		case 'i', 'I':
			return StateShowInventory
		case 'n', 'N':
			return StateShowDropItem
		}
	}
	return StateAwaitingInput
}

// tryMove walks the player one step, or attacks whatever fighter stands in
// the way.
func (e *Engine) tryMove(dx, dy int) {
	pos, ok := ecs.Get[entity.Position](e.World, e.Player)
	if !ok {
		return
	}
	x, y := pos.X+dx, pos.Y+dy
	if x < 1 || x > e.Map.Width-1 || y < 1 || y > e.Map.Height-1 {
		return
	}
	idx := e.Map.Idx(x, y)

	for _, target := range e.Map.TileContent[idx] {
		if ecs.Has[entity.CombatStats](e.World, target) {
			ecs.Insert(e.World, e.Player, entity.WantsToMelee{Target: target})
			return
		}
	}

	if e.Map.IsBlocked(x, y) {
		return
	}
	pos.X = min(ui.ScreenWidth-1, max(0, x))
	pos.Y = min(ui.ScreenHeight-1, max(0, y))
	if vs, ok := ecs.Get[entity.Viewshed](e.World, e.Player); ok {
		vs.Dirty = true
	}
}
