// Package game runs the turn pipeline and the terminal loop around it.
package game

// RunState is where the game is in its turn cycle.
type RunState int

const (
	// StatePreRun runs the systems once before the first input.
	StatePreRun RunState = iota
	// StateAwaitingInput waits for the player to act.
	StateAwaitingInput
	// StatePlayerTurn resolves the player's action.
	StatePlayerTurn
	// StateMonsterTurn lets the monsters act.
	StateMonsterTurn
	// StateShowInventory shows the drink menu.
	StateShowInventory
	// StateShowDropItem shows the drop menu.
	StateShowDropItem
	// StateSaveGame writes the save file and ends the session.
	StateSaveGame
	// StateGameOver waits for a key after the player died.
	StateGameOver
)

// String returns a human-readable state name.
func (s RunState) String() string {
	switch s {
	case StatePreRun:
		return "pre_run"
	case StateAwaitingInput:
		return "awaiting_input"
	case StatePlayerTurn:
		return "player_turn"
	case StateMonsterTurn:
		return "monster_turn"
	case StateShowInventory:
		return "show_inventory"
	case StateShowDropItem:
		return "show_drop_item"
	case StateSaveGame:
		return "save_game"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// NeedsInput reports whether the state blocks until a key arrives.
func (s RunState) NeedsInput() bool {
	switch s {
	case StateAwaitingInput, StateShowInventory, StateShowDropItem, StateGameOver:
		return true
	default:
		return false
	}
}
