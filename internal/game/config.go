package game

import "github.com/samdwyer/roguelike/internal/world"

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible dungeon generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// Generator picks the map layout algorithm.
	Generator world.Generator

	// NewGame ignores any save file and starts fresh.
	NewGame bool
}
