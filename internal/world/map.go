package world

import (
	"github.com/samdwyer/roguelike/internal/ecs"
)

const (
	// Default map dimensions. The bottom seven rows of an 80x50 terminal
	// are reserved for the status panel.
	DefaultWidth  = 80
	DefaultHeight = 43
)

// Map represents the game map. Per-tile slices are indexed with Idx.
type Map struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Tiles    []Tile `json:"tiles"`
	Rooms    []Rect `json:"rooms"`
	Revealed []bool `json:"revealed"`

	// Rebuilt every turn by the indexing system, never persisted.
	Visible     []bool         `json:"-"`
	Blocked     []bool         `json:"-"`
	TileContent [][]ecs.Entity `json:"-"`
}

// NewMap creates a new map filled with walls.
func NewMap(width, height int) *Map {
	n := width * height
	tiles := make([]Tile, n)
	for i := range tiles {
		tiles[i] = TileWall
	}
	m := &Map{
		Width:    width,
		Height:   height,
		Tiles:    tiles,
		Rooms:    make([]Rect, 0),
		Revealed: make([]bool, n),
	}
	m.Rebuild()
	return m
}

// Rebuild allocates the transient per-tile state. Call it after decoding a
// map from a save file.
func (m *Map) Rebuild() {
	n := m.Width * m.Height
	if len(m.Revealed) != n {
		m.Revealed = make([]bool, n)
	}
	m.Visible = make([]bool, n)
	m.Blocked = make([]bool, n)
	m.TileContent = make([][]ecs.Entity, n)
	m.PopulateBlocked()
}

// Idx converts a coordinate into a tile index.
func (m *Map) Idx(x, y int) int {
	return y*m.Width + x
}

// Pos converts a tile index back into a coordinate.
func (m *Map) Pos(idx int) Point {
	return Point{X: idx % m.Width, Y: idx / m.Width}
}

// InBounds returns true if the coordinate lies on the map.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// GetTile returns the tile at the given position. Off-map reads are walls.
func (m *Map) GetTile(x, y int) Tile {
	if !m.InBounds(x, y) {
		return TileWall
	}
	return m.Tiles[m.Idx(x, y)]
}

// IsOpaque returns true if the position blocks sight. Off-map is opaque.
func (m *Map) IsOpaque(x, y int) bool {
	return m.GetTile(x, y).IsOpaque()
}

// IsPassable returns true if the given position can be walked on.
func (m *Map) IsPassable(x, y int) bool {
	return m.GetTile(x, y).IsPassable()
}

// IsBlocked returns true if a wall or a blocking entity occupies the tile.
func (m *Map) IsBlocked(x, y int) bool {
	if !m.InBounds(x, y) {
		return true
	}
	return m.Blocked[m.Idx(x, y)]
}

// IsRevealed returns true if the player has ever seen the tile.
func (m *Map) IsRevealed(x, y int) bool {
	return m.InBounds(x, y) && m.Revealed[m.Idx(x, y)]
}

// IsVisible returns true if the player can see the tile this turn.
func (m *Map) IsVisible(x, y int) bool {
	return m.InBounds(x, y) && m.Visible[m.Idx(x, y)]
}

// PopulateBlocked marks every non-walkable tile as blocked and clears the
// rest.
func (m *Map) PopulateBlocked() {
	for i, t := range m.Tiles {
		m.Blocked[i] = !t.IsPassable()
	}
}

// ClearContent empties the per-tile entity index.
func (m *Map) ClearContent() {
	for i := range m.TileContent {
		m.TileContent[i] = m.TileContent[i][:0]
	}
}

// ClearVisible hides every tile.
func (m *Map) ClearVisible() {
	clear(m.Visible)
}

// Exit is a neighbouring tile reachable in one step and what it costs.
type Exit struct {
	Idx  int
	Cost float64
}

const diagonalCost = 1.45

// isExitValid reports whether a walker may step onto the tile. The outer
// border never counts.
func (m *Map) isExitValid(x, y int) bool {
	if x < 1 || x > m.Width-1 || y < 1 || y > m.Height-1 {
		return false
	}
	return !m.Blocked[m.Idx(x, y)]
}

var exitDirections = [8]struct {
	dx, dy int
	cost   float64
}{
	{-1, 0, 1.0}, {1, 0, 1.0}, {0, -1, 1.0}, {0, 1, 1.0},
	{-1, -1, diagonalCost}, {1, -1, diagonalCost}, {-1, 1, diagonalCost}, {1, 1, diagonalCost},
}

// Exits lists the unblocked neighbours of idx, cardinals first.
func (m *Map) Exits(idx int) []Exit {
	return m.exitsToward(idx, -1)
}

// exitsToward is Exits but always admits goal, so a path can end on an
// occupied tile.
func (m *Map) exitsToward(idx, goal int) []Exit {
	p := m.Pos(idx)
	exits := make([]Exit, 0, len(exitDirections))
	for _, d := range exitDirections {
		x, y := p.X+d.dx, p.Y+d.dy
		if !m.InBounds(x, y) {
			continue
		}
		next := m.Idx(x, y)
		if next == goal || m.isExitValid(x, y) {
			exits = append(exits, Exit{Idx: next, Cost: d.cost})
		}
	}
	return exits
}
