package gamedata

import "github.com/gdamore/tcell/v2"

// MonsterDef defines a monster type loaded from JSON.
type MonsterDef struct {
	ID          string `json:"id"`          // Unique identifier (e.g., "orc")
	Name        string `json:"name"`        // Display name (e.g., "Orc")
	Glyph       string `json:"glyph"`       // Single character for rendering (e.g., "o")
	Color       string `json:"color"`       // Hex color code (e.g., "#FF0000")
	HP          int    `json:"hp"`          // Base hit points
	Defense     int    `json:"defense"`     // Subtracted from incoming melee power
	Power       int    `json:"power"`       // Melee power
	VisionRange int    `json:"visionRange"` // Field of view radius
	SpawnWeight int    `json:"spawnWeight"` // Relative spawn frequency (higher = more common)
}

// GetID implements Weighted.
func (m *MonsterDef) GetID() string { return m.ID }

// Weight implements Weighted.
func (m *MonsterDef) Weight() int { return m.SpawnWeight }

// GlyphRune returns the glyph as a rune for rendering.
func (m *MonsterDef) GlyphRune() rune { return glyphRune(m.Glyph) }

// TCellColor returns the color as a tcell.Color.
func (m *MonsterDef) TCellColor() tcell.Color { return colorOr(m.Color, tcell.ColorWhite) }

// ItemDef defines a pick-up item loaded from JSON.
type ItemDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Glyph       string `json:"glyph"`
	Color       string `json:"color"`
	HealAmount  int    `json:"healAmount"` // Non-zero makes the item a potion
	SpawnWeight int    `json:"spawnWeight"`
}

// GetID implements Weighted.
func (i *ItemDef) GetID() string { return i.ID }

// Weight implements Weighted.
func (i *ItemDef) Weight() int { return i.SpawnWeight }

// GlyphRune returns the glyph as a rune for rendering.
func (i *ItemDef) GlyphRune() rune { return glyphRune(i.Glyph) }

// TCellColor returns the color as a tcell.Color.
func (i *ItemDef) TCellColor() tcell.Color { return colorOr(i.Color, tcell.ColorWhite) }

// PlayerDef defines the player's starting stats.
type PlayerDef struct {
	Name        string `json:"name"`
	Glyph       string `json:"glyph"`
	Color       string `json:"color"`
	Background  string `json:"background"`
	HP          int    `json:"hp"`
	Defense     int    `json:"defense"`
	Power       int    `json:"power"`
	VisionRange int    `json:"visionRange"`
}

// GlyphRune returns the glyph as a rune for rendering.
func (p *PlayerDef) GlyphRune() rune { return glyphRune(p.Glyph) }

// TCellColor returns the foreground color.
func (p *PlayerDef) TCellColor() tcell.Color { return colorOr(p.Color, tcell.ColorYellow) }

// TCellBackground returns the background color.
func (p *PlayerDef) TCellBackground() tcell.Color { return colorOr(p.Background, tcell.ColorBlack) }

// MonstersFile represents the structure of monsters.json.
type MonstersFile struct {
	Monsters []MonsterDef `json:"monsters"`
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Items []ItemDef `json:"items"`
}

// LoadMonsters loads monster definitions from the embedded monsters.json file.
func LoadMonsters() ([]MonsterDef, error) {
	file, err := Load[MonstersFile]("monsters.json")
	if err != nil {
		return nil, err
	}
	return file.Monsters, nil
}

// LoadItems loads item definitions from the embedded items.json file.
func LoadItems() ([]ItemDef, error) {
	file, err := Load[ItemsFile]("items.json")
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}

// LoadPlayer loads the player definition from the embedded player.json file.
func LoadPlayer() (*PlayerDef, error) {
	def, err := Load[PlayerDef]("player.json")
	if err != nil {
		return nil, err
	}
	return &def, nil
}
