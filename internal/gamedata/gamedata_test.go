package gamedata

import (
	"math/rand"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestLoadMonsters(t *testing.T) {
	monsters, err := LoadMonsters()
	if err != nil {
		t.Fatalf("Failed to load monsters: %v", err)
	}

	if len(monsters) != 2 {
		t.Errorf("Expected 2 monsters, got %d", len(monsters))
	}

	expectedIDs := map[string]bool{"orc": false, "goblin": false}
	for _, m := range monsters {
		if _, ok := expectedIDs[m.ID]; ok {
			expectedIDs[m.ID] = true
		}
		if m.HP != 16 || m.Defense != 1 || m.Power != 4 {
			t.Errorf("%s stats = %d/%d/%d, want 16/1/4", m.ID, m.HP, m.Defense, m.Power)
		}
	}

	for id, found := range expectedIDs {
		if !found {
			t.Errorf("Expected monster %q not found", id)
		}
	}
}

func TestLoadPlayer(t *testing.T) {
	p, err := LoadPlayer()
	if err != nil {
		t.Fatalf("Failed to load player: %v", err)
	}
	if p.HP != 30 || p.Defense != 2 || p.Power != 5 || p.VisionRange != 8 {
		t.Errorf("player stats = %+v", p)
	}
	if p.GlyphRune() != '@' {
		t.Errorf("player glyph = %c, want @", p.GlyphRune())
	}
}

func TestLoadItemsMultiByteGlyph(t *testing.T) {
	items, err := LoadItems()
	if err != nil {
		t.Fatalf("Failed to load items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	potion := items[0]
	if potion.GlyphRune() != '¡' {
		t.Errorf("potion glyph = %q, want '¡'", potion.GlyphRune())
	}
	if potion.HealAmount != 8 {
		t.Errorf("potion heals %d, want 8", potion.HealAmount)
	}
}

func TestMonsterRegistry(t *testing.T) {
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	registry := catalog.Monsters

	if registry.Count() != 2 {
		t.Errorf("Expected 2 monster types, got %d", registry.Count())
	}

	orc := registry.GetByID("orc")
	if orc == nil {
		t.Error("Orc not found by ID")
	} else if orc.Name != "Orc" {
		t.Errorf("Expected name 'Orc', got %q", orc.Name)
	}
	if registry.GetByID("dragon") != nil {
		t.Error("unknown ID should return nil")
	}

	// Test weighted spawning is deterministic with same seed
	rng1 := rand.New(rand.NewSource(12345))
	rng2 := rand.New(rand.NewSource(12345))
	for i := 0; i < 10; i++ {
		a, b := registry.SpawnRandom(rng1).ID, registry.SpawnRandom(rng2).ID
		if a != b {
			t.Errorf("Spawn %d mismatch: %s != %s", i, a, b)
		}
	}
}

func TestRegistryWeights(t *testing.T) {
	registry := NewRegistry([]MonsterDef{
		{ID: "never", SpawnWeight: 0},
		{ID: "always", SpawnWeight: 5},
	})
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		if got := registry.SpawnRandom(rng).ID; got != "always" {
			t.Fatalf("SpawnRandom picked %q with zero weight", got)
		}
	}

	empty := NewRegistry([]ItemDef{})
	if empty.SpawnRandom(rng) != nil {
		t.Error("empty registry should spawn nil")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00FF00", true},
		{"#FFFFFF", true},
		{"#000000", true},
		{"invalid", false},
		{"#FFF", false}, // Too short
		{"#GG0000", false},
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}

	c, _ := ParseHexColor("#FF00FF")
	if c != tcell.NewRGBColor(255, 0, 255) {
		t.Errorf("ParseHexColor(#FF00FF) = %v", c)
	}
}

func TestMonsterDefFallbacks(t *testing.T) {
	def := MonsterDef{ID: "test", Color: "nope"}

	if def.GlyphRune() != '?' {
		t.Errorf("Expected glyph '?', got %c", def.GlyphRune())
	}
	if def.TCellColor() != tcell.ColorWhite {
		t.Error("bad color should fall back to white")
	}
}

func TestRegistryAllReturnsCopy(t *testing.T) {
	reg := NewRegistry([]MonsterDef{
		{ID: "orc", SpawnWeight: 1},
		{ID: "goblin", SpawnWeight: 3},
	})

	all := reg.All()
	if len(all) != 2 || all[0].ID != "orc" || all[1].ID != "goblin" {
		t.Fatalf("All() = %+v, want orc then goblin", all)
	}

	all[0].ID = "dragon"
	if reg.GetByID("orc") == nil {
		t.Error("editing the result of All() changed the registry")
	}
	if reg.GetByID("dragon") != nil {
		t.Error("registry picked up an edit made through All()")
	}
}
