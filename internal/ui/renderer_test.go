package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/roguelike/internal/ecs"
	"github.com/samdwyer/roguelike/internal/entity"
	"github.com/samdwyer/roguelike/internal/world"
)

type cell struct {
	r     rune
	style tcell.Style
}

// mockCanvas records drawn cells for inspection.
type mockCanvas struct {
	cells map[world.Point]cell
	shown bool
}

func newMockCanvas() *mockCanvas {
	return &mockCanvas{cells: make(map[world.Point]cell)}
}

func (m *mockCanvas) Clear() { clear(m.cells) }
func (m *mockCanvas) Show() { m.shown = true }
func (m *mockCanvas) Size() (int, int) { return ScreenWidth, ScreenHeight }
func (m *mockCanvas) at(x, y int) cell { return m.cells[world.Point{X: x, Y: y}] }
func (m *mockCanvas) runeAt(x, y int) rune { return m.at(x, y).r }

func (m *mockCanvas) SetContent(x, y int, r rune, style tcell.Style) {
	m.cells[world.Point{X: x, Y: y}] = cell{r: r, style: style}
}

// row returns the text drawn on line y between x0 and x1.
func (m *mockCanvas) row(y, x0, x1 int) string {
	var b strings.Builder
	for x := x0; x < x1; x++ {
		r := m.runeAt(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func fg(s tcell.Style) tcell.Color {
	f, _, _ := s.Decompose()
	return f
}

func bg(s tcell.Style) tcell.Color {
	_, b, _ := s.Decompose()
	return b
}

// testFrame is a 10x10 room, all revealed, with the left half visible.
func testFrame() (Frame, ecs.Entity) {
	m := world.NewMap(world.DefaultWidth, world.DefaultHeight)
	for y := 1; y < 9; y++ {
		for x := 1; x < 9; x++ {
			m.Tiles[m.Idx(x, y)] = world.TileFloor
		}
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			m.Revealed[m.Idx(x, y)] = true
			m.Visible[m.Idx(x, y)] = x < 5
		}
	}

	w := ecs.NewWorld()
	player := w.Spawn()
	ecs.Insert(w, player, entity.Position{X: 2, Y: 2})
	ecs.Insert(w, player, entity.Renderable{Glyph: '@', FG: tcell.ColorYellow, BG: tcell.ColorBlack, RenderOrder: entity.RenderOrderPlayer})
	ecs.Insert(w, player, entity.Name{Name: "Player"})
	stats := entity.NewCombatStats(30, 2, 5)
	stats.HP = 15
	ecs.Insert(w, player, stats)

	return Frame{Map: m, World: w, Player: player, Log: []string{"newest", "older"}}, player
}

func addThing(w *ecs.World, x, y int, glyph rune, order int, name string) ecs.Entity {
	e := w.Spawn()
	ecs.Insert(w, e, entity.Position{X: x, Y: y})
	ecs.Insert(w, e, entity.Renderable{Glyph: glyph, FG: tcell.ColorRed, BG: tcell.ColorBlack, RenderOrder: order})
	ecs.Insert(w, e, entity.Name{Name: name})
	return e
}

func TestRenderMapColors(t *testing.T) {
	c := newMockCanvas()
	f, _ := testFrame()

	NewRenderer(c).Render(f)

	if !c.shown {
		t.Error("Render should flush the screen")
	}
	tests := []struct {
		name  string
		x, y  int
		glyph rune
		color tcell.Color
	}{
		{"visible floor", 1, 1, '.', tcell.ColorTeal},
		{"visible wall", 0, 0, '#', tcell.ColorGreen},
		{"remembered floor", 6, 6, '.', tcell.ColorGray},
		{"remembered wall", 9, 0, '#', tcell.ColorGray},
	}
	for _, tt := range tests {
		got := c.at(tt.x, tt.y)
		if got.r != tt.glyph || fg(got.style) != tt.color {
			t.Errorf("%s at (%d,%d) = %q %v, want %q %v", tt.name, tt.x, tt.y, got.r, fg(got.style), tt.glyph, tt.color)
		}
	}
	if r := c.runeAt(20, 20); r != 0 {
		t.Errorf("unrevealed tile drawn as %q", r)
	}
}

func TestRenderEntityOrder(t *testing.T) {
	c := newMockCanvas()
	f, _ := testFrame()
	addThing(f.World, 2, 2, '¡', entity.RenderOrderItem, "Potion")
	addThing(f.World, 3, 3, 'o', entity.RenderOrderMonster, "Orc")
	addThing(f.World, 3, 3, '¡', entity.RenderOrderItem, "Potion")
	addThing(f.World, 7, 7, 'g', entity.RenderOrderMonster, "Goblin")

	NewRenderer(c).Render(f)

	if r := c.runeAt(2, 2); r != '@' {
		t.Errorf("player should draw over items, got %q", r)
	}
	if r := c.runeAt(3, 3); r != 'o' {
		t.Errorf("monster should draw over items, got %q", r)
	}
	if r := c.runeAt(7, 7); r != '.' {
		t.Errorf("entity on a hidden tile should not draw, got %q", r)
	}
}

func TestRenderPanel(t *testing.T) {
	c := newMockCanvas()
	f, _ := testFrame()

	NewRenderer(c).Render(f)

	if r := c.runeAt(0, 43); r != tcell.RuneULCorner {
		t.Errorf("panel corner = %q", r)
	}
	if r := c.runeAt(79, 49); r != tcell.RuneLRCorner {
		t.Errorf("panel bottom-right corner = %q", r)
	}
	if got := c.row(43, 12, 25); got != " HP: 15 / 30 " {
		t.Errorf("HP text = %q", got)
	}
	if col := fg(c.at(13, 43).style); col != tcell.ColorYellow {
		t.Errorf("HP text color = %v", col)
	}

	// Half health fills half of the 51-wide bar.
	if r := c.runeAt(28, 43); r != '▓' {
		t.Errorf("bar start = %q", r)
	}
	if r := c.runeAt(28+24, 43); r != '▓' {
		t.Errorf("bar middle = %q", r)
	}
	if r := c.runeAt(28+26, 43); r != '░' {
		t.Errorf("bar past middle = %q", r)
	}
	if col := fg(c.at(30, 43).style); col != tcell.ColorRed {
		t.Errorf("bar color = %v", col)
	}

	if got := c.row(44, 2, 8); got != "newest" {
		t.Errorf("first log line = %q", got)
	}
	if got := c.row(45, 2, 7); got != "older" {
		t.Errorf("second log line = %q", got)
	}
}

func TestRenderLogStopsAtPanelBottom(t *testing.T) {
	c := newMockCanvas()
	f, _ := testFrame()
	f.Log = []string{"1", "2", "3", "4", "5", "6", "7"}

	NewRenderer(c).Render(f)

	if r := c.runeAt(2, 48); r != '5' {
		t.Errorf("last log row = %q, want '5'", r)
	}
	if r := c.runeAt(2, 49); r == '6' {
		t.Error("log overwrote the panel border")
	}
}

func TestRenderTooltip(t *testing.T) {
	c := newMockCanvas()
	f, _ := testFrame()
	addThing(f.World, 3, 3, 'o', entity.RenderOrderMonster, "Orc")
	f.Mouse = &world.Point{X: 3, Y: 3}

	NewRenderer(c).Render(f)

	if col := bg(c.at(3, 3).style); col != tcell.ColorFuchsia {
		t.Errorf("cursor background = %v, want fuchsia", col)
	}
	if got := c.row(3, 4, 6); got != "<-" {
		t.Errorf("arrow = %q, want \"<-\"", got)
	}
	if got := c.row(3, 7, 10); got != "Orc" {
		t.Errorf("tooltip text = %q", got)
	}
	if col := bg(c.at(7, 3).style); col != tcell.ColorGray {
		t.Errorf("tooltip background = %v, want gray", col)
	}

	// The names are framed from (6,2) to (10,4).
	corners := []struct {
		x, y int
		want rune
	}{
		{6, 2, tcell.RuneULCorner},
		{10, 2, tcell.RuneURCorner},
		{6, 4, tcell.RuneLLCorner},
		{10, 4, tcell.RuneLRCorner},
	}
	for _, tt := range corners {
		if r := c.runeAt(tt.x, tt.y); r != tt.want {
			t.Errorf("corner at (%d,%d) = %q, want %q", tt.x, tt.y, r, tt.want)
		}
	}
	if r := c.runeAt(6, 3); r != tcell.RuneVLine {
		t.Errorf("left edge = %q, want vertical line", r)
	}
	if got := c.row(2, 7, 10); got != strings.Repeat(string(tcell.RuneHLine), 3) {
		t.Errorf("top edge = %q", got)
	}
}

func TestRenderTooltipLeftSide(t *testing.T) {
	c := newMockCanvas()
	f, _ := testFrame()
	for y := 0; y < 10; y++ {
		for x := 40; x < 50; x++ {
			f.Map.Revealed[f.Map.Idx(x, y)] = true
			f.Map.Visible[f.Map.Idx(x, y)] = true
		}
	}
	addThing(f.World, 45, 3, 'g', entity.RenderOrderMonster, "Goblin")
	f.Mouse = &world.Point{X: 45, Y: 3}

	NewRenderer(c).Render(f)

	if got := c.row(3, 43, 45); got != "->" {
		t.Errorf("arrow = %q, want \"->\"", got)
	}
	// The box spans columns 35 to 42 and ends one column clear of the arrow.
	if got := c.row(3, 36, 42); got != "Goblin" {
		t.Errorf("tooltip text = %q", got)
	}
	if r := c.runeAt(42, 3); r != tcell.RuneVLine {
		t.Errorf("right edge = %q, want vertical line", r)
	}
	if r := c.runeAt(35, 4); r != tcell.RuneLLCorner {
		t.Errorf("bottom left corner = %q", r)
	}
}

func TestRenderCursorWithoutTooltip(t *testing.T) {
	c := newMockCanvas()
	f, _ := testFrame()
	f.Mouse = &world.Point{X: 7, Y: 7}

	NewRenderer(c).Render(f)

	if col := bg(c.at(7, 7).style); col != tcell.ColorFuchsia {
		t.Errorf("cursor background = %v, want fuchsia", col)
	}
	if r := c.runeAt(9, 7); r == '<' {
		t.Error("hidden tile should not get a tooltip")
	}
}

func TestRenderMenu(t *testing.T) {
	c := newMockCanvas()
	f, _ := testFrame()
	f.Menu = &Menu{Title: "Inventory", Items: []string{"Health Potion", "Health Potion"}}

	NewRenderer(c).Render(f)

	// Two items: list starts at y = 25 - 1.
	if got := c.row(22, 18, 27); got != "Inventory" {
		t.Errorf("title = %q", got)
	}
	if got := c.row(24, 17, 34); got != "(a) Health Potion" {
		t.Errorf("first item = %q", got)
	}
	if got := c.row(25, 17, 20); got != "(b)" {
		t.Errorf("second item = %q", got)
	}
	if got := c.row(27, 18, 34); got != "ESCAPE to cancel" {
		t.Errorf("footer = %q", got)
	}
}

func TestRenderEmptyMenu(t *testing.T) {
	c := newMockCanvas()
	f, _ := testFrame()
	f.Menu = &Menu{Title: "Drop Which Item?"}

	NewRenderer(c).Render(f)

	if got := c.row(23, 18, 34); got != "Drop Which Item?" {
		t.Errorf("title = %q", got)
	}
	if got := c.row(26, 18, 34); got != "ESCAPE to cancel" {
		t.Errorf("footer = %q", got)
	}
}

func TestRenderGameOver(t *testing.T) {
	c := newMockCanvas()
	f, _ := testFrame()
	f.Dead = true

	NewRenderer(c).Render(f)

	if got := c.row(21, 34, 46); got != "You are dead" {
		t.Errorf("game over text = %q", got)
	}
}
