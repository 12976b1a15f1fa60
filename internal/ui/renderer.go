package ui

import (
	"fmt"
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/roguelike/internal/ecs"
	"github.com/samdwyer/roguelike/internal/entity"
	"github.com/samdwyer/roguelike/internal/world"
)

// Terminal size the layout is designed for.
const (
	ScreenWidth  = 80
	ScreenHeight = 50
)

// LogLines is how many messages the panel shows.
const LogLines = 5

// Panel layout below the map.
const (
	panelY      = 43
	panelWidth  = 79
	panelHeight = 6
	hpTextX     = 12
	hpBarX      = 28
	hpBarWidth  = 51
	logX        = 2
)

// Menu is an open lettered item list.
type Menu struct {
	Title string
	Items []string
}

// Frame is everything needed to draw one screen.
type Frame struct {
	Map    *world.Map
	World  *ecs.World
	Player ecs.Entity
	Log    []string     // newest first
	Mouse  *world.Point // nil until the mouse has moved
	Menu   *Menu
	Dead   bool
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen Canvas
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen Canvas) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws a complete frame.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()

	r.drawMap(f.Map)
	r.drawEntities(f)
	r.drawPanel(f)
	if f.Mouse != nil {
		r.drawMouse(f, *f.Mouse)
	}
	if f.Menu != nil {
		r.drawMenu(f.Menu)
	}
	if f.Dead {
		r.drawGameOver()
	}

	r.screen.Show()
}

// drawMap draws every revealed tile, greyed out when not currently visible.
func (r *Renderer) drawMap(m *world.Map) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.IsRevealed(x, y) {
				continue
			}
			tile := m.GetTile(x, y)
			fg := tileColor(tile)
			if !m.IsVisible(x, y) {
				fg = tcell.ColorGray
			}
			r.screen.SetContent(x, y, tile.Rune(), tcell.StyleDefault.Foreground(fg).Background(tcell.ColorBlack))
		}
	}
}

// tileColor returns the lit color for a tile type.
func tileColor(tile world.Tile) tcell.Color {
	switch tile {
	case world.TileWall:
		return tcell.ColorGreen
	case world.TileFloor:
		return tcell.ColorTeal
	default:
		return tcell.ColorWhite
	}
}

type drawable struct {
	pos    *entity.Position
	render *entity.Renderable
}

// drawEntities draws visible entities, highest render order first so the
// player ends up on top.
func (r *Renderer) drawEntities(f Frame) {
	var list []drawable
	ecs.Each(f.World, func(e ecs.Entity, rend *entity.Renderable) {
		pos, ok := ecs.Get[entity.Position](f.World, e)
		if !ok || !f.Map.IsVisible(pos.X, pos.Y) {
			return
		}
		list = append(list, drawable{pos: pos, render: rend})
	})
	slices.SortStableFunc(list, func(a, b drawable) int {
		return b.render.RenderOrder - a.render.RenderOrder
	})

	for _, d := range list {
		style := tcell.StyleDefault.Foreground(d.render.FG).Background(d.render.BG)
		r.screen.SetContent(d.pos.X, d.pos.Y, d.render.Glyph, style)
	}
}

// drawPanel draws the status box with health and the newest log lines.
func (r *Renderer) drawPanel(f Frame) {
	white := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	r.drawBox(0, panelY, panelWidth, panelHeight, white)

	if stats, ok := ecs.Get[entity.CombatStats](f.World, f.Player); ok {
		hp := fmt.Sprintf(" HP: %d / %d ", stats.HP, stats.MaxHP)
		r.drawText(hpTextX, panelY, hp, tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack))
		r.drawBar(hpBarX, panelY, hpBarWidth, stats.HP, stats.MaxHP,
			tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack))
	}

	y := panelY + 1
	for _, msg := range f.Log {
		if y >= panelY+panelHeight {
			break
		}
		r.drawText(logX, y, msg, white)
		y++
	}
}

// drawMouse highlights the cursor cell and names what is under it.
func (r *Renderer) drawMouse(f Frame, mouse world.Point) {
	r.screen.SetContent(mouse.X, mouse.Y, ' ', tcell.StyleDefault.Background(tcell.ColorFuchsia))

	if !f.Map.IsVisible(mouse.X, mouse.Y) {
		return
	}
	var names []string
	ecs.Each(f.World, func(e ecs.Entity, name *entity.Name) {
		if pos, ok := ecs.Get[entity.Position](f.World, e); ok && pos.Point() == mouse {
			names = append(names, name.Name)
		}
	})
	if len(names) == 0 {
		return
	}

	inner := 0
	for _, n := range names {
		inner = max(inner, len([]rune(n)))
	}

	// The box sits one column clear of the arrow on whichever side of the
	// cursor has room.
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorGray)
	boxX := mouse.X + 3
	arrowX, arrow := mouse.X+1, "<-"
	if mouse.X > ScreenWidth/2 {
		boxX = mouse.X - 3 - (inner + 1)
		arrowX, arrow = mouse.X-2, "->"
	}
	boxY := mouse.Y - 1

	r.fill(boxX, boxY, inner+1, len(names)+1, style)
	r.drawBox(boxX, boxY, inner+1, len(names)+1, style)
	for i, n := range names {
		r.drawText(boxX+1, mouse.Y+i, padRight(n, inner), style)
	}
	r.drawText(arrowX, mouse.Y, arrow, style)
}

// drawMenu draws a lettered item list centered on the map.
func (r *Renderer) drawMenu(menu *Menu) {
	white := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	yellow := tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack)

	count := len(menu.Items)
	y := 25 - count/2
	r.fill(15, y-2, 31, count+3, white)
	r.drawBox(15, y-2, 31, count+3, white)
	r.drawText(18, y-2, menu.Title, yellow)
	r.drawText(18, y+count+1, "ESCAPE to cancel", yellow)

	for i, name := range menu.Items {
		r.drawText(17, y, fmt.Sprintf("(%c) %s", 'a'+rune(i), name), white)
		y++
	}
}

// drawGameOver draws the death notice.
func (r *Renderer) drawGameOver() {
	red := tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack)
	white := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)

	r.fill(24, 20, 31, 4, white)
	r.drawBox(24, 20, 31, 4, white)
	r.drawText(34, 21, "You are dead", red)
	r.drawText(28, 23, "Press any key to exit.", white)
}

// drawBox draws a single-line border covering x..x+w and y..y+h.
func (r *Renderer) drawBox(x, y, w, h int, style tcell.Style) {
	for i := x + 1; i < x+w; i++ {
		r.screen.SetContent(i, y, tcell.RuneHLine, style)
		r.screen.SetContent(i, y+h, tcell.RuneHLine, style)
	}
	for j := y + 1; j < y+h; j++ {
		r.screen.SetContent(x, j, tcell.RuneVLine, style)
		r.screen.SetContent(x+w, j, tcell.RuneVLine, style)
	}
	r.screen.SetContent(x, y, tcell.RuneULCorner, style)
	r.screen.SetContent(x+w, y, tcell.RuneURCorner, style)
	r.screen.SetContent(x, y+h, tcell.RuneLLCorner, style)
	r.screen.SetContent(x+w, y+h, tcell.RuneLRCorner, style)
}

// fill blanks the area a box will cover.
func (r *Renderer) fill(x, y, w, h int, style tcell.Style) {
	for j := y; j <= y+h; j++ {
		for i := x; i <= x+w; i++ {
			r.screen.SetContent(i, j, ' ', style)
		}
	}
}

// drawBar draws a horizontal gauge of n out of max.
func (r *Renderer) drawBar(x, y, width, n, maxN int, style tcell.Style) {
	filled := 0
	if maxN > 0 {
		filled = max(0, min(width, n*width/maxN))
	}
	for i := 0; i < width; i++ {
		ch := '░'
		if i < filled {
			ch = '▓'
		}
		r.screen.SetContent(x+i, y, ch, style)
	}
}

// drawText writes a string starting at x, y.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	i := 0
	for _, ch := range text {
		r.screen.SetContent(x+i, y, ch, style)
		i++
	}
}

func padRight(s string, width int) string {
	return fmt.Sprintf("%-*s", width, s)
}
