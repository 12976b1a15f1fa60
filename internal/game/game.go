package game

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/samdwyer/roguelike/internal/ui"
	"github.com/samdwyer/roguelike/internal/world"
)

// EventSource yields terminal events. ui.Screen implements it.
type EventSource interface {
	PollEvent() tcell.Event
	Sync()
}

// Game connects an engine to the terminal.
type Game struct {
	events   EventSource
	renderer *ui.Renderer
	engine   *Engine
	mouse    *world.Point
	logger   zerolog.Logger
}

// New creates a new game instance.
func New(events EventSource, renderer *ui.Renderer, engine *Engine, logger zerolog.Logger) *Game {
	return &Game{
		events:   events,
		renderer: renderer,
		engine:   engine,
		logger:   logger,
	}
}

// Run executes the main game loop until the session ends.
func (g *Game) Run(ctx context.Context) error {
	for g.engine.Running() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !g.engine.State().NeedsInput() {
			g.engine.Tick(ctx, nil)
			continue
		}

		g.render()
		key, ok := g.waitForKey()
		if !ok {
			// Screen went away; treat it like Ctrl-C.
			g.logger.Warn().Msg("event stream closed")
			key = SpecialKey(tcell.KeyCtrlC)
		}
		g.engine.Tick(ctx, key)
	}
	return nil
}

// waitForKey blocks until a key is pressed, redrawing for mouse moves and
// resizes in between.
func (g *Game) waitForKey() (*Key, bool) {
	for {
		ev := g.events.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil, false
		case *tcell.EventKey:
			key := KeyFromEvent(ev)
			return &key, true
		case *tcell.EventMouse:
			x, y := ev.Position()
			g.mouse = &world.Point{X: x, Y: y}
			g.render()
		case *tcell.EventResize:
			g.events.Sync()
			g.render()
		}
	}
}

// render draws the engine's current state.
func (g *Game) render() {
	g.renderer.Render(g.Frame())
}

// Frame describes what the screen should show.
func (g *Game) Frame() ui.Frame {
	e := g.engine
	f := ui.Frame{
		Map:    e.Map,
		World:  e.World,
		Player: e.Player,
		Log:    e.Log.Last(ui.LogLines),
		Mouse:  g.mouse,
		Dead:   e.State() == StateGameOver,
	}
	switch e.State() {
	case StateShowInventory:
		f.Menu = &ui.Menu{Title: "Inventory", Items: e.BackpackNames(e.Player)}
	case StateShowDropItem:
		f.Menu = &ui.Menu{Title: "Drop Which Item?", Items: e.BackpackNames(e.Player)}
	}
	return f
}
