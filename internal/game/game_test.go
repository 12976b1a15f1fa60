package game

import (
	"context"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/roguelike/internal/ecs"
	"github.com/samdwyer/roguelike/internal/entity"
	"github.com/samdwyer/roguelike/internal/records"
	"github.com/samdwyer/roguelike/internal/ui"
	"github.com/samdwyer/roguelike/internal/world"
)

// fakeTerminal replays queued events and counts redraws.
type fakeTerminal struct {
	events []tcell.Event
	cells  map[world.Point]rune
	shows  int
	syncs  int
}

func newFakeTerminal(events ...tcell.Event) *fakeTerminal {
	return &fakeTerminal{events: events, cells: make(map[world.Point]rune)}
}

func (f *fakeTerminal) PollEvent() tcell.Event {
	if len(f.events) == 0 {
		return nil
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev
}

func (f *fakeTerminal) Sync() { f.syncs++ }
func (f *fakeTerminal) Clear() { clear(f.cells) }
func (f *fakeTerminal) Show() { f.shows++ }

func (f *fakeTerminal) SetContent(x, y int, r rune, _ tcell.Style) {
	f.cells[world.Point{X: x, Y: y}] = r
}

func (f *fakeTerminal) Size() (int, int) { return ui.ScreenWidth, ui.ScreenHeight }

func TestRunEndsWhenEventsStop(t *testing.T) {
	e, rec := testEngine(t)
	term := newFakeTerminal(
		tcell.NewEventResize(ui.ScreenWidth, ui.ScreenHeight),
		tcell.NewEventMouse(7, 5, tcell.ButtonNone, tcell.ModNone),
	)
	g := New(term, ui.NewRenderer(term), e, zerolog.Nop())

	require.NoError(t, g.Run(context.Background()))

	assert.False(t, e.Running())
	require.Len(t, rec.runs, 1)
	assert.Equal(t, records.OutcomeAbandoned, rec.last().Outcome)
	assert.Equal(t, 1, term.syncs)
	assert.Equal(t, 3, term.shows, "initial frame, resize and mouse move")
	assert.Equal(t, '@', term.cells[world.Point{X: 5, Y: 5}])
	require.NotNil(t, g.mouse)
	assert.Equal(t, world.Point{X: 7, Y: 5}, *g.mouse)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	e, _ := testEngine(t)
	term := newFakeTerminal()
	g := New(term, ui.NewRenderer(term), e, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, g.Run(ctx), context.Canceled)
}

func TestFrameMenus(t *testing.T) {
	e, _ := testEngine(t)
	potion := addPotion(t, e, 1, 1)
	ecs.Remove[entity.Position](e.World, potion)
	ecs.Insert(e.World, potion, entity.InBackpack{Owner: e.Player})
	g := New(newFakeTerminal(), nil, e, zerolog.Nop())

	assert.Nil(t, g.Frame().Menu)

	e.state = StateShowInventory
	f := g.Frame()
	require.NotNil(t, f.Menu)
	assert.Equal(t, "Inventory", f.Menu.Title)
	assert.Equal(t, []string{"Health Potion"}, f.Menu.Items)

	e.state = StateShowDropItem
	assert.Equal(t, "Drop Which Item?", g.Frame().Menu.Title)

	e.state = StateGameOver
	assert.True(t, g.Frame().Dead)
}
