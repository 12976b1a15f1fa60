package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/roguelike/internal/ecs"
	"github.com/samdwyer/roguelike/internal/entity"
	"github.com/samdwyer/roguelike/internal/gamedata"
	"github.com/samdwyer/roguelike/internal/gamelog"
	"github.com/samdwyer/roguelike/internal/records"
	"github.com/samdwyer/roguelike/internal/save"
	"github.com/samdwyer/roguelike/internal/spawn"
	"github.com/samdwyer/roguelike/internal/telemetry"
	"github.com/samdwyer/roguelike/internal/world"
)

// SaveStore persists a game between sessions.
type SaveStore interface {
	Save(ctx context.Context, snap *save.Snapshot) error
	Load(ctx context.Context) (*save.Snapshot, error)
	Delete() error
}

// RecordStore keeps the history of runs.
type RecordStore interface {
	Record(ctx context.Context, run records.Run) error
}

// Options are the engine's collaborators. Nil stores disable the feature.
type Options struct {
	Saves   SaveStore
	Records RecordStore
	Logger  zerolog.Logger
	Now     func() time.Time
}

// Engine owns the world and advances it one tick at a time. It knows
// nothing about the terminal, so tests drive it directly.
type Engine struct {
	World  *ecs.World
	Map    *world.Map
	Player ecs.Entity
	Log    *gamelog.Log

	state   RunState
	running bool

	// resumed is set until the first tick discards the loaded save.
	resumed bool

	runID     string
	seed      int64
	turns     int
	kills     int
	startedAt time.Time

	saves   SaveStore
	records RecordStore
	logger  zerolog.Logger
	now     func() time.Time
}

// Start resumes the saved game unless cfg.NewGame is set or there is none,
// in which case it builds a fresh one. A loaded save is deleted on the first
// tick, so a failure before the loop starts leaves it on disk.
func Start(ctx context.Context, cfg Config, catalog *gamedata.Catalog, opts Options) (*Engine, error) {
	if cfg.NewGame || opts.Saves == nil {
		return NewEngine(ctx, cfg, catalog, opts)
	}

	snap, err := opts.Saves.Load(ctx)
	if errors.Is(err, save.ErrNoSave) {
		return NewEngine(ctx, cfg, catalog, opts)
	}
	if err != nil {
		return nil, err
	}

	e, err := Resume(snap, opts)
	if err != nil {
		return nil, err
	}
	e.resumed = true
	return e, nil
}

// NewEngine generates a dungeon, places the player in the first room and
// populates every other room.
func NewEngine(ctx context.Context, cfg Config, catalog *gamedata.Catalog, opts Options) (*Engine, error) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.init")
	defer span.End()

	e := newEngine(opts)
	e.seed = cfg.Seed
	if e.seed == 0 {
		e.seed = e.now().UnixNano()
	}
	e.runID = uuid.NewString()
	e.startedAt = e.now()

	rng := rand.New(rand.NewSource(e.seed))
	m, err := world.Generate(ctx, cfg.Generator, world.DefaultWidth, world.DefaultHeight, rng)
	if err != nil {
		return nil, fmt.Errorf("generate map: %w", err)
	}
	e.Map = m
	e.World = ecs.NewWorld()
	e.Log = gamelog.New()

	px, py := m.Rooms[0].Center()
	e.Player = spawn.Player(e.World, catalog.Player, px, py)

	var monsters, items int
	for _, room := range m.Rooms[1:] {
		res := spawn.Room(e.World, rng, m, room, catalog)
		monsters += res.Monsters
		items += res.Items
	}

	span.SetAttributes(
		attribute.Int64("game.seed", e.seed),
		attribute.String("game.run_id", e.runID),
		attribute.Int("dungeon.rooms", len(m.Rooms)),
		attribute.Int("dungeon.monsters", monsters),
		attribute.Int("dungeon.items", items),
	)
	e.logger.Info().
		Str("run_id", e.runID).
		Int64("seed", e.seed).
		Int("rooms", len(m.Rooms)).
		Int("monsters", monsters).
		Int("items", items).
		Msg("new game")
	return e, nil
}

// Resume rebuilds an engine from a snapshot.
func Resume(snap *save.Snapshot, opts Options) (*Engine, error) {
	w, m, err := snap.Restore()
	if err != nil {
		return nil, fmt.Errorf("restore save: %w", err)
	}

	e := newEngine(opts)
	e.World = w
	e.Map = m
	e.Player = snap.Player
	e.Log = &gamelog.Log{Entries: snap.Log}
	if len(e.Log.Entries) == 0 {
		e.Log = gamelog.New()
	}
	e.runID = snap.RunID
	if e.runID == "" {
		e.runID = uuid.NewString()
	}
	e.seed = snap.Seed
	e.turns = snap.Turns
	e.kills = snap.Kills
	e.startedAt = snap.StartedAt

	e.logger.Info().Str("run_id", e.runID).Int("turns", e.turns).Msg("game resumed")
	return e, nil
}

// discardResumedSave deletes the save this run was loaded from. A save
// left behind would let the same run be resumed twice.
func (e *Engine) discardResumedSave() {
	if !e.resumed || e.saves == nil {
		return
	}
	e.resumed = false
	if err := e.saves.Delete(); err != nil {
		e.logger.Error().Err(err).Msg("delete resumed save")
	}
}

func newEngine(opts Options) *Engine {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		state:   StatePreRun,
		running: true,
		saves:   opts.Saves,
		records: opts.Records,
		logger:  opts.Logger,
		now:     now,
	}
}

// State returns the current run state.
func (e *Engine) State() RunState { return e.state }

// Running is false once the session has ended.
func (e *Engine) Running() bool { return e.running }

// RunID identifies this playthrough across save and resume.
func (e *Engine) RunID() string { return e.runID }

// Seed returns the map seed.
func (e *Engine) Seed() int64 { return e.seed }

// Turns counts completed player turns.
func (e *Engine) Turns() int { return e.turns }

// Kills counts monsters slain by anyone.
func (e *Engine) Kills() int { return e.kills }

// PlayerPos returns where the player stands.
func (e *Engine) PlayerPos() world.Point {
	if pos, ok := ecs.Get[entity.Position](e.World, e.Player); ok {
		return pos.Point()
	}
	return world.Point{}
}

// Tick advances the state machine once. key is nil when no key is pending.
func (e *Engine) Tick(ctx context.Context, key *Key) {
	if !e.running {
		return
	}

	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.tick")
	defer span.End()
	span.SetAttributes(attribute.String("game.state", e.state.String()))

	if key != nil && key.Code == tcell.KeyCtrlC && e.state != StateGameOver {
		e.finish(ctx, records.OutcomeAbandoned)
		return
	}

	newState := e.state
	switch e.state {
	case StatePreRun:
		e.discardResumedSave()
		e.runSystems(ctx)
		newState = StateAwaitingInput
	case StateAwaitingInput:
		newState = e.playerInput(key)
	case StatePlayerTurn:
		e.runSystems(ctx)
		e.turns++
		newState = StateMonsterTurn
	case StateMonsterTurn:
		e.runSystems(ctx)
		newState = StateAwaitingInput
	case StateShowInventory:
		newState = e.inventoryMenu(key, func(item ecs.Entity) {
			ecs.Insert(e.World, e.Player, entity.WantsToDrinkPotion{Potion: item})
		})
	case StateShowDropItem:
		newState = e.inventoryMenu(key, func(item ecs.Entity) {
			ecs.Insert(e.World, e.Player, entity.WantsToDropItem{Item: item})
		})
	case StateSaveGame:
		newState = e.saveGame(ctx)
	case StateGameOver:
		if key != nil {
			e.running = false
		}
	}
	e.state = newState

	e.deleteTheDead(ctx)
}

// inventoryMenu handles a keypress while a backpack menu is open.
func (e *Engine) inventoryMenu(key *Key, choose func(item ecs.Entity)) RunState {
	items := e.Backpack(e.Player)
	result, idx := menuInput(key, len(items))
	switch result {
	case menuCancel:
		return StateAwaitingInput
	case menuSelected:
		choose(items[idx])
		return StatePlayerTurn
	default:
		return e.state
	}
}

// saveGame writes the snapshot and ends the session. A failed write keeps
// the game going so nothing is lost.
func (e *Engine) saveGame(ctx context.Context) RunState {
	if e.saves == nil {
		e.Log.Add("Saving is disabled.")
		return StateAwaitingInput
	}
	if err := e.saves.Save(ctx, e.Snapshot()); err != nil {
		e.logger.Error().Err(err).Msg("save failed")
		e.Log.Add("Unable to save the game.")
		return StateAwaitingInput
	}
	e.finish(ctx, records.OutcomeSaved)
	return StateSaveGame
}

// finish records the run and stops the session.
func (e *Engine) finish(ctx context.Context, outcome records.Outcome) {
	e.running = false
	e.logger.Info().
		Str("run_id", e.runID).
		Str("outcome", string(outcome)).
		Int("turns", e.turns).
		Int("kills", e.kills).
		Msg("run finished")

	if e.records == nil {
		return
	}
	err := e.records.Record(ctx, records.Run{
		ID:        e.runID,
		Seed:      e.seed,
		Outcome:   outcome,
		Turns:     e.turns,
		Kills:     e.kills,
		StartedAt: e.startedAt,
		UpdatedAt: e.now(),
	})
	if err != nil {
		e.logger.Error().Err(err).Msg("record run")
	}
}

// Snapshot captures the game for saving.
func (e *Engine) Snapshot() *save.Snapshot {
	entries := make([]string, len(e.Log.Entries))
	copy(entries, e.Log.Entries)
	return &save.Snapshot{
		Version:   save.Version,
		RunID:     e.runID,
		Seed:      e.seed,
		Turns:     e.turns,
		Kills:     e.kills,
		StartedAt: e.startedAt,
		SavedAt:   e.now(),
		Map:       e.Map,
		Log:       entries,
		Player:    e.Player,
		NextID:    e.World.Next(),
		Entities:  save.CaptureEntities(e.World),
	}
}
