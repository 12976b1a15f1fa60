// Package main is the entry point for the roguelike.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/samdwyer/roguelike/internal/config"
	"github.com/samdwyer/roguelike/internal/game"
	"github.com/samdwyer/roguelike/internal/gamedata"
	"github.com/samdwyer/roguelike/internal/logging"
	"github.com/samdwyer/roguelike/internal/records"
	"github.com/samdwyer/roguelike/internal/save"
	"github.com/samdwyer/roguelike/internal/telemetry"
	"github.com/samdwyer/roguelike/internal/ui"
	"github.com/samdwyer/roguelike/internal/world"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// openScreen is swapped out in tests that stop short of a real terminal.
var openScreen = ui.NewScreen

// flags are the command-line overrides applied on top of the config.
type flags struct {
	configPath string
	seed       int64
	generator  string
	newGame    bool
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:          "roguelike",
		Short:        "A small turn-based dungeon crawler",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return play(cmd.Context(), cfg, f.newGame)
		},
	}

	cmd.PersistentFlags().StringVar(&f.configPath, "config", "", "path to a YAML config file")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "map seed (0 picks one from the clock)")
	cmd.Flags().StringVar(&f.generator, "generator", "", "map generator: rooms or bsp")
	cmd.Flags().BoolVar(&f.newGame, "new", false, "ignore any saved game and start fresh")

	cmd.AddCommand(newRecordsCmd(&f))
	return cmd
}

// loadConfig merges the config file, environment and explicit flags.
func loadConfig(cmd *cobra.Command, f flags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = f.seed
	}
	if cmd.Flags().Changed("generator") {
		cfg.Generator = f.generator
	}
	return cfg, cfg.Validate()
}

// play wires every component together and runs one session.
func play(ctx context.Context, cfg config.Config, newGame bool) error {
	logger, closeLog, err := logging.Setup(logging.Config{Path: cfg.Log.Path, Level: cfg.Log.Level})
	if err != nil {
		return err
	}
	defer func() {
		if err := closeLog(); err != nil {
			log.Printf("Error closing log file: %v", err)
		}
	}()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx, telemetry.Options{
			Endpoint: cfg.Telemetry.Endpoint,
			Headers:  cfg.TelemetryHeaders(),
		})
		if err != nil {
			// Continue without telemetry - game still works
			logger.Warn().Err(err).Msg("telemetry setup failed, running without observability")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("shutting down telemetry")
				}
			}()
		}
	}

	catalog, err := gamedata.LoadCatalog()
	if err != nil {
		return fmt.Errorf("load game data: %w", err)
	}

	opts := game.Options{
		Saves:  save.NewStore(cfg.SavePath, logging.WithComponent(logger, "save")),
		Logger: logging.WithComponent(logger, "game"),
	}
	if cfg.RecordsPath != "" {
		store, err := records.Open(ctx, cfg.RecordsPath)
		if err != nil {
			// History is optional; play on without it.
			logger.Warn().Err(err).Msg("run history unavailable")
		} else {
			defer store.Close()
			opts.Records = store
		}
	}

	engine, err := game.Start(ctx, game.Config{
		Seed:      cfg.Seed,
		Generator: world.Generator(cfg.Generator),
		NewGame:   newGame,
	}, catalog, opts)
	if err != nil {
		return startError(err)
	}

	screen, err := openScreen()
	if err != nil {
		return fmt.Errorf("initialize screen: %w", err)
	}
	defer screen.Close()

	logRunStart(logger, engine)
	g := game.New(screen, ui.NewRenderer(screen), engine, logging.WithComponent(logger, "loop"))
	return g.Run(ctx)
}

// startError explains a save that cannot be resumed and how to get past it.
func startError(err error) error {
	if errors.Is(err, save.ErrVersion) || errors.Is(err, save.ErrCorrupt) {
		return fmt.Errorf("%w (start with --new to discard it)", err)
	}
	return fmt.Errorf("start game: %w", err)
}

func logRunStart(logger zerolog.Logger, engine *game.Engine) {
	logger.Info().
		Str("run_id", engine.RunID()).
		Int64("seed", engine.Seed()).
		Int("turns", engine.Turns()).
		Msg("session started")
}
