package save

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/roguelike/internal/telemetry"
)

// ErrNoSave is returned by Load when there is nothing to resume.
var ErrNoSave = errors.New("no saved game")

// Store reads and writes a single save file.
type Store struct {
	path   string
	logger zerolog.Logger
}

// NewStore creates a store for the save file at path.
func NewStore(path string, logger zerolog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Save writes the snapshot atomically: a crash mid-write leaves the previous
// save intact.
func (s *Store) Save(ctx context.Context, snap *Snapshot) error {
	_, span := telemetry.Tracer("save").Start(ctx, "save.write")
	defer span.End()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}

	pendingFile, err := renameio.NewPendingFile(s.path, renameio.WithPermissions(0o600))
	if err != nil {
		return fmt.Errorf("create pending save file: %w", err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			s.logger.Debug().Err(err).Msg("cleanup pending save file")
		}
	}()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write save data: %w", err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace save file: %w", err)
	}

	span.SetAttributes(
		attribute.Int("save.bytes", len(data)),
		attribute.Int("save.entities", len(snap.Entities)),
	)
	s.logger.Info().Str("path", s.path).Int("entities", len(snap.Entities)).Msg("game saved")
	return nil
}

// Load reads the save file. It returns ErrNoSave when none exists.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	_, span := telemetry.Tracer("save").Start(ctx, "save.load")
	defer span.End()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("read save file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrCorrupt, s.path, err)
	}
	span.SetAttributes(attribute.Int("save.bytes", len(data)))
	return &snap, nil
}

// Delete removes the save file. A missing file is not an error.
func (s *Store) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete save file: %w", err)
	}
	return nil
}

// Exists reports whether a save file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}
