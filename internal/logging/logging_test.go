package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "game.log")

	logger, cleanup, err := Setup(Config{Path: path, Level: "debug"})
	require.NoError(t, err)
	gameLogger := WithComponent(logger, "game")
	gameLogger.Debug().Int("turn", 3).Msg("turn finished")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &entry))
	assert.Equal(t, "game", entry["component"])
	assert.Equal(t, "turn finished", entry["message"])
	assert.EqualValues(t, 3, entry["turn"])
}

func TestSetupEmptyPathDiscards(t *testing.T) {
	logger, cleanup, err := Setup(Config{})
	require.NoError(t, err)
	require.NoError(t, cleanup())
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestSetupBadLevel(t *testing.T) {
	_, _, err := Setup(Config{Path: filepath.Join(t.TempDir(), "x.log"), Level: "loud"})
	assert.Error(t, err)
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, zerolog.WarnLevel)
	logger.Info().Msg("hidden")
	assert.Zero(t, buf.Len())
	logger.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}
