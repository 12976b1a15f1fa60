package records

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.Error(t, err)
}

func TestRecordUpserts(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Record(ctx, Run{ID: "a", Seed: 7, Outcome: OutcomeSaved, Turns: 10, Kills: 1, StartedAt: started}))
	require.NoError(t, s.Record(ctx, Run{ID: "a", Seed: 7, Outcome: OutcomeDied, Turns: 25, Kills: 3, StartedAt: started}))

	runs, err := s.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, OutcomeDied, runs[0].Outcome)
	assert.Equal(t, 25, runs[0].Turns)
	assert.Equal(t, 3, runs[0].Kills)
	assert.True(t, started.Equal(runs[0].StartedAt))
}

func TestTopOrdering(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	for _, r := range []Run{
		{ID: "few-kills", Outcome: OutcomeDied, Turns: 500, Kills: 1},
		{ID: "most-kills", Outcome: OutcomeDied, Turns: 50, Kills: 9},
		{ID: "tie-long", Outcome: OutcomeSaved, Turns: 90, Kills: 4},
		{ID: "tie-short", Outcome: OutcomeAbandoned, Turns: 30, Kills: 4},
	} {
		require.NoError(t, s.Record(ctx, r))
	}

	runs, err := s.Top(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "most-kills", runs[0].ID)
	assert.Equal(t, "tie-long", runs[1].ID)
	assert.Equal(t, "tie-short", runs[2].ID)

	none, err := s.Top(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRecordRequiresID(t *testing.T) {
	assert.Error(t, openStore(t).Record(context.Background(), Run{Outcome: OutcomeDied}))
}
