package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"eyerest/internal/core/timekeeper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var morning = time.Date(2026, 4, 7, 9, 0, 0, 0, time.UTC)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreRecordAndQuery(t *testing.T) {
	store := openStore(t)

	for index := 0; index < 3; index++ {
		started := morning.Add(time.Duration(index) * time.Hour)
		require.NoError(t, store.Record(&RestBreak{
			ID:          started.Format("150405"),
			StartedAt:   started,
			EndedAt:     started.Add(20 * time.Second),
			RestSeconds: 20,
			WorkMinutes: 45,
			Displays:    2,
		}))
	}

	breaks, err := store.Since(morning.Add(30 * time.Minute))
	require.NoError(t, err)
	require.Len(t, breaks, 2)
	assert.True(t, breaks[0].StartedAt.After(breaks[1].StartedAt))

	summary, err := store.Summarize(morning)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Breaks)
	assert.Equal(t, int64(60), summary.TotalSeconds)

	pruned, err := store.Prune(morning.Add(90 * time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(2), pruned)
}

func TestSummarizeEmpty(t *testing.T) {
	summary, err := openStore(t).Summarize(morning)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)
}

type memorySink struct {
	breaks []*RestBreak
}

func (sink *memorySink) Record(restBreak *RestBreak) error {
	sink.breaks = append(sink.breaks, restBreak)
	return nil
}

func TestRecorderPairsRestStartAndComplete(t *testing.T) {
	sink := &memorySink{}
	recorder := NewRecorder(sink, nil)

	events := []timekeeper.Event{
		{Type: timekeeper.EventStateChange, State: timekeeper.StateWorking, At: morning},
		{Type: timekeeper.EventStateChange, State: timekeeper.StateResting, Rest: 5 * time.Second, Work: time.Minute, Displays: 2, At: morning.Add(time.Minute)},
		{Type: timekeeper.EventProgress, State: timekeeper.StateResting, At: morning.Add(61 * time.Second)},
		{Type: timekeeper.EventStateChange, State: timekeeper.StateResting, At: morning.Add(62 * time.Second)},
		{Type: timekeeper.EventRestComplete, State: timekeeper.StateResting, Rest: 5 * time.Second, Work: time.Minute, Displays: 2, At: morning.Add(65 * time.Second)},
	}
	for _, event := range events {
		require.NoError(t, recorder.Handle(event))
	}

	require.Len(t, sink.breaks, 1)
	restBreak := sink.breaks[0]
	assert.Len(t, restBreak.ID, 26)
	assert.Equal(t, morning.Add(time.Minute), restBreak.StartedAt)
	assert.Equal(t, morning.Add(65*time.Second), restBreak.EndedAt)
	assert.Equal(t, 5, restBreak.RestSeconds)
	assert.Equal(t, 1, restBreak.WorkMinutes)
	assert.Equal(t, 2, restBreak.Displays)
}

func TestRecorderWithoutStartEvent(t *testing.T) {
	sink := &memorySink{}
	recorder := NewRecorder(sink, nil)

	require.NoError(t, recorder.Handle(timekeeper.Event{
		Type: timekeeper.EventRestComplete,
		Rest: 10 * time.Second,
		At:   morning,
	}))
	require.Len(t, sink.breaks, 1)
	assert.Equal(t, morning.Add(-10*time.Second), sink.breaks[0].StartedAt)
}

func TestRecorderRunStopsWhenChannelCloses(t *testing.T) {
	store := openStore(t)
	recorder := NewRecorder(store, nil)
	events := make(chan timekeeper.Event, 4)
	events <- timekeeper.Event{Type: timekeeper.EventStateChange, State: timekeeper.StateResting, Rest: 3 * time.Second, At: morning}
	events <- timekeeper.Event{Type: timekeeper.EventRestComplete, Rest: 3 * time.Second, Displays: 1, At: morning.Add(3 * time.Second)}
	close(events)

	recorder.Run(context.Background(), events)

	breaks, err := store.Since(morning.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, breaks, 1)
	assert.Equal(t, 1, breaks[0].Displays)
}
