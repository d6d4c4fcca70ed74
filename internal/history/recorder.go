package history

import (
	"context"
	"log/slog"

	"eyerest/internal/core/timekeeper"

	"github.com/oklog/ulid/v2"
)

// Sink receives completed breaks.
type Sink interface {
	Record(restBreak *RestBreak) error
}

// Recorder turns TimeKeeper events into RestBreak rows.
type Recorder struct {
	sink    Sink
	logger  *slog.Logger
	pending *RestBreak
}

// NewRecorder creates a Recorder writing to sink.
func NewRecorder(sink Sink, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{sink: sink, logger: logger}
}

// Run consumes events until the channel closes or ctx is cancelled.
func (recorder *Recorder) Run(ctx context.Context, events <-chan timekeeper.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := recorder.Handle(event); err != nil {
				recorder.logger.Warn("failed to record rest break", "error", err)
			}
		}
	}
}

// Handle processes a single event.
func (recorder *Recorder) Handle(event timekeeper.Event) error {
	switch event.Type {
	case timekeeper.EventStateChange:
		if event.State == timekeeper.StateResting && recorder.pending == nil {
			recorder.pending = &RestBreak{
				StartedAt:   event.At,
				RestSeconds: int(event.Rest.Seconds()),
				WorkMinutes: int(event.Work.Minutes()),
				Displays:    event.Displays,
			}
		}
	case timekeeper.EventRestComplete:
		restBreak := recorder.pending
		recorder.pending = nil
		if restBreak == nil {
			// Subscribed mid-rest: reconstruct the start from the rest length.
			restBreak = &RestBreak{
				StartedAt:   event.At.Add(-event.Rest),
				RestSeconds: int(event.Rest.Seconds()),
				WorkMinutes: int(event.Work.Minutes()),
			}
		}
		restBreak.ID = ulid.MustNew(ulid.Timestamp(restBreak.StartedAt), ulid.DefaultEntropy()).String()
		restBreak.EndedAt = event.At
		restBreak.Displays = event.Displays
		return recorder.sink.Record(restBreak)
	}
	return nil
}
