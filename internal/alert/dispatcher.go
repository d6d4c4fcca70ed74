package alert

import (
	"context"
	"log/slog"
	"sync/atomic"

	"eyerest/internal/core/model"
	"eyerest/internal/core/timekeeper"
)

// Sender delivers a desktop notification.
type Sender interface {
	Send(notification Notification) error
}

// Player plays an audible cue.
type Player interface {
	Play() error
}

// Dispatcher raises a notification and a chime when a rest phase completes.
type Dispatcher struct {
	sender Sender
	player Player
	logger *slog.Logger

	notify atomic.Bool
	chime  atomic.Bool
}

// NewDispatcher creates a Dispatcher. Either sender or player may be nil.
func NewDispatcher(sender Sender, player Player, settings model.Settings, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	dispatcher := &Dispatcher{sender: sender, player: player, logger: logger}
	dispatcher.Apply(settings)
	return dispatcher
}

// Apply updates which cues are enabled. Safe to call from any goroutine.
func (d *Dispatcher) Apply(settings model.Settings) {
	d.notify.Store(settings.Notify)
	d.chime.Store(settings.Chime)
}

// Run consumes events until the channel closes or ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context, events <-chan timekeeper.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			d.Handle(event)
		}
	}
}

// Handle reacts to a single event.
func (d *Dispatcher) Handle(event timekeeper.Event) {
	if event.Type != timekeeper.EventRestComplete {
		return
	}
	if d.notify.Load() && d.sender != nil {
		notification := RestCompleteNotification(int(event.Rest.Seconds()), event.Running)
		if err := d.sender.Send(notification); err != nil {
			d.logger.Warn("failed to send notification", "error", err)
		}
	}
	if d.chime.Load() && d.player != nil {
		if err := d.player.Play(); err != nil {
			d.logger.Warn("failed to play chime", "error", err)
		}
	}
}
