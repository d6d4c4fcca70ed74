package alert

import (
	"context"
	"errors"
	"testing"
	"time"

	"eyerest/internal/core/model"
	"eyerest/internal/core/timekeeper"

	"github.com/godbus/dbus/v5"
	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []Notification
	err  error
}

func (s *recordingSender) Send(notification Notification) error {
	s.sent = append(s.sent, notification)
	return s.err
}

type countingPlayer struct {
	plays int
}

func (p *countingPlayer) Play() error {
	p.plays++
	return nil
}

func restComplete(running bool) timekeeper.Event {
	return timekeeper.Event{
		Type:    timekeeper.EventRestComplete,
		Rest:    75 * time.Second,
		Running: running,
	}
}

func TestRestCompleteNotification(t *testing.T) {
	notification := RestCompleteNotification(75, true)
	assert.Equal(t, "Rest complete", notification.Summary)
	assert.Equal(t, "You rested for 1 minute 15 seconds. The next work interval has started.", notification.Body)

	assert.Equal(t, "You rested for 10 seconds.", RestCompleteNotification(10, false).Body)
	assert.Equal(t, "You rested for 2 minutes.", RestCompleteNotification(120, false).Body)
	assert.Equal(t, "You rested for 1 second.", RestCompleteNotification(1, false).Body)
}

func TestHints(t *testing.T) {
	got := hints("eyerest")
	assert.Equal(t, dbus.MakeVariant("eyerest"), got["desktop-entry"])
	assert.Equal(t, dbus.MakeVariant(true), got["transient"])
	assert.Equal(t, dbus.MakeVariant(byte(1)), got["urgency"])
}

func TestDispatcherHonoursSettings(t *testing.T) {
	sender := &recordingSender{}
	player := &countingPlayer{}
	settings := model.DefaultSettings()
	dispatcher := NewDispatcher(sender, player, settings, nil)

	dispatcher.Handle(timekeeper.Event{Type: timekeeper.EventProgress})
	dispatcher.Handle(restComplete(true))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, 1, player.plays)

	settings.Notify = false
	dispatcher.Apply(settings)
	dispatcher.Handle(restComplete(false))
	assert.Len(t, sender.sent, 1)
	assert.Equal(t, 2, player.plays)

	settings.Chime = false
	dispatcher.Apply(settings)
	dispatcher.Handle(restComplete(false))
	assert.Equal(t, 2, player.plays)
}

func TestDispatcherContinuesAfterSendFailure(t *testing.T) {
	sender := &recordingSender{err: errors.New("no bus")}
	player := &countingPlayer{}
	dispatcher := NewDispatcher(sender, player, model.DefaultSettings(), nil)

	events := make(chan timekeeper.Event, 2)
	events <- restComplete(true)
	events <- restComplete(true)
	close(events)
	dispatcher.Run(context.Background(), events)

	assert.Len(t, sender.sent, 2)
	assert.Equal(t, 2, player.plays)
}

func TestDispatcherWithoutOutputs(t *testing.T) {
	dispatcher := NewDispatcher(nil, nil, model.DefaultSettings(), nil)
	assert.NotPanics(t, func() { dispatcher.Handle(restComplete(true)) })
}

func TestChimeStreamerLength(t *testing.T) {
	sampleRate := beep.SampleRate(8000)
	finished := false
	streamer, err := chimeStreamer(sampleRate, 0.5, func() { finished = true })
	require.NoError(t, err)

	buffer := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for {
		n, ok := streamer.Stream(buffer)
		total += n
		for _, sample := range buffer[:n] {
			if sample[0] > peak {
				peak = sample[0]
			}
		}
		if !ok {
			break
		}
	}

	assert.Equal(t, chimeLength(sampleRate), total)
	assert.True(t, finished)
	assert.InDelta(t, 0.5, peak, 0.05)
}

func TestChimeStreamerSilent(t *testing.T) {
	streamer, err := chimeStreamer(beep.SampleRate(8000), 0, nil)
	require.NoError(t, err)

	buffer := make([][2]float64, 256)
	n, _ := streamer.Stream(buffer)
	require.Positive(t, n)
	for _, sample := range buffer[:n] {
		assert.Zero(t, sample[0])
	}
}
