package timekeeper

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eyerest/internal/core/model"
	"eyerest/internal/core/schedule"
)

var (
	// ErrIdleUnsupported indicates idle detection is not available on this system.
	ErrIdleUnsupported = errors.New("idle detection unsupported")
	// ErrSettingsLocked is returned when settings are edited during a session.
	ErrSettingsLocked = errors.New("settings cannot change while running")
	// ErrNoScheduler is returned by New when Options.Scheduler is nil.
	ErrNoScheduler = errors.New("timekeeper needs a scheduler")
)

// IdleChecker reports the duration of user inactivity.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

// Overlay is a rest surface covering one display.
type Overlay interface {
	Activate(totalSeconds int, geometry model.Rect) error
	SetRemaining(seconds int)
	Deactivate()
}

// OverlayFactory builds a fresh overlay for one display target.
type OverlayFactory func(target model.DisplayTarget) (Overlay, error)

// DisplayQuery lists the currently connected displays, in order.
type DisplayQuery func() ([]model.Rect, error)

// Options wires the TimeKeeper to its collaborators. Scheduler is required
// and must deliver every callback on the UI event loop.
type Options struct {
	Scheduler         schedule.Scheduler
	Displays          DisplayQuery
	Overlays          OverlayFactory
	Idle              IdleChecker
	Logger            *slog.Logger
	SyncInterval      time.Duration
	IdleCheckInterval time.Duration
}

type liveOverlay struct {
	overlay Overlay
	target  model.DisplayTarget
}

// TimeKeeper is the work/rest state machine. It is not safe for concurrent
// use: every method and every scheduled callback runs on the UI event loop.
type TimeKeeper struct {
	settings  model.Settings
	options   Options
	logger    *slog.Logger
	state     State
	running   bool
	status    string
	remaining int
	// restActive stays true until the countdown ends, even after Stop.
	restActive bool
	workTimer schedule.Timer
	syncTimer schedule.Timer
	idleTimer schedule.Timer
	idleOff   bool
	overlays  []liveOverlay
	events    []chan Event
	closed    bool
}

// New creates an idle TimeKeeper with the provided settings.
func New(settings model.Settings, options Options) (*TimeKeeper, error) {
	if options.Scheduler == nil {
		return nil, ErrNoScheduler
	}
	if options.SyncInterval <= 0 {
		options.SyncInterval = time.Second
	}
	if options.IdleCheckInterval <= 0 {
		options.IdleCheckInterval = 5 * time.Second
	}
	if options.Displays == nil {
		options.Displays = func() ([]model.Rect, error) { return []model.Rect{{}}, nil }
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &TimeKeeper{
		settings: settings.Normalize(),
		options:  options,
		logger:   logger,
		state:    StateIdle,
		status:   statusWaiting,
	}, nil
}

// Subscribe registers a new observer channel. Slow observers miss events
// rather than block the event loop.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	if keeper.closed {
		close(ch)
		return ch
	}
	keeper.events = append(keeper.events, ch)
	return ch
}

// Settings returns the current settings.
func (keeper *TimeKeeper) Settings() model.Settings {
	return keeper.settings
}

// UpdateSettings replaces the settings. Only allowed while not running.
func (keeper *TimeKeeper) UpdateSettings(settings model.Settings) error {
	if keeper.running {
		return ErrSettingsLocked
	}
	keeper.settings = settings.Normalize()
	keeper.idleOff = false
	return nil
}

// State returns the current state.
func (keeper *TimeKeeper) State() State {
	return keeper.state
}

// Status returns the human-readable status line.
func (keeper *TimeKeeper) Status() string {
	return keeper.status
}

// Running reports whether the session is active.
func (keeper *TimeKeeper) Running() bool {
	return keeper.running
}

// Remaining returns the seconds left in the current rest phase.
func (keeper *TimeKeeper) Remaining() int {
	return keeper.remaining
}

// OverlayCount returns the number of live overlays.
func (keeper *TimeKeeper) OverlayCount() int {
	return len(keeper.overlays)
}

// Start begins a session with the current settings.
func (keeper *TimeKeeper) Start() error {
	if keeper.closed || keeper.running {
		return nil
	}
	if err := keeper.settings.Validate(); err != nil {
		keeper.setStatus("error: " + err.Error())
		return err
	}

	keeper.running = true
	if keeper.restActive {
		// The rest phase in progress finishes first and hands over to work.
		keeper.state = StateResting
		keeper.status = statusResting
		keeper.emit(keeper.event(EventStateChange))
		return nil
	}
	keeper.startWork()
	return nil
}

// Stop ends the session and returns to Idle. A rest phase in progress keeps
// its overlays and countdown until it completes.
func (keeper *TimeKeeper) Stop() {
	if !keeper.running {
		return
	}
	keeper.running = false
	keeper.stopTimer(&keeper.workTimer)
	keeper.stopTimer(&keeper.idleTimer)

	keeper.state = StateIdle
	keeper.status = statusStopped
	keeper.emit(keeper.event(EventStateChange))
}

// Toggle starts a stopped session or stops a running one.
func (keeper *TimeKeeper) Toggle() error {
	if keeper.running {
		keeper.Stop()
		return nil
	}
	return keeper.Start()
}

// Close cancels all timers, tears down overlays and closes observers.
func (keeper *TimeKeeper) Close() {
	if keeper.closed {
		return
	}
	keeper.running = false
	keeper.stopTimer(&keeper.workTimer)
	keeper.stopTimer(&keeper.idleTimer)
	keeper.stopTimer(&keeper.syncTimer)
	keeper.teardownOverlays()
	keeper.restActive = false
	keeper.state = StateIdle
	keeper.closed = true

	for _, ch := range keeper.events {
		close(ch)
	}
	keeper.events = nil
}

func (keeper *TimeKeeper) startWork() {
	keeper.state = StateWorking
	keeper.remaining = 0
	keeper.status = fmt.Sprintf("working, resumes rest in %d minutes", keeper.settings.WorkMinutes)
	keeper.workTimer = keeper.options.Scheduler.AfterFunc(keeper.settings.WorkInterval(), keeper.enterRest)
	keeper.startIdleCheck()

	keeper.logger.Debug("work phase started", "work_minutes", keeper.settings.WorkMinutes)
	keeper.emit(keeper.event(EventStateChange))
}

func (keeper *TimeKeeper) enterRest() {
	keeper.workTimer = nil
	keeper.stopTimer(&keeper.idleTimer)

	keeper.state = StateResting
	keeper.status = statusResting
	keeper.restActive = true
	keeper.remaining = keeper.settings.RestSeconds

	displays, err := keeper.options.Displays()
	if err != nil {
		// Cover at least the screen the overlay opens on.
		keeper.logger.Warn("display enumeration failed, using current screen", "error", err)
		displays = []model.Rect{{}}
	}

	keeper.overlays = keeper.overlays[:0]
	for _, target := range model.Targets(displays) {
		keeper.activateOverlay(target)
	}
	keeper.syncTimer = keeper.options.Scheduler.Every(keeper.options.SyncInterval, keeper.syncTick)

	keeper.logger.Info("rest phase started",
		"rest_seconds", keeper.remaining,
		"displays", len(displays),
		"overlays", len(keeper.overlays))
	keeper.emit(keeper.event(EventStateChange))
}

func (keeper *TimeKeeper) activateOverlay(target model.DisplayTarget) {
	if keeper.options.Overlays == nil {
		return
	}
	overlay, err := keeper.options.Overlays(target)
	if err != nil {
		keeper.logger.Warn("create overlay", "display", target.Index, "error", err)
		return
	}
	if err := overlay.Activate(keeper.remaining, target.Geometry); err != nil {
		keeper.logger.Warn("activate overlay", "display", target.Index, "geometry", target.Geometry.String(), "error", err)
		overlay.Deactivate()
		return
	}
	keeper.overlays = append(keeper.overlays, liveOverlay{overlay: overlay, target: target})
}

// syncTick is the single authority for the rest countdown: every overlay
// shows the value pushed here and the phase ends when it reaches zero.
func (keeper *TimeKeeper) syncTick() {
	if !keeper.restActive {
		return
	}
	keeper.remaining--
	if keeper.remaining < 0 {
		keeper.remaining = 0
	}
	for _, live := range keeper.overlays {
		live.overlay.SetRemaining(keeper.remaining)
	}
	keeper.emit(keeper.event(EventProgress))

	if keeper.remaining <= 0 {
		keeper.finishRest()
	}
}

func (keeper *TimeKeeper) finishRest() {
	keeper.stopTimer(&keeper.syncTimer)
	keeper.restActive = false
	displays := len(keeper.overlays)
	keeper.teardownOverlays()

	complete := keeper.event(EventRestComplete)
	complete.Displays = displays
	keeper.emit(complete)
	keeper.logger.Info("rest phase complete", "running", keeper.running)

	if keeper.running {
		keeper.startWork()
		return
	}
	keeper.state = StateIdle
	keeper.status = statusStopped
	keeper.emit(keeper.event(EventStateChange))
}

func (keeper *TimeKeeper) teardownOverlays() {
	for _, live := range keeper.overlays {
		live.overlay.Deactivate()
	}
	keeper.overlays = nil
}

func (keeper *TimeKeeper) startIdleCheck() {
	if !keeper.settings.IdleReset || keeper.idleOff || keeper.options.Idle == nil {
		return
	}
	keeper.idleTimer = keeper.options.Scheduler.Every(keeper.options.IdleCheckInterval, keeper.checkIdle)
}

func (keeper *TimeKeeper) checkIdle() {
	if keeper.state != StateWorking {
		return
	}
	idle, err := keeper.options.Idle.IdleDuration()
	if err != nil {
		event := keeper.event(EventIdleError)
		event.Message = err.Error()
		if errors.Is(err, ErrIdleUnsupported) {
			keeper.idleOff = true
			keeper.stopTimer(&keeper.idleTimer)
		}
		keeper.logger.Debug("idle check failed", "error", err)
		keeper.emit(event)
		return
	}
	if idle < keeper.settings.RestDuration() {
		return
	}

	// The user has already been away for a full rest; count work from now.
	keeper.stopTimer(&keeper.workTimer)
	keeper.workTimer = keeper.options.Scheduler.AfterFunc(keeper.settings.WorkInterval(), keeper.enterRest)
	event := keeper.event(EventIdleReset)
	event.Message = "idle reset"
	keeper.logger.Info("work timer reset after idle", "idle", idle)
	keeper.emit(event)
}

func (keeper *TimeKeeper) stopTimer(timer *schedule.Timer) {
	if *timer != nil {
		(*timer).Stop()
		*timer = nil
	}
}

func (keeper *TimeKeeper) setStatus(status string) {
	keeper.status = status
	keeper.emit(keeper.event(EventStatus))
}

func (keeper *TimeKeeper) event(eventType EventType) Event {
	return Event{
		Type:      eventType,
		State:     keeper.state,
		Running:   keeper.running,
		Status:    keeper.status,
		Remaining: time.Duration(keeper.remaining) * time.Second,
		Rest:      keeper.settings.RestDuration(),
		Work:      keeper.settings.WorkInterval(),
		Displays:  len(keeper.overlays),
		At:        keeper.options.Scheduler.Now(),
	}
}

func (keeper *TimeKeeper) emit(event Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}
