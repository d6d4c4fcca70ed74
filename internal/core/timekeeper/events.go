package timekeeper

import "time"

// State represents the current TimeKeeper mode.
type State string

const (
	StateIdle    State = "idle"
	StateWorking State = "working"
	StateResting State = "resting"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange  EventType = "state_change"
	EventProgress     EventType = "progress"
	EventStatus       EventType = "status"
	EventRestComplete EventType = "rest_complete"
	EventIdleReset    EventType = "idle_reset"
	EventIdleError    EventType = "idle_error"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type      EventType
	State     State
	Running   bool
	Status    string
	Remaining time.Duration
	Rest      time.Duration
	Work      time.Duration
	Displays  int
	Message   string
	At        time.Time
}

const (
	statusWaiting = "waiting"
	statusResting = "resting"
	statusStopped = "stopped"
)
