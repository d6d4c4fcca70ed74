package model

import (
	"errors"
	"time"
)

const (
	MinWorkMinutes = 1
	MaxWorkMinutes = 240
	MaxRestMinutes = 60
	MaxRestSecs    = 59
	// MaxRestSeconds caps the total so the countdown never needs an hours field.
	MaxRestSeconds = 3599
)

// ErrInvalidRest is returned when a session is started without any rest time.
var ErrInvalidRest = errors.New("rest duration must be greater than zero")

// Settings holds the user-editable schedule.
type Settings struct {
	WorkMinutes int
	RestSeconds int

	IdleReset bool
	Notify    bool
	Chime     bool
}

// DefaultSettings returns the out-of-the-box schedule: 45 minutes of work, 10 seconds of rest.
func DefaultSettings() Settings {
	return Settings{
		WorkMinutes: 45,
		RestSeconds: 10,
		Notify:      true,
		Chime:       true,
	}
}

// RestFromParts combines minute and second inputs into a clamped total.
func RestFromParts(minutes, seconds int) int {
	minutes = clamp(minutes, 0, MaxRestMinutes)
	seconds = clamp(seconds, 0, MaxRestSecs)
	return clamp(minutes*60+seconds, 0, MaxRestSeconds)
}

// RestParts splits the rest total back into minute and second inputs.
func (settings Settings) RestParts() (int, int) {
	return settings.RestSeconds / 60, settings.RestSeconds % 60
}

// Normalize clamps every field into its input range.
func (settings Settings) Normalize() Settings {
	settings.WorkMinutes = clamp(settings.WorkMinutes, MinWorkMinutes, MaxWorkMinutes)
	settings.RestSeconds = clamp(settings.RestSeconds, 0, MaxRestSeconds)
	return settings
}

// Validate reports whether a session may start with these settings.
func (settings Settings) Validate() error {
	if settings.RestSeconds <= 0 {
		return ErrInvalidRest
	}
	return nil
}

// WorkInterval is the length of one work phase.
func (settings Settings) WorkInterval() time.Duration {
	return time.Duration(settings.WorkMinutes) * time.Minute
}

// RestDuration is the length of one rest phase.
func (settings Settings) RestDuration() time.Duration {
	return time.Duration(settings.RestSeconds) * time.Second
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
