package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRestFromParts(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		seconds int
		want    int
	}{
		{"seconds only", 0, 10, 10},
		{"minutes and seconds", 2, 5, 125},
		{"zero", 0, 0, 0},
		{"negative inputs clamp", -3, -1, 0},
		{"seconds clamp to 59", 0, 90, 59},
		{"total clamps below an hour", 60, 59, MaxRestSeconds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RestFromParts(tt.minutes, tt.seconds))
		})
	}
}

func TestSettingsValidate(t *testing.T) {
	settings := DefaultSettings()
	assert.NoError(t, settings.Validate())

	settings.RestSeconds = 0
	assert.ErrorIs(t, settings.Validate(), ErrInvalidRest)
}

func TestSettingsNormalize(t *testing.T) {
	settings := Settings{WorkMinutes: 0, RestSeconds: 5000}.Normalize()
	assert.Equal(t, MinWorkMinutes, settings.WorkMinutes)
	assert.Equal(t, MaxRestSeconds, settings.RestSeconds)

	settings = Settings{WorkMinutes: 999}.Normalize()
	assert.Equal(t, MaxWorkMinutes, settings.WorkMinutes)
}

func TestSettingsDurations(t *testing.T) {
	settings := Settings{WorkMinutes: 3, RestSeconds: 125}
	assert.Equal(t, 3*time.Minute, settings.WorkInterval())
	assert.Equal(t, 125*time.Second, settings.RestDuration())

	minutes, seconds := settings.RestParts()
	assert.Equal(t, 2, minutes)
	assert.Equal(t, 5, seconds)
}

func TestTargetsMarksFirstPrimary(t *testing.T) {
	targets := Targets([]Rect{
		{X: 0, Y: 0, Width: 1920, Height: 1080},
		{X: 1920, Y: 0, Width: 2560, Height: 1440},
		{X: -1280, Y: 0, Width: 1280, Height: 1024},
	})

	assert.Len(t, targets, 3)
	primaries := 0
	for index, target := range targets {
		assert.Equal(t, index, target.Index)
		if target.Primary {
			primaries++
		}
	}
	assert.Equal(t, 1, primaries)
	assert.True(t, targets[0].Primary)
	assert.Empty(t, Targets(nil))
}

func TestRect(t *testing.T) {
	assert.True(t, Rect{}.IsZero())
	assert.False(t, Rect{Width: 10, Height: 10}.IsZero())
	assert.Equal(t, "1920x1080+-10+0", Rect{X: -10, Width: 1920, Height: 1080}.String())
}
