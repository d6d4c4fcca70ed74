package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"eyerest/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaultsWhenMissing(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)
}

func TestSaveAndLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", settingsFileName)
	want := model.Settings{WorkMinutes: 30, RestSeconds: 125, IdleReset: true, Notify: false, Chime: true}

	require.NoError(t, SaveSettings(path, want))
	got, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "rest_minutes: 2")
	assert.Contains(t, string(raw), "rest_seconds: 5")
	assert.NoFileExists(t, path+".tmp")
}

func TestLoadSettingsClampsAndKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("work_minutes: 900\nrest_seconds: 30\n"), 0o644))

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, model.MaxWorkMinutes, settings.WorkMinutes)
	assert.Equal(t, 30, settings.RestSeconds)
	assert.True(t, settings.Notify)
	assert.True(t, settings.Chime)
	assert.False(t, settings.IdleReset)
}

func TestLoadSettingsKeepsExplicitZeroRest(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("rest_minutes: 0\nrest_seconds: 0\n"), 0o644))

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 0, settings.RestSeconds)
	assert.ErrorIs(t, settings.Validate(), model.ErrInvalidRest)
}

func TestSaveSettingsWritesZeroRest(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	settings := model.DefaultSettings()
	settings.RestSeconds = 0
	require.NoError(t, SaveSettings(path, settings))

	got, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 0, got.RestSeconds)
}

func TestLoadSettingsRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("work_minutes: [oops"), 0o644))

	settings, err := LoadSettings(path)
	assert.Error(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv("HOME", "/tmp/home")
	path, err := DefaultPath("eyerest")
	require.NoError(t, err)
	assert.Equal(t, settingsFileName, filepath.Base(path))
	assert.Equal(t, "eyerest", filepath.Base(filepath.Dir(path)))
}

func TestWatcherReloadsOnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, SaveSettings(path, model.DefaultSettings()))

	changes := make(chan model.Settings, 8)
	watcher, err := NewWatcher(path, func(settings model.Settings) { changes <- settings }, nil)
	require.NoError(t, err)
	require.NoError(t, watcher.Start())
	defer func() { _ = watcher.Stop() }()

	require.NoError(t, SaveSettings(path, model.Settings{WorkMinutes: 12, RestSeconds: 40}))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case settings := <-changes:
			if settings.WorkMinutes == 12 {
				assert.Equal(t, 40, settings.RestSeconds)
				return
			}
		case <-deadline:
			t.Fatal("watcher did not report the change")
		}
	}
}
