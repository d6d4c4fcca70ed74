//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutostartRoundTrip(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	service := NewService()

	enabled, err := service.AutostartEnabled("EyeRest")
	require.NoError(t, err)
	assert.False(t, enabled)

	require.NoError(t, service.EnableAutostart(Launch{
		AppName:  "EyeRest",
		ExecPath: "/opt/eye rest/eyerest",
		Args:     []string{"--start"},
	}))

	entry, err := os.ReadFile(filepath.Join(configHome, "autostart", "eyerest.desktop"))
	require.NoError(t, err)
	assert.Contains(t, string(entry), `Exec="/opt/eye rest/eyerest" --start`)
	assert.Contains(t, string(entry), "Name=EyeRest")

	enabled, err = service.AutostartEnabled("EyeRest")
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, service.DisableAutostart("EyeRest"))
	require.NoError(t, service.DisableAutostart("EyeRest"))
	enabled, err = service.AutostartEnabled("EyeRest")
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestEnableAutostartRejectsEmptyName(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	err := NewService().EnableAutostart(Launch{ExecPath: "/usr/bin/eyerest"})
	assert.ErrorIs(t, err, errEmptyAppName)
}
