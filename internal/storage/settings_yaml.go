package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"eyerest/internal/core/model"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// yamlSettings uses pointers so an explicit zero is told apart from a
// missing key.
type yamlSettings struct {
	WorkMinutes int   `yaml:"work_minutes"`
	RestMinutes *int  `yaml:"rest_minutes,omitempty"`
	RestSeconds *int  `yaml:"rest_seconds,omitempty"`
	IdleReset   *bool `yaml:"idle_reset,omitempty"`
	Notify      *bool `yaml:"notify,omitempty"`
	Chime       *bool `yaml:"chime,omitempty"`
}

// DefaultPath returns the settings file location under the user config dir.
func DefaultPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads user settings from YAML.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (model.Settings, error) {
	settings := model.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user settings to YAML. The file is replaced atomically
// so the watcher never observes a half-written document.
func SaveSettings(path string, settings model.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	restMinutes, restSeconds := settings.RestParts()
	fileData := yamlSettings{
		WorkMinutes: settings.WorkMinutes,
		RestMinutes: &restMinutes,
		RestSeconds: &restSeconds,
		IdleReset:   &settings.IdleReset,
		Notify:      &settings.Notify,
		Chime:       &settings.Chime,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	if fileData.WorkMinutes > 0 {
		settings.WorkMinutes = fileData.WorkMinutes
	}
	if fileData.RestMinutes != nil || fileData.RestSeconds != nil {
		settings.RestSeconds = model.RestFromParts(intOrZero(fileData.RestMinutes), intOrZero(fileData.RestSeconds))
	}
	if fileData.IdleReset != nil {
		settings.IdleReset = *fileData.IdleReset
	}
	if fileData.Notify != nil {
		settings.Notify = *fileData.Notify
	}
	if fileData.Chime != nil {
		settings.Chime = *fileData.Chime
	}
	*settings = settings.Normalize()
}

func intOrZero(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}
