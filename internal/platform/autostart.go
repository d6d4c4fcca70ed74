package platform

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var errEmptyAppName = errors.New("app name is empty")

// Launch describes the command run at login.
type Launch struct {
	AppName  string
	ExecPath string
	Args     []string
}

func (launch Launch) validate() error {
	if strings.TrimSpace(launch.AppName) == "" {
		return errEmptyAppName
	}
	if launch.ExecPath == "" {
		return errors.New("exec path is empty")
	}
	return nil
}

// Service defines OS-specific session integration.
type Service interface {
	GetConfigDir() (string, error)
	EnableAutostart(launch Launch) error
	DisableAutostart(appName string) error
	AutostartEnabled(appName string) (bool, error)
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

func slugName(appName string) string {
	name := strings.ToLower(strings.TrimSpace(appName))
	if name == "" {
		name = "eyerest"
	}
	return strings.ReplaceAll(name, " ", "-")
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
