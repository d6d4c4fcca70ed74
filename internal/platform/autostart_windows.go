//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func (service *platformService) EnableAutostart(launch Launch) error {
	if err := launch.validate(); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}

	command := make([]string, 0, len(launch.Args)+1)
	command = append(command, quoteWindowsArg(launch.ExecPath))
	for _, arg := range launch.Args {
		command = append(command, quoteWindowsArg(arg))
	}

	output, err := exec.Command(
		"reg", "add", registryRunKey,
		"/v", launch.AppName,
		"/t", "REG_SZ",
		"/d", strings.Join(command, " "),
		"/f",
	).CombinedOutput()
	if err != nil {
		return fmt.Errorf("enable autostart: reg add failed: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	if strings.TrimSpace(appName) == "" {
		return fmt.Errorf("disable autostart: %w", errEmptyAppName)
	}

	output, err := exec.Command("reg", "delete", registryRunKey, "/v", appName, "/f").CombinedOutput()
	if err != nil {
		return fmt.Errorf("disable autostart: reg delete failed: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (service *platformService) AutostartEnabled(appName string) (bool, error) {
	// reg query exits non-zero when the value is missing.
	if err := exec.Command("reg", "query", registryRunKey, "/v", appName).Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return false, nil
		}
		return false, fmt.Errorf("query autostart: %w", err)
	}
	return true, nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func quoteWindowsArg(arg string) string {
	trimmed := strings.Trim(arg, `"`)
	if !strings.ContainsAny(trimmed, " \t") && trimmed == arg && !strings.HasSuffix(arg, ".exe") {
		return arg
	}
	return fmt.Sprintf(`"%s"`, trimmed)
}
