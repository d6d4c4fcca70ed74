package tray

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const menuTitle = "Eye Rest"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowPanel func()
	OnToggle    func()
	OnQuit      func()
}

// Icons are the tray icons for a running and a stopped session.
type Icons struct {
	Active fyne.Resource
	Paused fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	icons      Icons
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	running    bool
	status     string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		icons:     icons,
		status:    "waiting",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("", func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})

	manager.refreshLabels()
	manager.refreshMenu()
	manager.refreshIcon()
	return manager
}

// Update reflects the session state in the menu and icon.
func (manager *Manager) Update(status string, running bool) {
	iconChanged := manager.running != running
	manager.status = status
	manager.running = running
	manager.refreshLabels()
	manager.refreshMenu()
	if iconChanged {
		manager.refreshIcon()
	}
}

// StatusLabel returns the current status menu label.
func (manager *Manager) StatusLabel() string {
	return manager.statusItem.Label
}

// ToggleLabel returns the current start/stop menu label.
func (manager *Manager) ToggleLabel() string {
	return manager.toggleItem.Label
}

func (manager *Manager) refreshLabels() {
	manager.statusItem.Label = "Status: " + manager.status
	if manager.running {
		manager.toggleItem.Label = "Stop"
	} else {
		manager.toggleItem.Label = "Start"
	}
}

func (manager *Manager) refreshIcon() {
	if manager.app == nil {
		return
	}
	icon := manager.icons.Paused
	if manager.running {
		icon = manager.icons.Active
	}
	if icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItem("Show panel", func() {
			if manager.callbacks.OnShowPanel != nil {
				manager.callbacks.OnShowPanel()
			}
		}),
		manager.toggleItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
