// Package panel implements the control window: durations, status and the
// start/stop toggle.
package panel

import (
	"strconv"
	"strings"

	"eyerest/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const (
	startLabel = "Start eye rest"
	stopLabel  = "Stop eye rest"
)

// Controller is the session the panel drives.
type Controller interface {
	Settings() model.Settings
	UpdateSettings(settings model.Settings) error
	Start() error
	Stop()
	Running() bool
	Status() string
}

// Window handles the control panel UI.
type Window struct {
	window     fyne.Window
	controller Controller
	onStarted  func(model.Settings)

	workEntry    *widget.Entry
	restMinEntry *widget.Entry
	restSecEntry *widget.Entry
	idleCheck    *widget.Check
	notifyCheck  *widget.Check
	chimeCheck   *widget.Check
	statusLabel  *widget.Label
	toggle       *widget.Button
}

// New creates the control panel. onStarted runs with the applied settings
// after every successful start.
func New(app fyne.App, title string, controller Controller, onStarted func(model.Settings)) *Window {
	window := app.NewWindow(title)

	panel := &Window{
		window:       window,
		controller:   controller,
		onStarted:    onStarted,
		workEntry:    widget.NewEntry(),
		restMinEntry: widget.NewEntry(),
		restSecEntry: widget.NewEntry(),
		idleCheck:    widget.NewCheck("Reset work timer when idle", nil),
		notifyCheck:  widget.NewCheck("Notify when rest ends", nil),
		chimeCheck:   widget.NewCheck("Chime when rest ends", nil),
		statusLabel:  widget.NewLabel(""),
	}
	panel.statusLabel.Alignment = fyne.TextAlignCenter
	panel.toggle = widget.NewButton(startLabel, func() {
		_ = panel.Toggle()
	})
	panel.toggle.Importance = widget.HighImportance

	form := container.NewVBox(
		container.NewHBox(widget.NewLabel("Work for"), panel.workEntry, widget.NewLabel("min"), layout.NewSpacer()),
		container.NewHBox(
			widget.NewLabel("Rest for"),
			panel.restMinEntry, widget.NewLabel("min"),
			panel.restSecEntry, widget.NewLabel("sec"),
			layout.NewSpacer(),
		),
		panel.idleCheck,
		panel.notifyCheck,
		panel.chimeCheck,
		panel.statusLabel,
	)

	window.SetContent(container.NewBorder(nil, panel.toggle, nil, nil, form))
	window.Resize(fyne.NewSize(360, 260))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	panel.SetSettings(controller.Settings())
	panel.Refresh()
	return panel
}

// Show displays the panel.
func (panel *Window) Show() {
	panel.window.Show()
	panel.window.RequestFocus()
}

// Hide hides the panel.
func (panel *Window) Hide() {
	panel.window.Hide()
}

// SetCloseAction replaces the default hide-on-close behaviour.
func (panel *Window) SetCloseAction(action func()) {
	panel.window.SetCloseIntercept(action)
}

// SetSettings replaces the field values.
func (panel *Window) SetSettings(settings model.Settings) {
	minutes, seconds := settings.RestParts()
	panel.workEntry.SetText(strconv.Itoa(settings.WorkMinutes))
	panel.restMinEntry.SetText(strconv.Itoa(minutes))
	panel.restSecEntry.SetText(strconv.Itoa(seconds))
	panel.idleCheck.SetChecked(settings.IdleReset)
	panel.notifyCheck.SetChecked(settings.Notify)
	panel.chimeCheck.SetChecked(settings.Chime)
}

// Refresh re-reads status and running state from the controller.
func (panel *Window) Refresh() {
	running := panel.controller.Running()
	panel.statusLabel.SetText("Status: " + panel.controller.Status())
	if running {
		panel.toggle.SetText(stopLabel)
	} else {
		panel.toggle.SetText(startLabel)
	}
	for _, field := range []fyne.Disableable{
		panel.workEntry, panel.restMinEntry, panel.restSecEntry,
		panel.idleCheck, panel.notifyCheck, panel.chimeCheck,
	} {
		if running {
			field.Disable()
		} else {
			field.Enable()
		}
	}
}

// Toggle stops a running session, or applies the edited fields and starts
// one. It is shared by the Start/Stop button and the tray menu.
func (panel *Window) Toggle() error {
	defer panel.Refresh()

	if panel.controller.Running() {
		panel.controller.Stop()
		return nil
	}

	settings := panel.readSettings()
	panel.SetSettings(settings)
	if err := panel.controller.UpdateSettings(settings); err != nil {
		return err
	}
	if err := panel.controller.Start(); err != nil {
		return err
	}
	if panel.onStarted != nil {
		panel.onStarted(settings)
	}
	return nil
}

// readSettings parses the fields, keeping the current value for any field
// that is not a number and clamping the rest into range.
func (panel *Window) readSettings() model.Settings {
	current := panel.controller.Settings()
	currentMin, currentSec := current.RestParts()

	settings := current
	settings.WorkMinutes = parseInt(panel.workEntry.Text, current.WorkMinutes)
	settings.RestSeconds = model.RestFromParts(
		parseInt(panel.restMinEntry.Text, currentMin),
		parseInt(panel.restSecEntry.Text, currentSec),
	)
	settings.IdleReset = panel.idleCheck.Checked
	settings.Notify = panel.notifyCheck.Checked
	settings.Chime = panel.chimeCheck.Checked
	return settings.Normalize()
}

func parseInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}
