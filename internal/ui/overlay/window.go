package overlay

import (
	"errors"
	"fmt"
	"image/color"

	"eyerest/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
)

// ErrLifecycle is returned when an overlay is activated twice or after it was destroyed.
var ErrLifecycle = errors.New("overlay already used")

// Phase is the one-shot lifecycle of an overlay.
type Phase int

const (
	PhaseCreated Phase = iota
	PhaseActive
	PhaseDestroyed
)

// Placer moves a shown window onto a display geometry.
type Placer func(window fyne.Window, geometry model.Rect) error

// Config defines overlay content and placement.
type Config struct {
	Message string
	Placer  Placer
}

// Window is a black, full-screen rest surface bound to one display.
type Window struct {
	window       fyne.Window
	target       model.DisplayTarget
	config       Config
	phase        Phase
	timerLabel   *canvas.Text
	messageLabel *canvas.Text
	background   *canvas.Rectangle

	// closableBySystem gates window-manager close requests. Deactivate
	// closes the window directly and is unaffected.
	closableBySystem bool
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates an overlay for target. The window is not shown until Activate.
func New(app fyne.App, target model.DisplayTarget, config Config) *Window {
	var window fyne.Window
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	} else {
		window = app.NewWindow("Rest")
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.Black)

	messageLabel := canvas.NewText("", color.White)
	messageLabel.Alignment = fyne.TextAlignCenter
	messageLabel.TextStyle = fyne.TextStyle{Bold: true}
	messageLabel.TextSize = 40
	if target.Primary {
		messageLabel.Text = config.Message
	}

	timerLabel := canvas.NewText("--:--", color.NRGBA{R: 0, G: 255, B: 0, A: 255})
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true}
	timerLabel.TextSize = 60

	content := container.NewVBox(layout.NewSpacer(), messageLabel, timerLabel, layout.NewSpacer())
	window.SetContent(container.NewStack(background, content))

	overlay := &Window{
		window:       window,
		target:       target,
		config:       config,
		timerLabel:   timerLabel,
		messageLabel: messageLabel,
		background:   background,
	}

	window.SetCloseIntercept(overlay.handleCloseRequest)
	overlay.suppressInput()
	return overlay
}

// Activate covers geometry and shows totalSeconds. A zero geometry covers
// whichever screen the window manager opens the window on.
func (overlay *Window) Activate(totalSeconds int, geometry model.Rect) error {
	if overlay.phase != PhaseCreated {
		return ErrLifecycle
	}
	overlay.phase = PhaseActive
	overlay.setRemainingUnsafe(totalSeconds)

	if !geometry.IsZero() {
		overlay.window.Resize(fyne.NewSize(float32(geometry.Width), float32(geometry.Height)))
	}
	overlay.window.Show()
	if overlay.config.Placer != nil && !geometry.IsZero() {
		if err := overlay.config.Placer(overlay.window, geometry); err != nil {
			return fmt.Errorf("place overlay on %s: %w", geometry, err)
		}
	}
	overlay.window.SetFullScreen(true)
	if overlay.target.Primary {
		overlay.window.RequestFocus()
	}
	return nil
}

// SetRemaining overwrites the countdown.
func (overlay *Window) SetRemaining(seconds int) {
	if overlay.phase != PhaseActive {
		return
	}
	overlay.setRemainingUnsafe(seconds)
}

// Deactivate closes the overlay for good.
func (overlay *Window) Deactivate() {
	if overlay.phase == PhaseDestroyed {
		return
	}
	wasActive := overlay.phase == PhaseActive
	overlay.phase = PhaseDestroyed
	if wasActive {
		overlay.window.SetFullScreen(false)
	}
	overlay.window.Close()
}

// Phase returns the lifecycle phase.
func (overlay *Window) Phase() Phase {
	return overlay.phase
}

// Text returns the countdown currently displayed.
func (overlay *Window) Text() string {
	return overlay.timerLabel.Text
}

func (overlay *Window) setRemainingUnsafe(seconds int) {
	overlay.timerLabel.Text = FormatClock(seconds)
	overlay.timerLabel.Refresh()
}

func (overlay *Window) handleCloseRequest() {
	if overlay.closableBySystem {
		overlay.Deactivate()
	}
}

func (overlay *Window) suppressInput() {
	overlayCanvas := overlay.window.Canvas()
	overlayCanvas.SetOnTypedKey(func(*fyne.KeyEvent) {})
	overlayCanvas.SetOnTypedRune(func(rune) {})
	if keyboard, ok := overlayCanvas.(desktop.Canvas); ok {
		keyboard.SetOnKeyDown(func(*fyne.KeyEvent) {})
		keyboard.SetOnKeyUp(func(*fyne.KeyEvent) {})
	}
}
