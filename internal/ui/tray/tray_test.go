package tray

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDesktop struct {
	menu  *fyne.Menu
	icon  fyne.Resource
	icons int
}

func (d *fakeDesktop) SetSystemTrayMenu(menu *fyne.Menu) { d.menu = menu }

func (d *fakeDesktop) SetSystemTrayIcon(icon fyne.Resource) {
	d.icon = icon
	d.icons++
}

func (d *fakeDesktop) SetSystemTrayWindow(fyne.Window) {}

var (
	activeIcon = fyne.NewStaticResource("active.svg", []byte("<svg/>"))
	pausedIcon = fyne.NewStaticResource("paused.svg", []byte("<svg/>"))
)

func TestTrayFollowsSessionState(t *testing.T) {
	desktop := &fakeDesktop{}
	manager := New(desktop, Icons{Active: activeIcon, Paused: pausedIcon}, Callbacks{})

	require.NotNil(t, desktop.menu)
	assert.Equal(t, "Status: waiting", manager.StatusLabel())
	assert.Equal(t, "Start", manager.ToggleLabel())
	assert.Equal(t, pausedIcon, desktop.icon)

	manager.Update("working, resumes rest in 45 minutes", true)
	assert.Equal(t, "Status: working, resumes rest in 45 minutes", manager.StatusLabel())
	assert.Equal(t, "Stop", manager.ToggleLabel())
	assert.Equal(t, activeIcon, desktop.icon)

	manager.Update("resting", true)
	assert.Equal(t, 2, desktop.icons)
}

func TestTrayMenuInvokesCallbacks(t *testing.T) {
	desktop := &fakeDesktop{}
	var shown, toggled, quit int
	New(desktop, Icons{}, Callbacks{
		OnShowPanel: func() { shown++ },
		OnToggle:    func() { toggled++ },
		OnQuit:      func() { quit++ },
	})

	items := desktop.menu.Items
	require.Len(t, items, 5)
	assert.True(t, items[0].Disabled)
	items[1].Action()
	items[2].Action()
	items[4].Action()

	assert.Equal(t, 1, shown)
	assert.Equal(t, 1, toggled)
	assert.Equal(t, 1, quit)
	assert.Nil(t, desktop.icon)
}
