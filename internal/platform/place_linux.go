//go:build linux

package platform

import (
	"fmt"

	"eyerest/internal/core/model"

	"fyne.io/fyne/v2/driver"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

func placeNative(context any, geometry model.Rect) error {
	var handle uintptr
	switch value := context.(type) {
	case driver.X11WindowContext:
		handle = value.WindowHandle
	case *driver.X11WindowContext:
		handle = value.WindowHandle
	default:
		// Wayland compositors do not let clients position windows.
		return nil
	}
	if handle == 0 {
		return nil
	}

	conn, err := xgb.NewConn()
	if err != nil {
		return fmt.Errorf("connect to X server: %w", err)
	}
	defer conn.Close()

	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY |
		xproto.ConfigWindowWidth | xproto.ConfigWindowHeight |
		xproto.ConfigWindowStackMode)
	values := []uint32{
		uint32(int32(geometry.X)),
		uint32(int32(geometry.Y)),
		uint32(geometry.Width),
		uint32(geometry.Height),
		xproto.StackModeAbove,
	}
	if err := xproto.ConfigureWindowChecked(conn, xproto.Window(handle), mask, values).Check(); err != nil {
		return fmt.Errorf("configure window: %w", err)
	}
	return nil
}
