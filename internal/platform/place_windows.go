//go:build windows

package platform

import (
	"fmt"
	"syscall"

	"eyerest/internal/core/model"

	"fyne.io/fyne/v2/driver"
)

const (
	hwndTopmost   = ^uintptr(0) // (HWND)-1
	swpShowWindow = 0x0040
)

var (
	user32DLL        = syscall.NewLazyDLL("user32.dll")
	procSetWindowPos = user32DLL.NewProc("SetWindowPos")
)

func placeNative(context any, geometry model.Rect) error {
	var hwnd uintptr
	switch value := context.(type) {
	case driver.WindowsWindowContext:
		hwnd = value.HWND
	case *driver.WindowsWindowContext:
		hwnd = value.HWND
	default:
		return nil
	}
	if hwnd == 0 {
		return nil
	}

	result, _, err := procSetWindowPos.Call(
		hwnd,
		hwndTopmost,
		intToUintptr(geometry.X),
		intToUintptr(geometry.Y),
		uintptr(geometry.Width),
		uintptr(geometry.Height),
		swpShowWindow,
	)
	if result == 0 {
		return fmt.Errorf("set window pos: %w", err)
	}
	return nil
}

func intToUintptr(value int) uintptr {
	return uintptr(int32(value))
}
