package platform

import (
	"eyerest/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"
)

// PlaceWindow moves a shown window onto geometry and raises it above other
// windows. Windows without a native handle are left where they are.
func PlaceWindow(window fyne.Window, geometry model.Rect) error {
	if geometry.IsZero() {
		return nil
	}
	nativeWindow, ok := window.(driver.NativeWindow)
	if !ok {
		return nil
	}

	var placeErr error
	nativeWindow.RunNative(func(context any) {
		placeErr = placeNative(context, geometry)
	})
	return placeErr
}
