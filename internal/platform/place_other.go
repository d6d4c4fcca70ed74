//go:build !linux && !windows

package platform

import "eyerest/internal/core/model"

func placeNative(context any, geometry model.Rect) error {
	return nil
}
