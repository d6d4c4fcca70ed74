package platform

import "eyerest/internal/core/model"

// Displays returns the currently connected displays in display-server order.
// Nothing is cached: every call queries the display server again so
// hot-plugged monitors show up.
func Displays() ([]model.Rect, error) {
	displays, err := queryDisplays()
	if err != nil {
		return nil, err
	}
	return dedupeDisplays(displays), nil
}

// Mirrored outputs report the same geometry twice; one overlay covers both.
func dedupeDisplays(displays []model.Rect) []model.Rect {
	seen := make(map[model.Rect]bool, len(displays))
	unique := make([]model.Rect, 0, len(displays))
	for _, display := range displays {
		if seen[display] {
			continue
		}
		seen[display] = true
		unique = append(unique, display)
	}
	return unique
}

// edgeRect is a rectangle given by its edges, laid out like a Win32 RECT.
type edgeRect struct {
	left, top, right, bottom int32
}

func (r edgeRect) toRect() model.Rect {
	return model.Rect{
		X:      int(r.left),
		Y:      int(r.top),
		Width:  int(r.right - r.left),
		Height: int(r.bottom - r.top),
	}
}

type monitor struct {
	bounds  model.Rect
	primary bool
}

// primaryFirst moves the primary monitor to the front and keeps the rest in
// enumeration order.
func primaryFirst(monitors []monitor) []model.Rect {
	displays := make([]model.Rect, 0, len(monitors))
	for _, m := range monitors {
		if m.primary {
			displays = append(displays, m.bounds)
		}
	}
	for _, m := range monitors {
		if !m.primary {
			displays = append(displays, m.bounds)
		}
	}
	return displays
}
