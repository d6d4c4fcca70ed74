package model

import "fmt"

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// IsZero reports an unknown geometry; the overlay then covers whichever screen it opens on.
func (rect Rect) IsZero() bool {
	return rect.Width <= 0 || rect.Height <= 0
}

func (rect Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", rect.Width, rect.Height, rect.X, rect.Y)
}

// DisplayTarget binds one enumerated display to a rest phase.
type DisplayTarget struct {
	Index    int
	Geometry Rect
	Primary  bool
}

// Targets turns an enumeration result into rest targets. The first display is primary.
func Targets(displays []Rect) []DisplayTarget {
	targets := make([]DisplayTarget, 0, len(displays))
	for index, geometry := range displays {
		targets = append(targets, DisplayTarget{
			Index:    index,
			Geometry: geometry,
			Primary:  index == 0,
		})
	}
	return targets
}
