// Package geometry provides the pure coordinate math for the edit engine:
// integer rectangles in a video's native pixel space, the clamp policy that
// keeps them inside the frame, and the mapper between native pixel space and
// the letterboxed on-screen viewport.
package geometry

import "math"

// MinRegionSize is the smallest width/height a region may reach, in native
// pixels.
const MinRegionSize = 20

// Rect is an axis-aligned rectangle. Fields are always integers; callers that
// compute in floating point round before constructing one.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (r Rect) Right() int {
	return r.X + r.Width
}

func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Contains reports whether the point (px, py) falls inside the rectangle.
func (r Rect) Contains(px, py float64) bool {
	return px >= float64(r.X) && px < float64(r.Right()) &&
		py >= float64(r.Y) && py < float64(r.Bottom())
}

// Bounds is the enclosing space a rectangle must stay within, normally a
// video frame's native dimensions.
type Bounds struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ClampRect forces r inside bounds. Width and height are resolved first so
// that the position clamp uses the final size; this order makes a resize past
// a boundary shrink the rectangle instead of pushing it off-bounds.
func ClampRect(r Rect, bounds Bounds, minSize int) Rect {
	if minSize <= 0 {
		minSize = MinRegionSize
	}

	r.Width = clampInt(r.Width, minSize, bounds.Width)
	r.Height = clampInt(r.Height, minSize, bounds.Height)
	r.X = clampInt(r.X, 0, bounds.Width-r.Width)
	r.Y = clampInt(r.Y, 0, bounds.Height-r.Height)
	return r
}

// RoundRect rounds each floating-point field to the nearest integer.
func RoundRect(x, y, w, h float64) Rect {
	return Rect{
		X:      int(math.Round(x)),
		Y:      int(math.Round(y)),
		Width:  int(math.Round(w)),
		Height: int(math.Round(h)),
	}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
