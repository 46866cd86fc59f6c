// Package region turns pointer-drag gestures into clamped rectangles. It
// drives both the crop box and the overlay box: the controller is a pure
// transformer that never owns the authoritative rectangle — the editor
// session stores whatever Update returns.
package region

import (
	"github.com/clipforge/clipforge-engine/internal/geometry"
)

// Handle identifies which edge or corner a resize gesture grabs.
type Handle string

const (
	HandleNorth     Handle = "n"
	HandleSouth     Handle = "s"
	HandleEast      Handle = "e"
	HandleWest      Handle = "w"
	HandleNorthEast Handle = "ne"
	HandleNorthWest Handle = "nw"
	HandleSouthEast Handle = "se"
	HandleSouthWest Handle = "sw"
)

// ValidHandle reports whether h names one of the eight resize handles.
func ValidHandle(h Handle) bool {
	switch h {
	case HandleNorth, HandleSouth, HandleEast, HandleWest,
		HandleNorthEast, HandleNorthWest, HandleSouthEast, HandleSouthWest:
		return true
	}
	return false
}

// Kind is the gesture type.
type Kind string

const (
	KindMove   Kind = "move"
	KindResize Kind = "resize"
)

// Controller is the drag/resize state machine for one rectangle. Bounds and
// minimum size are fixed at construction; the gesture snapshot lives from
// Begin to End.
type Controller struct {
	bounds  geometry.Bounds
	minSize int

	active bool
	kind   Kind
	handle Handle
	startX float64
	startY float64
	origin geometry.Rect
}

func NewController(bounds geometry.Bounds, minSize int) *Controller {
	if minSize <= 0 {
		minSize = geometry.MinRegionSize
	}
	return &Controller{bounds: bounds, minSize: minSize}
}

// SetBounds replaces the clamp bounds, e.g. after the primary video changes.
func (c *Controller) SetBounds(bounds geometry.Bounds) {
	c.bounds = bounds
}

func (c *Controller) Bounds() geometry.Bounds {
	return c.bounds
}

func (c *Controller) Active() bool {
	return c.active
}

// Begin records the gesture snapshot: the initial pointer position in
// viewport pixels and the rectangle as it was when the gesture started.
// Nothing is mutated until Update.
func (c *Controller) Begin(kind Kind, handle Handle, px, py float64, current geometry.Rect) {
	c.active = true
	c.kind = kind
	c.handle = handle
	c.startX = px
	c.startY = py
	c.origin = current
}

// Update computes the rectangle for the current pointer position. The pointer
// delta is measured in viewport pixels and converted to native pixels through
// the inverse of scale before the handle transform is applied. The returned
// rectangle already satisfies the clamp invariant. The second return is false
// when no gesture is active.
func (c *Controller) Update(px, py, scale float64) (geometry.Rect, bool) {
	if !c.active {
		return geometry.Rect{}, false
	}
	if scale <= 0 {
		scale = 1
	}

	dx := (px - c.startX) / scale
	dy := (py - c.startY) / scale

	x := float64(c.origin.X)
	y := float64(c.origin.Y)
	w := float64(c.origin.Width)
	h := float64(c.origin.Height)

	if c.kind == KindMove {
		x += dx
		y += dy
	} else {
		// Each handle adjusts only the edges it owns.
		switch c.handle {
		case HandleEast:
			w += dx
		case HandleWest:
			x += dx
			w -= dx
		case HandleSouth:
			h += dy
		case HandleNorth:
			y += dy
			h -= dy
		case HandleSouthEast:
			w += dx
			h += dy
		case HandleSouthWest:
			x += dx
			w -= dx
			h += dy
		case HandleNorthEast:
			w += dx
			y += dy
			h -= dy
		case HandleNorthWest:
			x += dx
			w -= dx
			y += dy
			h -= dy
		}
	}

	r := geometry.RoundRect(x, y, w, h)
	return geometry.ClampRect(r, c.bounds, c.minSize), true
}

// End clears the gesture snapshot. Safe to call when no gesture is active.
func (c *Controller) End() {
	c.active = false
	c.kind = ""
	c.handle = ""
	c.origin = geometry.Rect{}
}

// DefaultRegion is the rectangle created when the user clicks inside the
// frame and no region exists yet: half the frame size, centered.
func DefaultRegion(bounds geometry.Bounds, minSize int) geometry.Rect {
	if minSize <= 0 {
		minSize = geometry.MinRegionSize
	}
	r := geometry.RoundRect(
		float64(bounds.Width)/4,
		float64(bounds.Height)/4,
		float64(bounds.Width)/2,
		float64(bounds.Height)/2,
	)
	return geometry.ClampRect(r, bounds, minSize)
}
