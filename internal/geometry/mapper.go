package geometry

// FrameMapper converts rectangles between a video's native pixel space and
// the viewport it is rendered into. The native frame is scaled uniformly and
// centered, so the viewport may letterbox (bars above/below) or pillarbox
// (bars left/right) the frame.
type FrameMapper struct {
	nativeWidth  int
	nativeHeight int
	scale        float64
	offsetX      float64
	offsetY      float64
}

// NewFrameMapper computes the fit for a native frame inside a viewport.
// Until real measurements are available (any dimension <= 0) the mapper is an
// identity: scale 1, zero offsets.
func NewFrameMapper(nativeWidth, nativeHeight, viewportWidth, viewportHeight int) FrameMapper {
	m := FrameMapper{
		nativeWidth:  nativeWidth,
		nativeHeight: nativeHeight,
		scale:        1,
	}
	if nativeWidth <= 0 || nativeHeight <= 0 || viewportWidth <= 0 || viewportHeight <= 0 {
		return m
	}

	nativeAspect := float64(nativeWidth) / float64(nativeHeight)
	viewportAspect := float64(viewportWidth) / float64(viewportHeight)

	if nativeAspect > viewportAspect {
		// Frame is wider than the viewport: width-fit, letterbox bars.
		m.scale = float64(viewportWidth) / float64(nativeWidth)
		m.offsetY = (float64(viewportHeight) - float64(nativeHeight)*m.scale) / 2
	} else {
		// Frame is taller (or equal): height-fit, pillarbox bars.
		m.scale = float64(viewportHeight) / float64(nativeHeight)
		m.offsetX = (float64(viewportWidth) - float64(nativeWidth)*m.scale) / 2
	}
	return m
}

func (m FrameMapper) Scale() float64 {
	return m.scale
}

// ToViewport maps a native-space rectangle to viewport space.
func (m FrameMapper) ToViewport(r Rect) Rect {
	return RoundRect(
		float64(r.X)*m.scale+m.offsetX,
		float64(r.Y)*m.scale+m.offsetY,
		float64(r.Width)*m.scale,
		float64(r.Height)*m.scale,
	)
}

// ToNative maps a viewport-space rectangle back to native space. All four
// fields are rounded to the nearest integer; together with ToViewport it is
// an exact inverse up to that rounding.
func (m FrameMapper) ToNative(r Rect) Rect {
	if m.scale == 0 {
		return r
	}
	return RoundRect(
		(float64(r.X)-m.offsetX)/m.scale,
		(float64(r.Y)-m.offsetY)/m.scale,
		float64(r.Width)/m.scale,
		float64(r.Height)/m.scale,
	)
}

// PointToNative converts a viewport point to native coordinates.
func (m FrameMapper) PointToNative(px, py float64) (float64, float64) {
	if m.scale == 0 {
		return px, py
	}
	return (px - m.offsetX) / m.scale, (py - m.offsetY) / m.scale
}

// FrameRect returns the rendered frame's rectangle in viewport space.
func (m FrameMapper) FrameRect() Rect {
	return RoundRect(
		m.offsetX,
		m.offsetY,
		float64(m.nativeWidth)*m.scale,
		float64(m.nativeHeight)*m.scale,
	)
}

// ContainsViewportPoint reports whether a viewport point lands on the
// rendered frame itself, not on the letterbox bars around it.
func (m FrameMapper) ContainsViewportPoint(px, py float64) bool {
	left := m.offsetX
	top := m.offsetY
	right := m.offsetX + float64(m.nativeWidth)*m.scale
	bottom := m.offsetY + float64(m.nativeHeight)*m.scale
	return px >= left && px < right && py >= top && py < bottom
}

// OffsetX returns the horizontal centering offset in viewport pixels.
func (m FrameMapper) OffsetX() float64 {
	return m.offsetX
}

// OffsetY returns the vertical centering offset in viewport pixels.
func (m FrameMapper) OffsetY() float64 {
	return m.offsetY
}
