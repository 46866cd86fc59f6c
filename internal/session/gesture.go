package session

import (
	"github.com/clipforge/clipforge-engine/internal/geometry"
	"github.com/clipforge/clipforge-engine/internal/region"
)

// SetViewport records the on-screen rendered size of the preview area and
// recomputes the native<->viewport mapping. Zero dimensions leave the mapper
// as an identity until real measurements arrive.
func (s *Session) SetViewport(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewportWidth = width
	s.viewportHeight = height
	s.rebuildMapperLocked()
}

// Mapper returns the current native<->viewport mapper.
func (s *Session) Mapper() geometry.FrameMapper {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mapper
}

// BeginGesture starts a move or resize gesture on the active region (the
// crop box in crop mode, the overlay box in merge mode). The pointer
// position is in viewport pixels. Nothing is mutated until UpdateGesture.
func (s *Session) BeginGesture(kind region.Kind, handle region.Handle, px, py float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.primary == nil {
		return ErrNoPrimary
	}
	current, err := s.activeRegionLocked()
	if err != nil {
		return err
	}
	if kind == region.KindResize && !region.ValidHandle(handle) {
		return ErrInvalidInput
	}
	if kind != region.KindMove && kind != region.KindResize {
		return ErrInvalidInput
	}

	s.controller.Begin(kind, handle, px, py, *current)
	return nil
}

// UpdateGesture advances the active gesture to the current pointer position
// and stores the clamped result as the authoritative region.
func (s *Session) UpdateGesture(px, py float64) (geometry.Rect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, ok := s.controller.Update(px, py, s.mapper.Scale())
	if !ok {
		return geometry.Rect{}, ErrNoGesture
	}

	target, err := s.activeRegionLocked()
	if err != nil {
		return geometry.Rect{}, err
	}
	*target = updated
	return updated, nil
}

// EndGesture clears the gesture snapshot. Idempotent.
func (s *Session) EndGesture() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller.End()
}

// ClickAt creates a default crop region when none exists and the click lands
// on the rendered frame. Clicks on the letterbox bars are ignored, as are
// clicks while a region already exists. Returns the created region, or false.
func (s *Session) ClickAt(px, py float64) (geometry.Rect, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.primary == nil || s.mode != ModeCrop || s.crop != nil {
		return geometry.Rect{}, false
	}
	if !s.mapper.ContainsViewportPoint(px, py) {
		return geometry.Rect{}, false
	}

	created := region.DefaultRegion(s.controller.Bounds(), geometry.MinRegionSize)
	s.crop = &created
	s.logger.Info("crop region created", "x", created.X, "y", created.Y, "width", created.Width, "height", created.Height)
	return created, true
}

// activeRegionLocked returns the rectangle the current mode edits.
func (s *Session) activeRegionLocked() (*geometry.Rect, error) {
	switch s.mode {
	case ModeCrop:
		if s.crop == nil {
			return nil, ErrNoRegion
		}
		return s.crop, nil
	case ModeMerge:
		if s.placement == nil {
			return nil, ErrNoSecondary
		}
		return &s.placement.Region, nil
	}
	return nil, ErrInvalidMode
}
