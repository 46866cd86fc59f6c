package session

import (
	"fmt"
	"math"
	"strconv"

	"github.com/clipforge/clipforge-engine/internal/geometry"
)

// Region numeric fields are edited in two phases: each keystroke lands in a
// provisional draft, and only CommitRegionDrafts parses, clamps and applies
// the values onto the canonical rectangle. A half-typed value therefore never
// becomes canonical, and a malformed commit leaves both the rectangle and the
// drafts untouched.

var draftFields = map[string]bool{
	"x":      true,
	"y":      true,
	"width":  true,
	"height": true,
}

// SetRegionDraft stages a provisional value for one region field.
func (s *Session) SetRegionDraft(field, raw string) error {
	if !draftFields[field] {
		return fmt.Errorf("%w: unknown region field %q", ErrInvalidInput, field)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[field] = raw
	return nil
}

// RegionDrafts returns the staged field values.
func (s *Session) RegionDrafts() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.drafts))
	for k, v := range s.drafts {
		out[k] = v
	}
	return out
}

// CommitRegionDrafts applies all staged values onto the active region.
// Values are parsed as numbers, rounded, and run through the clamp policy;
// out-of-range values are clamped rather than rejected, while malformed ones
// fail the whole commit with the input left unmodified.
func (s *Session) CommitRegionDrafts() (geometry.Rect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, err := s.activeRegionLocked()
	if err != nil {
		return geometry.Rect{}, err
	}
	if len(s.drafts) == 0 {
		return *target, nil
	}

	next := *target
	for field, raw := range s.drafts {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return geometry.Rect{}, fmt.Errorf("%w: %s=%q is not a number", ErrInvalidInput, field, raw)
		}
		n := int(math.Round(v))
		switch field {
		case "x":
			next.X = n
		case "y":
			next.Y = n
		case "width":
			next.Width = n
		case "height":
			next.Height = n
		}
	}

	next = geometry.ClampRect(next, s.controller.Bounds(), geometry.MinRegionSize)
	*target = next
	s.clearDraftsLocked()
	return next, nil
}

// DiscardRegionDrafts drops all staged values without applying them.
func (s *Session) DiscardRegionDrafts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearDraftsLocked()
}

func (s *Session) clearDraftsLocked() {
	for k := range s.drafts {
		delete(s.drafts, k)
	}
}
