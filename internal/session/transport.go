package session

import (
	"github.com/clipforge/clipforge-engine/internal/overlay"
)

// FrameStep is the playhead increment used by frame stepping. Fixed at 1/30s
// regardless of the source's real frame rate; making it track variable frame
// rates is an open question.
const FrameStep = 1.0 / 30.0

// Tick processes one primary playback tick. It must be called at the cadence
// of the video's visual progress, not a coarser timer, or the overlay seek
// tolerance loses its meaning. secondaryTime is the overlay video's own
// current position as reported by its player.
func (s *Session) Tick(primaryTime float64, playing bool, secondaryTime float64) overlay.Directive {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.primary == nil {
		return overlay.Directive{}
	}

	s.playhead = clampTime(primaryTime, s.primary.Duration)
	s.playing = playing

	if s.placement == nil || s.secondary == nil {
		return overlay.Directive{}
	}
	return overlay.Evaluate(
		s.playhead,
		playing,
		secondaryTime,
		s.placement.Start,
		s.secondary.Duration,
		s.primary.Duration,
	)
}

// StepFrame nudges the playhead by n frame steps (negative steps backwards)
// and pauses playback. Returns the new playhead position.
func (s *Session) StepFrame(n int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.primary == nil {
		return 0
	}
	s.playhead = clampTime(s.playhead+float64(n)*FrameStep, s.primary.Duration)
	s.playing = false
	return s.playhead
}

// SetRange updates the edit range. Out-of-range values are clamped into
// [0, duration]. In merge mode the end is derived from the secondary's
// duration and the given end is ignored.
func (s *Session) SetRange(start, end float64) (EditRange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.primary == nil {
		return EditRange{}, ErrNoPrimary
	}

	dur := s.primary.Duration
	start = clampTime(start, dur)

	if s.mode == ModeMerge {
		s.editRange.Start = start
		if s.placement != nil {
			s.placement.Start = start
		}
		s.deriveMergeEndLocked()
		return s.editRange, nil
	}

	end = clampTime(end, dur)
	if start >= end {
		return EditRange{}, ErrInvalidInput
	}
	s.editRange = EditRange{Start: start, End: end}
	return s.editRange, nil
}

// MarkRangeStart sets the range start to the current playhead, clamped below
// the end. In merge mode the end is recomputed from the secondary's duration.
func (s *Session) MarkRangeStart() (EditRange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.primary == nil {
		return EditRange{}, ErrNoPrimary
	}

	start := s.playhead
	if s.mode == ModeMerge {
		s.editRange.Start = clampTime(start, s.primary.Duration)
		if s.placement != nil {
			s.placement.Start = s.editRange.Start
		}
		s.deriveMergeEndLocked()
		return s.editRange, nil
	}

	// Keep the invariant start < end by backing off one frame step.
	if start > s.editRange.End-FrameStep {
		start = s.editRange.End - FrameStep
	}
	if start < 0 {
		start = 0
	}
	s.editRange.Start = start
	return s.editRange, nil
}

// MarkRangeEnd sets the range end to the current playhead, clamped above the
// start. Crop mode only: in merge mode the end is derived.
func (s *Session) MarkRangeEnd() (EditRange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.primary == nil {
		return EditRange{}, ErrNoPrimary
	}
	if s.mode != ModeCrop {
		return EditRange{}, ErrWrongMode
	}

	end := clampTime(s.playhead, s.primary.Duration)
	if end < s.editRange.Start+FrameStep {
		end = s.editRange.Start + FrameStep
	}
	if end > s.primary.Duration {
		end = s.primary.Duration
	}
	s.editRange.End = end
	return s.editRange, nil
}

// deriveMergeEndLocked recomputes the merge-mode end from the secondary's
// duration: min(start + secondaryDuration, primaryDuration).
func (s *Session) deriveMergeEndLocked() {
	if s.primary == nil {
		return
	}
	if s.secondary == nil {
		s.editRange.End = s.primary.Duration
		return
	}
	s.editRange.End = overlay.End(s.editRange.Start, s.secondary.Duration, s.primary.Duration)
}

func clampTime(t, duration float64) float64 {
	if t < 0 {
		return 0
	}
	if t > duration {
		return duration
	}
	return t
}
