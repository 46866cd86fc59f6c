package session

import (
	"context"

	"github.com/clipforge/clipforge-engine/internal/geometry"
	"github.com/clipforge/clipforge-engine/internal/jobs"
	"github.com/clipforge/clipforge-engine/internal/media"
	"github.com/clipforge/clipforge-engine/internal/overlay"
)

// Submit hands the current edit parameters to the job orchestrator. The
// session state is snapshotted under the lock and released before the network
// call, so a slow service cannot block pointer or playback events.
func (s *Session) Submit(ctx context.Context) (*jobs.Job, error) {
	s.mu.Lock()

	if s.primary == nil {
		s.mu.Unlock()
		return nil, ErrNoPrimary
	}

	mode := s.mode
	primary := s.primary
	secondary := s.secondary
	editRange := s.editRange
	format := s.outputFormat

	var cropRegion *geometry.Rect
	if s.crop != nil {
		r := *s.crop
		cropRegion = &r
	}
	var placement *overlay.Placement
	if s.placement != nil {
		p := *s.placement
		placement = &p
	}
	s.mu.Unlock()

	switch mode {
	case ModeMerge:
		if secondary == nil || placement == nil {
			return nil, ErrNoSecondary
		}
		return s.orch.SubmitMerge(ctx, jobs.MergeRequest{
			Primary:      primary,
			Secondary:    secondary,
			StartTime:    editRange.Start,
			EndTime:      editRange.End,
			Placement:    placement.Region,
			OutputFormat: format,
		})
	default:
		return s.orch.SubmitCrop(ctx, jobs.CropRequest{
			Asset:        primary,
			StartTime:    editRange.Start,
			EndTime:      editRange.End,
			Region:       cropRegion,
			OutputFormat: format,
		})
	}
}

// State is a read-only snapshot of the session for the UI.
type State struct {
	Mode           Mode               `json:"mode"`
	Primary        *media.Asset       `json:"primary,omitempty"`
	Preview        *media.Asset       `json:"preview,omitempty"`
	Secondary      *media.Asset       `json:"secondary,omitempty"`
	CropRegion     *geometry.Rect     `json:"crop_region,omitempty"`
	Placement      *overlay.Placement `json:"placement,omitempty"`
	Range          EditRange          `json:"range"`
	Playhead       float64            `json:"playhead"`
	Playing        bool               `json:"playing"`
	ViewportWidth  int                `json:"viewport_width"`
	ViewportHeight int                `json:"viewport_height"`
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Mode:           s.mode,
		Primary:        s.primary,
		Preview:        s.preview,
		Secondary:      s.secondary,
		Range:          s.editRange,
		Playhead:       s.playhead,
		Playing:        s.playing,
		ViewportWidth:  s.viewportWidth,
		ViewportHeight: s.viewportHeight,
	}
	if s.crop != nil {
		r := *s.crop
		st.CropRegion = &r
	}
	if s.placement != nil {
		p := *s.placement
		st.Placement = &p
	}
	return st
}
