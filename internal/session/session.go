// Package session holds the authoritative editor state: the active edit mode,
// the primary asset, the media library, the crop region or overlay placement,
// and the edit time range. Every mutation goes through the session so the
// invariants between those pieces hold on each transition; the geometry,
// region and overlay packages stay pure and are invoked from here.
package session

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/clipforge/clipforge-engine/internal/geometry"
	"github.com/clipforge/clipforge-engine/internal/jobs"
	"github.com/clipforge/clipforge-engine/internal/media"
	"github.com/clipforge/clipforge-engine/internal/overlay"
	"github.com/clipforge/clipforge-engine/internal/region"
)

// Mode selects which edit the session is preparing.
type Mode string

const (
	ModeCrop  Mode = "crop"
	ModeMerge Mode = "merge"
)

// EditRange is the primary-timeline slice an edit applies to. Start is
// strictly before End; both lie within [0, primary duration]. In merge mode
// End is derived from the secondary's duration and is not independently
// editable.
type EditRange struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// DragPayload is the typed transfer object carried by a drag gesture from a
// library list item to a drop target. It replaces ambient shared drag state:
// the payload is scoped to one interaction and cannot go stale.
type DragPayload struct {
	AssetID string `json:"asset_id"`
}

var (
	ErrAssetNotFound = errors.New("asset not found in library")
	ErrNoPrimary     = errors.New("no primary asset selected")
	ErrNoSecondary   = errors.New("no secondary asset selected")
	ErrNoRegion      = errors.New("no region defined")
	ErrWrongMode     = errors.New("operation not valid in current mode")
	ErrSameAsPrimary = errors.New("secondary asset cannot be the primary asset")
	ErrInvalidMode   = errors.New("unknown edit mode")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNoGesture     = errors.New("no gesture in progress")
)

// Session is the top-level coordinator. All exported methods are safe for
// concurrent use; state is only read or written under the session lock, so
// no two gesture updates for the same rectangle can interleave.
type Session struct {
	mu     sync.Mutex
	logger *slog.Logger

	library *media.Library
	orch    *jobs.Orchestrator

	mode      Mode
	primary   *media.Asset
	preview   *media.Asset
	secondary *media.Asset

	crop      *geometry.Rect
	placement *overlay.Placement
	editRange EditRange

	viewportWidth  int
	viewportHeight int
	mapper         geometry.FrameMapper
	controller     *region.Controller

	playhead float64
	playing  bool

	drafts map[string]string

	outputFormat string
}

func New(library *media.Library, orch *jobs.Orchestrator, outputFormat string, logger *slog.Logger) *Session {
	if outputFormat == "" {
		outputFormat = "mp4"
	}
	s := &Session{
		logger:       logger,
		library:      library,
		orch:         orch,
		mode:         ModeCrop,
		controller:   region.NewController(geometry.Bounds{}, geometry.MinRegionSize),
		drafts:       make(map[string]string),
		outputFormat: outputFormat,
	}
	if orch != nil {
		orch.OnResult(s.acceptResult)
		orch.OnFailure(s.recordFailure)
	}
	return s
}

func (s *Session) Library() *media.Library {
	return s.library
}

// AddAsset inserts an uploaded asset into the library. The first asset added
// becomes the preview so the UI has something to show.
func (s *Session) AddAsset(a *media.Asset) {
	s.library.Add(a)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.preview == nil {
		s.preview = a
	}
}

// SetPrimary makes an asset the primary video. Switching primary resets the
// edit range to the full duration and clears the crop region, the overlay
// placement and the selected secondary asset.
func (s *Session) SetPrimary(assetID string) error {
	asset := s.library.Get(assetID)
	if asset == nil {
		return ErrAssetNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.primary = asset
	s.preview = asset
	s.secondary = nil
	s.crop = nil
	s.placement = nil
	s.editRange = EditRange{Start: 0, End: asset.Duration}
	s.playhead = 0
	s.playing = false

	bounds := geometry.Bounds{Width: asset.Width, Height: asset.Height}
	s.controller.SetBounds(bounds)
	s.rebuildMapperLocked()

	// Crop mode keeps its "a region always exists" shape after the switch.
	if s.mode == ModeCrop {
		s.crop = &geometry.Rect{X: 0, Y: 0, Width: asset.Width, Height: asset.Height}
	}

	s.logger.Info("primary asset selected", "asset_id", asset.ID, "duration_s", asset.Duration)
	return nil
}

// SetMode switches between crop and merge editing. Merge clears any crop
// region; crop clears the overlay state and seeds a full-frame default
// region when none exists yet.
func (s *Session) SetMode(mode Mode) error {
	if mode != ModeCrop && mode != ModeMerge {
		return ErrInvalidMode
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == mode {
		return nil
	}
	s.mode = mode
	s.controller.End()
	s.clearDraftsLocked()

	switch mode {
	case ModeMerge:
		s.crop = nil
	case ModeCrop:
		s.secondary = nil
		s.placement = nil
		if s.crop == nil && s.primary != nil {
			s.crop = &geometry.Rect{X: 0, Y: 0, Width: s.primary.Width, Height: s.primary.Height}
		}
	}

	s.logger.Info("edit mode switched", "mode", mode)
	return nil
}

// SelectSecondary buffers an asset as the overlay video. Only valid in merge
// mode, and the primary cannot overlay itself. The seeded placement sits at
// the origin, sized to the secondary's native size capped at a quarter of the
// primary per dimension.
func (s *Session) SelectSecondary(assetID string) error {
	asset := s.library.Get(assetID)
	if asset == nil {
		return ErrAssetNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeMerge {
		return ErrWrongMode
	}
	if s.primary == nil {
		return ErrNoPrimary
	}
	if asset.ID == s.primary.ID {
		return ErrSameAsPrimary
	}

	s.secondary = asset
	s.placement = &overlay.Placement{
		Region:  s.defaultPlacementRegionLocked(asset),
		AssetID: asset.ID,
		Start:   s.editRange.Start,
	}
	s.deriveMergeEndLocked()

	s.logger.Info("secondary asset selected", "asset_id", asset.ID)
	return nil
}

// HandleDrop consumes a drag payload on a drop target. In merge mode the
// dragged asset becomes the secondary; in crop mode it is shown in preview.
func (s *Session) HandleDrop(payload DragPayload) error {
	s.mu.Lock()
	mode := s.mode
	s.mu.Unlock()

	if mode == ModeMerge {
		return s.SelectSecondary(payload.AssetID)
	}
	return s.SetPreview(payload.AssetID)
}

// RemoveOverlay clears the selected secondary asset and its placement.
func (s *Session) RemoveOverlay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secondary = nil
	s.placement = nil
}

// SetPreview shows an asset in the preview player without changing the
// primary selection.
func (s *Session) SetPreview(assetID string) error {
	asset := s.library.Get(assetID)
	if asset == nil {
		return ErrAssetNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.preview = asset
	return nil
}

// DeleteAsset removes an asset from the library and repairs every selection
// that referenced it: the primary selection is cleared entirely, a deleted
// secondary drops the overlay placement, and a deleted preview falls back to
// the primary.
func (s *Session) DeleteAsset(assetID string) error {
	if !s.library.Remove(assetID) {
		return ErrAssetNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.primary != nil && s.primary.ID == assetID {
		s.primary = nil
		s.preview = nil
		s.secondary = nil
		s.crop = nil
		s.placement = nil
		s.editRange = EditRange{}
		s.playhead = 0
		s.playing = false
		s.controller.SetBounds(geometry.Bounds{})
		s.rebuildMapperLocked()
		s.logger.Info("primary asset deleted", "asset_id", assetID)
		return nil
	}

	if s.secondary != nil && s.secondary.ID == assetID {
		s.secondary = nil
		s.placement = nil
	}
	if s.preview != nil && s.preview.ID == assetID {
		s.preview = s.primary
	}

	s.logger.Info("asset deleted", "asset_id", assetID)
	return nil
}

// acceptResult appends a completed job's asset to the library. The source
// asset is never replaced.
func (s *Session) acceptResult(asset *media.Asset) {
	s.library.Add(asset)
	s.logger.Info("result asset added to library",
		"asset_id", asset.ID,
		"provenance", asset.Provenance,
		"parent_id", asset.ParentID,
	)
}

// recordFailure logs a failed job. The failure is fatal to that operation
// only; session state is untouched.
func (s *Session) recordFailure(jobID, message string) {
	s.logger.Warn("processing job failed", "job_id", jobID, "error", message)
}

func (s *Session) defaultPlacementRegionLocked(secondary *media.Asset) geometry.Rect {
	w := secondary.Width
	h := secondary.Height
	if quarter := s.primary.Width / 4; w > quarter {
		w = quarter
	}
	if quarter := s.primary.Height / 4; h > quarter {
		h = quarter
	}
	bounds := geometry.Bounds{Width: s.primary.Width, Height: s.primary.Height}
	return geometry.ClampRect(geometry.Rect{X: 0, Y: 0, Width: w, Height: h}, bounds, geometry.MinRegionSize)
}

func (s *Session) rebuildMapperLocked() {
	nativeW, nativeH := 0, 0
	if s.primary != nil {
		nativeW, nativeH = s.primary.Width, s.primary.Height
	}
	s.mapper = geometry.NewFrameMapper(nativeW, nativeH, s.viewportWidth, s.viewportHeight)
}
