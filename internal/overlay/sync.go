// Package overlay keeps a secondary video's transport locked to the primary
// video's playhead. Every primary playback tick is evaluated into a
// Directive: whether the secondary is visible, whether it must seek, and
// whether it should be playing. The evaluation is stateless — visibility
// falls out of the window formulas on every tick, so scrubbing backwards past
// the window and forward again needs no entered/exited bookkeeping.
package overlay

import "github.com/clipforge/clipforge-engine/internal/geometry"

// SeekTolerance is the drift allowed while the primary is actively playing
// before the secondary is re-seeked. Forcing an exact seek on every tick
// causes visible stutter; 0.3s bounds the drift instead. Fixed constant for
// now; making it track variable frame rates is an open question.
const SeekTolerance = 0.3

// Placement positions a secondary asset over the primary: a rectangle in the
// primary's native pixel space plus the primary-timeline offset at which the
// secondary starts playing.
type Placement struct {
	Region  geometry.Rect `json:"region"`
	AssetID string        `json:"asset_id"`
	Start   float64       `json:"start"`
}

// Directive tells the secondary transport what to do after one primary tick.
type Directive struct {
	Visible bool    `json:"visible"`
	Seek    bool    `json:"seek"`
	SeekTo  float64 `json:"seek_to"`
	Play    bool    `json:"play"`
}

// End returns where the overlay window closes on the primary timeline.
func End(start, secondaryDuration, primaryDuration float64) float64 {
	end := start + secondaryDuration
	if end > primaryDuration {
		end = primaryDuration
	}
	return end
}

// Evaluate computes the transport directive for one primary playback tick.
// The visibility window [start, end) is half-open: visible at exactly start,
// hidden at exactly end. While the primary is paused or scrubbed the
// secondary is pinned to the expected time on every tick; while playing it is
// only re-seeked when drift exceeds SeekTolerance, and its own clock runs
// otherwise. Play state mirrors the primary only while visible.
func Evaluate(primaryTime float64, playing bool, secondaryTime float64, start, secondaryDuration, primaryDuration float64) Directive {
	end := End(start, secondaryDuration, primaryDuration)
	if primaryTime < start || primaryTime >= end {
		return Directive{}
	}

	expected := primaryTime - start
	d := Directive{Visible: true, Play: playing}

	if !playing {
		d.Seek = true
		d.SeekTo = expected
		return d
	}

	drift := secondaryTime - expected
	if drift < 0 {
		drift = -drift
	}
	if drift > SeekTolerance {
		d.Seek = true
		d.SeekTo = expected
	}
	return d
}
