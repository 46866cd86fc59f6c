// Package media defines the asset model for the engine's library: uploaded
// videos and the results materialized from completed processing jobs. Assets
// are immutable once created; an edit never mutates its source, it appends a
// new asset with provenance pointing back at the parent.
package media

import (
	"time"

	"github.com/google/uuid"
)

// Provenance records how an asset entered the library.
type Provenance string

const (
	ProvenanceUpload      Provenance = "upload"
	ProvenanceCropResult  Provenance = "crop-result"
	ProvenanceMergeResult Provenance = "merge-result"
)

// Asset is one entry in the media library.
type Asset struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Size       int64      `json:"size"`
	Duration   float64    `json:"duration_seconds"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	FPS        float64    `json:"fps"`
	FrameCount int        `json:"frame_count"`
	Format     string     `json:"format"`
	SourceRef  string     `json:"source_ref"`
	Provenance Provenance `json:"provenance"`
	ParentID   string     `json:"parent_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewID returns a fresh asset/job identifier.
func NewID() string {
	return uuid.NewString()
}

// ContentType maps a container format to its MIME type for playback.
func ContentType(format string) string {
	switch format {
	case "mov":
		return "video/quicktime"
	case "avi":
		return "video/x-msvideo"
	case "webm":
		return "video/webm"
	case "mkv":
		return "video/x-matroska"
	default:
		return "video/mp4"
	}
}
