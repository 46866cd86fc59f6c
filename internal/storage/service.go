// Package storage is the client side of the external Media Storage Service:
// it accepts uploads, probes container metadata, and resolves asset IDs to
// playable addresses. The engine never holds media bytes itself.
package storage

import (
	"context"
	"fmt"
	"io"
)

// UploadResult is the probed metadata the service returns for an accepted
// upload.
type UploadResult struct {
	AssetID         string  `json:"file_id"`
	Filename        string  `json:"filename"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	FPS             float64 `json:"fps"`
	FrameCount      int     `json:"frame_count"`
	DurationSeconds float64 `json:"duration_seconds"`
	Format          string  `json:"format"`
}

// Service is what the upload flow and playback URL resolution talk to.
type Service interface {
	Upload(ctx context.Context, filename string, r io.Reader, size int64) (*UploadResult, error)
	ResolveURL(assetID string) (string, error)
}

// UploadError is a rejection from the storage service.
type UploadError struct {
	StatusCode int
	Body       string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("storage upload failed: HTTP %d: %s", e.StatusCode, e.Body)
}

// IsRetryable returns true for server errors (5xx). Client errors (4xx) are
// considered permanent.
func (e *UploadError) IsRetryable() bool {
	return e.StatusCode >= 500
}
