// Package processing is the client side of the external Media Processing
// Service: the engine submits crop and merge jobs to it and polls their
// status. No pixel work happens here — the service owns decoding, frame
// operations and encoding.
package processing

import (
	"context"
	"fmt"

	"github.com/clipforge/clipforge-engine/internal/geometry"
)

// Wire statuses reported by the service. Pending and processing are both
// in-flight but are distinct on the wire.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// CropJobRequest asks the service to trim a time range from one asset,
// optionally restricted to a pixel region.
type CropJobRequest struct {
	AssetID      string         `json:"file_id"`
	StartTime    float64        `json:"start_time"`
	EndTime      float64        `json:"end_time"`
	CropArea     *geometry.Rect `json:"crop_area,omitempty"`
	OutputFormat string         `json:"output_format"`
}

// MergeJobRequest asks the service to composite a secondary asset onto a
// primary one at a fixed position over a time range.
type MergeJobRequest struct {
	PrimaryAssetID   string        `json:"main_file_id"`
	SecondaryAssetID string        `json:"overlay_file_id"`
	StartTime        float64       `json:"start_time"`
	EndTime          float64       `json:"end_time"`
	Position         geometry.Rect `json:"position"`
	OutputFormat     string        `json:"output_format"`
}

// JobState is one snapshot of a remote job.
type JobState struct {
	JobID         string `json:"taskId"`
	Status        string `json:"status"`
	Progress      int    `json:"progress"`
	ResultAssetID string `json:"resultFileId,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Service is what the job orchestrator talks to.
type Service interface {
	SubmitCrop(ctx context.Context, req CropJobRequest) (string, error)
	SubmitMerge(ctx context.Context, req MergeJobRequest) (string, error)
	Status(ctx context.Context, jobID string) (*JobState, error)
}

// SubmitError is a synchronous rejection from the service.
type SubmitError struct {
	StatusCode int
	Body       string
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("processing submit failed: HTTP %d: %s", e.StatusCode, e.Body)
}

// IsRetryable returns true for server errors (5xx). Client errors (4xx) are
// considered permanent.
func (e *SubmitError) IsRetryable() bool {
	return e.StatusCode >= 500
}
