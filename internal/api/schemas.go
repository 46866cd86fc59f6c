package api

import (
	"time"

	"github.com/clipforge/clipforge-engine/internal/geometry"
	"github.com/clipforge/clipforge-engine/internal/jobs"
	"github.com/clipforge/clipforge-engine/internal/media"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
}

type StatusResponse struct {
	State       string       `json:"state"`
	LastError   string       `json:"last_error,omitempty"`
	AssetsCount int          `json:"assets_count"`
	JobsRunning int          `json:"jobs_running"`
	ActiveJob   *JobResponse `json:"active_job,omitempty"`
}

type AssetResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Size       int64   `json:"size"`
	Duration   float64 `json:"duration_seconds"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	FPS        float64 `json:"fps"`
	FrameCount int     `json:"frame_count"`
	Format     string  `json:"format"`
	Provenance string  `json:"provenance"`
	ParentID   string  `json:"parent_id,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

type AssetsResponse struct {
	Assets []AssetResponse `json:"assets"`
}

type AssetURLResponse struct {
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
}

type JobResponse struct {
	ID            string `json:"id"`
	Kind          string `json:"kind"`
	Status        string `json:"status"`
	Progress      int    `json:"progress"`
	ResultAssetID string `json:"result_asset_id,omitempty"`
	Error         string `json:"error,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type JobsResponse struct {
	Jobs []JobResponse `json:"jobs"`
}

type SelectAssetRequest struct {
	AssetID string `json:"asset_id"`
}

type SetModeRequest struct {
	Mode string `json:"mode"`
}

type ViewportRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type GestureBeginRequest struct {
	Kind   string  `json:"kind"`
	Handle string  `json:"handle,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type PointerRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type RegionResponse struct {
	Region geometry.Rect `json:"region"`
}

type RegionDraftRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type RangeRequest struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type TickRequest struct {
	Time          float64 `json:"time"`
	Playing       bool    `json:"playing"`
	SecondaryTime float64 `json:"secondary_time"`
}

type StepRequest struct {
	Frames int `json:"frames"`
}

type StepResponse struct {
	Playhead float64 `json:"playhead"`
}

func AssetToResponse(a *media.Asset) AssetResponse {
	return AssetResponse{
		ID:         a.ID,
		Name:       a.Name,
		Size:       a.Size,
		Duration:   a.Duration,
		Width:      a.Width,
		Height:     a.Height,
		FPS:        a.FPS,
		FrameCount: a.FrameCount,
		Format:     a.Format,
		Provenance: string(a.Provenance),
		ParentID:   a.ParentID,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
}

func JobToResponse(j *jobs.Job) JobResponse {
	return JobResponse{
		ID:            j.ID,
		Kind:          string(j.Kind),
		Status:        string(j.Status),
		Progress:      j.Progress,
		ResultAssetID: j.ResultAssetID,
		Error:         j.Error,
		CreatedAt:     j.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     j.UpdatedAt.Format(time.RFC3339),
	}
}
