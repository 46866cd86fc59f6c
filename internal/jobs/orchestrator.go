// Package jobs tracks asynchronous processing jobs: submit an edit request
// to the processing service, poll its status on a fixed interval, and
// materialize the completed result as a new library asset. Per job the state
// machine is pending -> processing -> completed|failed; terminal states are
// never left.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/clipforge/clipforge-engine/internal/geometry"
	"github.com/clipforge/clipforge-engine/internal/media"
	"github.com/clipforge/clipforge-engine/internal/processing"
)

// DefaultPollInterval is the fixed delay between status polls. No backoff,
// no attempt cap: jobs are expected to terminate, and a stuck job is a
// service-side failure reported as failed, never inferred locally from a
// timeout.
const DefaultPollInterval = time.Second

// Kind is the edit operation a job performs.
type Kind string

const (
	KindCrop  Kind = "crop"
	KindMerge Kind = "merge"
)

// Status is a job's lifecycle state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Job is one tracked processing request. Created on submission, mutated only
// by poll responses.
type Job struct {
	ID            string    `json:"id"`
	Kind          Kind      `json:"kind"`
	Status        Status    `json:"status"`
	Progress      int       `json:"progress"`
	ResultAssetID string    `json:"result_asset_id,omitempty"`
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CropRequest carries everything needed to submit a crop job and later build
// its result asset.
type CropRequest struct {
	Asset        *media.Asset
	StartTime    float64
	EndTime      float64
	Region       *geometry.Rect
	OutputFormat string
}

// MergeRequest carries everything needed to submit a merge job and later
// build its result asset.
type MergeRequest struct {
	Primary      *media.Asset
	Secondary    *media.Asset
	StartTime    float64
	EndTime      float64
	Placement    geometry.Rect
	OutputFormat string
}

var (
	ErrNoAsset      = errors.New("job requires a source asset")
	ErrInvalidRange = errors.New("start time must be before end time")
)

// ResultSink receives the materialized asset of a completed job.
type ResultSink func(asset *media.Asset)

// FailureSink receives the service-provided message of a failed job.
type FailureSink func(jobID, message string)

// Orchestrator owns all tracked jobs and their poll loops. Each accepted job
// polls under its own context; Close cancels every loop deterministically.
// The remote job is never told to stop — abandoning a job only stops
// fetching its status.
type Orchestrator struct {
	proc         processing.Service
	logger       *slog.Logger
	pollInterval time.Duration
	now          func() time.Time

	mu        sync.Mutex
	jobs      map[string]*Job
	cancels   map[string]context.CancelFunc
	onResult  ResultSink
	onFailure FailureSink
	closed    bool

	wg sync.WaitGroup
}

func NewOrchestrator(proc processing.Service, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		proc:         proc,
		logger:       logger,
		pollInterval: DefaultPollInterval,
		now:          time.Now,
		jobs:         make(map[string]*Job),
		cancels:      make(map[string]context.CancelFunc),
	}
}

// SetPollInterval overrides the fixed poll delay. Intended for tests.
func (o *Orchestrator) SetPollInterval(d time.Duration) {
	if d > 0 {
		o.pollInterval = d
	}
}

// OnResult registers the sink that receives completed-job assets.
func (o *Orchestrator) OnResult(sink ResultSink) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onResult = sink
}

// OnFailure registers the sink that receives failed-job messages.
func (o *Orchestrator) OnFailure(sink FailureSink) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onFailure = sink
}

// SubmitCrop sends a crop request. A synchronous rejection from the service
// returns an error and tracks nothing; on acceptance the returned job is
// already registered and polling.
func (o *Orchestrator) SubmitCrop(ctx context.Context, req CropRequest) (*Job, error) {
	if req.Asset == nil {
		return nil, ErrNoAsset
	}
	if req.StartTime < 0 || req.StartTime >= req.EndTime {
		return nil, ErrInvalidRange
	}

	remoteID, err := o.proc.SubmitCrop(ctx, processing.CropJobRequest{
		AssetID:      req.Asset.ID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		CropArea:     req.Region,
		OutputFormat: req.OutputFormat,
	})
	if err != nil {
		return nil, err
	}

	build := func(resultID string) *media.Asset {
		return o.buildCropResult(req, resultID)
	}
	return o.track(remoteID, KindCrop, build)
}

// SubmitMerge sends a merge request; same fail-fast contract as SubmitCrop.
func (o *Orchestrator) SubmitMerge(ctx context.Context, req MergeRequest) (*Job, error) {
	if req.Primary == nil || req.Secondary == nil {
		return nil, ErrNoAsset
	}
	if req.StartTime < 0 || req.StartTime >= req.EndTime {
		return nil, ErrInvalidRange
	}

	remoteID, err := o.proc.SubmitMerge(ctx, processing.MergeJobRequest{
		PrimaryAssetID:   req.Primary.ID,
		SecondaryAssetID: req.Secondary.ID,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Position:         req.Placement,
		OutputFormat:     req.OutputFormat,
	})
	if err != nil {
		return nil, err
	}

	build := func(resultID string) *media.Asset {
		return o.buildMergeResult(req, resultID)
	}
	return o.track(remoteID, KindMerge, build)
}

func (o *Orchestrator) track(remoteID string, kind Kind, build func(resultID string) *media.Asset) (*Job, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil, fmt.Errorf("orchestrator is closed")
	}

	now := o.now()
	job := &Job{
		ID:        remoteID,
		Kind:      kind,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	o.jobs[job.ID] = job

	pollCtx, cancel := context.WithCancel(context.Background())
	o.cancels[job.ID] = cancel

	o.wg.Add(1)
	go o.pollLoop(pollCtx, job.ID, build)

	o.logger.Info("job submitted", "job_id", job.ID, "kind", kind)
	return o.snapshotLocked(job), nil
}

// pollLoop fetches status every pollInterval until the job reaches a
// terminal state, the context is cancelled, or a transport error occurs. A
// transport error stops the loop rather than retrying: a response could not
// be interpreted, so the job is left as-is and the stall is logged.
func (o *Orchestrator) pollLoop(ctx context.Context, jobID string, build func(resultID string) *media.Asset) {
	defer o.wg.Done()
	defer o.releaseCancel(jobID)

	ticker := time.NewTicker(o.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			o.logger.Info("job polling stopped", "job_id", jobID)
			return
		case <-ticker.C:
			state, err := o.proc.Status(ctx, jobID)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				o.logger.Error("job status poll failed, stopping poll loop", "job_id", jobID, "error", err)
				return
			}
			if done := o.applyState(jobID, state, build); done {
				return
			}
		}
	}
}

func (o *Orchestrator) applyState(jobID string, state *processing.JobState, build func(resultID string) *media.Asset) bool {
	o.mu.Lock()
	job, ok := o.jobs[jobID]
	if !ok {
		o.mu.Unlock()
		return true
	}

	job.UpdatedAt = o.now()

	switch state.Status {
	case processing.StatusPending:
		job.Status = StatusPending
		job.Progress = clampProgress(state.Progress)
		o.mu.Unlock()
		return false

	case processing.StatusProcessing:
		job.Status = StatusProcessing
		job.Progress = clampProgress(state.Progress)
		o.mu.Unlock()
		return false

	case processing.StatusCompleted:
		job.Status = StatusCompleted
		job.Progress = 100
		resultID := state.ResultAssetID
		if resultID == "" {
			resultID = jobID
		}
		asset := build(resultID)
		job.ResultAssetID = asset.ID
		sink := o.onResult
		o.mu.Unlock()

		o.logger.Info("job completed", "job_id", jobID, "result_asset_id", asset.ID)
		if sink != nil {
			sink(asset)
		}
		return true

	case processing.StatusFailed:
		msg := state.Error
		if msg == "" {
			msg = "processing failed"
		}
		job.Status = StatusFailed
		job.Error = msg
		sink := o.onFailure
		o.mu.Unlock()

		o.logger.Warn("job failed", "job_id", jobID, "error", msg)
		if sink != nil {
			sink(jobID, msg)
		}
		return true

	default:
		o.mu.Unlock()
		o.logger.Warn("unknown job status", "job_id", jobID, "status", state.Status)
		return false
	}
}

func (o *Orchestrator) buildCropResult(req CropRequest, resultID string) *media.Asset {
	duration := req.EndTime - req.StartTime
	width, height := req.Asset.Width, req.Asset.Height
	topLeftX, topLeftY := 0, 0
	if req.Region != nil {
		width, height = req.Region.Width, req.Region.Height
		topLeftX, topLeftY = req.Region.X, req.Region.Y
	}

	return &media.Asset{
		ID:         resultID,
		Name:       resultName(KindCrop, topLeftX, topLeftY, o.now(), req.StartTime),
		Duration:   duration,
		Width:      width,
		Height:     height,
		FPS:        req.Asset.FPS,
		FrameCount: int(math.Round(duration * req.Asset.FPS)),
		Format:     req.OutputFormat,
		SourceRef:  resultID,
		Provenance: media.ProvenanceCropResult,
		ParentID:   req.Asset.ID,
		CreatedAt:  o.now(),
	}
}

func (o *Orchestrator) buildMergeResult(req MergeRequest, resultID string) *media.Asset {
	duration := req.EndTime - req.StartTime

	return &media.Asset{
		ID:         resultID,
		Name:       resultName(KindMerge, req.Placement.X, req.Placement.Y, o.now(), req.StartTime),
		Duration:   duration,
		Width:      req.Primary.Width,
		Height:     req.Primary.Height,
		FPS:        req.Primary.FPS,
		FrameCount: int(math.Round(duration * req.Primary.FPS)),
		Format:     req.OutputFormat,
		SourceRef:  resultID,
		Provenance: media.ProvenanceMergeResult,
		ParentID:   req.Primary.ID,
		CreatedAt:  o.now(),
	}
}

// resultName synthesizes a deterministic, human-readable name so generated
// assets stay distinguishable in the library.
func resultName(kind Kind, x, y int, at time.Time, startTime float64) string {
	name := fmt.Sprintf("%s_%dx%d_%s_at%.1fs", kind, x, y, at.Format("20060102-150405"), startTime)
	return media.SanitizeName(name, 120)
}

// Job returns a snapshot of one tracked job.
func (o *Orchestrator) Job(id string) (*Job, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	job, ok := o.jobs[id]
	if !ok {
		return nil, false
	}
	return o.snapshotLocked(job), true
}

// Jobs returns snapshots of all tracked jobs, newest first.
func (o *Orchestrator) Jobs() []*Job {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]*Job, 0, len(o.jobs))
	for _, job := range o.jobs {
		out = append(out, o.snapshotLocked(job))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// InFlight reports how many jobs are still pending or processing.
func (o *Orchestrator) InFlight() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	n := 0
	for _, job := range o.jobs {
		if job.Status == StatusPending || job.Status == StatusProcessing {
			n++
		}
	}
	return n
}

// Close stops every poll loop and waits for them to exit. Remote jobs keep
// running; only status fetching stops.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	o.closed = true
	for _, cancel := range o.cancels {
		cancel()
	}
	o.mu.Unlock()

	o.wg.Wait()
}

func (o *Orchestrator) releaseCancel(jobID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if cancel, ok := o.cancels[jobID]; ok {
		cancel()
		delete(o.cancels, jobID)
	}
}

func (o *Orchestrator) snapshotLocked(job *Job) *Job {
	dup := *job
	return &dup
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
