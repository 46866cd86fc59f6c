package processing

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// StubService is an in-process fake for offline runs and tests. Every
// accepted job advances a fixed number of processing polls and then
// completes with a synthetic result asset ID.
type StubService struct {
	mu     sync.Mutex
	jobs   map[string]*stubJob
	logger *slog.Logger

	// PollsToComplete is how many Status calls a job reports processing
	// before it completes. Defaults to 2.
	PollsToComplete int
	// FailJobs makes every submitted job terminate as failed.
	FailJobs bool
}

type stubJob struct {
	polls int
}

func NewStubService(logger *slog.Logger) *StubService {
	return &StubService{
		jobs:            make(map[string]*stubJob),
		logger:          logger,
		PollsToComplete: 2,
	}
}

func (s *StubService) SubmitCrop(ctx context.Context, req CropJobRequest) (string, error) {
	if req.AssetID == "" {
		return "", &SubmitError{StatusCode: 400, Body: "file_id is required"}
	}
	return s.accept("crop")
}

func (s *StubService) SubmitMerge(ctx context.Context, req MergeJobRequest) (string, error) {
	if req.PrimaryAssetID == "" || req.SecondaryAssetID == "" {
		return "", &SubmitError{StatusCode: 400, Body: "main_file_id and overlay_file_id are required"}
	}
	return s.accept("merge")
}

func (s *StubService) accept(kind string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.jobs[id] = &stubJob{}
	if s.logger != nil {
		s.logger.Info("processing stub: job accepted", "job_id", id, "kind", kind)
	}
	return id, nil
}

func (s *StubService) Status(ctx context.Context, jobID string) (*JobState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("task not found: %s", jobID)
	}

	job.polls++
	if job.polls <= s.PollsToComplete {
		progress := job.polls * 100 / (s.PollsToComplete + 1)
		return &JobState{JobID: jobID, Status: StatusProcessing, Progress: progress}, nil
	}

	if s.FailJobs {
		return &JobState{JobID: jobID, Status: StatusFailed, Error: "Processing failed"}, nil
	}
	return &JobState{
		JobID:         jobID,
		Status:        StatusCompleted,
		Progress:      100,
		ResultAssetID: jobID,
	}, nil
}
