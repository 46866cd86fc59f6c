package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/clipforge/clipforge-engine/internal/media"
	"github.com/google/uuid"
)

// StubService is an in-process fake for offline runs and tests. It drains
// the upload body and fabricates plausible probe metadata.
type StubService struct {
	logger *slog.Logger
}

func NewStubService(logger *slog.Logger) *StubService {
	return &StubService{logger: logger}
}

func (s *StubService) Upload(ctx context.Context, filename string, r io.Reader, size int64) (*UploadResult, error) {
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return nil, fmt.Errorf("read upload body: %w", err)
	}
	if size == 0 {
		size = n
	}

	format := media.FormatFromFilename(filename)
	if format == "" {
		format = "mp4"
	}

	result := &UploadResult{
		AssetID:         uuid.NewString(),
		Filename:        filename,
		Width:           1920,
		Height:          1080,
		FPS:             30,
		FrameCount:      3600,
		DurationSeconds: 120,
		Format:          format,
	}
	if s.logger != nil {
		s.logger.Info("storage stub: upload accepted", "asset_id", result.AssetID, "filename", filename, "bytes", n)
	}
	return result, nil
}

func (s *StubService) ResolveURL(assetID string) (string, error) {
	if assetID == "" {
		return "", fmt.Errorf("asset id is required")
	}
	return "stub://video/" + assetID, nil
}
