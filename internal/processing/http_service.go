package processing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// HTTPService talks to a real Media Processing Service over HTTP.
type HTTPService struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewHTTPService(baseURL, token string, logger *slog.Logger) *HTTPService {
	return &HTTPService{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

func (s *HTTPService) SubmitCrop(ctx context.Context, req CropJobRequest) (string, error) {
	s.logger.Info("submitting crop job",
		"asset_id", req.AssetID,
		"start_time", req.StartTime,
		"end_time", req.EndTime,
		"has_region", req.CropArea != nil,
	)
	return s.submit(ctx, "/api/video/crop", req)
}

func (s *HTTPService) SubmitMerge(ctx context.Context, req MergeJobRequest) (string, error) {
	s.logger.Info("submitting merge job",
		"primary_asset_id", req.PrimaryAssetID,
		"secondary_asset_id", req.SecondaryAssetID,
		"start_time", req.StartTime,
		"end_time", req.EndTime,
	)
	return s.submit(ctx, "/api/video/overlay", req)
}

func (s *HTTPService) submit(ctx context.Context, path string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal job request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &SubmitError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var state JobState
	if err := json.Unmarshal(respBody, &state); err != nil {
		return "", fmt.Errorf("decode submit response: %w", err)
	}
	if state.JobID == "" {
		return "", fmt.Errorf("submit response missing job id")
	}
	return state.JobID, nil
}

func (s *HTTPService) Status(ctx context.Context, jobID string) (*JobState, error) {
	url := fmt.Sprintf("%s/api/task/%s", s.baseURL, jobID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status fetch failed: HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	var state JobState
	if err := json.Unmarshal(respBody, &state); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}
	return &state, nil
}
