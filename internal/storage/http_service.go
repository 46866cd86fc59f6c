package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"
)

// HTTPService talks to a real Media Storage Service over HTTP.
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
			// Uploads can be large; give them room.
			Timeout: 5 * time.Minute,
		},
		logger: logger,
	}
}

func (s *HTTPService) Upload(ctx context.Context, filename string, r io.Reader, size int64) (*UploadResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create multipart field: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("buffer upload body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/video/upload", &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	s.logger.Info("uploading to storage service",
		"filename", filename,
		"size_bytes", size,
	)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UploadError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var result UploadResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	if result.AssetID == "" {
		return nil, fmt.Errorf("upload response missing file id")
	}

	s.logger.Info("upload accepted",
		"asset_id", result.AssetID,
		"width", result.Width,
		"height", result.Height,
		"duration_s", result.DurationSeconds,
	)
	return &result, nil
}

// ResolveURL returns the playable address for an asset. The storage service
// streams the file itself; the engine only hands out the location.
func (s *HTTPService) ResolveURL(assetID string) (string, error) {
	if assetID == "" {
		return "", fmt.Errorf("asset id is required")
	}
	return fmt.Sprintf("%s/api/video/file/%s", s.baseURL, assetID), nil
}
