package processing

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clipforge/clipforge-engine/internal/geometry"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHTTPService_SubmitCrop(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{"taskId": "task-9", "status": "pending"})
	}))
	defer srv.Close()

	svc := NewHTTPService(srv.URL, "secret", testLogger())
	region := geometry.Rect{X: 10, Y: 20, Width: 300, Height: 200}
	id, err := svc.SubmitCrop(context.Background(), CropJobRequest{
		AssetID:      "f1",
		StartTime:    5,
		EndTime:      15,
		CropArea:     &region,
		OutputFormat: "mp4",
	})
	if err != nil {
		t.Fatalf("SubmitCrop: %v", err)
	}
	if id != "task-9" {
		t.Errorf("job id = %q, want task-9", id)
	}
	if gotPath != "/api/video/crop" {
		t.Errorf("path = %q, want /api/video/crop", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("auth header = %q, want bearer token", gotAuth)
	}
	if gotBody["file_id"] != "f1" || gotBody["output_format"] != "mp4" {
		t.Errorf("request body = %v", gotBody)
	}
	if _, ok := gotBody["crop_area"]; !ok {
		t.Error("crop_area missing from request body")
	}
}

func TestHTTPService_SubmitMerge(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{"taskId": "task-10", "status": "pending"})
	}))
	defer srv.Close()

	svc := NewHTTPService(srv.URL, "", testLogger())
	id, err := svc.SubmitMerge(context.Background(), MergeJobRequest{
		PrimaryAssetID:   "main",
		SecondaryAssetID: "ovl",
		StartTime:        0,
		EndTime:          10,
		Position:         geometry.Rect{X: 0, Y: 0, Width: 480, Height: 270},
		OutputFormat:     "mp4",
	})
	if err != nil {
		t.Fatalf("SubmitMerge: %v", err)
	}
	if id != "task-10" {
		t.Errorf("job id = %q, want task-10", id)
	}
	if gotPath != "/api/video/overlay" {
		t.Errorf("path = %q, want /api/video/overlay", gotPath)
	}
	if gotBody["main_file_id"] != "main" || gotBody["overlay_file_id"] != "ovl" {
		t.Errorf("request body = %v", gotBody)
	}
}

func TestHTTPService_SubmitRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid time range", http.StatusBadRequest)
	}))
	defer srv.Close()

	svc := NewHTTPService(srv.URL, "", testLogger())
	_, err := svc.SubmitCrop(context.Background(), CropJobRequest{AssetID: "f1", StartTime: 0, EndTime: 5})

	var se *SubmitError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want SubmitError", err)
	}
	if se.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", se.StatusCode)
	}
	if se.IsRetryable() {
		t.Error("400 should not be retryable")
	}
}

func TestHTTPService_SubmitMissingJobID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "pending"})
	}))
	defer srv.Close()

	svc := NewHTTPService(srv.URL, "", testLogger())
	if _, err := svc.SubmitCrop(context.Background(), CropJobRequest{AssetID: "f1", EndTime: 5}); err == nil {
		t.Error("response without a job id should be an error")
	}
}

func TestHTTPService_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/task/task-9" {
			t.Errorf("path = %q, want /api/task/task-9", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"taskId":       "task-9",
			"status":       "completed",
			"progress":     100,
			"resultFileId": "result-3",
		})
	}))
	defer srv.Close()

	svc := NewHTTPService(srv.URL, "", testLogger())
	state, err := svc.Status(context.Background(), "task-9")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if state.Status != StatusCompleted || state.ResultAssetID != "result-3" {
		t.Errorf("state = %+v", state)
	}
}

func TestHTTPService_StatusServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewHTTPService(srv.URL, "", testLogger())
	if _, err := svc.Status(context.Background(), "task-9"); err == nil {
		t.Error("5xx status fetch should return an error")
	}
}

func TestStubService_Lifecycle(t *testing.T) {
	svc := NewStubService(testLogger())
	id, err := svc.SubmitCrop(context.Background(), CropJobRequest{AssetID: "f1", EndTime: 5})
	if err != nil {
		t.Fatalf("SubmitCrop: %v", err)
	}

	st, err := svc.Status(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if st.Status != StatusProcessing {
		t.Errorf("first poll status = %q, want processing", st.Status)
	}

	svc.Status(context.Background(), id)
	st, _ = svc.Status(context.Background(), id)
	if st.Status != StatusCompleted || st.ResultAssetID != id {
		t.Errorf("third poll = %+v, want completed with result %q", st, id)
	}
}

func TestStubService_FailJobs(t *testing.T) {
	svc := NewStubService(testLogger())
	svc.PollsToComplete = 0
	svc.FailJobs = true

	id, _ := svc.SubmitCrop(context.Background(), CropJobRequest{AssetID: "f1", EndTime: 5})
	st, err := svc.Status(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if st.Status != StatusFailed || st.Error == "" {
		t.Errorf("state = %+v, want failed with message", st)
	}
}

func TestStubService_RejectsEmptyIDs(t *testing.T) {
	svc := NewStubService(testLogger())
	if _, err := svc.SubmitCrop(context.Background(), CropJobRequest{}); err == nil {
		t.Error("empty file_id should be rejected")
	}
	if _, err := svc.SubmitMerge(context.Background(), MergeJobRequest{PrimaryAssetID: "a"}); err == nil {
		t.Error("missing overlay_file_id should be rejected")
	}
	if _, err := svc.Status(context.Background(), "nope"); err == nil {
		t.Error("unknown task should be an error")
	}
}
