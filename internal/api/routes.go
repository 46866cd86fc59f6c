package api

import (
	"net/http"
	"time"

	"github.com/clipforge/clipforge-engine/internal/jobs"
	"github.com/go-chi/chi/v5"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.AuthToken, cfg.Logger))

		r.Get("/status", statusHandler(cfg))

		r.Get("/library", listAssetsHandler(cfg))
		r.Post("/library/upload", uploadHandler(cfg))
		r.Delete("/library/{id}", deleteAssetHandler(cfg))
		r.Get("/library/{id}/url", assetURLHandler(cfg))

		r.Get("/session", sessionStateHandler(cfg))
		r.Post("/session/primary", setPrimaryHandler(cfg))
		r.Post("/session/mode", setModeHandler(cfg))
		r.Post("/session/secondary", selectSecondaryHandler(cfg))
		r.Delete("/session/secondary", removeOverlayHandler(cfg))
		r.Post("/session/preview", setPreviewHandler(cfg))
		r.Post("/session/drop", dropHandler(cfg))
		r.Post("/session/viewport", viewportHandler(cfg))
		r.Post("/session/gesture/begin", gestureBeginHandler(cfg))
		r.Post("/session/gesture/update", gestureUpdateHandler(cfg))
		r.Post("/session/gesture/end", gestureEndHandler(cfg))
		r.Post("/session/click", clickHandler(cfg))
		r.Post("/session/region/draft", regionDraftHandler(cfg))
		r.Post("/session/region/commit", regionCommitHandler(cfg))
		r.Post("/session/range", setRangeHandler(cfg))
		r.Post("/session/range/mark-start", markStartHandler(cfg))
		r.Post("/session/range/mark-end", markEndHandler(cfg))
		r.Post("/session/tick", tickHandler(cfg))
		r.Post("/session/step", stepHandler(cfg))
		r.Post("/session/submit", submitHandler(cfg))

		r.Get("/jobs", listJobsHandler(cfg))
		r.Get("/jobs/{id}", getJobHandler(cfg))
	})

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := int64(time.Since(cfg.StartTime).Seconds())
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: cfg.Version,
			UptimeS: uptime,
		})
	}
}

func statusHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := cfg.Orchestrator.Jobs()

		state := "idle"
		var activeJob *JobResponse
		jobsRunning := 0
		lastError := ""

		for _, j := range all {
			if j.Status == jobs.StatusPending || j.Status == jobs.StatusProcessing {
				state = "processing"
				if activeJob == nil {
					resp := JobToResponse(j)
					activeJob = &resp
				}
				jobsRunning++
			}
			if j.Status == jobs.StatusFailed && lastError == "" {
				lastError = j.Error
			}
		}
		if lastError != "" && state == "idle" {
			state = "error"
		}

		WriteJSON(w, http.StatusOK, StatusResponse{
			State:       state,
			LastError:   lastError,
			AssetsCount: cfg.Session.Library().Count(),
			JobsRunning: jobsRunning,
			ActiveJob:   activeJob,
		})
	}
}

func listJobsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := cfg.Orchestrator.Jobs()
		resp := JobsResponse{Jobs: make([]JobResponse, len(all))}
		for i, j := range all {
			resp.Jobs[i] = JobToResponse(j)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func getJobHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		job, ok := cfg.Orchestrator.Job(id)
		if !ok {
			WriteError(w, http.StatusNotFound, "job not found", "NOT_FOUND")
			return
		}
		WriteJSON(w, http.StatusOK, JobToResponse(job))
	}
}
