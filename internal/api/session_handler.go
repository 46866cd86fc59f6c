package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clipforge/clipforge-engine/internal/jobs"
	"github.com/clipforge/clipforge-engine/internal/processing"
	"github.com/clipforge/clipforge-engine/internal/region"
	"github.com/clipforge/clipforge-engine/internal/session"
)

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body", "VALIDATION")
		return false
	}
	return true
}

func sessionStateHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, cfg.Session.Snapshot())
	}
}

func setPrimaryHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SelectAssetRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := cfg.Session.SetPrimary(req.AssetID); err != nil {
			writeSessionError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, cfg.Session.Snapshot())
	}
}

func setModeHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SetModeRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := cfg.Session.SetMode(session.Mode(req.Mode)); err != nil {
			writeSessionError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, cfg.Session.Snapshot())
	}
}

func selectSecondaryHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SelectAssetRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := cfg.Session.SelectSecondary(req.AssetID); err != nil {
			writeSessionError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, cfg.Session.Snapshot())
	}
}

func removeOverlayHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg.Session.RemoveOverlay()
		WriteJSON(w, http.StatusOK, cfg.Session.Snapshot())
	}
}

func setPreviewHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SelectAssetRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := cfg.Session.SetPreview(req.AssetID); err != nil {
			writeSessionError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, cfg.Session.Snapshot())
	}
}

// dropHandler consumes the typed drag payload carried by a library item
// dropped onto the preview area.
func dropHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload session.DragPayload
		if !decodeBody(w, r, &payload) {
			return
		}
		if err := cfg.Session.HandleDrop(payload); err != nil {
			writeSessionError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, cfg.Session.Snapshot())
	}
}

func viewportHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ViewportRequest
		if !decodeBody(w, r, &req) {
			return
		}
		cfg.Session.SetViewport(req.Width, req.Height)
		w.WriteHeader(http.StatusNoContent)
	}
}

func gestureBeginHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GestureBeginRequest
		if !decodeBody(w, r, &req) {
			return
		}
		err := cfg.Session.BeginGesture(region.Kind(req.Kind), region.Handle(req.Handle), req.X, req.Y)
		if err != nil {
			writeSessionError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func gestureUpdateHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PointerRequest
		if !decodeBody(w, r, &req) {
			return
		}
		rect, err := cfg.Session.UpdateGesture(req.X, req.Y)
		if err != nil {
			writeSessionError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, RegionResponse{Region: rect})
	}
}

func gestureEndHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg.Session.EndGesture()
		w.WriteHeader(http.StatusNoContent)
	}
}

func clickHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PointerRequest
		if !decodeBody(w, r, &req) {
			return
		}
		rect, created := cfg.Session.ClickAt(req.X, req.Y)
		if !created {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		WriteJSON(w, http.StatusCreated, RegionResponse{Region: rect})
	}
}

func regionDraftHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegionDraftRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := cfg.Session.SetRegionDraft(req.Field, req.Value); err != nil {
			writeSessionError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func regionCommitHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rect, err := cfg.Session.CommitRegionDrafts()
		if err != nil {
			writeSessionError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, RegionResponse{Region: rect})
	}
}

func setRangeHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RangeRequest
		if !decodeBody(w, r, &req) {
			return
		}
		rng, err := cfg.Session.SetRange(req.Start, req.End)
		if err != nil {
			writeSessionError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, rng)
	}
}

func markStartHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rng, err := cfg.Session.MarkRangeStart()
		if err != nil {
			writeSessionError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, rng)
	}
}

func markEndHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rng, err := cfg.Session.MarkRangeEnd()
		if err != nil {
			writeSessionError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, rng)
	}
}

func tickHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TickRequest
		if !decodeBody(w, r, &req) {
			return
		}
		directive := cfg.Session.Tick(req.Time, req.Playing, req.SecondaryTime)
		WriteJSON(w, http.StatusOK, directive)
	}
}

func stepHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StepRequest
		if !decodeBody(w, r, &req) {
			return
		}
		WriteJSON(w, http.StatusOK, StepResponse{Playhead: cfg.Session.StepFrame(req.Frames)})
	}
}

func submitHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		job, err := cfg.Session.Submit(r.Context())
		if err != nil {
			var se *processing.SubmitError
			switch {
			case errors.As(err, &se):
				WriteError(w, http.StatusBadGateway, se.Body, "SUBMIT_REJECTED")
			case errors.Is(err, jobs.ErrInvalidRange), errors.Is(err, jobs.ErrNoAsset):
				WriteError(w, http.StatusBadRequest, err.Error(), "VALIDATION")
			default:
				writeSessionError(w, err)
			}
			return
		}
		WriteJSON(w, http.StatusAccepted, JobToResponse(job))
	}
}
