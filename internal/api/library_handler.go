package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/clipforge/clipforge-engine/internal/media"
	"github.com/clipforge/clipforge-engine/internal/session"
	"github.com/clipforge/clipforge-engine/internal/storage"
	"github.com/go-chi/chi/v5"
)

func listAssetsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assets := cfg.Session.Library().List()
		resp := AssetsResponse{Assets: make([]AssetResponse, len(assets))}
		for i, a := range assets {
			resp.Assets[i] = AssetToResponse(a)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

// uploadHandler accepts a multipart upload, validates it locally, forwards
// the bytes to the storage service and registers the probed asset in the
// library. Invalid files never reach the network.
func uploadHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			WriteError(w, http.StatusBadRequest, "no file uploaded", "VALIDATION")
			return
		}
		defer file.Close()

		if err := media.ValidateUpload(header.Filename, header.Size); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "VALIDATION")
			return
		}

		result, err := cfg.Storage.Upload(r.Context(), header.Filename, file, header.Size)
		if err != nil {
			cfg.Logger.Error("upload failed", "filename", header.Filename, "error", err)
			var ue *storage.UploadError
			if errors.As(err, &ue) && ue.StatusCode < 500 {
				WriteError(w, http.StatusBadRequest, ue.Body, "UPLOAD_REJECTED")
				return
			}
			WriteError(w, http.StatusBadGateway, "storage service unavailable", "STORAGE_ERROR")
			return
		}

		asset := &media.Asset{
			ID:         result.AssetID,
			Name:       media.SanitizeName(result.Filename, 120),
			Size:       header.Size,
			Duration:   result.DurationSeconds,
			Width:      result.Width,
			Height:     result.Height,
			FPS:        result.FPS,
			FrameCount: result.FrameCount,
			Format:     result.Format,
			SourceRef:  result.AssetID,
			Provenance: media.ProvenanceUpload,
			CreatedAt:  time.Now(),
		}
		cfg.Session.AddAsset(asset)

		WriteJSON(w, http.StatusCreated, AssetToResponse(asset))
	}
}

func deleteAssetHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := cfg.Session.DeleteAsset(id); err != nil {
			writeSessionError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func assetURLHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		asset := cfg.Session.Library().Get(id)
		if asset == nil {
			WriteError(w, http.StatusNotFound, "asset not found", "NOT_FOUND")
			return
		}

		url, err := cfg.Storage.ResolveURL(asset.SourceRef)
		if err != nil {
			WriteError(w, http.StatusBadGateway, "could not resolve asset url", "STORAGE_ERROR")
			return
		}
		WriteJSON(w, http.StatusOK, AssetURLResponse{
			URL:         url,
			ContentType: media.ContentType(asset.Format),
		})
	}
}

// writeSessionError maps session sentinel errors onto HTTP statuses.
func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrAssetNotFound):
		WriteError(w, http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, session.ErrInvalidInput), errors.Is(err, session.ErrInvalidMode):
		WriteError(w, http.StatusBadRequest, err.Error(), "VALIDATION")
	case errors.Is(err, session.ErrWrongMode),
		errors.Is(err, session.ErrSameAsPrimary),
		errors.Is(err, session.ErrNoPrimary),
		errors.Is(err, session.ErrNoSecondary),
		errors.Is(err, session.ErrNoRegion),
		errors.Is(err, session.ErrNoGesture):
		WriteError(w, http.StatusConflict, err.Error(), "CONFLICT")
	default:
		WriteError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
	}
}
