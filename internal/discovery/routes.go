package discovery

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts discovery endpoints under /api on the given router.
func RegisterRoutes(r chi.Router, service *Service) {
	r.Get("/api/discover", handleDiscover(service))
	r.Get("/api/recent", handleRecent(service))
	r.Post("/api/batch-analyze", handleBatchAnalyze(service))
	r.Get("/api/batch/{batchID}/progress", handleBatchProgress(service))
}

func handleDiscover(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		daysBack, _ := strconv.Atoi(r.URL.Query().Get("days_back"))
		videos, err := service.Discover(r.Context(), daysBack)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if videos == nil {
			videos = []DiscoveredVideo{}
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"videos": videos,
			"count":  len(videos),
		})
	}
}

func handleRecent(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit < 1 {
			limit = 20
		}
		videos, err := service.Recent(r.Context(), limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if videos == nil {
			videos = []DiscoveredVideo{}
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"videos": videos,
			"count":  len(videos),
		})
	}
}

func handleBatchAnalyze(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			DaysBack int `json:"days_back"`
		}
		// The body is optional; an empty or absent one keeps the defaults.
		json.NewDecoder(r.Body).Decode(&body)

		batchID, queued, err := service.StartBatch(r.Context(), body.DaysBack)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if queued == 0 {
			writeJSON(w, http.StatusOK, map[string]any{
				"queued":  0,
				"message": "no unanalyzed videos",
			})
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"batch_id": batchID,
			"queued":   queued,
		})
	}
}

func handleBatchProgress(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		batchID := chi.URLParam(r, "batchID")

		status, ok := service.BatchStatus(batchID)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown batch")
			return
		}

		writeJSON(w, http.StatusOK, status)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
