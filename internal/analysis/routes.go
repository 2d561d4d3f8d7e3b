package analysis

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/davidroeth/podsight/internal/youtube"
)

// RegisterRoutes mounts analysis endpoints under /api on the given router.
func RegisterRoutes(r chi.Router, store *Store, service *Service) {
	r.Post("/api/analyze", handleAnalyze(service))
	r.Get("/api/results/{videoID}", handleResult(store))
	r.Get("/api/analyses", handleList(store))
	r.Get("/api/analyses/recent", handleRecent(store))
	r.Get("/api/analyses/page", handlePage(store))
}

type analyzeRequest struct {
	VideoURL string `json:"video_url"`
}

func handleAnalyze(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if !youtube.ValidURL(req.VideoURL) {
			writeError(w, http.StatusBadRequest, "invalid YouTube URL")
			return
		}

		a, err := service.AnalyzeURL(r.Context(), req.VideoURL)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, ErrVideoUnresolvable) {
				status = http.StatusBadRequest
			}
			writeError(w, status, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, a)
	}
}

func handleResult(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		videoID := chi.URLParam(r, "videoID")

		a, err := store.Get(r.Context(), videoID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if a == nil {
			writeError(w, http.StatusNotFound, "no analysis for this video")
			return
		}

		writeJSON(w, http.StatusOK, a)
	}
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		analyses, err := store.List(r.Context(), r.URL.Query().Get("channel_id"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if analyses == nil {
			analyses = []Analysis{}
		}

		writeJSON(w, http.StatusOK, analyses)
	}
}

func handleRecent(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := 7
		if v := r.URL.Query().Get("days"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				days = n
			}
		}

		analyses, err := store.Recent(r.Context(), days)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if analyses == nil {
			analyses = []Analysis{}
		}

		writeJSON(w, http.StatusOK, analyses)
	}
}

func handlePage(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		page := 1
		if v := q.Get("page"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				page = n
			}
		}
		pageSize := 10
		if v := q.Get("page_size"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
				pageSize = n
			}
		}

		result, err := store.Paginated(r.Context(), page, pageSize, q.Get("channel_id"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, result)
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
