package vectordb

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// searchHit is the JSON shape of one search result.
type searchHit struct {
	VideoID     string  `json:"video_id"`
	VideoURL    string  `json:"video_url"`
	Title       string  `json:"title"`
	ChannelName string  `json:"channel_name,omitempty"`
	PublishedAt string  `json:"published_at,omitempty"`
	Snippet     string  `json:"snippet"`
	Similarity  float32 `json:"similarity"`
}

// RegisterRoutes mounts the semantic search endpoint on the given router.
func RegisterRoutes(r chi.Router, store VectorStore) {
	r.Get("/api/search", handleSearch(store))
}

func handleSearch(store VectorStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		query := q.Get("q")
		if query == "" {
			writeError(w, http.StatusBadRequest, "q is required")
			return
		}

		limit := 10
		if v := q.Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 50 {
				limit = n
			}
		}

		var filter *SearchFilter
		if channelID := q.Get("channel_id"); channelID != "" {
			filter = &SearchFilter{ChannelID: &channelID}
		}

		results, err := store.Search(r.Context(), query, limit, filter)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		hits := make([]searchHit, len(results))
		for i, res := range results {
			hits[i] = searchHit{
				VideoID:     res.Document.Metadata.VideoID,
				VideoURL:    res.Document.Metadata.VideoURL,
				Title:       res.Document.Metadata.Title,
				ChannelName: res.Document.Metadata.ChannelName,
				PublishedAt: res.Document.Metadata.PublishedAt,
				Snippet:     snippet(res.Document.Content, 280),
				Similarity:  res.Similarity,
			}
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"query":   query,
			"results": hits,
		})
	}
}

func snippet(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
