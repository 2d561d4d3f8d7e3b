// Package web serves the embedded HTML pages and the dashboard stats API.
package web

import (
	_ "embed"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davidroeth/podsight/internal/analysis"
	"github.com/davidroeth/podsight/internal/discovery"
)

//go:embed index.html
var indexHTML []byte

//go:embed discover.html
var discoverHTML []byte

//go:embed dashboard.html
var dashboardHTML []byte

// Pages serves the browser-facing pages.
type Pages struct {
	analyses   *analysis.Store
	discovered *discovery.Store
	channels   int
}

// New creates the page handlers. channels is the number of watched channels,
// shown on the dashboard.
func New(analyses *analysis.Store, discovered *discovery.Store, channels int) *Pages {
	return &Pages{analyses: analyses, discovered: discovered, channels: channels}
}

// RegisterRoutes mounts the pages and the stats endpoint on the given router.
func (p *Pages) RegisterRoutes(r chi.Router) {
	r.Get("/", servePage(indexHTML))
	r.Get("/discover", servePage(discoverHTML))
	r.Get("/dashboard", servePage(dashboardHTML))
	r.Get("/api/dashboard/stats", p.handleStats)
}

func servePage(page []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}
}

// statsResponse is the JSON response for the stats endpoint.
type statsResponse struct {
	TotalAnalyses      int `json:"total_analyses"`
	SuccessfulAnalyses int `json:"successful_analyses"`
	DiscoveredVideos   int `json:"discovered_videos"`
	AnalyzedDiscovered int `json:"analyzed_discovered"`
	WatchedChannels    int `json:"watched_channels"`
}

func (p *Pages) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	total, successful, err := p.analyses.Counts(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	discovered, analyzed, err := p.discovered.Counts(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		TotalAnalyses:      total,
		SuccessfulAnalyses: successful,
		DiscoveredVideos:   discovered,
		AnalyzedDiscovered: analyzed,
		WatchedChannels:    p.channels,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
