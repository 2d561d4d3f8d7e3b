package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/davidroeth/podsight/internal/analysis"
	"github.com/davidroeth/podsight/internal/db"
	"github.com/davidroeth/podsight/internal/discovery"
	"github.com/davidroeth/podsight/internal/youtube"
)

func setupPages(t *testing.T) (*chi.Mux, *analysis.Store, *discovery.Store) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	analyses := analysis.NewStore(database)
	discovered := discovery.NewStore(database)

	r := chi.NewRouter()
	New(analyses, discovered, 3).RegisterRoutes(r)
	return r, analyses, discovered
}

func TestPagesServed(t *testing.T) {
	r, _, _ := setupPages(t)

	for path, marker := range map[string]string{
		"/":          "analyzeForm",
		"/discover":  "Discover",
		"/dashboard": "Dashboard",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d", path, rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("%s: content type = %q", path, ct)
		}
		if !strings.Contains(rec.Body.String(), marker) {
			t.Errorf("%s: page is missing %q", path, marker)
		}
	}
}

func TestIndexFormBehaviors(t *testing.T) {
	r, _, _ := setupPages(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	body := rec.Body.String()

	for name, marker := range map[string]string{
		"prefill focuses submit":       "submitBtn.focus()",
		"shortcut needs input focus":   "document.activeElement === input",
		"invalid URL blocks via alert": `alert("Please enter a valid YouTube URL.")`,
	} {
		if !strings.Contains(body, marker) {
			t.Errorf("index page missing %s (%q)", name, marker)
		}
	}
}

func TestIndexCarriesBeamsContainer(t *testing.T) {
	r, _, _ := setupPages(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "beams-background-container") {
		t.Error("index page has no beams container")
	}
}

func TestStats(t *testing.T) {
	r, analyses, discovered := setupPages(t)
	ctx := context.Background()

	if err := analyses.Save(ctx, analysis.Analysis{
		VideoID: "statsvideo1", VideoURL: "u", Title: "t", Analysis: "a", Success: true,
	}); err != nil {
		t.Fatalf("saving analysis: %v", err)
	}
	if err := analyses.Save(ctx, analysis.Analysis{
		VideoID: "statsvideo2", VideoURL: "u", Title: "t", Analysis: "", Success: false,
	}); err != nil {
		t.Fatalf("saving analysis: %v", err)
	}
	if err := discovered.Save(ctx, []youtube.Video{{
		VideoID: "statsvideo1", Title: "t", URL: "u", ChannelName: "c",
	}}); err != nil {
		t.Fatalf("saving discovered: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var stats statsResponse
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatalf("decoding stats: %v", err)
	}
	if stats.TotalAnalyses != 2 || stats.SuccessfulAnalyses != 1 {
		t.Errorf("analysis counts = %d/%d, want 2/1", stats.TotalAnalyses, stats.SuccessfulAnalyses)
	}
	if stats.DiscoveredVideos != 1 {
		t.Errorf("discovered = %d, want 1", stats.DiscoveredVideos)
	}
	if stats.WatchedChannels != 3 {
		t.Errorf("channels = %d, want 3", stats.WatchedChannels)
	}
}
