package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/davidroeth/podsight/internal/analyzer"
	"github.com/davidroeth/podsight/internal/db"
	"github.com/davidroeth/podsight/internal/llm"
	"github.com/davidroeth/podsight/internal/youtube"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func sampleAnalysis(videoID string) Analysis {
	return Analysis{
		VideoID:       videoID,
		VideoURL:      youtube.WatchURL(videoID),
		Title:         "Markets This Week",
		Analysis:      "**Summary** at (01:23)",
		ChannelID:     "UC123",
		ChannelName:   "Finance Talk",
		PublishedAt:   "2026-08-20T10:00:00Z",
		VideoDuration: 1500,
		Success:       true,
		CreatedAt:     time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC),
	}
}

func TestStoreSaveAndGet(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	want := sampleAnalysis("abc123DEF45")
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("saving: %v", err)
	}

	got, err := store.Get(ctx, "abc123DEF45")
	if err != nil {
		t.Fatalf("retrieving: %v", err)
	}
	if got == nil {
		t.Fatal("expected analysis, got nil")
	}
	if got.Title != want.Title || got.Analysis != want.Analysis {
		t.Errorf("round trip mismatch: got %q / %q", got.Title, got.Analysis)
	}
	if !got.Success {
		t.Error("expected success flag to survive round trip")
	}
	if got.ChannelID != "UC123" {
		t.Errorf("channel_id = %q, want UC123", got.ChannelID)
	}
}

func TestStoreGetMissing(t *testing.T) {
	store := setupStore(t)

	got, err := store.Get(context.Background(), "nosuchvideo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing video, got %+v", got)
	}
}

func TestStoreSaveReplaces(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	a := sampleAnalysis("vid1vid1vid")
	if err := store.Save(ctx, a); err != nil {
		t.Fatalf("saving: %v", err)
	}
	a.Analysis = "revised summary"
	if err := store.Save(ctx, a); err != nil {
		t.Fatalf("re-saving: %v", err)
	}

	got, err := store.Get(ctx, "vid1vid1vid")
	if err != nil {
		t.Fatalf("retrieving: %v", err)
	}
	if got.Analysis != "revised summary" {
		t.Errorf("analysis = %q, want revised summary", got.Analysis)
	}

	all, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 row after replace, got %d", len(all))
	}
}

func TestStoreListFiltersByChannel(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	a := sampleAnalysis("chanAvideo1")
	b := sampleAnalysis("chanBvideo1")
	b.ChannelID = "UC999"
	for _, v := range []Analysis{a, b} {
		if err := store.Save(ctx, v); err != nil {
			t.Fatalf("saving: %v", err)
		}
	}

	got, err := store.List(ctx, "UC999")
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(got) != 1 || got[0].VideoID != "chanBvideo1" {
		t.Errorf("channel filter returned %+v", got)
	}
}

func TestStorePaginated(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		a := sampleAnalysis(fmt.Sprintf("video%06d", i))
		a.PublishedAt = fmt.Sprintf("2026-08-%02dT10:00:00Z", 10+i)
		if err := store.Save(ctx, a); err != nil {
			t.Fatalf("saving: %v", err)
		}
	}
	// A row with no publish date should sort after everything dated.
	undated := sampleAnalysis("undatedvid1")
	undated.PublishedAt = ""
	if err := store.Save(ctx, undated); err != nil {
		t.Fatalf("saving undated: %v", err)
	}

	page, err := store.Paginated(ctx, 1, 4, "")
	if err != nil {
		t.Fatalf("paginating: %v", err)
	}
	if page.TotalCount != 6 {
		t.Errorf("total = %d, want 6", page.TotalCount)
	}
	if page.TotalPages != 2 {
		t.Errorf("total pages = %d, want 2", page.TotalPages)
	}
	if !page.HasNext || page.HasPrev {
		t.Errorf("page 1 flags wrong: next=%v prev=%v", page.HasNext, page.HasPrev)
	}
	if len(page.Analyses) != 4 {
		t.Fatalf("page size = %d, want 4", len(page.Analyses))
	}
	if page.Analyses[0].VideoID != "video000004" {
		t.Errorf("first item = %s, want newest dated video", page.Analyses[0].VideoID)
	}

	last, err := store.Paginated(ctx, 2, 4, "")
	if err != nil {
		t.Fatalf("paginating: %v", err)
	}
	if last.HasNext || !last.HasPrev {
		t.Errorf("page 2 flags wrong: next=%v prev=%v", last.HasNext, last.HasPrev)
	}
	if got := last.Analyses[len(last.Analyses)-1].VideoID; got != "undatedvid1" {
		t.Errorf("last item = %s, want the undated video", got)
	}
}

func TestStoreRecent(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	fresh := sampleAnalysis("freshvideo1")
	fresh.CreatedAt = time.Now().Add(-24 * time.Hour)
	stale := sampleAnalysis("stalevideo1")
	stale.CreatedAt = time.Now().Add(-30 * 24 * time.Hour)
	for _, v := range []Analysis{fresh, stale} {
		if err := store.Save(ctx, v); err != nil {
			t.Fatalf("saving: %v", err)
		}
	}

	got, err := store.Recent(ctx, 7)
	if err != nil {
		t.Fatalf("querying recent: %v", err)
	}
	if len(got) != 1 || got[0].VideoID != "freshvideo1" {
		t.Errorf("recent returned %+v, want only the fresh video", got)
	}
}

type stubProvider struct {
	response string
	err      error
	calls    int
}

func (p *stubProvider) Complete(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &llm.CompletionResponse{Content: p.response}, nil
}

func (p *stubProvider) Name() string { return "stub" }

type stubLookup struct {
	video *youtube.Video
	err   error
}

func (l *stubLookup) VideoInfo(_ context.Context, _ string) (*youtube.Video, error) {
	return l.video, l.err
}

type recordingMarker struct{ marked []string }

func (m *recordingMarker) MarkAnalyzed(_ context.Context, videoID string) error {
	m.marked = append(m.marked, videoID)
	return nil
}

func setupService(t *testing.T, provider *stubProvider, lookup VideoLookup, marker VideoMarker) (*Service, *Store) {
	t.Helper()
	store := setupStore(t)
	an := analyzer.New(provider, "gemini-2.5-flash")
	return NewService(store, lookup, an, marker, nil), store
}

func TestAnalyzeURLCachesResults(t *testing.T) {
	provider := &stubProvider{response: "**Outlook** bullish (01:00)"}
	lookup := &stubLookup{video: &youtube.Video{
		VideoID:     "cachedvideo",
		Title:       "Q3 Outlook",
		ChannelName: "Finance Talk",
		Duration:    1200,
	}}
	marker := &recordingMarker{}
	service, _ := setupService(t, provider, lookup, marker)
	ctx := context.Background()

	first, err := service.AnalyzeURL(ctx, "https://www.youtube.com/watch?v=cachedvideo")
	if err != nil {
		t.Fatalf("first analysis: %v", err)
	}
	if !first.Success {
		t.Fatalf("expected success, got error %q", first.Error)
	}
	if first.Analysis != "**Outlook** bullish (01:00)" {
		t.Errorf("analysis = %q", first.Analysis)
	}

	second, err := service.AnalyzeURL(ctx, "https://www.youtube.com/watch?v=cachedvideo")
	if err != nil {
		t.Fatalf("second analysis: %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1 (cache hit)", provider.calls)
	}
	if second.VideoID != first.VideoID {
		t.Errorf("cache returned different video %s", second.VideoID)
	}
	if len(marker.marked) != 1 || marker.marked[0] != "cachedvideo" {
		t.Errorf("marker saw %v, want [cachedvideo]", marker.marked)
	}
}

func TestAnalyzeURLRecordsFailure(t *testing.T) {
	provider := &stubProvider{err: errors.New("model overloaded")}
	lookup := &stubLookup{video: &youtube.Video{VideoID: "failedvideo", Title: "Down Day", Duration: 900}}
	service, store := setupService(t, provider, lookup, nil)
	ctx := context.Background()

	a, err := service.AnalyzeURL(ctx, "https://youtu.be/failedvideo")
	if err != nil {
		t.Fatalf("expected recorded failure, got error: %v", err)
	}
	if a.Success {
		t.Error("expected success=false")
	}
	if a.Error == "" {
		t.Error("expected error text in the stored row")
	}

	// The failed row is cached too, so repeat requests don't burn tokens.
	if _, err := service.AnalyzeURL(ctx, "https://youtu.be/failedvideo"); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls)
	}

	stored, err := store.Get(ctx, "failedvideo")
	if err != nil {
		t.Fatalf("retrieving: %v", err)
	}
	if stored == nil || stored.Success {
		t.Errorf("stored row = %+v, want unsuccessful", stored)
	}
}

func TestAnalyzeURLLookupFailure(t *testing.T) {
	provider := &stubProvider{response: "fine"}
	lookup := &stubLookup{err: errors.New("video not found")}
	service, _ := setupService(t, provider, lookup, nil)

	_, err := service.AnalyzeURL(context.Background(), "https://youtu.be/missingvid1")
	if err == nil {
		t.Fatal("expected error for failed lookup")
	}
	if !errors.Is(err, ErrVideoUnresolvable) {
		t.Errorf("lookup failure not marked unresolvable: %v", err)
	}
	if provider.calls != 0 {
		t.Errorf("provider should not be called when the lookup fails")
	}
}

func setupRouter(t *testing.T, provider *stubProvider, lookup VideoLookup) (*chi.Mux, *Store) {
	t.Helper()
	service, store := setupService(t, provider, lookup, nil)
	r := chi.NewRouter()
	RegisterRoutes(r, store, service)
	return r, store
}

func TestHandleAnalyzeRejectsBadURL(t *testing.T) {
	r, _ := setupRouter(t, &stubProvider{}, &stubLookup{})

	body := bytes.NewBufferString(`{"video_url": "https://vimeo.com/12345"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if resp["error"] == "" {
		t.Error("expected an error message")
	}
}

func TestHandleAnalyzeSuccess(t *testing.T) {
	provider := &stubProvider{response: "**Key point** (02:15)"}
	lookup := &stubLookup{video: &youtube.Video{VideoID: "apitestvid1", Title: "API Test", Duration: 600}}
	r, _ := setupRouter(t, provider, lookup)

	body := bytes.NewBufferString(`{"video_url": "https://www.youtube.com/watch?v=apitestvid1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var a Analysis
	if err := json.NewDecoder(rec.Body).Decode(&a); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if a.VideoID != "apitestvid1" || !a.Success {
		t.Errorf("response = %+v", a)
	}
}

func TestHandleAnalyzeStatusMapping(t *testing.T) {
	// An unresolvable video is the caller's fault.
	r, _ := setupRouter(t, &stubProvider{}, &stubLookup{err: errors.New("video not found")})
	body := bytes.NewBufferString(`{"video_url": "https://youtu.be/missingvid1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unresolvable video: status = %d, want 400", rec.Code)
	}

	// A storage failure is not.
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	database.Close()
	store := NewStore(database)
	lookup := &stubLookup{video: &youtube.Video{VideoID: "storefail001", Duration: 60}}
	service := NewService(store, lookup, analyzer.New(&stubProvider{response: "ok"}, "gemini-2.5-flash"), nil, nil)
	broken := chi.NewRouter()
	RegisterRoutes(broken, store, service)

	body = bytes.NewBufferString(`{"video_url": "https://youtu.be/storefail001"}`)
	req = httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	rec = httptest.NewRecorder()
	broken.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("storage failure: status = %d, want 500", rec.Code)
	}
}

func TestHandleResultNotFound(t *testing.T) {
	r, _ := setupRouter(t, &stubProvider{}, &stubLookup{})

	req := httptest.NewRequest(http.MethodGet, "/api/results/nothinghere", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandlePageDefaults(t *testing.T) {
	r, store := setupRouter(t, &stubProvider{}, &stubLookup{})
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		a := sampleAnalysis(fmt.Sprintf("pagevid%04d", i))
		a.PublishedAt = fmt.Sprintf("2026-07-%02dT10:00:00Z", 1+i)
		if err := store.Save(ctx, a); err != nil {
			t.Fatalf("saving: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/analyses/page", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var page Page
	if err := json.NewDecoder(rec.Body).Decode(&page); err != nil {
		t.Fatalf("decoding page: %v", err)
	}
	if page.PageSize != 10 || len(page.Analyses) != 10 {
		t.Errorf("default page size wrong: size=%d len=%d", page.PageSize, len(page.Analyses))
	}
	if page.TotalCount != 12 || !page.HasNext {
		t.Errorf("pagination metadata: %+v", page)
	}
}
