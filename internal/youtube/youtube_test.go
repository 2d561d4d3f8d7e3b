package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestValidURL(t *testing.T) {
	valid := []string{
		"https://www.youtube.com/watch?v=abc123",
		"http://youtube.com/watch?v=abc123",
		"youtube.com/watch?v=abc123",
		"youtu.be/abc123",
		"https://youtu.be/abc123",
		"www.youtube.com/embed/abc123",
	}
	for _, u := range valid {
		if !ValidURL(u) {
			t.Errorf("ValidURL(%q) = false, want true", u)
		}
	}

	invalid := []string{
		"",
		"https://vimeo.com/123",
		"youtube.com",
		"notyoutube.example/watch?v=abc",
	}
	for _, u := range invalid {
		if ValidURL(u) {
			t.Errorf("ValidURL(%q) = true, want false", u)
		}
	}
}

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ"}, // bare ID passes through
	}
	for _, tc := range cases {
		if got := ExtractVideoID(tc.url); got != tc.want {
			t.Errorf("ExtractVideoID(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"PT4M13S", 253},
		{"PT1H1M1S", 3661},
		{"PT45S", 45},
		{"PT2H", 7200},
		{"PT0S", 0},
		{"garbage", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := ParseDuration(tc.in); got != tc.want {
			t.Errorf("ParseDuration(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestVideoInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/videos" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("id") != "abc123" {
			t.Errorf("id = %q, want abc123", r.URL.Query().Get("id"))
		}
		w.Write([]byte(`{
			"items": [{
				"id": "abc123",
				"snippet": {
					"title": "Market Outlook",
					"channelTitle": "Prof G Markets",
					"channelId": "UCx1",
					"publishedAt": "2026-08-20T10:00:00Z"
				},
				"contentDetails": {"duration": "PT25M13S"}
			}]
		}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", 600)
	c.baseURL = srv.URL

	v, err := c.VideoInfo(context.Background(), "https://youtu.be/abc123")
	if err != nil {
		t.Fatalf("VideoInfo: %v", err)
	}

	if v.Title != "Market Outlook" {
		t.Errorf("Title = %q", v.Title)
	}
	if v.Duration != 25*60+13 {
		t.Errorf("Duration = %d, want 1513", v.Duration)
	}
	if v.ExcludedFromAnalysis {
		t.Error("25 minute video should not be excluded at a 10 minute floor")
	}
}

func TestVideoInfoShortVideoExcluded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"items": [{
				"id": "short1",
				"snippet": {"title": "Clip", "channelTitle": "C", "publishedAt": "2026-08-20T10:00:00Z"},
				"contentDetails": {"duration": "PT3M"}
			}]
		}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", 600)
	c.baseURL = srv.URL

	v, err := c.VideoInfo(context.Background(), "short1")
	if err != nil {
		t.Fatalf("VideoInfo: %v", err)
	}
	if !v.ExcludedFromAnalysis {
		t.Error("3 minute video should be excluded at a 10 minute floor")
	}
}

func TestVideoInfoNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": []}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", 600)
	c.baseURL = srv.URL

	if _, err := c.VideoInfo(context.Background(), "missing"); err == nil {
		t.Error("expected error for missing video")
	}
}
