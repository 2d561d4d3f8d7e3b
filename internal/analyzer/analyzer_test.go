package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/davidroeth/podsight/internal/llm"
)

type fakeProvider struct {
	resp *llm.CompletionResponse
	err  error
	last llm.CompletionRequest
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func TestValidateTimestamps(t *testing.T) {
	cases := []struct {
		name     string
		analysis string
		duration int
		want     bool
	}{
		{"in range", "Key point (1:30) and (2:45).", 300, true},
		{"at the limit", "Closing remark (5:00).", 300, true},
		{"past the end", "Phantom moment (9:59).", 300, false},
		{"no timestamps", "Just a summary with no markers.", 300, true},
		{"zero duration fails all", "Moment (0:01).", 0, false},
		{"range tokens are not validated", "Quote (0:14-0:17) here.", 20, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidateTimestamps(tc.analysis, tc.duration); got != tc.want {
				t.Errorf("ValidateTimestamps = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestVanEckExcluded(t *testing.T) {
	if !VanEckExcluded("A clean summary about semiconductors.") {
		t.Error("clean analysis should pass the sponsor filter")
	}
	if VanEckExcluded("Brought to you by VanEck Semiconductor ETFs.") {
		t.Error("sponsor mention should fail the filter")
	}
	if VanEckExcluded("brought to you by VANECK") {
		t.Error("sponsor check must be case-insensitive")
	}
}

func TestAnalyzeAttachesVideo(t *testing.T) {
	fake := &fakeProvider{resp: &llm.CompletionResponse{
		Content: "**Summary:** Markets digest tariffs (1:05).",
	}}
	a := New(fake, "gemini-2.5-flash")

	res, err := a.Analyze(context.Background(), "https://youtu.be/abc123", 600)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if fake.last.VideoURI != "https://youtu.be/abc123" {
		t.Errorf("VideoURI = %q", fake.last.VideoURI)
	}
	if fake.last.MediaResolution != llm.MediaResolutionLow {
		t.Errorf("MediaResolution = %q", fake.last.MediaResolution)
	}
	if !res.TimestampsValid {
		t.Error("TimestampsValid = false for an in-range timestamp")
	}
	if !res.VanEckExcluded {
		t.Error("VanEckExcluded = false for a clean analysis")
	}
	if res.VideoDuration != 600 {
		t.Errorf("VideoDuration = %d", res.VideoDuration)
	}
}

func TestAnalyzeCarriesTokenUsage(t *testing.T) {
	fake := &fakeProvider{resp: &llm.CompletionResponse{
		Content:      "Quiet week for equities.",
		InputTokens:  12000,
		OutputTokens: 800,
		Model:        "gemini-2.5-flash",
	}}
	a := New(fake, "gemini-2.5-flash")

	res, err := a.Analyze(context.Background(), "https://youtu.be/abc123", 600)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if res.InputTokens != 12000 || res.OutputTokens != 800 {
		t.Errorf("tokens = %d/%d, want 12000/800", res.InputTokens, res.OutputTokens)
	}
	want := llm.EstimateCost("gemini-2.5-flash", 12000, 800)
	if want == 0 {
		t.Fatal("gemini-2.5-flash missing from the price table")
	}
	if res.EstimatedCost != want {
		t.Errorf("EstimatedCost = %v, want %v", res.EstimatedCost, want)
	}
}

func TestAnalyzeWrapsProviderError(t *testing.T) {
	fake := &fakeProvider{err: errors.New("quota exhausted")}
	a := New(fake, "gemini-2.5-flash")

	if _, err := a.Analyze(context.Background(), "https://youtu.be/x", 100); err == nil {
		t.Error("expected provider error to propagate")
	}
}
