// Package analyzer runs the investment-commentary analysis of a YouTube
// video through an LLM provider and validates the result.
package analyzer

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/davidroeth/podsight/internal/llm"
)

// timestampPattern matches the (M:SS) / (MM:SS) tokens the prompt asks for.
var timestampPattern = regexp.MustCompile(`\((\d{1,2}):(\d{2})\)`)

// Analyzer produces investment-commentary analyses of YouTube videos.
type Analyzer struct {
	provider llm.Provider
	model    string
}

// Result is the outcome of analyzing one video.
type Result struct {
	Analysis        string
	VideoDuration   int
	TimestampsValid bool
	VanEckExcluded  bool
	InputTokens     int
	OutputTokens    int
	EstimatedCost   float64
}

// New creates an Analyzer backed by the given provider and model.
func New(provider llm.Provider, model string) *Analyzer {
	return &Analyzer{provider: provider, model: model}
}

// Analyze sends the video to the model and checks the returned summary.
// videoDuration is the known length in seconds; it bounds timestamp
// validation and is echoed into the result.
func (a *Analyzer) Analyze(ctx context.Context, videoURL string, videoDuration int) (*Result, error) {
	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		Model: a.model,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: analysisPrompt},
		},
		VideoURI:        videoURL,
		MediaResolution: llm.MediaResolutionLow,
	})
	if err != nil {
		return nil, fmt.Errorf("analyzing video: %w", err)
	}

	text := resp.Content

	model := resp.Model
	if model == "" {
		model = a.model
	}

	return &Result{
		Analysis:        text,
		VideoDuration:   videoDuration,
		TimestampsValid: ValidateTimestamps(text, videoDuration),
		VanEckExcluded:  VanEckExcluded(text),
		InputTokens:     resp.InputTokens,
		OutputTokens:    resp.OutputTokens,
		EstimatedCost:   llm.EstimateCost(model, resp.InputTokens, resp.OutputTokens),
	}, nil
}

// ValidateTimestamps reports whether every timestamp token in the analysis
// falls within the video's duration. A zero duration fails every timestamp,
// which surfaces missing metadata instead of hiding it.
func ValidateTimestamps(analysis string, videoDuration int) bool {
	for _, m := range timestampPattern.FindAllStringSubmatch(analysis, -1) {
		minutes, _ := strconv.Atoi(m[1])
		seconds, _ := strconv.Atoi(m[2])
		if minutes*60+seconds > videoDuration {
			return false
		}
	}
	return true
}

// VanEckExcluded reports whether the sponsor filter held: the prompt tells
// the model to drop VanEck ad reads, so any mention means sponsor content
// leaked into the summary.
func VanEckExcluded(analysis string) bool {
	return !strings.Contains(strings.ToLower(analysis), "vaneck")
}
