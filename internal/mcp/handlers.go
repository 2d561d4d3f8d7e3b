package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/davidroeth/podsight/internal/analysis"
	"github.com/davidroeth/podsight/internal/render"
	"github.com/davidroeth/podsight/internal/vectordb"
)

// handleSearchAnalyses performs semantic search over the indexed analyses.
func (s *Server) handleSearchAnalyses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	if s.store == nil {
		return mcp.NewToolResultError("semantic search is unavailable: no embedding provider configured"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	var filter *vectordb.SearchFilter
	if channelID := request.GetString("channel_id", ""); channelID != "" {
		filter = &vectordb.SearchFilter{ChannelID: &channelID}
	}

	results, err := s.store.Search(ctx, query, limit, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if len(results) == 0 {
		return mcp.NewToolResultText("No results found. Analyze some videos first, then search again."), nil
	}

	return mcp.NewToolResultText(formatSearchResults(results)), nil
}

// handleGetAnalysis returns the full cached analysis for one video.
func (s *Server) handleGetAnalysis(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	videoID, err := request.RequireString("video_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: video_id"), nil
	}

	a, err := s.analyses.Get(ctx, videoID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load analysis: %v", err)), nil
	}
	if a == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no analysis cached for video %q", videoID)), nil
	}

	return mcp.NewToolResultText(formatAnalysis(*a)), nil
}

// handleListRecent lists analyses created in the last N days.
func (s *Server) handleListRecent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := request.GetInt("days", 7)
	if days <= 0 {
		days = 7
	}

	analyses, err := s.analyses.Recent(ctx, days)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list analyses: %v", err)), nil
	}
	if len(analyses) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No analyses in the last %d day(s).", days)), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d analysis(es) in the last %d day(s):\n", len(analyses), days))
	for _, a := range analyses {
		status := "ok"
		if !a.Success {
			status = "failed"
		}
		sb.WriteString(fmt.Sprintf("\n- %s (%s) [%s] %s\n  %s\n",
			a.Title, a.VideoID, status, a.ChannelName, a.VideoURL))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// formatSearchResults converts search results into a rich text format for
// AI agent consumption.
func formatSearchResults(results []vectordb.SearchResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n", len(results)))

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("\n--- Result %d ---\n", i+1))

		md := r.Document.Metadata
		sb.WriteString(fmt.Sprintf("Title: %s\n", md.Title))
		sb.WriteString(fmt.Sprintf("Video: %s (%s)\n", md.VideoURL, md.VideoID))
		if md.ChannelName != "" {
			sb.WriteString(fmt.Sprintf("Channel: %s\n", md.ChannelName))
		}
		if md.PublishedAt != "" {
			sb.WriteString(fmt.Sprintf("Published: %s\n", md.PublishedAt))
		}
		sb.WriteString(fmt.Sprintf("Similarity: %.1f%%\n", r.Similarity*100))

		sb.WriteString("\n")
		sb.WriteString(r.Document.Content)
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatAnalysis renders one stored analysis as plain text.
func formatAnalysis(a analysis.Analysis) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title: %s\n", a.Title))
	sb.WriteString(fmt.Sprintf("Video: %s (%s)\n", a.VideoURL, a.VideoID))
	if a.ChannelName != "" {
		sb.WriteString(fmt.Sprintf("Channel: %s\n", a.ChannelName))
	}
	sb.WriteString(fmt.Sprintf("Duration: %s\n", render.Duration(a.VideoDuration)))
	sb.WriteString(fmt.Sprintf("Timestamps valid: %s\n", render.YesNo(a.TimestampsValid)))
	sb.WriteString(fmt.Sprintf("Sponsor excluded: %s\n", render.YesNo(a.VanEckExcluded)))

	if !a.Success {
		sb.WriteString(fmt.Sprintf("Status: failed (%s)\n", a.Error))
		return sb.String()
	}

	sb.WriteString("\n")
	sb.WriteString(a.Analysis)
	sb.WriteString("\n")
	return sb.String()
}
