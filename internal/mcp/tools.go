package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchAnalysesTool defines the search_analyses MCP tool.
var searchAnalysesTool = mcp.NewTool("search_analyses",
	mcp.WithDescription("Search cached video analyses semantically. Returns summaries of investment commentary matching the query."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
	mcp.WithString("channel_id",
		mcp.Description("Restrict results to one YouTube channel"),
	),
)

// getAnalysisTool defines the get_analysis MCP tool.
var getAnalysisTool = mcp.NewTool("get_analysis",
	mcp.WithDescription("Get the full cached analysis for one YouTube video."),
	mcp.WithString("video_id",
		mcp.Required(),
		mcp.Description("The YouTube video ID"),
	),
)

// listRecentTool defines the list_recent_analyses MCP tool.
var listRecentTool = mcp.NewTool("list_recent_analyses",
	mcp.WithDescription("List analyses created within the last N days, newest first."),
	mcp.WithNumber("days",
		mcp.Description("How many days back to look (default 7)"),
	),
)
