// Package mcp exposes podsight's analysis library to AI agents over the
// Model Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/davidroeth/podsight/internal/analysis"
	"github.com/davidroeth/podsight/internal/vectordb"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes analysis search and lookup tools.
type Server struct {
	store    vectordb.VectorStore
	analyses *analysis.Store
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server. store may be nil when no embedding
// provider is configured; the semantic search tool then reports that.
func NewServer(store vectordb.VectorStore, analyses *analysis.Store) *Server {
	s := &Server{
		store:    store,
		analyses: analyses,
	}

	s.mcp = server.NewMCPServer(
		"podsight",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchAnalysesTool, s.handleSearchAnalyses)
	s.mcp.AddTool(getAnalysisTool, s.handleGetAnalysis)
	s.mcp.AddTool(listRecentTool, s.handleListRecent)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
