package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/davidroeth/podsight/internal/analysis"
	mcpserver "github.com/davidroeth/podsight/internal/mcp"
	"github.com/davidroeth/podsight/internal/vectordb"
)

var serveMCPCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the analysis archive to AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := openDatabase(cfg)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		analysisStore := analysis.NewStore(database)

		// Semantic search is optional; without embedding credentials the
		// lookup tools still work.
		var vectorStore vectordb.VectorStore
		if embedder, err := newEmbedder(cfg); err == nil {
			store, err := vectordb.NewChromemStore(embedder)
			if err != nil {
				return fmt.Errorf("creating vector store: %w", err)
			}
			if err := store.Load(cmd.Context(), cfg.DataDir); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not load vector store: %v\n", err)
			}
			vectorStore = store
		} else {
			fmt.Fprintf(os.Stderr, "Warning: semantic search disabled: %v\n", err)
		}

		mcpserver.Version = Version
		fmt.Fprintf(os.Stderr, "podsight MCP server started on stdio\n")

		return mcpserver.NewServer(vectorStore, analysisStore).Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveMCPCmd)
}
