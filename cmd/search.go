package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davidroeth/podsight/internal/analysis"
	"github.com/davidroeth/podsight/internal/vectordb"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search cached analyses semantically",
	Long:  `Searches the analysis archive by meaning rather than keywords. The vector index is rebuilt from the database when it is missing.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := openDatabase(cfg)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		embedder, err := newEmbedder(cfg)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}
		store, err := vectordb.NewChromemStore(embedder)
		if err != nil {
			return fmt.Errorf("creating vector store: %w", err)
		}

		ctx := cmd.Context()
		if err := store.Load(ctx, cfg.DataDir); err != nil || store.Count() == 0 {
			analyses, err := analysis.NewStore(database).List(ctx, "")
			if err != nil {
				return err
			}
			indexed, err := vectordb.NewIndexer(store, cfg.DataDir).Reindex(ctx, analyses)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Indexed %d analysis(es).\n", indexed)
		}

		results, err := store.Search(ctx, query, searchLimit, nil)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No results. Analyze some videos first.")
			return nil
		}

		for i, r := range results {
			md := r.Document.Metadata
			fmt.Printf("%d. %s (%.0f%%)\n   %s", i+1, md.Title, r.Similarity*100, md.VideoURL)
			if md.ChannelName != "" {
				fmt.Printf("  [%s]", md.ChannelName)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "maximum number of results")
	rootCmd.AddCommand(searchCmd)
}
