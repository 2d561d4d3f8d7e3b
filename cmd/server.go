package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/davidroeth/podsight/internal/analysis"
	"github.com/davidroeth/podsight/internal/beams"
	"github.com/davidroeth/podsight/internal/discovery"
	"github.com/davidroeth/podsight/internal/server"
	"github.com/davidroeth/podsight/internal/vectordb"
	"github.com/davidroeth/podsight/internal/web"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the podsight web server",
	Long:  `Starts the web server with the analysis UI, discovery of watched channels, the REST API, and semantic search.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serverPort != 0 {
			cfg.Port = serverPort
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		an, err := newAnalyzer(cfg)
		if err != nil {
			return err
		}
		yt, err := newYouTubeClient(cfg)
		if err != nil {
			return err
		}

		analysisStore := analysis.NewStore(database)
		discoveryStore := discovery.NewStore(database)

		// Semantic search is optional; without embedding credentials the
		// server runs with the search endpoint disabled.
		var indexer *vectordb.Indexer
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
			indexer = vectordb.NewIndexer(store, cfg.DataDir)
		} else {
			fmt.Fprintf(os.Stderr, "Warning: semantic search disabled: %v\n", err)
		}

		analysisService := analysis.NewService(analysisStore, yt, an, discoveryStore, indexerOrNil(indexer))
		discoveryService := discovery.NewService(
			discoveryStore, yt, analysisService,
			watchedChannels(cfg), cfg.DiscoveryDaysBack, cfg.MaxConcurrency,
		)

		srv := server.New(server.Config{
			Port:     cfg.Port,
			DataDir:  cfg.DataDir,
			AllowAll: true,
		}, database)

		r := srv.Router()
		analysis.RegisterRoutes(r, analysisStore, analysisService)
		discovery.RegisterRoutes(r, discoveryService)
		beams.RegisterRoutes(r, beams.Multiplier(string(cfg.Beams.Intensity)))
		web.New(analysisStore, discoveryStore, len(cfg.Channels)).RegisterRoutes(r)
		if vectorStore != nil {
			vectordb.RegisterRoutes(r, vectorStore)
		}

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "podsight server v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Data dir: %s\n", cfg.DataDir)
		fmt.Fprintf(os.Stderr, "  Watched channels: %d\n", len(cfg.Channels))

		return srv.Start()
	},
}

// indexerOrNil avoids handing a typed nil pointer to the service's
// interface field.
func indexerOrNil(ix *vectordb.Indexer) analysis.Indexer {
	if ix == nil {
		return nil
	}
	return ix
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}
