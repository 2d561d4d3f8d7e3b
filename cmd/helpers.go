package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/davidroeth/podsight/internal/analyzer"
	"github.com/davidroeth/podsight/internal/config"
	"github.com/davidroeth/podsight/internal/db"
	"github.com/davidroeth/podsight/internal/embeddings"
	"github.com/davidroeth/podsight/internal/llm"
	"github.com/davidroeth/podsight/internal/youtube"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `podsight init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openDatabase opens the SQLite database under the configured data dir.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	return db.Open(filepath.Join(cfg.DataDir, "podsight.db"))
}

// newAnalyzer builds the video analyzer with the configured provider behind
// the rate limiter.
func newAnalyzer(cfg *config.Config) (*analyzer.Analyzer, error) {
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("creating LLM provider: %w", err)
	}
	if cfg.RequestsPerMinute > 0 {
		provider = llm.NewRateLimitedProvider(provider, cfg.RequestsPerMinute)
	}
	return analyzer.New(provider, cfg.Model), nil
}

// newYouTubeClient builds the metadata client. The YouTube Data API accepts
// the Google API key when no dedicated key is set.
func newYouTubeClient(cfg *config.Config) (*youtube.Client, error) {
	apiKey := os.Getenv("YOUTUBE_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("YOUTUBE_API_KEY or GOOGLE_API_KEY environment variable is required")
	}
	return youtube.NewClient(apiKey, cfg.MinVideoMinutes*60), nil
}

// newEmbedder builds the embedder for semantic search.
func newEmbedder(cfg *config.Config) (embeddings.Embedder, error) {
	provider := cfg.EmbeddingProvider
	if provider == "" {
		provider = cfg.Provider
	}
	model := cfg.EmbeddingModel
	if model == "" {
		model = config.DefaultEmbeddingModels[provider]
	}
	return embeddings.NewEmbedder(string(provider), model)
}

// watchedChannels converts configured channels to the YouTube client's type.
func watchedChannels(cfg *config.Config) []youtube.Channel {
	channels := make([]youtube.Channel, len(cfg.Channels))
	for i, c := range cfg.Channels {
		channels[i] = youtube.Channel{Name: c.Name, ChannelID: c.ChannelID}
	}
	return channels
}
